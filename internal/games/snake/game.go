// Package snake implements Snake on the 8x32 LED field.
package snake

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/led-arcade/internal/config"
	"github.com/vovakirdan/led-arcade/internal/core"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "snake"

// Banner is the SNAKE title screen.
var Banner = [core.Width]uint32{
	0,
	0,
	0b01110010100010001010011100000000,
	0b01000011100101001010010000000000,
	0b01110011100111001100011100000000,
	0b00010011100101001010010000000000,
	0b01110010100101001010011100000000,
	0,
}

// appleTries bounds the random search before falling back to a scan.
const appleTries = 64

// field is the play area; the snake wraps around its edges.
var field = core.NewRect(0, core.FieldTop, core.Width, core.Height-core.FieldTop)

// Phase represents the current game phase.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Game implements the Snake game.
type Game struct {
	hw          core.Hardware
	prng        *core.Prng
	cfg         config.SnakeConfig
	frameDelay  uint64
	progressive bool
	log         *log.Logger

	screen core.FrameBuffer

	// Snake state; body[0] is the head.
	body     [config.MaxSnakeBody]core.Dot
	bodyLen  int
	capacity int
	dir      core.Dot
	nextDir  core.Dot // Buffered direction for next move

	apple core.Dot
	step  int // Accumulates speed points until the next move
	score int
	tick  uint64
	phase Phase
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Snake", Rank: 1, Banner: Banner}, func(env registry.Env) registry.Game {
		return New(env)
	})
}

// New creates a snake of three cells heading right.
func New(env registry.Env) *Game {
	cfg := env.Config
	g := &Game{
		hw:          env.HW,
		prng:        env.Prng,
		cfg:         cfg.Snake,
		frameDelay:  cfg.FrameDelay(cfg.Snake.FrameMs),
		progressive: cfg.Progressive(),
		log:         env.Log().With("game", ID),
		capacity:    core.Clamp(cfg.Snake.Capacity, 3, config.MaxSnakeBody),
		dir:         core.Right,
		nextDir:     core.Right,
		step:        cfg.Snake.MoveThreshold, // move on the first frame
	}
	g.body[0] = core.NewDot(3, 15)
	g.body[1] = core.NewDot(2, 15)
	g.body[2] = core.NewDot(1, 15)
	g.bodyLen = 3
	g.respawnApple()
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

// State returns the current score and status.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.phase == PhaseGameOver}
}

// Step advances one frame and reports whether the snake moved.
func (g *Game) Step(in core.Input) bool {
	if g.phase == PhaseGameOver {
		return false
	}
	g.tick++

	d := in.Direction()
	if !d.IsZero() {
		g.nextDir = d
	}

	speedup := 1
	if d == g.dir {
		speedup = g.cfg.Boost
	}
	if g.progressive {
		speedup += g.score / 10
	}

	moved := false
	if g.step >= g.cfg.MoveThreshold {
		g.step = 0
		moved = true
		if !g.moveForward() {
			g.phase = PhaseGameOver
			g.log.Info("game over", "score", g.score, "length", g.bodyLen)
		}
	}
	g.step += speedup
	return moved
}

// moveForward advances the head one cell. It returns false, leaving the body
// untouched, if the head would land on the snake.
func (g *Game) moveForward() bool {
	if !g.dir.IsOpposite(g.nextDir) {
		g.dir = g.nextDir
	}
	head := g.body[0].MoveWrapIn(g.dir, field)
	if g.occupied(head) {
		return false
	}

	copy(g.body[1:g.bodyLen], g.body[:g.bodyLen-1])
	g.body[0] = head

	if head == g.apple {
		if g.bodyLen < g.capacity {
			g.body[g.bodyLen] = g.body[g.bodyLen-1]
			g.bodyLen++
		}
		g.score = (g.score + 1) % 100
		g.log.Debug("apple eaten", "score", g.score, "length", g.bodyLen)
		g.respawnApple()
	}
	return true
}

func (g *Game) occupied(d core.Dot) bool {
	for _, b := range g.body[:g.bodyLen] {
		if b == d {
			return true
		}
	}
	return false
}

// respawnApple places the apple on a random free field cell. After a bounded
// number of misses it takes the first free cell.
func (g *Game) respawnApple() {
	for range appleTries {
		d := core.NewDot(g.prng.NextRange(field.W), field.Y+g.prng.NextRange(field.H))
		if !g.occupied(d) {
			g.apple = d
			return
		}
	}
	for y := field.Y; y < field.Bottom(); y++ {
		for x := field.X; x < field.Right(); x++ {
			if d := core.NewDot(x, y); !g.occupied(d) {
				g.apple = d
				return
			}
		}
	}
}

// Draw composes the screen.
func (g *Game) Draw() {
	g.screen.Clear()
	g.drawScore()
	g.drawSnake()
	g.screen.Set(int(g.apple.X), int(g.apple.Y), core.Red)
}

func (g *Game) drawScore() {
	core.DrawScore(&g.screen, g.score, 4, core.Green)
	core.DrawDivider(&g.screen, core.Pink)
}

func (g *Game) drawSnake() {
	for i, d := range g.body[:g.bodyLen] {
		c := core.Green
		switch i {
		case 0:
			c = core.LightGreen
		case g.bodyLen - 1:
			c = core.DarkGreen
		}
		g.screen.Set(int(d.X), int(d.Y), c)
	}
}

// Screen returns the last composed frame.
func (g *Game) Screen() *core.FrameBuffer {
	return &g.screen
}

// Run plays until the game-over screen is dismissed. The display is only
// written on frames where the snake moved.
func (g *Game) Run(ctx context.Context) error {
	g.log.Info("game started")
	for {
		moved := g.Step(core.ReadInput(ctx, g.hw.Controller))
		if g.phase == PhaseGameOver {
			return g.gameOver(ctx)
		}
		if moved {
			g.Draw()
			if err := g.hw.Present(ctx, &g.screen); err != nil {
				return err
			}
		}
		if err := g.hw.Sleep(ctx, g.frameDelay); err != nil {
			return err
		}
	}
}

// gameOver blinks the snake three times, then waits for a press.
func (g *Game) gameOver(ctx context.Context) error {
	blink := uint64(g.cfg.BlinkMs)
	for range 3 {
		g.screen.Clear()
		if err := g.hw.Present(ctx, &g.screen); err != nil {
			return err
		}
		if err := g.hw.Sleep(ctx, blink); err != nil {
			return err
		}

		g.drawSnake()
		g.drawScore()
		if err := g.hw.Present(ctx, &g.screen); err != nil {
			return err
		}
		if err := g.hw.Sleep(ctx, blink); err != nil {
			return err
		}
	}
	return g.hw.WaitPress(ctx, uint64(g.cfg.PollMs))
}

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick  uint64
	Score int
	Body  []core.Dot
	Dir   core.Dot
	Apple core.Dot
	Phase Phase
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:  g.tick,
		Score: g.score,
		Body:  append([]core.Dot(nil), g.body[:g.bodyLen]...),
		Dir:   g.dir,
		Apple: g.apple,
		Phase: g.phase,
	}
}
