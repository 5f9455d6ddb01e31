// Package tetris implements falling-block Tetris on the 8x32 LED field.
package tetris

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/led-arcade/internal/config"
	"github.com/vovakirdan/led-arcade/internal/core"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "tetris"

// Banner is the TETRIS title screen.
var Banner = [core.Width]uint32{
	0,
	0,
	0b01110011100111001110010010011100,
	0b00100010000010001010010010010000,
	0b00100011100010001110010110010000,
	0b00100010000010001000011010010000,
	0b00100011100010001000010010011100,
	0,
}

// Spawn point of every piece.
const (
	spawnX = 3
	spawnY = core.FieldTop
)

// Phase is the state machine's current state.
type Phase int

const (
	PhaseFalling Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Game implements Tetris.
type Game struct {
	hw          core.Hardware
	prng        *core.Prng
	cfg         config.TetrisConfig
	frameDelay  uint64
	blinkDelay  uint64
	progressive bool
	log         *log.Logger

	screen   core.FrameBuffer
	concrete core.FrameBuffer // Settled blocks

	currIdx int
	nextIdx int
	curr    core.Figure // Current piece in its current orientation
	x, y    int
	ipass   int // Gravity accumulator
	score   int // 0-99, wraps
	lines   int
	tick    uint64
	phase   Phase
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Tetris", Rank: 0, Banner: Banner}, func(env registry.Env) registry.Game {
		return New(env)
	})
}

// New creates a game and draws the first two pieces.
func New(env registry.Env) *Game {
	cfg := env.Config
	g := &Game{
		hw:          env.HW,
		prng:        env.Prng,
		cfg:         cfg.Tetris,
		frameDelay:  cfg.FrameDelay(cfg.Tetris.FrameMs),
		blinkDelay:  uint64(cfg.Tetris.BlinkMs),
		progressive: cfg.Progressive(),
		log:         env.Log().With("game", ID),
	}
	g.currIdx = g.prng.NextRange(core.PieceCount)
	g.nextIdx = g.prng.NextRange(core.PieceCount)
	g.curr = core.Tetrominoes[g.currIdx]
	g.x, g.y = spawnX, spawnY
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

// State returns the current score and status.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.phase == PhaseGameOver}
}

// Step advances the simulation by one frame.
func (g *Game) Step(in core.Input) {
	if g.phase == PhaseGameOver {
		return
	}
	g.tick++

	if in.X != 0 {
		nx := g.x + int(in.X)
		if !g.concrete.Collides(nx, g.y, g.curr) {
			g.x = nx
		}
	}

	if in.Joystick || in.A {
		g.rotate()
	}

	g.ipass += g.speedBonus()
	if in.Y > 0 {
		g.ipass += g.cfg.SoftDropBonus
	}
	if g.ipass >= g.cfg.GravityInterval {
		g.ipass = 0
		if g.concrete.Collides(g.x, g.y+1, g.curr) {
			g.lock()
		} else {
			g.y++
		}
	}

	if g.phase == PhaseFalling {
		g.clearLines()
	}
}

// speedBonus is the gravity added per frame; it grows with the score.
func (g *Game) speedBonus() int {
	if !g.progressive || g.cfg.SpeedupScore <= 0 {
		return 1
	}
	return max(g.score/g.cfg.SpeedupScore, 1)
}

// rotate turns the piece clockwise. A piece that becomes wider is nudged
// left so its right edge stays on the grid.
func (g *Game) rotate() {
	rotated := g.curr.Rotate()
	shift := 0
	if rotated.Width() > rotated.Height() && g.x+rotated.Width() > core.Width {
		shift = g.x + rotated.Width() - core.Width
	}
	if !g.concrete.Collides(g.x-shift, g.y, rotated) {
		g.curr = rotated
		g.x -= shift
	}
}

// lock stamps the piece into the concrete and spawns the next one.
func (g *Game) lock() {
	g.concrete.DrawFigure(g.x, g.y, g.curr, core.TetrominoColors[g.currIdx])
	g.log.Debug("piece locked", "piece", g.currIdx, "x", g.x, "y", g.y)

	g.currIdx = g.nextIdx
	g.nextIdx = g.prng.NextRange(core.PieceCount)
	g.curr = core.Tetrominoes[g.currIdx]
	g.x, g.y = spawnX, spawnY
	g.ipass = 0

	if g.concrete.Collides(g.x, g.y, g.curr) {
		g.phase = PhaseGameOver
		g.log.Info("game over", "score", g.score, "lines", g.lines)
	}
}

// clearLines removes every full row, bottom-up, scoring one point each.
func (g *Game) clearLines() {
	for {
		row := g.reduceConcrete()
		if row < 0 {
			return
		}
		g.shiftConcrete(row)
		g.score = (g.score + 1) % 100
		g.lines++
		g.log.Debug("line cleared", "row", row, "score", g.score)
	}
}

// reduceConcrete clears the lowest full row and returns it, or -1.
func (g *Game) reduceConcrete() int {
	for row := core.Height - 1; row >= core.FieldTop; row-- {
		if g.concrete.TryClearRow(row) {
			return row
		}
	}
	return -1
}

// shiftConcrete drops every row above cleared by one and blanks the top
// field row. Copies between two empty rows are skipped.
func (g *Game) shiftConcrete(cleared int) {
	for to := cleared; to > core.FieldTop; to-- {
		from := to - 1
		if g.concrete.RowIsEmpty(from) && g.concrete.RowIsEmpty(to) {
			continue
		}
		g.concrete.CopyRow(from, to)
	}
	g.concrete.ClearRange(core.FieldTop, core.FieldTop+1)
}

// Draw composes the screen: concrete, header, preview, falling piece.
func (g *Game) Draw() {
	g.screen.CopyFrom(&g.concrete)
	g.drawHeader()

	if g.y > g.cfg.PreviewRow {
		g.screen.DrawFigure(spawnX, spawnY, core.Tetrominoes[g.nextIdx], core.TetrominoColors[g.nextIdx])
	}
	g.screen.DrawFigure(g.x, g.y, g.curr, core.TetrominoColors[g.currIdx])
}

func (g *Game) drawHeader() {
	core.DrawScore(&g.screen, g.score, 5, core.Green)
	core.DrawDivider(&g.screen, core.Pink)
}

// Screen returns the last composed frame.
func (g *Game) Screen() *core.FrameBuffer {
	return &g.screen
}

// Run plays until the game-over screen is dismissed.
func (g *Game) Run(ctx context.Context) error {
	g.log.Info("game started")
	for g.phase != PhaseGameOver {
		g.Step(core.ReadInput(ctx, g.hw.Controller))
		g.Draw()
		if err := g.hw.Present(ctx, &g.screen); err != nil {
			return err
		}
		if err := g.hw.Sleep(ctx, g.frameDelay); err != nil {
			return err
		}
	}
	return g.gameOver(ctx)
}

// gameOver blinks the piece that could not spawn until a button is pressed.
// The concrete and score stay visible underneath.
func (g *Game) gameOver(ctx context.Context) error {
	color := core.TetrominoColors[g.currIdx]
	for !g.hw.Controller.WasPressed() {
		g.screen.CopyFrom(&g.concrete)
		g.drawHeader()
		g.screen.DrawFigure(g.x, g.y, g.curr, color)
		if err := g.hw.Present(ctx, &g.screen); err != nil {
			return err
		}
		if err := g.hw.Sleep(ctx, g.blinkDelay); err != nil {
			return err
		}

		g.screen.CopyFrom(&g.concrete)
		g.drawHeader()
		if err := g.hw.Present(ctx, &g.screen); err != nil {
			return err
		}
		if err := g.hw.Sleep(ctx, g.blinkDelay); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick   uint64
	Score  int
	Lines  int
	Piece  int
	Next   int
	X, Y   int
	Phase  Phase
	Settle string // Dump of the concrete layer
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:   g.tick,
		Score:  g.score,
		Lines:  g.lines,
		Piece:  g.currIdx,
		Next:   g.nextIdx,
		X:      g.x,
		Y:      g.y,
		Phase:  g.phase,
		Settle: g.concrete.String(),
	}
}
