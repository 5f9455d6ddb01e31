// Package life runs Conway's Game of Life on the LED play field.
package life

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/led-arcade/internal/config"
	"github.com/vovakirdan/led-arcade/internal/core"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "life"

// Banner is the LIFE title screen.
var Banner = [core.Width]uint32{
	0,
	0,
	0b01000011100111001110000000000000,
	0b01000001000100001000000000000000,
	0b01000001000110001110000000000000,
	0b01000001000100001000000000000000,
	0b01110011100100001110000000000000,
	0,
}

// Speed range; a generation runs every Round/speed frames.
const (
	minSpeed = 1
	maxSpeed = 4
)

// pattern is a named seed. A nil cell list means a random soup.
type pattern struct {
	name  string
	cells []core.Dot
}

var patterns = []pattern{
	{name: "random"},
	{name: "glider", cells: dots(1, 8, 2, 9, 0, 10, 1, 10, 2, 10)},
	{name: "blinker", cells: dots(3, 10, 3, 11, 3, 12)},
	{name: "block", cells: dots(3, 10, 4, 10, 3, 11, 4, 11)},
	{name: "toad", cells: dots(2, 10, 3, 10, 4, 10, 1, 11, 2, 11, 3, 11)},
	{name: "beacon", cells: dots(1, 8, 2, 8, 1, 9, 4, 10, 3, 11, 4, 11)},
}

func dots(xy ...int) []core.Dot {
	out := make([]core.Dot, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, core.NewDot(xy[i], xy[i+1]))
	}
	return out
}

// Game implements Life.
type Game struct {
	hw         core.Hardware
	prng       *core.Prng
	cfg        config.LifeConfig
	frameDelay uint64
	log        *log.Logger

	screen core.FrameBuffer
	cells  core.FrameBuffer // Live generation, play field rows only
	next   core.FrameBuffer

	pattern    int
	generation int
	speed      int
	step       int
	paused     bool
	done       bool
	tick       uint64
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Life", Rank: 4, Banner: Banner}, func(env registry.Env) registry.Game {
		return New(env)
	})
}

// New seeds the field with a random soup.
func New(env registry.Env) *Game {
	cfg := env.Config
	g := &Game{
		hw:         env.HW,
		prng:       env.Prng,
		cfg:        cfg.Life,
		frameDelay: cfg.FrameDelay(cfg.Life.FrameMs),
		log:        env.Log().With("game", ID),
		speed:      core.Clamp(cfg.Life.Speed, minSpeed, maxSpeed),
	}
	g.setPattern(0)
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Life" }

// State reports the generation as the score.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.generation, GameOver: g.done, Paused: g.paused}
}

func (g *Game) setPattern(idx int) {
	g.pattern = idx % len(patterns)
	g.generation = 0
	g.cells.Clear()

	p := patterns[g.pattern]
	g.log.Info("pattern set", "pattern", p.name)
	if p.cells == nil {
		for x := range core.Width {
			for y := core.FieldTop; y < core.Height; y++ {
				if g.prng.NextRange(4) == 0 {
					g.cells.Set(x, y, core.Green)
				}
			}
		}
		return
	}
	for _, d := range p.cells {
		if int(d.Y) >= core.FieldTop {
			g.cells.Set(int(d.X), int(d.Y), core.Green)
		}
	}
}

// Step handles one frame of input and advances the simulation when due.
// The joystick toggles pause. While running, A picks the next pattern and B
// leaves; while paused, A slows down and B speeds up.
func (g *Game) Step(in core.Input) {
	if g.done {
		return
	}
	g.tick++

	if in.Joystick {
		g.paused = !g.paused
	}
	switch {
	case g.paused && in.A:
		g.setSpeed(g.speed - 1)
	case g.paused && in.B:
		g.setSpeed(g.speed + 1)
	case in.A:
		g.setPattern(g.pattern + 1)
	case in.B:
		g.done = true
		g.log.Info("game over", "generation", g.generation)
		return
	}

	if !g.paused && g.step >= g.cfg.Round/g.speed {
		g.nextGeneration()
		g.step = 0
	}
	g.step++
}

func (g *Game) setSpeed(s int) {
	g.speed = core.Clamp(s, minSpeed, maxSpeed)
	g.log.Info("speed changed", "speed", g.speed)
}

// countNeighbors counts live cells around (x, y). Columns wrap; rows do not,
// so cells outside the play field never count.
func (g *Game) countNeighbors(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < core.FieldTop || ny >= core.Height {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := (x + dx + core.Width) % core.Width
			if g.cells.Get(nx, ny) != core.Black {
				n++
			}
		}
	}
	return n
}

// nextGeneration applies B3/S23 into the scratch buffer and swaps it in.
func (g *Game) nextGeneration() int {
	g.next.Clear()
	for x := range core.Width {
		for y := core.FieldTop; y < core.Height; y++ {
			n := g.countNeighbors(x, y)
			live := g.cells.Get(x, y) != core.Black
			if n == 3 || (live && n == 2) {
				g.next.Set(x, y, core.Green)
			}
		}
	}
	g.cells, g.next = g.next, g.cells
	g.generation++

	alive := g.cells.Lit()

	if g.generation%50 == 0 {
		g.log.Debug("generation", "n", g.generation, "alive", alive)
	}
	return alive
}

// Draw composes the field and the HUD.
func (g *Game) Draw() {
	g.screen.CopyFrom(&g.cells)

	if g.paused {
		for y := 1; y <= 3; y++ {
			g.screen.Set(2, y, core.Yellow)
			g.screen.Set(4, y, core.Yellow)
		}
	} else {
		g.screen.DrawFigure(0, 0, core.Digit(g.pattern), core.Green)
		g.screen.DrawFigure(4, 0, core.Digit(g.generation/10), core.Green)
	}

	core.DrawDivider(&g.screen, core.Pink)
	for i := range g.speed {
		g.screen.Set(i*2, core.DividerRow, core.Brick)
	}
}

// Screen returns the last composed frame.
func (g *Game) Screen() *core.FrameBuffer {
	return &g.screen
}

// Run animates until B is pressed while running.
func (g *Game) Run(ctx context.Context) error {
	g.log.Info("game started")
	for {
		g.Step(core.ReadInput(ctx, g.hw.Controller))
		if g.done {
			return nil
		}
		g.Draw()
		if err := g.hw.Present(ctx, &g.screen); err != nil {
			return err
		}
		if err := g.hw.Sleep(ctx, g.frameDelay); err != nil {
			return err
		}
	}
}

// Snapshot captures the simulation for determinism testing.
type Snapshot struct {
	Tick       uint64
	Pattern    string
	Generation int
	Speed      int
	Paused     bool
	Alive      int
	Cells      string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:       g.tick,
		Pattern:    patterns[g.pattern].name,
		Generation: g.generation,
		Speed:      g.speed,
		Paused:     g.paused,
		Alive:      g.cells.Lit(),
		Cells:      g.cells.String(),
	}
}
