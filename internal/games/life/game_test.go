package life

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/led-arcade/internal/config"
	"github.com/vovakirdan/led-arcade/internal/core"
	"github.com/vovakirdan/led-arcade/internal/core/coretest"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

func newGame(seed uint32, rig *coretest.Rig) *Game {
	if rig == nil {
		rig = coretest.NewRig(0)
	}
	return New(registry.Env{HW: rig.Hardware(), Prng: core.NewPrng(seed), Config: config.Default()})
}

func patternIndex(t *testing.T, name string) int {
	t.Helper()
	for i, p := range patterns {
		if p.name == name {
			return i
		}
	}
	t.Fatalf("no pattern %q", name)
	return 0
}

func live(g *Game) []core.Dot {
	var out []core.Dot
	for y := range core.Height {
		for x := range core.Width {
			if g.cells.Get(x, y) != core.Black {
				out = append(out, core.NewDot(x, y))
			}
		}
	}
	return out
}

func TestRandomSoupStaysInField(t *testing.T) {
	g := newGame(12345, nil)

	assert.Equal(t, "random", g.Snapshot().Pattern)
	assert.Positive(t, g.cells.Lit())
	for y := range core.FieldTop {
		assert.True(t, g.cells.RowIsEmpty(y), "row %d", y)
	}
}

func TestBlinkerHasPeriodTwo(t *testing.T) {
	g := newGame(1, nil)
	g.setPattern(patternIndex(t, "blinker"))
	start := g.cells.String()

	g.nextGeneration()
	assert.Equal(t, []core.Dot{core.NewDot(2, 11), core.NewDot(3, 11), core.NewDot(4, 11)}, live(g))
	assert.NotEqual(t, start, g.cells.String())

	g.nextGeneration()
	assert.Equal(t, start, g.cells.String())
	assert.Equal(t, 2, g.generation)
}

func TestBlockIsStable(t *testing.T) {
	g := newGame(1, nil)
	g.setPattern(patternIndex(t, "block"))
	start := g.cells.String()

	for i := 0; i < 7; i++ {
		assert.Equal(t, 4, g.nextGeneration())
		assert.Equal(t, start, g.cells.String(), "generation %d", i+1)
	}
}

func TestGliderTravelsDiagonally(t *testing.T) {
	g := newGame(1, nil)
	g.setPattern(patternIndex(t, "glider"))
	before := live(g)

	for range 4 {
		g.nextGeneration()
	}

	want := make([]core.Dot, 0, len(before))
	for _, d := range before {
		want = append(want, d.Add(core.NewDot(1, 1)))
	}
	assert.ElementsMatch(t, want, live(g))
}

func TestBirthOnThreeNeighbors(t *testing.T) {
	g := newGame(1, nil)
	g.cells.Clear()
	g.cells.Set(2, 10, core.Green)
	g.cells.Set(4, 10, core.Green)
	g.cells.Set(3, 12, core.Green)

	require.Equal(t, 3, g.countNeighbors(3, 11))
	require.Equal(t, core.Black, g.cells.Get(3, 11))

	g.nextGeneration()
	assert.NotEqual(t, core.Black, g.cells.Get(3, 11))
}

func TestNeighborsWrapHorizontally(t *testing.T) {
	g := newGame(1, nil)
	g.cells.Clear()
	g.cells.Set(0, 15, core.Green)
	g.cells.Set(0, 16, core.Green)
	g.cells.Set(0, 17, core.Green)

	assert.Equal(t, 3, g.countNeighbors(core.Width-1, 16))
}

func TestNeighborsDoNotWrapVertically(t *testing.T) {
	g := newGame(1, nil)
	g.cells.Clear()
	g.cells.Set(3, core.Height-1, core.Green)
	g.cells.Set(4, core.FieldTop, core.Green)

	assert.Equal(t, 1, g.countNeighbors(3, core.FieldTop), "the bottom row is not above the top row")
	assert.Equal(t, 1, g.countNeighbors(4, core.Height-1), "the top row is not below the bottom row")
}

func TestGenerationPacing(t *testing.T) {
	g := newGame(1, nil)
	g.setPattern(patternIndex(t, "blinker"))

	for i := 0; i < 20; i++ {
		g.Step(core.Input{})
	}
	assert.Zero(t, g.generation)
	g.Step(core.Input{})
	assert.Equal(t, 1, g.generation)

	g.speed = maxSpeed
	for i := 0; i < 5; i++ {
		g.Step(core.Input{})
	}
	assert.Equal(t, 2, g.generation)
}

func TestControls(t *testing.T) {
	g := newGame(1, nil)

	g.Step(core.Input{A: true})
	assert.Equal(t, "glider", g.Snapshot().Pattern)

	g.Step(core.Input{Joystick: true})
	assert.True(t, g.State().Paused)
	gen := g.generation
	for range 50 {
		g.Step(core.Input{})
	}
	assert.Equal(t, gen, g.generation, "paused field does not evolve")

	g.Step(core.Input{B: true})
	g.Step(core.Input{B: true})
	assert.Equal(t, 3, g.speed)
	for range 5 {
		g.Step(core.Input{B: true})
	}
	assert.Equal(t, maxSpeed, g.speed)
	for range 5 {
		g.Step(core.Input{A: true})
	}
	assert.Equal(t, minSpeed, g.speed)
	assert.Equal(t, "glider", g.Snapshot().Pattern, "A while paused only changes speed")

	g.Step(core.Input{Joystick: true})
	assert.False(t, g.State().Paused)
	g.Step(core.Input{B: true})
	assert.True(t, g.State().GameOver)
}

func TestPatternCycleWraps(t *testing.T) {
	g := newGame(1, nil)
	for range len(patterns) {
		g.Step(core.Input{A: true})
	}
	assert.Equal(t, "random", g.Snapshot().Pattern)
}

func TestDrawHUD(t *testing.T) {
	g := newGame(1, nil)
	g.speed = 3
	g.Draw()

	s := g.Screen()
	assert.Equal(t, core.Brick, s.Get(0, core.DividerRow))
	assert.Equal(t, core.Pink, s.Get(1, core.DividerRow))
	assert.Equal(t, core.Brick, s.Get(4, core.DividerRow))
	assert.Equal(t, core.Pink, s.Get(6, core.DividerRow))
	assert.Equal(t, core.Green, s.Get(0, 0), "pattern digit 0")

	g.paused = true
	g.Draw()
	assert.Equal(t, core.Yellow, g.Screen().Get(2, 1))
	assert.Equal(t, core.Yellow, g.Screen().Get(4, 3))
	assert.Equal(t, core.Black, g.Screen().Get(0, 0))
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(555, nil)
	g2 := newGame(555, nil)
	for i := 0; i < 400; i++ {
		in := core.Input{A: i == 150}
		g1.Step(in)
		g2.Step(in)
	}
	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
}

func TestRunStopsOnCancel(t *testing.T) {
	rig := coretest.NewRig(3)
	g := newGame(1, rig)

	err := g.Run(rig.Ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, rig.Display.Count())
	assert.Equal(t, []uint64{50, 50, 50}, rig.Timer.Sleeps)
}

func TestRunLeavesOnB(t *testing.T) {
	rig := coretest.NewRig(0, core.Input{}, core.Input{B: true})
	g := newGame(1, rig)

	require.NoError(t, g.Run(rig.Ctx))
	assert.Equal(t, 1, rig.Display.Count())
}
