package input

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/led-arcade/internal/core"
)

func TestNudgeIsReadOnce(t *testing.T) {
	c := NewController(8)
	ctx := context.Background()

	require.True(t, c.Send(Event{Kind: KindNudge, X: 1}))
	assert.Equal(t, int8(1), c.ReadX(ctx))
	assert.Equal(t, int8(0), c.ReadX(ctx))
	assert.Equal(t, int8(0), c.ReadY(ctx))
}

func TestNudgeAxesAreIndependent(t *testing.T) {
	c := NewController(8)
	ctx := context.Background()

	c.Send(Event{Kind: KindNudge, X: -1})
	c.Send(Event{Kind: KindNudge, Y: 1})

	in := core.ReadInput(ctx, c)
	assert.Equal(t, int8(-1), in.X)
	assert.Equal(t, int8(1), in.Y)
}

func TestLevelHoldsUntilReleased(t *testing.T) {
	c := NewController(8)
	ctx := context.Background()

	c.Send(Event{Kind: KindLevel, Y: -1})
	for range 3 {
		assert.Equal(t, int8(-1), c.ReadY(ctx))
	}

	c.Send(Event{Kind: KindLevel})
	assert.Equal(t, int8(0), c.ReadY(ctx))
}

func TestNudgeOverridesLevel(t *testing.T) {
	c := NewController(8)
	ctx := context.Background()

	c.Send(Event{Kind: KindLevel, X: 1})
	c.Send(Event{Kind: KindNudge, X: -1})

	assert.Equal(t, int8(-1), c.ReadX(ctx))
	assert.Equal(t, int8(1), c.ReadX(ctx))
}

func TestAxisIsClamped(t *testing.T) {
	c := NewController(8)
	c.Send(Event{Kind: KindLevel, X: 5, Y: -7})

	assert.Equal(t, int8(1), c.ReadX(context.Background()))
	assert.Equal(t, int8(-1), c.ReadY(context.Background()))
}

func TestButtonsAreEdgeTriggered(t *testing.T) {
	c := NewController(8)

	c.Send(Event{Kind: KindPress, Button: ButtonA})
	assert.False(t, c.BWasPressed())
	assert.False(t, c.JoystickWasPressed())
	assert.True(t, c.AWasPressed())
	assert.False(t, c.AWasPressed())
}

func TestWasPressedConsumesEveryButton(t *testing.T) {
	c := NewController(8)

	c.Send(Event{Kind: KindPress, Button: ButtonJoystick})
	c.Send(Event{Kind: KindPress, Button: ButtonB})

	assert.True(t, c.WasPressed())
	assert.False(t, c.JoystickWasPressed())
	assert.False(t, c.BWasPressed())
	assert.False(t, c.WasPressed())
}

func TestFullChannelDropsEvents(t *testing.T) {
	c := NewController(2)

	assert.True(t, c.Send(Event{Kind: KindNudge, X: 1}))
	assert.True(t, c.Send(Event{Kind: KindNudge, X: 1}))
	assert.False(t, c.Send(Event{Kind: KindPress, Button: ButtonA}))
	assert.Equal(t, uint64(1), c.Dropped())

	// Draining makes room again.
	c.ReadX(context.Background())
	assert.True(t, c.Send(Event{Kind: KindPress, Button: ButtonA}))
	assert.True(t, c.AWasPressed())
}

func TestDefaultBuffer(t *testing.T) {
	c := NewController(0)
	assert.Equal(t, DefaultBuffer, cap(c.events))
}

func TestTimerSleeps(t *testing.T) {
	start := time.Now()
	require.NoError(t, Timer{}.SleepMillis(context.Background(), 10))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestTimerHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Timer{}.SleepMillis(ctx, 60_000)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		key  string
		want Event
	}{
		{"up", Event{Kind: KindNudge, Y: -1}},
		{"s", Event{Kind: KindNudge, Y: 1}},
		{"a", Event{Kind: KindNudge, X: -1}},
		{"right", Event{Kind: KindNudge, X: 1}},
		{"enter", Event{Kind: KindPress, Button: ButtonJoystick}},
		{"z", Event{Kind: KindPress, Button: ButtonA}},
		{"x", Event{Kind: KindPress, Button: ButtonB}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			ev, ok := KeyEvent(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, ev)
		})
	}

	_, ok := KeyEvent("f12")
	assert.False(t, ok)
}

func TestIsQuit(t *testing.T) {
	assert.True(t, IsQuit("q"))
	assert.True(t, IsQuit("ctrl+c"))
	assert.True(t, IsQuit("esc"))
	assert.False(t, IsQuit("x"))
}
