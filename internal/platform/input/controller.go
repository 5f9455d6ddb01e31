// Package input connects front-ends to the arcade. Key events reach the
// core.GameController through a bounded channel that the game loop drains on
// every read; frames travel back through a FrameSink.
package input

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vovakirdan/led-arcade/internal/core"
)

// DefaultBuffer is the event channel capacity front-ends use.
const DefaultBuffer = 64

// Kind classifies an Event.
type Kind uint8

const (
	// KindNudge deflects the stick for exactly one axis read. Terminals
	// deliver arrow keys this way, one event per key repeat.
	KindNudge Kind = iota
	// KindLevel sets the resting stick position until the next level event.
	// Windowed front-ends that see key-down state use it.
	KindLevel
	// KindPress is one button edge.
	KindPress
)

// Button names a controller button.
type Button uint8

const (
	ButtonJoystick Button = iota
	ButtonA
	ButtonB
	buttonCount
)

func (b Button) String() string {
	switch b {
	case ButtonJoystick:
		return "joystick"
	case ButtonA:
		return "a"
	case ButtonB:
		return "b"
	default:
		return "unknown"
	}
}

// Event is one input change.
type Event struct {
	Kind   Kind
	X, Y   int8 // Nudge and level axes, each -1, 0 or 1
	Button Button
}

// Controller is a core.GameController fed by events.
type Controller struct {
	events  chan Event
	dropped atomic.Uint64

	levelX, levelY int8
	nudgeX, nudgeY int8
	pressed        [buttonCount]bool
}

// NewController creates a controller whose channel holds buffer events.
func NewController(buffer int) *Controller {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Controller{events: make(chan Event, buffer)}
}

// Send queues ev without blocking. It reports false, and counts the drop,
// when the channel is full.
func (c *Controller) Send(ev Event) bool {
	select {
	case c.events <- ev:
		return true
	default:
		c.dropped.Add(1)
		return false
	}
}

// Dropped returns how many events were discarded because the game fell behind.
func (c *Controller) Dropped() uint64 {
	return c.dropped.Load()
}

// drain applies every pending event.
func (c *Controller) drain() {
	for {
		select {
		case ev := <-c.events:
			c.apply(ev)
		default:
			return
		}
	}
}

func (c *Controller) apply(ev Event) {
	switch ev.Kind {
	case KindNudge:
		if ev.X != 0 {
			c.nudgeX = clampAxis(ev.X)
		}
		if ev.Y != 0 {
			c.nudgeY = clampAxis(ev.Y)
		}
	case KindLevel:
		c.levelX, c.levelY = clampAxis(ev.X), clampAxis(ev.Y)
	case KindPress:
		if ev.Button < buttonCount {
			c.pressed[ev.Button] = true
		}
	}
}

func clampAxis(v int8) int8 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// ReadX returns the pending nudge, or the held level.
func (c *Controller) ReadX(context.Context) int8 {
	c.drain()
	if v := c.nudgeX; v != 0 {
		c.nudgeX = 0
		return v
	}
	return c.levelX
}

// ReadY returns the pending nudge, or the held level.
func (c *Controller) ReadY(context.Context) int8 {
	c.drain()
	if v := c.nudgeY; v != 0 {
		c.nudgeY = 0
		return v
	}
	return c.levelY
}

// WasPressed consumes every pending button edge and reports whether there was any.
func (c *Controller) WasPressed() bool {
	c.drain()
	fired := false
	for i := range c.pressed {
		fired = fired || c.pressed[i]
		c.pressed[i] = false
	}
	return fired
}

// JoystickWasPressed consumes the joystick button edge.
func (c *Controller) JoystickWasPressed() bool { return c.take(ButtonJoystick) }

// AWasPressed consumes the A button edge.
func (c *Controller) AWasPressed() bool { return c.take(ButtonA) }

// BWasPressed consumes the B button edge.
func (c *Controller) BWasPressed() bool { return c.take(ButtonB) }

func (c *Controller) take(b Button) bool {
	c.drain()
	v := c.pressed[b]
	c.pressed[b] = false
	return v
}

// Timer sleeps on the wall clock.
type Timer struct{}

// SleepMillis waits for millis or until ctx is done.
func (Timer) SleepMillis(ctx context.Context, millis uint64) error {
	t := time.NewTimer(time.Duration(millis) * time.Millisecond)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ core.GameController = (*Controller)(nil)
var _ core.Timer = Timer{}
