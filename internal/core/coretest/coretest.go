// Package coretest provides in-memory hardware for driving game loops in tests.
package coretest

import (
	"context"
	"sync"

	"github.com/vovakirdan/led-arcade/internal/core"
)

// Display records every frame written to it.
type Display struct {
	mu     sync.Mutex
	Frames []core.Frame
}

// Write stores a copy of leds.
func (d *Display) Write(_ context.Context, leds *core.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Frames = append(d.Frames, *leds)
	return nil
}

// Last returns the most recent frame, or a black frame if none was written.
func (d *Display) Last() core.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Frames) == 0 {
		return core.Frame{}
	}
	return d.Frames[len(d.Frames)-1]
}

// Count returns the number of frames written.
func (d *Display) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Frames)
}

// Controller replays a script of per-frame inputs. Each ReadX call starts a
// new frame; past the end of the script the stick rests and no button fires.
type Controller struct {
	Script []core.Input
	// PressAfter makes WasPressed report a press on its Nth call (0 = never).
	PressAfter int

	frame   int
	current core.Input
	polls   int
}

// ReadX starts the next scripted frame and returns its X axis.
func (c *Controller) ReadX(context.Context) int8 {
	c.current = core.Input{}
	if c.frame < len(c.Script) {
		c.current = c.Script[c.frame]
	}
	c.frame++
	return c.current.X
}

// ReadY returns the current frame's Y axis.
func (c *Controller) ReadY(context.Context) int8 {
	return c.current.Y
}

// WasPressed consumes a pending scripted button, or fires once PressAfter
// polls have happened.
func (c *Controller) WasPressed() bool {
	c.polls++
	if c.current.Pressed() {
		c.current.Joystick, c.current.A, c.current.B = false, false, false
		return true
	}
	return c.PressAfter > 0 && c.polls >= c.PressAfter
}

// Polls returns how many times WasPressed was called.
func (c *Controller) Polls() int {
	return c.polls
}

// JoystickWasPressed consumes the joystick button of the current frame.
func (c *Controller) JoystickWasPressed() bool {
	v := c.current.Joystick
	c.current.Joystick = false
	return v
}

// AWasPressed consumes the A button of the current frame.
func (c *Controller) AWasPressed() bool {
	v := c.current.A
	c.current.A = false
	return v
}

// BWasPressed consumes the B button of the current frame.
func (c *Controller) BWasPressed() bool {
	v := c.current.B
	c.current.B = false
	return v
}

// Frames returns how many frames have been read.
func (c *Controller) Frames() int {
	return c.frame
}

// Timer records sleeps and cancels the run after Limit of them.
type Timer struct {
	Limit  int
	Cancel context.CancelFunc

	Sleeps []uint64
}

// SleepMillis records millis and returns immediately. Once Limit sleeps have
// happened it cancels the context and reports the cancellation.
func (t *Timer) SleepMillis(ctx context.Context, millis uint64) error {
	t.Sleeps = append(t.Sleeps, millis)
	if t.Limit > 0 && len(t.Sleeps) >= t.Limit && t.Cancel != nil {
		t.Cancel()
	}
	return ctx.Err()
}

// Total returns the sum of all recorded sleeps.
func (t *Timer) Total() uint64 {
	var sum uint64
	for _, s := range t.Sleeps {
		sum += s
	}
	return sum
}

// Rig is a ready-to-use hardware set with a cancellable context.
type Rig struct {
	Display    *Display
	Controller *Controller
	Timer      *Timer
	Ctx        context.Context
}

// NewRig builds fake hardware that stops after limit sleeps (0 = never).
func NewRig(limit int, script ...core.Input) *Rig {
	ctx, cancel := context.WithCancel(context.Background())
	return &Rig{
		Display:    &Display{},
		Controller: &Controller{Script: script},
		Timer:      &Timer{Limit: limit, Cancel: cancel},
		Ctx:        ctx,
	}
}

// Hardware returns the rig as core.Hardware.
func (r *Rig) Hardware() core.Hardware {
	return core.Hardware{Display: r.Display, Controller: r.Controller, Timer: r.Timer}
}
