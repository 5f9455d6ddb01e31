package input

import (
	"context"
	"errors"

	"github.com/vovakirdan/led-arcade/internal/core"
	"github.com/vovakirdan/led-arcade/internal/menu"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

// FrameSink is a core.LedDisplay that hands frames to a UI goroutine.
// It keeps only the newest frame; a slow UI skips frames instead of stalling
// the game.
type FrameSink struct {
	frames chan core.Frame
}

// NewFrameSink creates an empty sink.
func NewFrameSink() *FrameSink {
	return &FrameSink{frames: make(chan core.Frame, 1)}
}

// Write replaces any unread frame with leds.
func (s *FrameSink) Write(ctx context.Context, leds *core.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f := *leds
	for {
		select {
		case s.frames <- f:
			return nil
		default:
		}
		select {
		case <-s.frames:
		default:
		}
	}
}

// Frames delivers written frames.
func (s *FrameSink) Frames() <-chan core.Frame {
	return s.frames
}

// Session runs a program on its own goroutine against a front-end.
type Session struct {
	Controller *Controller
	Sink       *FrameSink

	cancel context.CancelFunc
	done   chan error
}

// Start wires a controller, a sink and a wall-clock timer into env and
// runs prog on its own goroutine.
func Start(ctx context.Context, env registry.Env, prog menu.Program) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		Controller: NewController(DefaultBuffer),
		Sink:       NewFrameSink(),
		cancel:     cancel,
		done:       make(chan error, 1),
	}
	env.HW = core.Hardware{Display: s.Sink, Controller: s.Controller, Timer: Timer{}}

	go func() {
		err := prog(ctx, env)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		s.done <- err
	}()
	return s
}

// Done yields the program's result once it stops. Cancellation is reported as nil.
func (s *Session) Done() <-chan error {
	return s.done
}

// Stop cancels the program.
func (s *Session) Stop() {
	s.cancel()
}
