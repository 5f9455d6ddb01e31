package core

import "context"

// LedDisplay pushes one full frame to the LED strip. The frame is already in
// physical order, so implementations only move bytes.
type LedDisplay interface {
	Write(ctx context.Context, leds *Frame) error
}

// GameController is a two-axis joystick with a push button and two extra
// buttons. Axis reads return -1, 0 or 1. Button reads are edge-triggered:
// each physical press is reported once and cleared by the read.
type GameController interface {
	ReadX(ctx context.Context) int8
	ReadY(ctx context.Context) int8
	// WasPressed reports a press of any button.
	WasPressed() bool
	JoystickWasPressed() bool
	AWasPressed() bool
	BWasPressed() bool
}

// Timer paces frames.
type Timer interface {
	SleepMillis(ctx context.Context, millis uint64) error
}

// Hardware bundles the three boundaries a game runs against.
type Hardware struct {
	Display    LedDisplay
	Controller GameController
	Timer      Timer
}

// Present renders fb and writes it to the display.
func (h Hardware) Present(ctx context.Context, fb *FrameBuffer) error {
	var leds Frame
	fb.Render(&leds)
	return h.Display.Write(ctx, &leds)
}

// Sleep waits for millis.
func (h Hardware) Sleep(ctx context.Context, millis uint64) error {
	return h.Timer.SleepMillis(ctx, millis)
}

// WaitPress polls for a button press every pollMillis. It is the only
// unbounded wait in a game and ends early when ctx is cancelled.
func (h Hardware) WaitPress(ctx context.Context, pollMillis uint64) error {
	for !h.Controller.WasPressed() {
		if err := h.Timer.SleepMillis(ctx, pollMillis); err != nil {
			return err
		}
	}
	return nil
}

// Input is everything a game reads from the controller in one frame.
type Input struct {
	X, Y     int8
	Joystick bool
	A, B     bool
}

// ReadInput samples the controller once: both axes, then each button edge.
func ReadInput(ctx context.Context, c GameController) Input {
	return Input{
		X:        c.ReadX(ctx),
		Y:        c.ReadY(ctx),
		Joystick: c.JoystickWasPressed(),
		A:        c.AWasPressed(),
		B:        c.BWasPressed(),
	}
}

// Stick returns the raw axis reading.
func (in Input) Stick() Dot {
	return Dot{in.X, in.Y}
}

// Direction is the stick reading collapsed to a unit direction.
func (in Input) Direction() Dot {
	return in.Stick().ToDirection()
}

// Pressed reports whether any button fired this frame.
func (in Input) Pressed() bool {
	return in.Joystick || in.A || in.B
}
