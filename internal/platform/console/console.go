// Package console draws the LED matrix straight onto a raw terminal with
// tcell, two cells per LED.
package console

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/led-arcade/internal/core"
	"github.com/vovakirdan/led-arcade/internal/menu"
	"github.com/vovakirdan/led-arcade/internal/platform/input"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

// canvas is the part of tcell.Screen the renderer touches.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Console is a raw-terminal cabinet.
type Console struct {
	screen     tcell.Screen
	brightness int
}

// New wraps an initialized screen.
func New(screen tcell.Screen, brightness int) *Console {
	if brightness <= 0 {
		brightness = 100
	}
	return &Console{screen: screen, brightness: brightness}
}

// Run opens the terminal, plays until a quit key or ctx ends, and restores
// the terminal.
func Run(ctx context.Context, env registry.Env, prog menu.Program) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	return New(screen, env.Config.Display.BrightnessPercent).Run(ctx, env, prog)
}

// Run drives prog on the wrapped screen.
func (c *Console) Run(ctx context.Context, env registry.Env, prog menu.Program) error {
	s := input.Start(ctx, env, prog)
	defer s.Stop()

	quit := make(chan struct{})
	defer close(quit)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case ev := <-events:
			if !c.handleEvent(ev, s.Controller) {
				return nil
			}
		case f := <-s.Sink.Frames():
			draw(c.screen, &f, c.brightness)
		case err := <-s.Done():
			return err
		}
	}
}

// handleEvent forwards keys and reports false on a quit key.
func (c *Console) handleEvent(ev tcell.Event, ctrl *input.Controller) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		name := keyName(ev.Key(), ev.Rune())
		if input.IsQuit(name) {
			return false
		}
		if e, ok := input.KeyEvent(name); ok {
			ctrl.Send(e)
		}
	case *tcell.EventResize:
		c.screen.Sync()
	}
	return true
}

// keyName translates a tcell key to the shared key names.
func keyName(k tcell.Key, r rune) string {
	switch k {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyRune:
		return string(r)
	}
	return ""
}

// ledStyle colors one LED. Dark LEDs stay faintly visible.
func ledStyle(c core.RGB, brightness int) tcell.Style {
	if c.IsBlack() {
		return tcell.StyleDefault.Foreground(tcell.NewRGBColor(28, 28, 28))
	}
	r, g, b := c.ScreenRGB(brightness)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

func draw(cv canvas, f *core.Frame, brightness int) {
	for y := range core.Height {
		for x := range core.Width {
			style := ledStyle(f.At(x, y), brightness)
			cv.SetContent(2*x, y, '█', nil, style)
			cv.SetContent(2*x+1, y, '█', nil, style)
		}
	}
	cv.Show()
}
