// Package window shows the LED matrix in a desktop window with ebiten.
package window

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/led-arcade/internal/core"
	"github.com/vovakirdan/led-arcade/internal/menu"
	"github.com/vovakirdan/led-arcade/internal/platform/input"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

// ledPixels is the on-screen size of one LED.
const ledPixels = 24

// Window is an ebiten.Game showing one cabinet.
type Window struct {
	session    *input.Session
	pad        input.Pad
	brightness int

	frame  core.Frame
	img    *ebiten.Image
	pixels []byte
	err    error
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func axis(neg, pos bool) int8 {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	}
	return 0
}

// Update samples the keyboard and picks up the newest frame.
func (w *Window) Update() error {
	select {
	case err := <-w.session.Done():
		w.err = err
		return ebiten.Termination
	default:
	}
	if anyPressed(ebiten.KeyQ, ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x := axis(anyPressed(ebiten.KeyArrowLeft, ebiten.KeyA), anyPressed(ebiten.KeyArrowRight, ebiten.KeyD))
	y := axis(anyPressed(ebiten.KeyArrowUp, ebiten.KeyW), anyPressed(ebiten.KeyArrowDown, ebiten.KeyS))
	events := w.pad.Update(x, y,
		anyPressed(ebiten.KeySpace, ebiten.KeyEnter),
		anyPressed(ebiten.KeyZ),
		anyPressed(ebiten.KeyX),
	)
	for _, ev := range events {
		w.session.Controller.Send(ev)
	}

	select {
	case f := <-w.session.Sink.Frames():
		w.frame = f
	default:
	}
	return nil
}

// Draw blits the frame scaled up.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.img == nil {
		w.img = ebiten.NewImage(core.Width, core.Height)
		w.pixels = make([]byte, core.NumLeds*4)
	}
	for y := range core.Height {
		for x := range core.Width {
			i := (y*core.Width + x) * 4
			led := w.frame.At(x, y)
			r, g, b := uint8(28), uint8(28), uint8(28)
			if !led.IsBlack() {
				r, g, b = led.ScreenRGB(w.brightness)
			}
			w.pixels[i], w.pixels[i+1], w.pixels[i+2], w.pixels[i+3] = r, g, b, 0xff
		}
	}
	w.img.WritePixels(w.pixels)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(ledPixels, ledPixels)
	screen.DrawImage(w.img, opts)
}

// Layout keeps the logical screen at the matrix size times ledPixels.
func (w *Window) Layout(_, _ int) (int, int) {
	return core.Width * ledPixels, core.Height * ledPixels
}

// Run opens the window and blocks until it is closed or ctx ends.
func Run(ctx context.Context, env registry.Env, prog menu.Program) error {
	s := input.Start(ctx, env, prog)
	defer s.Stop()

	brightness := env.Config.Display.BrightnessPercent
	if brightness <= 0 {
		brightness = 100
	}
	w := &Window{session: s, brightness: brightness}

	ebiten.SetWindowTitle("LED Arcade")
	ebiten.SetWindowSize(core.Width*ledPixels, core.Height*ledPixels)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return w.err
}
