package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/led-arcade/internal/core"
)

// ledCell is how one LED is drawn; two columns keep the matrix roughly square.
const ledCell = "██"

// offColor is used for dark LEDs so the matrix outline stays visible.
const offColor = "#1c1c1c"

// Renderer turns LED frames into styled terminal text.
type Renderer struct {
	lg         *lipgloss.Renderer
	brightness int
	styles     map[core.RGB]lipgloss.Style
}

// NewRenderer creates a renderer. A nil lipgloss renderer uses the default
// one; SSH sessions pass their own so color detection follows the client.
func NewRenderer(lg *lipgloss.Renderer, brightness int) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	if brightness <= 0 {
		brightness = 100
	}
	return &Renderer{lg: lg, brightness: brightness, styles: make(map[core.RGB]lipgloss.Style)}
}

func (r *Renderer) style(c core.RGB) lipgloss.Style {
	if s, ok := r.styles[c]; ok {
		return s
	}
	hex := offColor
	if !c.IsBlack() {
		red, green, blue := c.ScreenRGB(r.brightness)
		hex = fmt.Sprintf("#%02x%02x%02x", red, green, blue)
	}
	s := r.lg.NewStyle().Foreground(lipgloss.Color(hex))
	r.styles[c] = s
	return s
}

// Render draws the frame in logical orientation.
// Adjacent LEDs of the same color share one escape sequence.
func (r *Renderer) Render(f *core.Frame) string {
	var sb strings.Builder
	sb.Grow(core.NumLeds * len(ledCell) * 2)

	for y := range core.Height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < core.Width {
			start := f.At(x, y)
			n := 0
			for x < core.Width && f.At(x, y) == start {
				n++
				x++
			}
			sb.WriteString(r.style(start).Render(strings.Repeat(ledCell, n)))
		}
	}
	return sb.String()
}

// Dump returns the frame as rows of '#' (lit) and '.' (dark).
func Dump(f *core.Frame) string {
	var sb strings.Builder
	sb.Grow((core.Width + 1) * core.Height)
	for y := range core.Height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range core.Width {
			if f.At(x, y).IsBlack() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
	}
	return sb.String()
}
