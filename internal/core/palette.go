package core

// Color is an index into the LED palette. Zero is the background.
type Color uint8

// Palette entries in table order.
const (
	Black Color = iota
	Brick
	Red
	Green
	Blue
	LightBlue
	Pink
	Yellow
	DarkGreen
	LightGreen
)

// PaletteSize is the number of entries in the LED palette.
const PaletteSize = 10

// RGB is a single LED color. Palette values are kept low (max channel 12)
// to stay inside the strip's brightness and current budget.
type RGB struct {
	R, G, B uint8
}

var palette = [PaletteSize]RGB{
	Black:      {0, 0, 0},
	Brick:      {12, 2, 0},
	Red:        {6, 0, 0},
	Green:      {0, 6, 0},
	Blue:       {0, 0, 6},
	LightBlue:  {0, 6, 6},
	Pink:       {3, 0, 3},
	Yellow:     {6, 6, 0},
	DarkGreen:  {0, 3, 0},
	LightGreen: {0, 9, 0},
}

var colorNames = [PaletteSize]string{
	"black", "brick", "red", "green", "blue",
	"light_blue", "pink", "yellow", "dark_green", "light_green",
}

// RGB returns the palette entry for c. Out-of-range indices wrap modulo PaletteSize.
func (c Color) RGB() RGB {
	return palette[int(c)%PaletteSize]
}

// String returns the palette name of the color.
func (c Color) String() string {
	return colorNames[int(c)%PaletteSize]
}

// Frame is one full LED strip in physical (post-serpentine) order.
type Frame [NumLeds]RGB

// screenGain maps the LED palette onto a 0-255 display range.
const screenGain = 20

// ScreenRGB scales an LED color up for a monitor. percent is a brightness
// multiplier (100 = unchanged); channels saturate at 255.
func (c RGB) ScreenRGB(percent int) (r, g, b uint8) {
	scale := func(v uint8) uint8 {
		s := int(v) * screenGain * percent / 100
		return uint8(Clamp(s, 0, 255))
	}
	return scale(c.R), scale(c.G), scale(c.B)
}

// IsBlack reports whether the LED is off.
func (c RGB) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// At returns the LED that shows logical pixel (x, y).
// Out-of-range coordinates return black.
func (f *Frame) At(x, y int) RGB {
	idx := PhysicalIndex(x, y)
	if idx < 0 {
		return RGB{}
	}
	return f[idx]
}
