package core

import "strings"

// Screen geometry. The serpentine mapping and every HUD offset depend on it.
const (
	Width   = 8
	Height  = 32
	NumLeds = Width * Height

	// DividerRow separates the score header from the play field.
	DividerRow = 5
	// FieldTop is the first play-field row.
	FieldTop = 6
)

// FrameBuffer is the logical 8x32 grid of palette indices.
// The zero value is a cleared buffer ready to use.
type FrameBuffer struct {
	cells [NumLeds]Color
}

// NewFrameBuffer returns a cleared buffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// InBounds reports whether (x, y) is on the grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// PhysicalIndex maps a logical pixel to its position on the zig-zag LED strip.
// Even rows run right-to-left. Returns -1 for off-grid pixels.
func PhysicalIndex(x, y int) int {
	if !InBounds(x, y) {
		return -1
	}
	if y%2 == 0 {
		x = Width - 1 - x
	}
	return y*Width + x
}

// Set places a color at (x, y).
// Out-of-bounds coordinates are silently ignored.
func (b *FrameBuffer) Set(x, y int, c Color) {
	if !InBounds(x, y) {
		return
	}
	b.cells[y*Width+x] = c
}

// Get returns the color at (x, y), or Black off the grid.
func (b *FrameBuffer) Get(x, y int) Color {
	if !InBounds(x, y) {
		return Black
	}
	return b.cells[y*Width+x]
}

// Clear blanks the whole grid.
func (b *FrameBuffer) Clear() {
	b.cells = [NumLeds]Color{}
}

// ClearRange blanks rows [from, to).
func (b *FrameBuffer) ClearRange(from, to int) {
	from = Clamp(from, 0, Height)
	to = Clamp(to, 0, Height)
	for i := from * Width; i < to*Width; i++ {
		b.cells[i] = Black
	}
}

// Fill paints every cell.
func (b *FrameBuffer) Fill(c Color) {
	for i := range b.cells {
		b.cells[i] = c
	}
}

// CopyFrom overwrites b with src.
func (b *FrameBuffer) CopyFrom(src *FrameBuffer) {
	b.cells = src.cells
}

// Collides reports whether any set pixel of f placed at (x, y) lands off the
// grid or on a non-background cell. It is both the wall and the stack test.
func (b *FrameBuffer) Collides(x, y int, f Figure) bool {
	return !f.Draw(x, y, Black, func(px, py int, _ Color) bool {
		return InBounds(px, py) && b.cells[py*Width+px] == Black
	})
}

// DrawFigure composites the set pixels of f at (x, y), clipping at the edges.
func (b *FrameBuffer) DrawFigure(x, y int, f Figure, c Color) {
	f.Draw(x, y, c, func(px, py int, c Color) bool {
		b.Set(px, py, c)
		return true
	})
}

// RowIsFull reports whether every cell of row y is lit.
func (b *FrameBuffer) RowIsFull(y int) bool {
	if y < 0 || y >= Height {
		return false
	}
	for x := range Width {
		if b.cells[y*Width+x] == Black {
			return false
		}
	}
	return true
}

// RowIsEmpty reports whether row y is blank. Off-grid rows count as empty.
func (b *FrameBuffer) RowIsEmpty(y int) bool {
	if y < 0 || y >= Height {
		return true
	}
	for x := range Width {
		if b.cells[y*Width+x] != Black {
			return false
		}
	}
	return true
}

// TryClearRow blanks row y if it is full and reports whether it did.
func (b *FrameBuffer) TryClearRow(y int) bool {
	if !b.RowIsFull(y) {
		return false
	}
	b.ClearRange(y, y+1)
	return true
}

// CopyRow copies row from onto row to.
func (b *FrameBuffer) CopyRow(from, to int) {
	if from < 0 || from >= Height || to < 0 || to >= Height {
		return
	}
	copy(b.cells[to*Width:(to+1)*Width], b.cells[from*Width:(from+1)*Width])
}

// Lit returns the number of non-background cells.
func (b *FrameBuffer) Lit() int {
	n := 0
	for _, c := range b.cells {
		if c != Black {
			n++
		}
	}
	return n
}

// Render writes the buffer into leds in physical strip order.
func (b *FrameBuffer) Render(leds *Frame) {
	for y := range Height {
		for x := range Width {
			leds[PhysicalIndex(x, y)] = b.cells[y*Width+x].RGB()
		}
	}
}

// FromRows decodes a title image. Each uint32 is one column read top to
// bottom, most significant bit first; rows[0] is the rightmost column.
func FromRows(rows [Width]uint32, c Color) *FrameBuffer {
	b := NewFrameBuffer()
	for y := range Height {
		for x, row := range rows {
			if row>>(31-y)&1 == 1 {
				b.Set(Width-1-x, y, c)
			}
		}
	}
	return b
}

// String dumps the buffer as rows of '#' (lit) and '.' (dark).
func (b *FrameBuffer) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := range Height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range Width {
			if b.cells[y*Width+x] == Black {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
	}
	return sb.String()
}
