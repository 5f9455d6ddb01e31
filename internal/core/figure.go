package core

import (
	"errors"
	"fmt"
	"strings"
)

// Figure is an immutable bit-packed sprite of at most 16 pixels.
//
// Pixel (col, row) lives at bit (h-1-row)*w + (w-1-col), so the top-left
// pixel is the most significant used bit. wh packs width<<4 | height.
type Figure struct {
	data uint16
	wh   uint8
}

// Figure construction errors.
var (
	ErrFigureEmpty    = errors.New("figure: empty art")
	ErrFigureRagged   = errors.New("figure: rows differ in length")
	ErrFigureTooLarge = errors.New("figure: more than 16 pixels")
	ErrFigureChar     = errors.New("figure: art may only contain '#' and ' '")
)

const maxFigureSide = 15

// NewFigure packs raw data with the given size.
func NewFigure(data uint16, width, height int) (Figure, error) {
	if width < 1 || height < 1 {
		return Figure{}, ErrFigureEmpty
	}
	if width > maxFigureSide || height > maxFigureSide || width*height > 16 {
		return Figure{}, fmt.Errorf("%w: %dx%d", ErrFigureTooLarge, width, height)
	}
	if width*height < 16 {
		data &= 1<<(width*height) - 1
	}
	return Figure{data: data, wh: uint8(width<<4 | height)}, nil
}

// ParseFigure reads a '#'/' ' rectangle. The first line fixes the width;
// a single trailing newline is allowed.
func ParseFigure(text string) (Figure, error) {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return Figure{}, ErrFigureEmpty
	}
	rows := strings.Split(text, "\n")
	w, h := len(rows[0]), len(rows)
	if w == 0 {
		return Figure{}, ErrFigureEmpty
	}
	if w > maxFigureSide || h > maxFigureSide || w*h > 16 {
		return Figure{}, fmt.Errorf("%w: %dx%d", ErrFigureTooLarge, w, h)
	}

	var data uint16
	for row, line := range rows {
		if len(line) != w {
			return Figure{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrFigureRagged, row, len(line), w)
		}
		for col := range w {
			switch line[col] {
			case '#':
				data |= 1 << ((h-1-row)*w + (w - 1 - col))
			case ' ':
			default:
				return Figure{}, fmt.Errorf("%w: %q at row %d", ErrFigureChar, line[col], row)
			}
		}
	}
	return Figure{data: data, wh: uint8(w<<4 | h)}, nil
}

// MustParseFigure is ParseFigure for package-level tables. It panics on bad art.
func MustParseFigure(text string) Figure {
	f, err := ParseFigure(text)
	if err != nil {
		panic(err)
	}
	return f
}

// Width returns the sprite width in pixels.
func (f Figure) Width() int {
	return int(f.wh >> 4)
}

// Height returns the sprite height in pixels.
func (f Figure) Height() int {
	return int(f.wh & 0x0f)
}

// Data returns the packed pixel bits.
func (f Figure) Data() uint16 {
	return f.data
}

// WH returns the packed width<<4 | height byte.
func (f Figure) WH() uint8 {
	return f.wh
}

// Bit reports whether pixel (col, row) is set. Out-of-range pixels are clear.
func (f Figure) Bit(col, row int) bool {
	w, h := f.Width(), f.Height()
	if col < 0 || col >= w || row < 0 || row >= h {
		return false
	}
	return f.data>>((h-1-row)*w+(w-1-col))&1 == 1
}

// Rotate returns the sprite turned 90 degrees clockwise.
func (f Figure) Rotate() Figure {
	w, h := f.Width(), f.Height()
	var data uint16
	for row := range h {
		for col := range w {
			if !f.Bit(col, row) {
				continue
			}
			// (col, row) in w x h lands on (h-1-row, col) in h x w.
			data |= 1 << ((w-1-col)*h + row)
		}
	}
	return Figure{data: data, wh: uint8(h<<4 | w)}
}

// Draw walks set pixels row-major, offset by (x, y), and hands each to paint.
// It stops and returns false as soon as paint rejects a pixel.
func (f Figure) Draw(x, y int, c Color, paint func(x, y int, c Color) bool) bool {
	w, h := f.Width(), f.Height()
	for row := range h {
		for col := range w {
			if f.Bit(col, row) && !paint(x+col, y+row, c) {
				return false
			}
		}
	}
	return true
}

// String renders the sprite as '#'/' ' rows joined by newlines.
func (f Figure) String() string {
	w, h := f.Width(), f.Height()
	var sb strings.Builder
	sb.Grow((w + 1) * h)
	for row := range h {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range w {
			if f.Bit(col, row) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}
