// Package core is the LED arcade engine: sprites, the 8x32 frame buffer,
// the PRNG, integer geometry and the hardware boundary every game runs against.
// It has no third-party dependencies so it stays portable to small targets.
package core

// Rect is an axis-aligned box of cells used for hit tests and play areas.
type Rect struct {
	X, Y int // Top-left cell
	W, H int
}

// NewRect builds a box from its top-left cell and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the box.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom is the first row past the box.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects reports whether the boxes share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether cell (x, y) lies inside the box.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsDot is Contains for a Dot.
func (r Rect) ContainsDot(d Dot) bool {
	return r.Contains(int(d.X), int(d.Y))
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Abs returns |x|.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
