package core

import "fmt"

// Dot is a grid position or a unit direction.
type Dot struct {
	X, Y int8
}

// Axis-aligned unit directions.
var (
	Left  = Dot{-1, 0}
	Up    = Dot{0, -1}
	Right = Dot{1, 0}
	Down  = Dot{0, 1}
)

// NewDot builds a Dot from ints, truncating to int8.
func NewDot(x, y int) Dot {
	return Dot{X: int8(x), Y: int8(y)}
}

// Add returns d moved by dir.
func (d Dot) Add(dir Dot) Dot {
	return Dot{d.X + dir.X, d.Y + dir.Y}
}

// MoveWrap returns d moved by dir, wrapping one step past any screen edge
// to the opposite edge.
func (d Dot) MoveWrap(dir Dot) Dot {
	return d.MoveWrapIn(dir, NewRect(0, 0, Width, Height))
}

// MoveWrapIn is MoveWrap constrained to area.
func (d Dot) MoveWrapIn(dir Dot, area Rect) Dot {
	n := d.Add(dir)
	switch {
	case int(n.X) < area.X:
		n.X = int8(area.Right() - 1)
	case int(n.X) >= area.Right():
		n.X = int8(area.X)
	}
	switch {
	case int(n.Y) < area.Y:
		n.Y = int8(area.Bottom() - 1)
	case int(n.Y) >= area.Bottom():
		n.Y = int8(area.Y)
	}
	return n
}

// IsZero reports whether d is the origin (no direction).
func (d Dot) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

// IsOpposite reports whether d and o point in exactly opposite directions.
func (d Dot) IsOpposite(o Dot) bool {
	return d.X+o.X == 0 && d.Y+o.Y == 0
}

// Opposite returns the reversed vector.
func (d Dot) Opposite() Dot {
	return Dot{-d.X, -d.Y}
}

// Outside reports whether d is off the screen.
func (d Dot) Outside() bool {
	return !InBounds(int(d.X), int(d.Y))
}

// ToDirection collapses a raw stick reading to one of the four unit vectors
// (or zero). Diagonals keep the vertical component.
func (d Dot) ToDirection() Dot {
	if d.X != 0 && d.Y != 0 {
		d.X = 0
	}
	return Dot{sign(d.X), sign(d.Y)}
}

// Manhattan returns |dx| + |dy| between d and o.
func (d Dot) Manhattan(o Dot) int {
	return Abs(int(d.X)-int(o.X)) + Abs(int(d.Y)-int(o.Y))
}

func (d Dot) String() string {
	return fmt.Sprintf("(%d,%d)", d.X, d.Y)
}

func sign(v int8) int8 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
