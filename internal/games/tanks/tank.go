package tanks

import (
	"github.com/vovakirdan/led-arcade/internal/config"
	"github.com/vovakirdan/led-arcade/internal/core"
)

// rotations indexes a tank's heading. Incrementing the index is one
// clockwise quarter turn, matching Figure.Rotate.
var rotations = [4]core.Dot{core.Left, core.Up, core.Right, core.Down}

// hidden marks a free missile slot.
var hidden = core.NewDot(-1, -1)

type missile struct {
	pos core.Dot
	dir core.Dot
}

func (m *missile) visible() bool {
	return !m.pos.Outside()
}

func (m *missile) hide() {
	m.pos = hidden
}

// advance moves the missile one cell. Missiles leaving the play field are
// freed.
func (m *missile) advance() {
	m.pos = m.pos.Add(m.dir)
	if m.pos.Outside() || int(m.pos.Y) < core.FieldTop {
		m.hide()
	}
}

type tank struct {
	missiles [config.MaxTankMissiles]missile
	slots    int // Usable missile slots

	pos      core.Dot // Top-left of the 2x2 box
	origin   int      // Spawn point index, -1 for the player
	rotation int
	figure   core.Figure
	lives    int
}

func newTank(pos core.Dot, origin, slots int) tank {
	t := tank{
		slots:    core.Clamp(slots, 1, config.MaxTankMissiles),
		pos:      pos,
		origin:   origin,
		rotation: 2,
		figure:   core.TankSprite,
		lives:    1,
	}
	for i := range t.missiles {
		t.missiles[i].hide()
	}
	return t
}

func (t *tank) player() bool {
	return t.origin < 0
}

func (t *tank) direction() core.Dot {
	return rotations[t.rotation%len(rotations)]
}

// turn rotates the tank a quarter turn clockwise.
func (t *tank) turn() {
	t.figure = t.figure.Rotate()
	t.rotation = (t.rotation + 1) % len(rotations)
}

// turnBack rotates the tank a quarter turn counter-clockwise.
func (t *tank) turnBack() {
	for range len(rotations) - 1 {
		t.turn()
	}
}

// rotate turns the tank until it faces dir and reports whether it had to.
// A zero dir always turns once.
func (t *tank) rotate(dir core.Dot) bool {
	if dir.IsZero() {
		t.turn()
		return true
	}
	turned := 0
	for t.direction() != dir {
		t.turn()
		turned++
		if turned == len(rotations) {
			return false
		}
	}
	return turned > 0
}

// move handles one frame of steering. A tank not facing dir spends the frame
// turning, unless allowBackward lets it reverse in place. Once facing dir it
// translates if the destination is free.
func (t *tank) move(dir core.Dot, blocked func(core.Dot) bool, allowBackward bool) {
	if dir.IsZero() {
		return
	}
	if (allowBackward && t.direction().IsOpposite(dir)) || !t.rotate(dir) {
		if next := t.pos.Add(dir); !blocked(next) {
			t.pos = next
		}
	}
}

// forward moves one cell along the heading and reports success.
func (t *tank) forward(blocked func(core.Dot) bool) bool {
	next := t.pos.Add(t.direction())
	if blocked(next) {
		return false
	}
	t.pos = next
	return true
}

// fire launches a missile from the tank's leading edge into the first free
// slot. It reports false when every slot is in flight.
func (t *tank) fire() bool {
	dir := t.direction()
	for i := range t.missiles[:t.slots] {
		m := &t.missiles[i]
		if m.visible() {
			continue
		}
		x := int(t.pos.X) + 1 + int(dir.X)
		y := int(t.pos.Y) + 1 + int(dir.Y)
		if dir.X < 0 {
			x--
		}
		if dir.Y < 0 {
			y--
		}
		m.pos = core.NewDot(x, y)
		m.dir = dir
		if m.pos.Outside() || int(m.pos.Y) < core.FieldTop {
			m.hide()
		}
		return true
	}
	return false
}

func (t *tank) moveMissiles() {
	for i := range t.missiles[:t.slots] {
		if t.missiles[i].visible() {
			t.missiles[i].advance()
		}
	}
}

func (t *tank) inFlight() int {
	n := 0
	for i := range t.missiles[:t.slots] {
		if t.missiles[i].visible() {
			n++
		}
	}
	return n
}

func (t *tank) box() core.Rect {
	return core.NewRect(int(t.pos.X), int(t.pos.Y), 2, 2)
}

func (t *tank) collides(d core.Dot) bool {
	return t.box().ContainsDot(d)
}

func (t *tank) hit() {
	t.lives--
}

func (t *tank) dead() bool {
	return t.lives <= 0
}
