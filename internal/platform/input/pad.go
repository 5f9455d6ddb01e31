package input

// Pad turns sampled key state into events for front-ends that can only ask
// which keys are down. The stick is reported as a level; buttons fire once
// on the frame they go down.
type Pad struct {
	x, y int8
	held [buttonCount]bool
}

// Update takes this frame's key state and returns the events to send.
func (p *Pad) Update(x, y int8, joystick, a, b bool) []Event {
	var out []Event
	x, y = clampAxis(x), clampAxis(y)
	if x != p.x || y != p.y {
		p.x, p.y = x, y
		out = append(out, Event{Kind: KindLevel, X: x, Y: y})
	}
	for btn, down := range [buttonCount]bool{joystick, a, b} {
		if down && !p.held[btn] {
			out = append(out, Event{Kind: KindPress, Button: Button(btn)})
		}
		p.held[btn] = down
	}
	return out
}
