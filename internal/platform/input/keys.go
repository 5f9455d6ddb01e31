package input

// keyEvents maps terminal key names to controller events. Names follow
// bubbletea's KeyMsg.String(); other front-ends translate to them.
var keyEvents = map[string]Event{
	"up":    {Kind: KindNudge, Y: -1},
	"w":     {Kind: KindNudge, Y: -1},
	"down":  {Kind: KindNudge, Y: 1},
	"s":     {Kind: KindNudge, Y: 1},
	"left":  {Kind: KindNudge, X: -1},
	"a":     {Kind: KindNudge, X: -1},
	"right": {Kind: KindNudge, X: 1},
	"d":     {Kind: KindNudge, X: 1},
	" ":     {Kind: KindPress, Button: ButtonJoystick},
	"space": {Kind: KindPress, Button: ButtonJoystick},
	"enter": {Kind: KindPress, Button: ButtonJoystick},
	"z":     {Kind: KindPress, Button: ButtonA},
	"x":     {Kind: KindPress, Button: ButtonB},
}

// KeyEvent returns the controller event for a key name.
func KeyEvent(name string) (Event, bool) {
	ev, ok := keyEvents[name]
	return ev, ok
}

// IsQuit reports whether the key leaves the arcade.
func IsQuit(name string) bool {
	switch name {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}
