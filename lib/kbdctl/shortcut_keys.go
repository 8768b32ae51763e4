package kbdctl

// ShouldStop reports whether ev ends the render loop: a quit event
// always does, a key press only when it is the exit key.
func ShouldStop(ev Event, exitKey Key) bool {
	switch ev.Type {
	case Quit:
		return true
	case KeyDown:
		return ev.Key == exitKey
	default:
		return false
	}
}
