package kbdctl

// Raw GLFW key and action codes. They are stable parts of the GLFW ABI,
// so the mapping can live here without linking against GLFW itself.
const (
	glfwKeySpace     = 32
	glfwKeyQ         = 81
	glfwKeyEscape    = 256
	glfwKeyEnter     = 257
	glfwKeyBackspace = 259
	glfwKeyF10       = 299

	glfwRelease = 0
	glfwPress   = 1
	glfwRepeat  = 2
)

var glfwKeys = map[int]Key{
	glfwKeySpace:     KeySpace,
	glfwKeyQ:         KeyQ,
	glfwKeyEscape:    KeyEscape,
	glfwKeyEnter:     KeyEnter,
	glfwKeyBackspace: KeyBackspace,
	glfwKeyF10:       KeyF10,
}

// KeyFromGLFW maps a GLFW key code to a Key, KeyUnknown if it has no name.
func KeyFromGLFW(code int) Key {
	if k, ok := glfwKeys[code]; ok {
		return k
	}
	return KeyUnknown
}

// EventFromGLFW turns a GLFW key callback into an Event. Press and repeat
// are both key down.
func EventFromGLFW(code int, action int) (Event, bool) {
	key := KeyFromGLFW(code)
	switch action {
	case glfwPress, glfwRepeat:
		return Event{Type: KeyDown, Key: key}, true
	case glfwRelease:
		return Event{Type: KeyUp, Key: key}, true
	default:
		return Event{}, false
	}
}
