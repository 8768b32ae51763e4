package kbdctl

import (
	"fmt"
	"strings"
	"sync"
)

type EventType int

const (
	NoEvent EventType = iota
	Quit
	KeyDown
	KeyUp
)

func (t EventType) String() string {
	switch t {
	case NoEvent:
		return "none"
	case Quit:
		return "quit"
	case KeyDown:
		return "key_down"
	case KeyUp:
		return "key_up"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// Key is a backend independent key code. Only the keys that can be
// configured as the exit key have names; everything else is KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyQ
	KeyEnter
	KeySpace
	KeyBackspace
	KeyF10
)

var keyNames = map[Key]string{
	KeyEscape:    "escape",
	KeyQ:         "q",
	KeyEnter:     "enter",
	KeySpace:     "space",
	KeyBackspace: "backspace",
	KeyF10:       "f10",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}

type Event struct {
	Type EventType
	Key  Key
}

// EventQueue buffers events delivered by window callbacks until the
// render loop polls them one at a time.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
}

func (q *EventQueue) Push(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, ev)
}

// Pop returns the oldest queued event, or an event of type NoEvent
// when the queue is empty.
func (q *EventQueue) Pop() Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return Event{Type: NoEvent}
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev
}

// Poll pops one event, calling pump first only if nothing is queued.
// pump is expected to run the backend's callbacks without blocking.
func (q *EventQueue) Poll(pump func()) Event {
	if q.Len() == 0 {
		pump()
	}
	return q.Pop()
}

func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
