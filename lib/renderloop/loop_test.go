package renderloop

import (
	"testing"

	"github.com/fosdem/gltriangle/lib/kbdctl"
	"github.com/fosdem/gltriangle/lib/rendering/renderingtest"
	"github.com/fosdem/gltriangle/lib/stats"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedWindow replays a fixed event list and then keeps returning quit
// so that a broken loop cannot spin forever.
type scriptedWindow struct {
	rec    *renderingtest.Recorder
	events []kbdctl.Event
	polled int
}

func (w *scriptedWindow) PollEvent() kbdctl.Event {
	w.polled++
	if len(w.events) == 0 {
		return kbdctl.Event{Type: kbdctl.Quit}
	}
	ev := w.events[0]
	w.events = w.events[1:]
	return ev
}

func (w *scriptedWindow) SwapBuffers() {
	w.rec.Record("SwapBuffers")
}

func newTestLoop(events ...kbdctl.Event) (*Loop, *scriptedWindow, *renderingtest.Driver) {
	rec := &renderingtest.Recorder{}
	d := renderingtest.NewDriver(rec)
	w := &scriptedWindow{rec: rec, events: events}
	return New("loop-test", w, w, d), w, d
}

func none() kbdctl.Event {
	return kbdctl.Event{Type: kbdctl.NoEvent}
}

func keyDown(k kbdctl.Key) kbdctl.Event {
	return kbdctl.Event{Type: kbdctl.KeyDown, Key: k}
}

func TestNext(t *testing.T) {
	assert.Equal(t, Stopped, Next(Running, kbdctl.Event{Type: kbdctl.Quit}, kbdctl.KeyEscape))
	assert.Equal(t, Stopped, Next(Running, keyDown(kbdctl.KeyEscape), kbdctl.KeyEscape))
	assert.Equal(t, Running, Next(Running, keyDown(kbdctl.KeyQ), kbdctl.KeyEscape))
	assert.Equal(t, Running, Next(Running, kbdctl.Event{Type: kbdctl.KeyUp, Key: kbdctl.KeyEscape}, kbdctl.KeyEscape))
	assert.Equal(t, Running, Next(Running, none(), kbdctl.KeyEscape))
	assert.Equal(t, Stopped, Next(Stopped, none(), kbdctl.KeyEscape))
}

func TestRunStopsOnExitKey(t *testing.T) {
	l, w, d := newTestLoop(none(), none(), keyDown(kbdctl.KeyEscape))

	frames := l.Run()

	assert.Equal(t, uint64(2), frames)
	assert.Equal(t, 3, w.polled)
	assert.Equal(t, []string{
		"Clear", "DrawTriangles(0, 3)", "SwapBuffers",
		"Clear", "DrawTriangles(0, 3)", "SwapBuffers",
	}, d.Calls())
}

func TestRunQuitFirstDrawsNothing(t *testing.T) {
	l, w, d := newTestLoop(kbdctl.Event{Type: kbdctl.Quit})

	assert.Equal(t, uint64(0), l.Run())
	assert.Equal(t, 1, w.polled)
	assert.Empty(t, d.Calls())
}

func TestRunIgnoresOtherKeys(t *testing.T) {
	l, _, _ := newTestLoop(
		keyDown(kbdctl.KeyQ),
		kbdctl.Event{Type: kbdctl.KeyUp, Key: kbdctl.KeyEscape},
		keyDown(kbdctl.KeyUnknown),
		keyDown(kbdctl.KeyEscape),
	)

	assert.Equal(t, uint64(3), l.Run())
}

func TestRunUsesConfiguredExitKey(t *testing.T) {
	l, _, _ := newTestLoop(keyDown(kbdctl.KeyEscape), keyDown(kbdctl.KeyQ))
	l.ExitKey = kbdctl.KeyQ

	assert.Equal(t, uint64(1), l.Run())
}

func TestEveryPresentFollowsOneClearAndOneDraw(t *testing.T) {
	events := make([]kbdctl.Event, 0, 50)
	for range 49 {
		events = append(events, none())
	}
	events = append(events, keyDown(kbdctl.KeyEscape))
	l, _, d := newTestLoop(events...)

	frames := l.Run()
	require.Equal(t, uint64(49), frames)

	calls := d.Calls()
	require.Len(t, calls, 3*49)
	for i := 0; i < len(calls); i += 3 {
		assert.Equal(t, []string{"Clear", "DrawTriangles(0, 3)", "SwapBuffers"}, calls[i:i+3])
	}
}

func TestRunSetsClearColour(t *testing.T) {
	l, _, d := newTestLoop(none(), kbdctl.Event{Type: kbdctl.Quit})
	l.ClearColour = mgl32.Vec4{0.3, 0.3, 0.3, 1}

	l.Run()
	assert.Equal(t, [4]float32{0.3, 0.3, 0.3, 1}, d.ClearColour)
}

func TestRequestShutdown(t *testing.T) {
	l, _, d := newTestLoop(none(), none(), none())
	l.RequestShutdown()

	assert.Equal(t, uint64(0), l.Run())
	assert.Empty(t, d.Calls())
}

func TestRunUpdatesStats(t *testing.T) {
	l, _, _ := newTestLoop(none(), none(), none(), kbdctl.Event{Type: kbdctl.Quit})
	l.Stats = stats.New("2d")

	l.Run()
	assert.Equal(t, uint64(3), l.Stats.Snapshot().Frames)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "stopped", Stopped.String())
}
