package renderloop

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/fosdem/gltriangle/lib/kbdctl"
	"github.com/fosdem/gltriangle/lib/metrics"
	"github.com/fosdem/gltriangle/lib/rendering"
	"github.com/fosdem/gltriangle/lib/stats"
	"github.com/fosdem/gltriangle/lib/utils"
	"github.com/go-gl/mathgl/mgl32"
)

type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}

// EventSource hands out at most one pending window event per call and
// never blocks; an empty queue yields an event of type kbdctl.NoEvent.
type EventSource interface {
	PollEvent() kbdctl.Event
}

type Presenter interface {
	SwapBuffers()
}

// Next applies one polled event to the loop state. Stopped is terminal.
func Next(s State, ev kbdctl.Event, exitKey kbdctl.Key) State {
	if s == Stopped || kbdctl.ShouldStop(ev, exitKey) {
		return Stopped
	}
	return Running
}

type Loop struct {
	Events    EventSource
	Presenter Presenter
	Driver    rendering.Driver

	ClearColour mgl32.Vec4
	ExitKey     kbdctl.Key
	VertexCount int32

	// Stats is optional and updated once per presented frame.
	Stats *stats.Stats

	metrics           metrics.FrameMetrics
	shutdownRequested atomic.Bool
}

func New(name string, events EventSource, presenter Presenter, d rendering.Driver) *Loop {
	return &Loop{
		Events:      events,
		Presenter:   presenter,
		Driver:      d,
		ExitKey:     kbdctl.KeyEscape,
		VertexCount: 3,
		metrics:     metrics.NewFrameMetrics(name),
	}
}

// RequestShutdown makes the loop stop before its next frame. It is safe
// to call from other goroutines.
func (l *Loop) RequestShutdown() {
	l.shutdownRequested.Store(true)
}

// Run polls events and presents frames until the state becomes Stopped.
// It returns the number of frames presented.
func (l *Loop) Run() uint64 {
	var frames uint64
	var deltaTimer utils.DeltaTimer

	state := Running
	for {
		ev := l.Events.PollEvent()
		if ev.Type != kbdctl.NoEvent {
			l.metrics.Event(ev.Type.String())
		}
		state = Next(state, ev, l.ExitKey)
		if state == Running && l.shutdownRequested.Load() {
			slog.Info("shutdown requested", slog.String("module", "renderloop"))
			state = Stopped
		}
		if state == Stopped {
			break
		}

		l.drawFrame()
		l.Presenter.SwapBuffers()
		frames++

		dt := deltaTimer.Next()
		if frames > 1 {
			l.metrics.FrameSeconds.Observe(dt.Seconds())
		}
		l.metrics.FramesPresented.Inc()
		if l.Stats != nil {
			l.Stats.Update()
		}
	}

	slog.Debug(fmt.Sprintf("render loop stopped after %d frames", frames), slog.String("module", "renderloop"))
	return frames
}

func (l *Loop) drawFrame() {
	c := l.ClearColour
	l.Driver.ClearColor(c[0], c[1], c[2], c[3])
	l.Driver.ClearColorBuffer()
	l.Driver.DrawTriangles(0, l.VertexCount)
}
