package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesPresented = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gltriangle_frames_presented_total",
		Help: "Total number of frames cleared, drawn and swapped to the window",
	}, []string{"window"})
	FrameSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gltriangle_frame_seconds",
		Help:    "Time between two consecutive presented frames",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"window"})
	EventsPolled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gltriangle_events_total",
		Help: "Total number of window events handled by the render loop, by type",
	}, []string{"window", "type"})
	ShaderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gltriangle_shader_failures_total",
		Help: "Total number of shader compile (by stage) and link failures",
	}, []string{"stage"})
)

type FrameMetrics struct {
	FramesPresented prometheus.Counter
	FrameSeconds    prometheus.Observer

	window string
}

func NewFrameMetrics(window string) FrameMetrics {
	f := FrameMetrics{
		FramesPresented: FramesPresented.WithLabelValues(window),
		FrameSeconds:    FrameSeconds.WithLabelValues(window),
		window:          window,
	}
	f.FramesPresented.Add(0)
	return f
}

func (f FrameMetrics) Event(eventType string) {
	EventsPolled.WithLabelValues(f.window, eventType).Inc()
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
