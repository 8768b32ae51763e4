package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameMetrics(t *testing.T) {
	f := NewFrameMetrics("metrics-test")
	assert.Equal(t, 0.0, testutil.ToFloat64(f.FramesPresented))

	f.FramesPresented.Inc()
	f.FramesPresented.Inc()
	f.Event("quit")

	assert.Equal(t, 2.0, testutil.ToFloat64(f.FramesPresented))
	assert.Equal(t, 1.0, testutil.ToFloat64(EventsPolled.WithLabelValues("metrics-test", "quit")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	NewFrameMetrics("handler-test").FramesPresented.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `gltriangle_frames_presented_total{window="handler-test"} 1`)
}
