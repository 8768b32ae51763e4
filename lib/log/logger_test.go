package log

import (
	"bytes"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var colourCodes = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plain(s string) string {
	return colourCodes.ReplaceAllString(s, "")
}

func TestHandlerPrintsModuleAndMessage(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandlerTo(&out, nil))

	logger.Info("window opened", slog.String("module", "windowsink"), slog.Int("width", 800))

	line := out.String()
	assert.Contains(t, line, "[windowsink] ")
	assert.Contains(t, line, "window opened")
	assert.Contains(t, line, "width=800")
	assert.NotContains(t, line, "module=")
}

func TestHandlerRespectsLevel(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandlerTo(&out, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Info("hidden")
	assert.Empty(t, out.String())

	logger.Warn("shown")
	assert.Contains(t, out.String(), "shown")
}

func TestHandlerWithAttrs(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandlerTo(&out, nil)).With(slog.String("module", "api"))

	logger.Error("boom")
	assert.Contains(t, plain(out.String()), "[api] boom")
}

func TestHandlerSortsExtraAttrs(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandlerTo(&out, nil))

	for i := 0; i < 20; i++ {
		out.Reset()
		logger.Info("frame", slog.Int("zeta", 1), slog.Int("alpha", 2), slog.Int("mid", 3))
		assert.Contains(t, plain(out.String()), "frame alpha=2 mid=3 zeta=1")
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
