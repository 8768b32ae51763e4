package app

import (
	"errors"
	"testing"

	"github.com/fosdem/gltriangle/lib/config"
	"github.com/fosdem/gltriangle/lib/kbdctl"
	"github.com/fosdem/gltriangle/lib/rendering"
	"github.com/fosdem/gltriangle/lib/rendering/renderingtest"
	"github.com/fosdem/gltriangle/lib/renderloop"
	"github.com/fosdem/gltriangle/lib/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	rec    *renderingtest.Recorder
	driver *renderingtest.Driver
	events []kbdctl.Event
}

func (w *fakeWindow) PollEvent() kbdctl.Event {
	if len(w.events) == 0 {
		return kbdctl.Event{Type: kbdctl.Quit}
	}
	ev := w.events[0]
	w.events = w.events[1:]
	return ev
}

func (w *fakeWindow) SwapBuffers() {
	w.rec.Record("SwapBuffers")
}

func (w *fakeWindow) Driver() (rendering.Driver, error) {
	return w.driver, nil
}

type fakePlatform struct {
	rec       *renderingtest.Recorder
	window    *fakeWindow
	initErr   error
	windowErr error
}

func newFakePlatform(events ...kbdctl.Event) *fakePlatform {
	rec := &renderingtest.Recorder{}
	return &fakePlatform{
		rec: rec,
		window: &fakeWindow{
			rec:    rec,
			driver: renderingtest.NewDriver(rec),
			events: events,
		},
	}
}

func (p *fakePlatform) Init() error {
	p.rec.Record("Init")
	return p.initErr
}

func (p *fakePlatform) OpenWindow(cfg *config.WindowCfg) (Window, error) {
	p.rec.Record("OpenWindow(%s, %dx%d)", cfg.Title, cfg.Width, cfg.Height)
	if p.windowErr != nil {
		return nil, p.windowErr
	}
	return p.window, nil
}

func (p *fakePlatform) Terminate() {
	p.rec.Record("Terminate")
}

func (p *fakePlatform) driver() *renderingtest.Driver {
	return p.window.driver
}

func defaultConfig(t *testing.T, variant string) *config.Config {
	cfg, err := config.Default(variant)
	require.NoError(t, err)
	return cfg
}

var frameAndTeardownCalls = []string{"Clear", "DrawTriangles", "SwapBuffers", "Delete", "Terminate"}

var teardown = []string{
	"DeleteProgram(3)",
	"DeleteShader(2)",
	"DeleteShader(1)",
	"DeleteBuffer(5)",
	"DeleteVertexArray(4)",
	"Terminate",
}

func TestRunTwoFramesThenExitKey(t *testing.T) {
	p := newFakePlatform(
		kbdctl.Event{Type: kbdctl.NoEvent},
		kbdctl.Event{Type: kbdctl.NoEvent},
		kbdctl.Event{Type: kbdctl.KeyDown, Key: kbdctl.KeyEscape},
	)

	err := Run(defaultConfig(t, config.Variant3D), p, nil)
	require.NoError(t, err)

	want := []string{
		"Clear", "DrawTriangles(0, 3)", "SwapBuffers",
		"Clear", "DrawTriangles(0, 3)", "SwapBuffers",
	}
	want = append(want, teardown...)
	assert.Equal(t, want, p.rec.Filter(frameAndTeardownCalls...))
}

func TestRunQuitFirst(t *testing.T) {
	p := newFakePlatform(kbdctl.Event{Type: kbdctl.Quit})

	err := Run(defaultConfig(t, config.Variant2D), p, nil)
	require.NoError(t, err)

	assert.Equal(t, teardown, p.rec.Filter(frameAndTeardownCalls...))
}

func TestRunSetupSequence(t *testing.T) {
	p := newFakePlatform(kbdctl.Event{Type: kbdctl.Quit})

	require.NoError(t, Run(defaultConfig(t, config.Variant2D), p, nil))

	calls := p.rec.Calls()
	require.GreaterOrEqual(t, len(calls), 3)
	assert.Equal(t, "Init", calls[0])
	assert.Equal(t, "OpenWindow(gltriangle: Video, 800x600)", calls[1])
	assert.Equal(t, "CreateShader(vertex)=1", calls[2])
	assert.Contains(t, calls, "AttribLocation(3, out_color)=-1")
	assert.Equal(t, []float32{0, 0.5, 0.5, -0.5, -0.5, -0.5}, p.driver().Uploaded)
}

func TestRunSetsClearColourFromConfig(t *testing.T) {
	p := newFakePlatform(kbdctl.Event{Type: kbdctl.NoEvent})
	cfg := defaultConfig(t, config.Variant2D)
	cfg.ClearColour = "#ff0000ff"

	require.NoError(t, Run(cfg, p, nil))
	assert.Equal(t, [4]float32{1, 0, 0, 1}, p.driver().ClearColour)
}

func TestRunCompileFailure(t *testing.T) {
	p := newFakePlatform()
	p.driver().FailCompile[rendering.FragmentShader] = "0:3(5): error: `out_colour' undeclared"

	err := Run(defaultConfig(t, config.Variant2D), p, nil)
	require.Error(t, err)
	assert.Equal(t, "0:3(5): error: `out_colour' undeclared", err.Error())

	assert.Equal(t, []string{
		"DeleteShader(2)",
		"DeleteShader(1)",
		"Terminate",
	}, p.rec.Filter(frameAndTeardownCalls...))
}

func TestRunLinkFailure(t *testing.T) {
	p := newFakePlatform()
	p.driver().FailLink = true
	p.driver().LinkLog = "error: linking failed"

	err := Run(defaultConfig(t, config.Variant2D), p, nil)
	require.Error(t, err)
	assert.Equal(t, "error: linking failed", err.Error())

	assert.Equal(t, []string{
		"DeleteProgram(3)",
		"DeleteShader(2)",
		"DeleteShader(1)",
		"Terminate",
	}, p.rec.Filter(frameAndTeardownCalls...))
}

func TestRunWindowFailure(t *testing.T) {
	p := newFakePlatform()
	p.windowErr = errors.New("GLX: No GLXFBConfigs returned")

	err := Run(defaultConfig(t, config.Variant2D), p, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GLX: No GLXFBConfigs returned")
	assert.Equal(t, []string{"Init", "OpenWindow(gltriangle: Video, 800x600)", "Terminate"}, p.rec.Calls())
}

func TestRunInitFailure(t *testing.T) {
	p := newFakePlatform()
	p.initErr = errors.New("no display")

	err := Run(defaultConfig(t, config.Variant2D), p, nil)
	require.Error(t, err)
	assert.Equal(t, []string{"Init"}, p.rec.Calls())
}

func TestRunHooks(t *testing.T) {
	p := newFakePlatform(kbdctl.Event{Type: kbdctl.NoEvent}, kbdctl.Event{Type: kbdctl.NoEvent})
	s := stats.New(config.Variant2D)
	var started *renderloop.Loop

	err := Run(defaultConfig(t, config.Variant2D), p, &Hooks{
		Stats: s,
		LoopStarted: func(l *renderloop.Loop) {
			started = l
		},
	})
	require.NoError(t, err)
	require.NotNil(t, started)
	assert.Equal(t, kbdctl.KeyEscape, started.ExitKey)
	assert.Equal(t, uint64(2), s.Snapshot().Frames)
}

func TestRunShutdownRequestedBeforeFirstFrame(t *testing.T) {
	p := newFakePlatform(kbdctl.Event{Type: kbdctl.NoEvent})

	err := Run(defaultConfig(t, config.Variant2D), p, &Hooks{
		LoopStarted: func(l *renderloop.Loop) { l.RequestShutdown() },
	})
	require.NoError(t, err)
	assert.Empty(t, p.rec.Filter("Clear", "DrawTriangles", "SwapBuffers"))
}
