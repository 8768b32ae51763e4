package windowsink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fosdem/gltriangle/lib/app"
	"github.com/fosdem/gltriangle/lib/config"
	"github.com/fosdem/gltriangle/lib/kbdctl"
	"github.com/fosdem/gltriangle/lib/rendering"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Platform is the GLFW video subsystem. Init and Terminate must be called
// from the main thread.
type Platform struct{}

func NewPlatform() *Platform {
	return &Platform{}
}

func (p *Platform) Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	return nil
}

func (p *Platform) Terminate() {
	glfw.Terminate()
}

func (p *Platform) OpenWindow(cfg *config.WindowCfg) (app.Window, error) {
	w, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return w, nil
}

type WindowSink struct {
	Window *glfw.Window

	name   string
	events kbdctl.EventQueue
}

func New(cfg *config.WindowCfg) (*WindowSink, error) {
	w := &WindowSink{name: cfg.Title}
	err := w.makeWindow(cfg)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (w *WindowSink) makeWindow(cfg *config.WindowCfg) error {
	w.log(slog.LevelDebug, "Initializing window")

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, cfg.DepthBits)
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	centre(window, cfg.Width, cfg.Height)
	window.Show()
	window.MakeContextCurrent()

	window.SetKeyCallback(w.keyCallback)
	window.SetCloseCallback(func(_ *glfw.Window) {
		w.events.Push(kbdctl.Event{Type: kbdctl.Quit})
	})

	w.Window = window
	w.log(slog.LevelInfo, fmt.Sprintf("Window %dx%d open with OpenGL %d.%d core context", cfg.Width, cfg.Height, cfg.GLMajor, cfg.GLMinor))
	return nil
}

func centre(window *glfw.Window, width, height int) {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return
	}
	mx, my := monitor.GetPos()
	window.SetPos(mx+(mode.Width-width)/2, my+(mode.Height-height)/2)
}

// Driver loads the GL entry points through GLFW for the window's context,
// which must be current.
func (w *WindowSink) Driver() (rendering.Driver, error) {
	d, err := rendering.Init(glfw.GetProcAddress)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// PollEvent returns one queued event. GLFW is only pumped when the queue
// is empty; glfw.PollEvents does not block.
func (w *WindowSink) PollEvent() kbdctl.Event {
	return w.events.Poll(glfw.PollEvents)
}

func (w *WindowSink) SwapBuffers() {
	w.Window.SwapBuffers()
}

func (w *WindowSink) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if ev, ok := kbdctl.EventFromGLFW(int(key), int(action)); ok {
		w.events.Push(ev)
	}
}

func (w *WindowSink) log(level slog.Level, msg string) {
	slog.Log(context.Background(), level, msg, slog.String("module", "windowsink"), slog.String("window", w.name))
}
