package app

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/gltriangle/lib/config"
	"github.com/fosdem/gltriangle/lib/rendering"
	"github.com/fosdem/gltriangle/lib/rendering/shaders"
	"github.com/fosdem/gltriangle/lib/renderloop"
	"github.com/fosdem/gltriangle/lib/stats"
)

// Platform is the process-wide windowing subsystem.
type Platform interface {
	Init() error
	OpenWindow(cfg *config.WindowCfg) (Window, error)
	Terminate()
}

// Window owns the GL context. Driver may only be called once the context
// is current on the calling thread.
type Window interface {
	renderloop.EventSource
	renderloop.Presenter
	Driver() (rendering.Driver, error)
}

// Hooks lets callers observe the loop once it exists, e.g. to serve it
// over HTTP. Both fields are optional.
type Hooks struct {
	Stats       *stats.Stats
	LoopStarted func(l *renderloop.Loop)
}

// Run opens the window, builds the shader program, uploads the triangle
// and renders until the loop stops. GL objects and the platform are
// released on every return path. Shader compile and link failures are
// returned unwrapped so their message is the driver's info log.
func Run(cfg *config.Config, platform Platform, hooks *Hooks) error {
	if hooks == nil {
		hooks = &Hooks{}
	}

	triangle, err := rendering.NewTriangle(cfg.Geometry.Dimensions, cfg.Geometry.Vertices)
	if err != nil {
		return fmt.Errorf("invalid geometry: %w", err)
	}
	vsSource, fsSource, err := shaders.Sources(cfg)
	if err != nil {
		return err
	}

	err = platform.Init()
	if err != nil {
		return fmt.Errorf("could not initialise video subsystem: %w", err)
	}
	defer platform.Terminate()

	window, err := platform.OpenWindow(&cfg.Window)
	if err != nil {
		return fmt.Errorf("could not open window: %w", err)
	}

	d, err := window.Driver()
	if err != nil {
		return err
	}

	res := &rendering.Resources{}
	defer res.Release(d)

	res.VertexShader, err = shaders.CompileShader(d, vsSource, rendering.VertexShader)
	if err != nil {
		return err
	}
	res.FragmentShader, err = shaders.CompileShader(d, fsSource, rendering.FragmentShader)
	if err != nil {
		return err
	}
	res.Program, err = shaders.LinkProgram(d, res.VertexShader, res.FragmentShader)
	if err != nil {
		return err
	}

	res.VAO, res.VBO = rendering.UploadGeometry(d, res.Program, triangle, cfg.Geometry.PositionAttribute)

	loop := renderloop.New(cfg.Window.Title, window, window, d)
	loop.ClearColour = cfg.ClearColourVec4()
	loop.ExitKey = cfg.ExitKeyCode()
	loop.VertexCount = triangle.VertexCount()
	loop.Stats = hooks.Stats
	if hooks.LoopStarted != nil {
		hooks.LoopStarted(loop)
	}

	slog.Info(fmt.Sprintf("rendering %s triangle, press %s to quit", cfg.Variant, cfg.ExitKey), slog.String("module", "app"))
	frames := loop.Run()
	slog.Info(fmt.Sprintf("presented %d frames, tearing down", frames), slog.String("module", "app"))

	return nil
}
