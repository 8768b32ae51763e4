package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fosdem/gltriangle/lib/kbdctl"
	"github.com/fosdem/gltriangle/lib/log"
	"github.com/fosdem/gltriangle/lib/utils"
	"github.com/go-gl/mathgl/mgl32"
	yaml "github.com/goccy/go-yaml"
)

type Config struct {
	Variant     string
	Window      WindowCfg
	Geometry    GeometryCfg
	Shaders     ShadersCfg
	ClearColour string `yaml:"clear_colour"`
	ExitKey     string `yaml:"exit_key"`
	LogLevel    string `yaml:"log_level"`
	Api         *ApiCfg
}

type WindowCfg struct {
	Title     string
	Width     int
	Height    int
	GLMajor   int `yaml:"gl_major"`
	GLMinor   int `yaml:"gl_minor"`
	DepthBits int `yaml:"depth_bits"`
}

type GeometryCfg struct {
	Dimensions int
	Vertices   [][]float32

	// PositionAttribute is the name looked up with glGetAttribLocation
	// for the vertex position pointer.
	PositionAttribute string `yaml:"position_attribute"`
}

type ShadersCfg struct {
	Vertex         CfgPath
	Fragment       CfgPath
	FragmentColour string `yaml:"fragment_colour"`
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

type variantStub struct {
	Variant string
}

// Parse loads a config file on top of the preset named by its
// `variant` key (2d when absent).
func Parse(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	UnmarshalBase = filepath.Dir(absFilename)

	cfg, err := ParseBytes(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", filename, err)
	}
	return cfg, nil
}

func ParseBytes(b []byte) (*Config, error) {
	stub := &variantStub{}
	err := yaml.Unmarshal(b, stub)
	if err != nil {
		return nil, err
	}
	if stub.Variant == "" {
		stub.Variant = Variant2D
	}

	cfg, err := Default(stub.Variant)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Window.Validate(); err != nil {
		return fmt.Errorf("window config is invalid: %w", err)
	}
	if err := c.Geometry.Validate(); err != nil {
		return fmt.Errorf("geometry config is invalid: %w", err)
	}
	if !utils.ColourValidate(c.ClearColour) {
		return fmt.Errorf("clear_colour %q is not a valid RGBA hex colour", c.ClearColour)
	}
	if c.Shaders.Fragment == "" && !utils.ColourValidate(c.Shaders.FragmentColour) {
		return fmt.Errorf("fragment_colour %q is not a valid RGBA hex colour", c.Shaders.FragmentColour)
	}
	if _, err := kbdctl.ParseKey(c.ExitKey); err != nil {
		return fmt.Errorf("exit_key is invalid: %w", err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Api != nil && c.Api.Bind == "" {
		return fmt.Errorf("api section needs a bind address")
	}
	return nil
}

func (w *WindowCfg) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("size %dx%d must be positive", w.Width, w.Height)
	}
	if w.GLMajor < 3 || (w.GLMajor == 3 && w.GLMinor < 2) {
		return fmt.Errorf("a core profile needs OpenGL 3.2 or newer, got %d.%d", w.GLMajor, w.GLMinor)
	}
	if w.DepthBits < 0 {
		return fmt.Errorf("depth_bits must be nonnegative")
	}
	return nil
}

func (g *GeometryCfg) Validate() error {
	if g.Dimensions != 2 && g.Dimensions != 3 {
		return fmt.Errorf("dimensions must be 2 or 3, got %d", g.Dimensions)
	}
	if len(g.Vertices) != 3 {
		return fmt.Errorf("exactly 3 vertices are needed, got %d", len(g.Vertices))
	}
	for i, v := range g.Vertices {
		if len(v) != g.Dimensions {
			return fmt.Errorf("vertex %d has %d components, expected %d", i, len(v), g.Dimensions)
		}
	}
	if g.PositionAttribute == "" {
		return fmt.Errorf("position_attribute must be specified")
	}
	return nil
}

func (c *Config) ExitKeyCode() kbdctl.Key {
	k, _ := kbdctl.ParseKey(c.ExitKey)
	return k
}

func (c *Config) ClearColourVec4() mgl32.Vec4 {
	return utils.ColourVec4(c.ClearColour)
}

func (c *Config) Level() slog.Level {
	level, _ := log.ParseLevel(c.LogLevel)
	return level
}

func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Variant: %s\n", c.Variant)
	fmt.Fprintf(&b, "Window: %q %dx%d, OpenGL %d.%d core, depth %d\n",
		c.Window.Title, c.Window.Width, c.Window.Height,
		c.Window.GLMajor, c.Window.GLMinor, c.Window.DepthBits)
	fmt.Fprintf(&b, "Geometry: %dD, attribute %q\n", c.Geometry.Dimensions, c.Geometry.PositionAttribute)
	for _, v := range c.Geometry.Vertices {
		fmt.Fprintf(&b, "  %v\n", v)
	}
	vs, fs := "built-in", "built-in"
	if c.Shaders.Vertex != "" {
		vs = string(c.Shaders.Vertex)
	}
	if c.Shaders.Fragment != "" {
		fs = string(c.Shaders.Fragment)
	}
	fmt.Fprintf(&b, "Shaders: vertex %s, fragment %s\n", vs, fs)
	fmt.Fprintf(&b, "Clear colour: %s\n", c.ClearColour)
	fmt.Fprintf(&b, "Exit key: %s\n", c.ExitKey)
	if c.Api != nil {
		fmt.Fprintf(&b, "API: %s\n", c.Api.Bind)
	}
	return b.String()
}
