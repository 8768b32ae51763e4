package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/fosdem/gltriangle/lib/config"
	"github.com/fosdem/gltriangle/lib/utils"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed *.frag *.vert
var templateDir embed.FS

const (
	vertexTemplate   = "triangle.vert"
	fragmentTemplate = "triangle.frag"
)

type Shaderer struct {
	templates *template.Template
}

func NewShaderer() (*Shaderer, error) {
	s := &Shaderer{}

	var err error

	s.templates, err = template.ParseFS(templateDir, "*.frag", "*.vert")

	return s, err
}

// ShaderData contains stuff that gets passed to the shader
type ShaderData struct {
	Dimensions     int
	FragmentColour mgl32.Vec4
}

// Vec4 formats a colour as the argument list of a GLSL vec4 constructor.
func (d *ShaderData) Vec4() string {
	c := d.FragmentColour
	return fmt.Sprintf("%.4f, %.4f, %.4f, %.4f", c[0], c[1], c[2], c[3])
}

func (s *Shaderer) GetShaderSource(name string, data *ShaderData) (string, error) {
	var b bytes.Buffer
	err := s.templates.ExecuteTemplate(&b, name, data)
	if err != nil {
		return "", fmt.Errorf("error while rendering template: %w", err)
	}

	return b.String(), nil
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for _, t := range s.templates.Templates() {
		names = append(names, t.Name())
	}
	return names
}

// Sources returns the vertex and fragment shader source for cfg, reading
// configured shader files and rendering the built-in templates otherwise.
func Sources(cfg *config.Config) (vertex, fragment string, err error) {
	shaderer, err := NewShaderer()
	if err != nil {
		return "", "", fmt.Errorf("could not get shaders: %w", err)
	}
	data := &ShaderData{
		Dimensions: cfg.Geometry.Dimensions,
	}
	if cfg.Shaders.Fragment == "" {
		data.FragmentColour = utils.ColourVec4(cfg.Shaders.FragmentColour)
	}

	if cfg.Shaders.Vertex != "" {
		vertex, err = cfg.Shaders.Vertex.Read()
	} else {
		vertex, err = shaderer.GetShaderSource(vertexTemplate, data)
	}
	if err != nil {
		return "", "", fmt.Errorf("could not get vertex shader: %w", err)
	}

	if cfg.Shaders.Fragment != "" {
		fragment, err = cfg.Shaders.Fragment.Read()
	} else {
		fragment, err = shaderer.GetShaderSource(fragmentTemplate, data)
	}
	if err != nil {
		return "", "", fmt.Errorf("could not get fragment shader: %w", err)
	}

	return vertex, fragment, nil
}
