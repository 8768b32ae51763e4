package rendering

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

const f32 = 4

// Triangle holds the three vertices of the static geometry. For 2D
// geometry the Z components are ignored when flattening.
type Triangle struct {
	Dimensions int
	Vertices   [3]mgl32.Vec3
}

func NewTriangle(dimensions int, vertices [][]float32) (*Triangle, error) {
	if dimensions != 2 && dimensions != 3 {
		return nil, fmt.Errorf("unsupported vertex dimension %d", dimensions)
	}
	if len(vertices) != 3 {
		return nil, fmt.Errorf("a triangle has 3 vertices, got %d", len(vertices))
	}
	t := &Triangle{Dimensions: dimensions}
	for i, v := range vertices {
		if len(v) != dimensions {
			return nil, fmt.Errorf("vertex %d has %d components, expected %d", i, len(v), dimensions)
		}
		if dimensions == 2 {
			t.Vertices[i] = mgl32.Vec2{v[0], v[1]}.Vec3(0)
		} else {
			t.Vertices[i] = mgl32.Vec3{v[0], v[1], v[2]}
		}
	}
	return t, nil
}

// Flatten returns the tightly packed vertex data as uploaded to the GPU.
func (t *Triangle) Flatten() []float32 {
	data := make([]float32, 0, len(t.Vertices)*t.Dimensions)
	for _, v := range t.Vertices {
		data = append(data, v[:t.Dimensions]...)
	}
	return data
}

func (t *Triangle) VertexCount() int32 {
	return int32(len(t.Vertices))
}

// UploadGeometry creates the vertex array and buffer for t, makes program
// current and points attribName at the buffer. Both objects are left
// bound.
func UploadGeometry(d Driver, program uint32, t *Triangle, attribName string) (vao, vbo uint32) {
	vao = d.GenVertexArray()
	d.BindVertexArray(vao)

	vbo = d.GenBuffer()
	d.BindArrayBuffer(vbo)
	d.StaticBufferData(t.Flatten())

	d.UseProgram(program)

	loc := d.AttribLocation(program, attribName)
	if loc < 0 {
		slog.Warn(
			fmt.Sprintf("attribute %s is not an active vertex input, position data will not reach the shader", attribName),
			slog.String("module", "rendering"),
		)
	}
	vertAttrib := uint32(loc)
	d.EnableVertexAttribArray(vertAttrib)
	d.FloatAttribPointer(vertAttrib, int32(t.Dimensions), 0, 0)

	return vao, vbo
}
