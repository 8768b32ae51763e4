package rendering

import "fmt"

type ShaderStage int

const (
	VertexShader ShaderStage = iota
	FragmentShader
)

func (s ShaderStage) String() string {
	switch s {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Driver is the subset of the OpenGL API the triangle program uses.
// Objects are addressed by the integer handles GL hands out.
type Driver interface {
	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	// ShaderInfoLogLength includes the terminating NUL, as GL reports it.
	ShaderInfoLogLength(shader uint32) int32
	// ShaderInfoLog returns the raw bufSize bytes filled in by GL.
	ShaderInfoLog(shader uint32, bufSize int32) []byte
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLogLength(program uint32) int32
	ProgramInfoLog(program uint32, bufSize int32) []byte
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindArrayBuffer(buffer uint32)
	StaticBufferData(data []float32)
	DeleteBuffer(buffer uint32)

	AttribLocation(program uint32, name string) int32
	EnableVertexAttribArray(index uint32)
	// FloatAttribPointer describes a non-normalised float attribute.
	FloatAttribPointer(index uint32, size, stride int32, offset uintptr)

	ClearColor(r, g, b, a float32)
	ClearColorBuffer()
	DrawTriangles(first, count int32)

	Version() string
}
