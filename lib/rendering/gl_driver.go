package rendering

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// GLDriver forwards to the real OpenGL entry points. It must only be used
// on the thread owning the current context.
type GLDriver struct{}

// Init resolves every GL entry point through getProcAddr, which must be
// the windowing layer's lookup for the current context.
func Init(getProcAddr func(name string) unsafe.Pointer) (*GLDriver, error) {
	err := gl.InitWithProcAddrFunc(getProcAddr)
	if err != nil {
		return nil, fmt.Errorf("could not initialise OpenGL context: %w", err)
	}

	d := &GLDriver{}
	slog.Info(
		fmt.Sprintf("OpenGL version '%s'", d.Version()),
		slog.String("module", "rendering"),
		slog.String("vendor", gl.GoStr(gl.GetString(gl.VENDOR))),
		slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	return d, nil
}

func (d *GLDriver) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func glStage(stage ShaderStage) uint32 {
	if stage == FragmentShader {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (d *GLDriver) CreateShader(stage ShaderStage) uint32 {
	return gl.CreateShader(glStage(stage))
}

func (d *GLDriver) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
}

func (d *GLDriver) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *GLDriver) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (d *GLDriver) ShaderInfoLogLength(shader uint32) int32 {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	return logLength
}

func (d *GLDriver) ShaderInfoLog(shader uint32, bufSize int32) []byte {
	if bufSize <= 0 {
		return nil
	}
	buf := make([]byte, bufSize)
	gl.GetShaderInfoLog(shader, bufSize, nil, (*uint8)(unsafe.Pointer(&buf[0])))
	return buf
}

func (d *GLDriver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *GLDriver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *GLDriver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *GLDriver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *GLDriver) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (d *GLDriver) ProgramInfoLogLength(program uint32) int32 {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	return logLength
}

func (d *GLDriver) ProgramInfoLog(program uint32, bufSize int32) []byte {
	if bufSize <= 0 {
		return nil
	}
	buf := make([]byte, bufSize)
	gl.GetProgramInfoLog(program, bufSize, nil, (*uint8)(unsafe.Pointer(&buf[0])))
	return buf
}

func (d *GLDriver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GLDriver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *GLDriver) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *GLDriver) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *GLDriver) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *GLDriver) GenBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (d *GLDriver) BindArrayBuffer(buffer uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
}

func (d *GLDriver) StaticBufferData(data []float32) {
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*f32, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *GLDriver) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d *GLDriver) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDriver) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *GLDriver) FloatAttribPointer(index uint32, size, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, offset)
}

func (d *GLDriver) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *GLDriver) ClearColorBuffer() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *GLDriver) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}
