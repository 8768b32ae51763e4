package shaders

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/gltriangle/lib/metrics"
	"github.com/fosdem/gltriangle/lib/rendering"
)

// ShaderError carries the driver's compile log. Its message is the log
// itself so it can be shown to the user unchanged.
type ShaderError struct {
	Stage rendering.ShaderStage
	Log   string
}

func (e *ShaderError) Error() string {
	return e.Log
}

// LinkError carries the driver's program link log.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return e.Log
}

// CompileShader compiles source for stage and returns the shader handle.
// A failed shader is deleted before the error is returned.
func CompileShader(d rendering.Driver, source string, stage rendering.ShaderStage) (uint32, error) {
	shader := d.CreateShader(stage)
	d.ShaderSource(shader, source)
	d.CompileShader(shader)

	if !d.ShaderCompiled(shader) {
		logLength := d.ShaderInfoLogLength(shader)
		clog := infoLog(logLength, d.ShaderInfoLog(shader, logLength))
		if clog == "" {
			clog = fmt.Sprintf("%s shader failed to compile without an info log", stage)
		}
		d.DeleteShader(shader)

		metrics.ShaderFailures.WithLabelValues(stage.String()).Inc()
		slog.Error(fmt.Sprintf("could not compile %s shader", stage), slog.String("module", "shaders"))
		return 0, &ShaderError{Stage: stage, Log: clog}
	}

	return shader, nil
}

// LinkProgram attaches both shaders to a new program and links it. The
// shaders stay alive; they are released together with the program.
func LinkProgram(d rendering.Driver, vertexShader, fragmentShader uint32) (uint32, error) {
	program := d.CreateProgram()

	d.AttachShader(program, vertexShader)
	d.AttachShader(program, fragmentShader)
	d.LinkProgram(program)

	if !d.ProgramLinked(program) {
		logLength := d.ProgramInfoLogLength(program)
		logmsg := infoLog(logLength, d.ProgramInfoLog(program, logLength))
		if logmsg == "" {
			logmsg = "program failed to link without an info log"
		}
		d.DeleteProgram(program)

		metrics.ShaderFailures.WithLabelValues("link").Inc()
		slog.Error("could not link program", slog.String("module", "shaders"))
		return 0, &LinkError{Log: logmsg}
	}

	return program, nil
}

// infoLog keeps the first length-1 bytes of buf, dropping the NUL
// terminator that length accounts for.
func infoLog(length int32, buf []byte) string {
	n := int(length) - 1
	if n <= 0 {
		return ""
	}
	if n > len(buf) {
		n = len(buf)
	}
	return string(buf[:n])
}
