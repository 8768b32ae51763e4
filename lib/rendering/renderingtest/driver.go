// Package renderingtest provides a recording rendering.Driver for tests.
package renderingtest

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/fosdem/gltriangle/lib/rendering"
)

// Recorder collects a flat, ordered log of calls. It can be shared with
// other fakes so that window and driver calls interleave in one log.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *Recorder) Record(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Filter returns the recorded calls starting with one of the prefixes.
func (r *Recorder) Filter(prefixes ...string) []string {
	var out []string
	for _, c := range r.Calls() {
		for _, p := range prefixes {
			if strings.HasPrefix(c, p) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

var _ rendering.Driver = (*Driver)(nil)

// Driver is a fake GL driver handing out sequential handles.
type Driver struct {
	*Recorder

	// FailCompile makes compilation of the given stage fail with the
	// matching log.
	FailCompile map[rendering.ShaderStage]string
	// FailLink makes linking fail with LinkLog.
	FailLink bool
	LinkLog  string
	// AttribLocations maps attribute names to locations; unknown names
	// resolve to -1 like in GL.
	AttribLocations map[string]int32

	nextHandle  uint32
	stages      map[uint32]rendering.ShaderStage
	Attached    map[uint32][]uint32
	Uploaded    []float32
	ClearColour [4]float32
}

func NewDriver(rec *Recorder) *Driver {
	if rec == nil {
		rec = &Recorder{}
	}
	return &Driver{
		Recorder:        rec,
		FailCompile:     map[rendering.ShaderStage]string{},
		AttribLocations: map[string]int32{"position": 0},
		stages:          map[uint32]rendering.ShaderStage{},
		Attached:        map[uint32][]uint32{},
	}
}

func (d *Driver) handle() uint32 {
	d.nextHandle++
	return d.nextHandle
}

// nulTerminated mimics the buffer GL fills: the log and a trailing NUL.
func nulTerminated(log string) []byte {
	return append([]byte(log), 0)
}

func (d *Driver) CreateShader(stage rendering.ShaderStage) uint32 {
	h := d.handle()
	d.stages[h] = stage
	d.Record("CreateShader(%s)=%d", stage, h)
	return h
}

func (d *Driver) ShaderSource(shader uint32, source string) {
	d.Record("ShaderSource(%d)", shader)
}

func (d *Driver) CompileShader(shader uint32) {
	d.Record("CompileShader(%d)", shader)
}

func (d *Driver) ShaderCompiled(shader uint32) bool {
	_, failed := d.FailCompile[d.stages[shader]]
	return !failed
}

func (d *Driver) ShaderInfoLogLength(shader uint32) int32 {
	log, ok := d.FailCompile[d.stages[shader]]
	if !ok || log == "" {
		return 0
	}
	return int32(len(log) + 1)
}

func (d *Driver) ShaderInfoLog(shader uint32, bufSize int32) []byte {
	return nulTerminated(d.FailCompile[d.stages[shader]])[:bufSize]
}

func (d *Driver) DeleteShader(shader uint32) {
	d.Record("DeleteShader(%d)", shader)
}

func (d *Driver) CreateProgram() uint32 {
	h := d.handle()
	d.Record("CreateProgram()=%d", h)
	return h
}

func (d *Driver) AttachShader(program, shader uint32) {
	d.Attached[program] = append(d.Attached[program], shader)
	d.Record("AttachShader(%d, %d)", program, shader)
}

func (d *Driver) LinkProgram(program uint32) {
	d.Record("LinkProgram(%d)", program)
}

func (d *Driver) ProgramLinked(program uint32) bool {
	return !d.FailLink
}

func (d *Driver) ProgramInfoLogLength(program uint32) int32 {
	if !d.FailLink || d.LinkLog == "" {
		return 0
	}
	return int32(len(d.LinkLog) + 1)
}

func (d *Driver) ProgramInfoLog(program uint32, bufSize int32) []byte {
	return nulTerminated(d.LinkLog)[:bufSize]
}

func (d *Driver) UseProgram(program uint32) {
	d.Record("UseProgram(%d)", program)
}

func (d *Driver) DeleteProgram(program uint32) {
	d.Record("DeleteProgram(%d)", program)
}

func (d *Driver) GenVertexArray() uint32 {
	h := d.handle()
	d.Record("GenVertexArray()=%d", h)
	return h
}

func (d *Driver) BindVertexArray(vao uint32) {
	d.Record("BindVertexArray(%d)", vao)
}

func (d *Driver) DeleteVertexArray(vao uint32) {
	d.Record("DeleteVertexArray(%d)", vao)
}

func (d *Driver) GenBuffer() uint32 {
	h := d.handle()
	d.Record("GenBuffer()=%d", h)
	return h
}

func (d *Driver) BindArrayBuffer(buffer uint32) {
	d.Record("BindArrayBuffer(%d)", buffer)
}

func (d *Driver) StaticBufferData(data []float32) {
	d.Uploaded = slices.Clone(data)
	d.Record("StaticBufferData(%d)", len(data))
}

func (d *Driver) DeleteBuffer(buffer uint32) {
	d.Record("DeleteBuffer(%d)", buffer)
}

func (d *Driver) AttribLocation(program uint32, name string) int32 {
	loc, ok := d.AttribLocations[name]
	if !ok {
		loc = -1
	}
	d.Record("AttribLocation(%d, %s)=%d", program, name, loc)
	return loc
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	d.Record("EnableVertexAttribArray(%d)", index)
}

func (d *Driver) FloatAttribPointer(index uint32, size, stride int32, offset uintptr) {
	d.Record("FloatAttribPointer(%d, %d, %d, %d)", index, size, stride, offset)
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.ClearColour = [4]float32{r, g, b, a}
}

func (d *Driver) ClearColorBuffer() {
	d.Record("Clear")
}

func (d *Driver) DrawTriangles(first, count int32) {
	d.Record("DrawTriangles(%d, %d)", first, count)
}

func (d *Driver) Version() string {
	return "3.3 fake"
}
