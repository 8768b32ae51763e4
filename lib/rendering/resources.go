package rendering

// Resources tracks the GL objects created during setup. Zero handles are
// objects that were never created.
type Resources struct {
	VertexShader   uint32
	FragmentShader uint32
	Program        uint32
	VBO            uint32
	VAO            uint32
}

// Release deletes the program, the fragment shader, the vertex shader,
// the buffer and the vertex array, in that order, and forgets them.
func (r *Resources) Release(d Driver) {
	if r.Program != 0 {
		d.DeleteProgram(r.Program)
	}
	if r.FragmentShader != 0 {
		d.DeleteShader(r.FragmentShader)
	}
	if r.VertexShader != 0 {
		d.DeleteShader(r.VertexShader)
	}
	if r.VBO != 0 {
		d.DeleteBuffer(r.VBO)
	}
	if r.VAO != 0 {
		d.DeleteVertexArray(r.VAO)
	}
	*r = Resources{}
}
