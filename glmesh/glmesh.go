// Package glmesh uploads moss buffers into OpenGL 3.3 core buffer objects.
//
// Upload creates the GL-side mesh once; UpdateQuads re-uploads only a dirty
// quad range with BufferSubData, which is the whole point of the builder's
// stable slot layout. All calls must run on the thread owning the GL
// context.
package glmesh

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/moss"
)

// Canonical vertex layout: pos2 + uv2 + color4 => 8 floats, tightly packed.
const (
	vertexStride = 8 * 4
	posOffset    = 0
	uvOffset     = 2 * 4
	colorOffset  = 4 * 4
)

// StaticMesh owns the GL objects for one uploaded builder.
type StaticMesh struct {
	vao, vbo, ebo uint32
	vertexCount   int
	indexCount    int
	vpq           int
}

// Upload creates the VAO, VBO and, for indexed builders, the EBO holding the
// builder's current contents. Buffers are STATIC_DRAW; later edits go
// through UpdateQuads.
func Upload(b *moss.Builder[moss.Vertex]) (*StaticMesh, error) {
	verts, inds := b.Finalize()
	if len(verts) == 0 {
		return nil, fmt.Errorf("%w: empty builder", moss.ErrInvalidCapacity)
	}
	m := &StaticMesh{
		vertexCount: len(verts),
		indexCount:  len(inds),
		vpq:         b.VerticesPerQuad(),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*vertexStride, gl.Ptr(verts), gl.STATIC_DRAW)

	// layout(location = 0) in vec2 aPos;
	// layout(location = 1) in vec2 aUV;
	// layout(location = 2) in vec4 aColor;
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(posOffset)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(uvOffset)))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(colorOffset)))

	if inds != nil {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(inds)*4, gl.Ptr(inds), gl.STATIC_DRAW)
	}

	// The VAO keeps the EBO binding, so unbind the VAO first.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if inds != nil {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	}
	return m, nil
}

// QuadRange returns the vertex sub-view covering count quads from first.
func QuadRange(b *moss.Builder[moss.Vertex], first, count int) ([]moss.Vertex, error) {
	vpq := b.VerticesPerQuad()
	return b.VerticesRange(first*vpq, (first+count)*vpq)
}

// UpdateQuads re-uploads the vertex range covering quads [first, first+count).
// A zero count is a no-op.
func (m *StaticMesh) UpdateQuads(b *moss.Builder[moss.Vertex], first, count int) error {
	view, err := QuadRange(b, first, count)
	if err != nil {
		return err
	}
	if len(view) == 0 {
		// gl.Ptr panics on empty slices, and there is nothing to upload.
		return nil
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, first*m.vpq*vertexStride, len(view)*vertexStride, gl.Ptr(view))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// Draw issues the mesh's single draw call. A pipeline must be in use and the
// atlas texture bound.
func (m *StaticMesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.ebo != 0 {
		gl.DrawElements(gl.TRIANGLES, int32(m.indexCount), gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(m.vertexCount))
	}
	gl.BindVertexArray(0)
}

// Destroy releases the GL objects.
func (m *StaticMesh) Destroy() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	m.vao, m.vbo, m.ebo = 0, 0, 0
}

// Texture is an RGBA8 texture with atlas-friendly sampling defaults
// (nearest filtering, clamp to edge).
type Texture struct {
	id   uint32
	W, H int
}

// NewTexture uploads tightly packed RGBA8 pixels (row-major, top-left
// origin).
func NewTexture(w, h int, pixels []byte) (*Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", moss.ErrInvalidAtlasSize, w, h)
	}
	if len(pixels) != w*h*4 {
		return nil, fmt.Errorf("texture %dx%d: want %d pixel bytes, got %d", w, h, w*h*4, len(pixels))
	}
	t := &Texture{W: w, H: h}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// Bind makes the texture current on the given unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Destroy releases the texture.
func (t *Texture) Destroy() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// Pipeline wraps a compiled and linked shader program.
type Pipeline struct {
	program uint32
}

// NewPipeline compiles and links a vertex/fragment pair. Sources must be
// null-terminated.
func NewPipeline(vsSrc, fsSrc string) (*Pipeline, error) {
	prog, err := makeProgram(vsSrc, fsSrc)
	if err != nil {
		return nil, err
	}
	return &Pipeline{program: prog}, nil
}

// DefaultPipeline builds the stock textured-quad pipeline: position through
// a uVP matrix, atlas sample multiplied by the vertex color.
func DefaultPipeline() (*Pipeline, error) {
	return NewPipeline(vertexSource, fragmentSource)
}

func (p *Pipeline) Use() { gl.UseProgram(p.program) }

// SetMat4 uploads a column-major matrix uniform.
func (p *Pipeline) SetMat4(name string, m mgl32.Mat4) {
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// SetInt uploads an int uniform (sampler units, mostly).
func (p *Pipeline) SetInt(name string, v int32) {
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	gl.Uniform1i(loc, v)
}

// Destroy releases the program.
func (p *Pipeline) Destroy() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}

// --- Shader utilities ---

const vertexSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec2 aUV;
layout(location=2) in vec4 aColor;
uniform mat4 uVP;
out vec2 vUV;
out vec4 vColor;
void main() {
    vUV = aUV;
    vColor = aColor;
    gl_Position = uVP * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const fragmentSource = `
#version 330 core
in vec2 vUV;
in vec4 vColor;
uniform sampler2D uAtlas;
out vec4 FragColor;
void main() {
    FragColor = texture(uAtlas, vUV) * vColor;
}
` + "\x00"

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
