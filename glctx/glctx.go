// Package glctx declares the external GL context the command queue and
// driver invoke against: making a context current, querying its
// capabilities, and the narrow subset of raw OpenGL entry points the
// core needs. No concrete OpenGL-calling implementation lives here;
// cmd/neoglview supplies one backed by go-gl/gl for the example program,
// and tests supply a recording fake.
package glctx

// Context is the GPU context abstraction the render job and driver make
// current before issuing any GL call. Window/surface creation and frame
// presentation are handled by the caller and are out of scope here.
type Context interface {
	// MakeCurrent binds this context to the calling thread.
	MakeCurrent() error

	// DefaultFramebuffer returns the id of the window-system-provided
	// framebuffer (0 on most platforms, non-zero on some embedded/mobile
	// configurations).
	DefaultFramebuffer() uint32

	// PushDebugGroup/PopDebugGroup bracket a region of GL calls with a
	// named debug group, surfaced by GL debuggers/profilers. Both are
	// no-ops when the context has no debug-group extension.
	PushDebugGroup(name string)
	PopDebugGroup()

	// Version reports the context's GL (or GLES) version.
	Version() (major, minor int)

	// UseES reports whether this is an OpenGL ES context, selecting the
	// ES shader preamble and guard defines over the desktop GL ones.
	UseES() bool

	// HasUnpackSubimage reports whether GL_UNPACK_ROW_LENGTH/SKIP_PIXELS/
	// SKIP_ROWS are usable, enabling the glyph atlas's edge-replication
	// upload trick instead of a CPU-side padded copy.
	HasUnpackSubimage() bool

	// SharedWith reports whether this context shares object namespaces
	// (textures, buffers, programs) with other.
	SharedWith(other Context) bool
}

// GL is the subset of raw OpenGL entry points the command queue's
// Execute and the driver's resource calls need. Grouped as a narrow
// interface so package tests can supply a recording fake instead of a
// real context.
type GL interface {
	Enable(cap uint32)
	Disable(cap uint32)
	DepthFunc(fn uint32)
	BlendFunc(sfactor, dfactor uint32)
	BlendEquation(mode uint32)
	Viewport(x, y, w, h int32)
	Scissor(x, y, w, h int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)

	BindFramebuffer(target, fbo uint32)
	GenFramebuffer() uint32
	DeleteFramebuffers(ids []uint32)
	FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32)
	CheckFramebufferStatus(target uint32) uint32

	GenTexture() uint32
	DeleteTextures(ids []uint32)
	BindTexture(target, id uint32)
	ActiveTexture(unit uint32)
	TexImage2D(target uint32, level int32, internalFormat int32, w, h int32, format, xtype uint32, pixels []byte)
	TexSubImage2D(target uint32, level, xoff, yoff, w, h int32, format, xtype uint32, pixels []byte)
	TexParameteri(target, pname uint32, param int32)
	PixelStorei(pname uint32, param int32)
	GenerateMipmap(target uint32)

	GenVertexArray() uint32
	DeleteVertexArrays(ids []uint32)
	BindVertexArray(id uint32)
	GenBuffer() uint32
	DeleteBuffers(ids []uint32)
	BindBuffer(target, id uint32)
	BufferData(target uint32, data []byte, usage uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)
	DrawArrays(mode uint32, first, count int32)

	CreateShader(shaderType uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderCompileStatus(shader uint32) bool
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramLinkStatus(program uint32) bool
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32

	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	Uniform1fv(location int32, values []float32)
	Uniform2fv(location int32, values []float32)
	Uniform3fv(location int32, values []float32)
	Uniform4fv(location int32, values []float32)
	Uniform1i(location int32, v0 int32)
	Uniform2i(location int32, v0, v1 int32)
	Uniform3i(location int32, v0, v1, v2 int32)
	Uniform4i(location int32, v0, v1, v2, v3 int32)
	Uniform1ui(location int32, v0 uint32)
	UniformMatrix4fv(location int32, transpose bool, value *[16]float32)
}

// GL enum values the core references directly. Named here rather than
// imported from a binding package so glctx has no compile-time
// dependency on go-gl/gl; cmd/neoglview's implementation maps these
// onto the real constants, which happen to share the same values per
// the OpenGL registry.
const (
	DepthTest = 0x0B71
	Blend     = 0x0BE2
	ScissorTest = 0x0C11

	LEqual = 0x0203

	Zero             = 0
	One              = 1
	SrcAlpha         = 0x0302
	OneMinusSrcAlpha = 0x0303
	FuncAdd          = 0x8006

	ColorBufferBit = 0x4000
	DepthBufferBit = 0x0100

	Framebuffer      = 0x8D40
	ColorAttachment0 = 0x8CE0
	FramebufferComplete = 0x8CD5

	Texture2D          = 0x0DE1
	TextureMinFilter   = 0x2801
	TextureMagFilter   = 0x2800
	TextureWrapS       = 0x2802
	TextureWrapT       = 0x2803
	Nearest            = 0x2600
	Linear             = 0x2601
	ClampToEdge        = 0x812F
	Texture0           = 0x84C0

	UnpackRowLength = 0x0CF2
	UnpackSkipPixels = 0x0CF4
	UnpackSkipRows   = 0x0CF3
	UnpackAlignment  = 0x0CF5

	ArrayBuffer  = 0x8892
	StreamDraw   = 0x88E0
	Triangles    = 0x0004
	Float        = 0x1406

	VertexShader   = 0x8B31
	FragmentShader = 0x8B30
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82

	R8              = 0x8229
	Rg8             = 0x822B
	Rgb8            = 0x8051
	Rgba8           = 0x8058
	Rgba16F         = 0x881A
	Rgba32F         = 0x8814
	Red             = 0x1903
	Rg              = 0x8227
	Rgb             = 0x1907
	Rgba            = 0x1908
	UnsignedByte    = 0x1401
	HalfFloat       = 0x140B
)
