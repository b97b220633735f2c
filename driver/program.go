package driver

import (
	"fmt"

	"github.com/gviegas/neogl"
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/uniform"
)

// ShaderDefines carries the GLSL preprocessor guard set a shader
// source combiner external to this package glues in front of a
// fragment snippet. The core only emits these as data; authoring the
// GLSL text itself is out of scope.
type ShaderDefines struct {
	GL3    bool
	Legacy bool
	GLES   bool
	GLES3  bool
	Debug  bool

	// NoClip and RectClip select the clip-variant guard a draw's
	// current clip shape needs: neither set means a rounded-rect clip
	// test is compiled in.
	NoClip   bool
	RectClip bool

	// Version is the #version directive string (e.g. "330 core",
	// "300 es"), chosen from the context's reported GL version.
	Version string
}

// DefinesFor derives the guard set from a context's capabilities and
// the clip variant a draw needs.
func DefinesFor(ctx glctx.Context, noClip, rectClip bool) ShaderDefines {
	major, minor := ctx.Version()
	d := ShaderDefines{NoClip: noClip, RectClip: rectClip}
	switch {
	case ctx.UseES() && major >= 3:
		d.GLES3 = true
		d.Version = "300 es"
	case ctx.UseES():
		d.GLES = true
		d.Version = "100"
	case major > 3 || (major == 3 && minor >= 2):
		d.GL3 = true
		d.Version = fmt.Sprintf("%d%d0 core", major, minor)
	default:
		d.Legacy = true
		d.Version = "110"
	}
	return d
}

// ConvProgram names one of the three built-in texture-upload
// conversion passes load_texture may need when a source's color space
// or alpha convention does not match the working one (spec §4.4).
type ConvProgram int

const (
	ConvNone ConvProgram = iota
	ConvLinearize
	ConvPremultiply
	ConvLinearizePremultiply
)

// convSources holds the stand-in source for each conversion program;
// the real GLSL text is supplied externally and attached here by a
// shader-source combiner before first use (see RegisterConvSource).
// A conversion with no registered source fails to compile, and
// LoadTexture then logs a warning and uses the unconverted texture;
// DefaultConfig registers no sources.
type convSources struct {
	vertex, fragment [3]string
}

// Registry owns compiled GL programs the driver created: the three
// conversion passes, plus any user shader compiled through
// LookupShader.
type Registry struct {
	store *uniform.Store
	gl    glctx.GL

	conv    [3]uint32 // indexed by ConvProgram-1
	convSrc convSources

	userShaders map[string]uint32 // keyed by the raw fragment snippet
}

func newRegistry(store *uniform.Store, gl glctx.GL) *Registry {
	return &Registry{store: store, gl: gl, userShaders: make(map[string]uint32)}
}

// RegisterConvSource supplies the vertex/fragment GLSL text for one
// conversion program, deferring compilation until first use.
func (r *Registry) RegisterConvSource(p ConvProgram, vertex, fragment string) {
	if p < ConvLinearize || p > ConvLinearizePremultiply {
		return
	}
	i := int(p) - 1
	r.convSrc.vertex[i] = vertex
	r.convSrc.fragment[i] = fragment
}

// conversionProgram returns the GL program id for p, compiling and
// linking it on first use.
func (r *Registry) conversionProgram(p ConvProgram) (uint32, *uniform.Program, error) {
	if p == ConvNone {
		return 0, nil, nil
	}
	i := int(p) - 1
	if r.conv[i] != 0 {
		return r.conv[i], r.store.GetProgram(r.gl, r.conv[i], convMappingSpecs, true), nil
	}
	id, err := CompileProgram(r.gl, r.convSrc.vertex[i], r.convSrc.fragment[i])
	if err != nil {
		return 0, nil, err
	}
	r.conv[i] = id
	return id, r.store.GetProgram(r.gl, id, convMappingSpecs, true), nil
}

// convMappingSpecs is the uniform set every conversion program
// exposes: the source texture unit and the standard alpha multiplier,
// matching the rest of the core's uniform key convention.
var convMappingSpecs = []uniform.MappingSpec{
	{Key: int32(uniform.Source), Name: "u_source", Format: uniform.Texture},
	{Key: int32(uniform.Alpha), Name: "u_alpha", Format: uniform.F1},
}

// LookupShader returns or compiles a GL program for a user-supplied
// fragment snippet combined with the shared preamble (standard uniform
// set: alpha, source, clip_rect, viewport, projection, modelview, plus
// custom uniforms size, texture1..4, arg0..7). combine is the external
// shader-source combiner; LookupShader caches by the raw snippet text
// so repeated GLShader nodes with identical source reuse one program.
func (r *Registry) LookupShader(snippet string, combine func(snippet string) (vertex, fragment string)) (uint32, error) {
	if id, ok := r.userShaders[snippet]; ok {
		return id, nil
	}
	vertex, fragment := combine(snippet)
	id, err := CompileProgram(r.gl, vertex, fragment)
	if err != nil {
		neogl.Logger().Warn("driver: user shader compile/link failed", "error", err)
		return 0, err
	}
	r.userShaders[snippet] = id
	return id, nil
}

// CompileProgram compiles and links a vertex/fragment pair, grounded
// on soypat-glgl's compileSources/compile/ivLogErr pattern, re-
// expressed over glctx.GL instead of a direct go-gl/gl dependency.
func CompileProgram(gl glctx.GL, vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileShader(gl, glctx.VertexShader, vertexSrc)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := compileShader(gl, glctx.FragmentShader, fragmentSrc)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)
	ok := gl.GetProgramLinkStatus(prog)
	log := gl.GetProgramInfoLog(prog)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	if !ok {
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %s", log)
	}
	return prog, nil
}

func compileShader(gl glctx.GL, kind uint32, src string) (uint32, error) {
	id := gl.CreateShader(kind)
	gl.ShaderSource(id, src)
	gl.CompileShader(id)
	if !gl.GetShaderCompileStatus(id) {
		log := gl.GetShaderInfoLog(id)
		gl.DeleteShader(id)
		return 0, fmt.Errorf("compile failed: %s", log)
	}
	return id, nil
}
