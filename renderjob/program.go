package renderjob

import "github.com/gviegas/neogl/uniform"

// ProgramKind names one of the built-in draw programs the render
// job's visitors target. Authoring the GLSL text for each is out of
// scope (spec §1); Programs resolves a kind to a linked GL program an
// external shader-source combiner produced, the same split driver's
// Registry.LookupShader uses for user GLShader nodes.
type ProgramKind int

const (
	ProgColor ProgramKind = iota
	ProgFlatColor
	ProgLinearGradient
	ProgRadialGradient
	ProgConicGradient
	ProgBorderRect
	ProgBorderShader
	ProgInsetShadow
	ProgUnblurredOutsetShadow
	ProgShadowTint
	ProgBlurHorizontal
	ProgBlurVertical
	ProgCrossFade
	ProgBlend
	ProgColorMatrix
	ProgText
	ProgTexture
	ProgRepeat
	ProgFallback
	nProgramKind
)

// Programs resolves each ProgramKind to its compiled *uniform.Program,
// created once and cached by the caller (cmd/neoglview's
// implementation compiles every kind eagerly with
// driver.CompileProgram).
type Programs interface {
	Program(kind ProgramKind) *uniform.Program

	// CombineShader glues a user GLShader node's fragment snippet into
	// a full program source, the same combiner driver.Registry.
	// LookupShader requires of any of its callers (spec §1's "GLSL
	// authoring is out of scope").
	CombineShader(snippet string) (vertex, fragment string)
}

// userShaderSpecs is the uniform set a combined GLShader program
// exposes: the four shared uniforms every built-in program gets plus
// the per-child texture units, named per driver/program.go's
// "u_texture1..4" convention for a user snippet to declare. Args
// (u_arg0..7) are not forwarded (visitGLShader's doc comment), so no
// key exists for them yet.
var userShaderSpecs = []uniform.MappingSpec{
	{Key: int32(uniform.Modelview), Name: "u_modelview", Format: uniform.Matrix},
	{Key: int32(uniform.Projection), Name: "u_projection", Format: uniform.Matrix},
	{Key: int32(uniform.Alpha), Name: "u_alpha", Format: uniform.F1},
	{Key: int32(uniform.ClipRect), Name: "u_clip_rect", Format: uniform.RoundedRect},
	{Key: KeyChildTex0, Name: "u_texture1", Format: uniform.Texture},
	{Key: KeyChildTex1, Name: "u_texture2", Format: uniform.Texture},
	{Key: KeyChildTex2, Name: "u_texture3", Format: uniform.Texture},
	{Key: KeyChildTex3, Name: "u_texture4", Format: uniform.Texture},
}

// Custom uniform keys, valid past the six SharedUniform keys every
// program shares (spec §3.1's 0..31 key space). Each ProgramKind only
// populates the keys its own mapping table actually resolved a GL
// location for; reuse across unrelated programs is intentional, the
// same way gradient stop keys and border width keys never collide
// because they never share a program.
const (
	KeyColor = int32(uniform.Modelview) + 1 + iota
	KeyColor2
	KeyRoundedRect
	KeyWidths
	KeyStopColors
	KeyStopOffsets
	KeyStopCount
	KeyCenter
	KeyRadii
	KeyAngle
	KeyRepeatFlag
	KeyBlurRadius
	KeyOffset
	KeyMode
	KeyMatrix
	KeyMatrixOffset
	KeySource2
	KeySize
	KeySourceUV
	KeyProgress
	KeyChildTex0
	KeyChildTex1
	KeyChildTex2
	KeyChildTex3
)
