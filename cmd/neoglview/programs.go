package main

import (
	"fmt"

	"github.com/gviegas/neogl/driver"
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/renderjob"
	"github.com/gviegas/neogl/uniform"
)

// programSet implements renderjob.Programs, holding one GL program
// per ProgramKind compiled with driver.CompileProgram (the compile/link
// helper Registry.LookupShader also uses for a user GLShader node) and
// registered with the uniform store. Every kind is compiled eagerly at
// construction: none of this
// demo's draws are conditional on extensions the 3.3 core context
// might lack, so there is no benefit to the lazy path Registry itself
// offers its other callers.
type programSet struct {
	progs [int(renderjob.ProgFallback) + 1]*uniform.Program
}

// maxStops mirrors the cap the gradient visitor(s) enforce on the
// number of color stops a single draw carries.
const maxStops = 6

// baseSpecs is the uniform set vertexSrc and fragPreamble declare
// unconditionally: every program shares these four, in addition to
// whatever kind-specific custom keys its own fragment body adds.
var baseSpecs = []uniform.MappingSpec{
	{Key: int32(uniform.Modelview), Name: "u_modelview", Format: uniform.Matrix},
	{Key: int32(uniform.Projection), Name: "u_projection", Format: uniform.Matrix},
	{Key: int32(uniform.Alpha), Name: "u_alpha", Format: uniform.F1},
	{Key: int32(uniform.ClipRect), Name: "u_clip_rect", Format: uniform.RoundedRect},
}

func withSource(specs ...uniform.MappingSpec) []uniform.MappingSpec {
	out := append([]uniform.MappingSpec{{Key: int32(uniform.Source), Name: "u_source", Format: uniform.Texture}}, specs...)
	return append(append([]uniform.MappingSpec{}, baseSpecs...), out...)
}

func withBase(specs ...uniform.MappingSpec) []uniform.MappingSpec {
	return append(append([]uniform.MappingSpec{}, baseSpecs...), specs...)
}

// kindSource names the fragment body and, where it differs from the
// shared baseSpecs/Source convention, the extra uniform keys a kind's
// visitor actually writes (audited per renderjob/*.go visitor).
type kindSource struct {
	fragment string
	specs    []uniform.MappingSpec
}

func kindSources() map[renderjob.ProgramKind]kindSource {
	return map[renderjob.ProgramKind]kindSource{
		renderjob.ProgColor: {fragColor, withSource()},
		renderjob.ProgFlatColor: {fragColorFlat, withBase()},
		renderjob.ProgBorderRect: {fragColorFlat, withBase()},
		renderjob.ProgLinearGradient: {fragGradientLinear, gradientSpecs()},
		renderjob.ProgRadialGradient: {fragGradientRadial, gradientSpecs()},
		renderjob.ProgConicGradient: {fragGradientConic, gradientSpecs()},
		renderjob.ProgBorderShader: {fragBorder, withBase(
			uniform.MappingSpec{Key: renderjob.KeyRoundedRect, Name: "u_rounded_rect", Format: uniform.RoundedRect},
			uniform.MappingSpec{Key: renderjob.KeyWidths, Name: "u_widths", Format: uniform.F4},
			uniform.MappingSpec{Key: renderjob.KeyColor, Name: "u_color", Format: uniform.F4V, Count: 4},
		)},
		renderjob.ProgInsetShadow: {fragShadowInset, shadowSpecs()},
		renderjob.ProgUnblurredOutsetShadow: {fragShadowOutset, shadowSpecs()},
		renderjob.ProgShadowTint: {fragShadowTint, withSource(
			uniform.MappingSpec{Key: renderjob.KeyColor, Name: "u_color", Format: uniform.Color},
		)},
		renderjob.ProgBlurHorizontal: {fragBlurH, withSource(
			uniform.MappingSpec{Key: renderjob.KeyBlurRadius, Name: "u_blur_radius", Format: uniform.F1},
		)},
		renderjob.ProgBlurVertical: {fragBlurV, withSource(
			uniform.MappingSpec{Key: renderjob.KeyBlurRadius, Name: "u_blur_radius", Format: uniform.F1},
		)},
		renderjob.ProgCrossFade: {fragCrossFade, withSource(
			uniform.MappingSpec{Key: renderjob.KeySource2, Name: "u_source2", Format: uniform.Texture},
			uniform.MappingSpec{Key: renderjob.KeyProgress, Name: "u_progress", Format: uniform.F1},
		)},
		renderjob.ProgBlend: {fragBlend, withSource(
			uniform.MappingSpec{Key: renderjob.KeySource2, Name: "u_source2", Format: uniform.Texture},
			uniform.MappingSpec{Key: renderjob.KeyMode, Name: "u_mode", Format: uniform.I1},
		)},
		renderjob.ProgColorMatrix: {fragColorMatrix, withSource(
			uniform.MappingSpec{Key: renderjob.KeyMatrix, Name: "u_matrix", Format: uniform.Matrix},
			uniform.MappingSpec{Key: renderjob.KeyMatrixOffset, Name: "u_matrix_offset", Format: uniform.F4},
		)},
		renderjob.ProgText: {fragText, withSource()},
		renderjob.ProgTexture: {fragTexture, withSource()},
		renderjob.ProgRepeat: {fragRepeat, withSource(
			uniform.MappingSpec{Key: renderjob.KeySourceUV, Name: "u_source_uv", Format: uniform.F4},
		)},
		renderjob.ProgFallback: {fragColorFlat, withBase()},
	}
}

func gradientSpecs() []uniform.MappingSpec {
	return withBase(
		uniform.MappingSpec{Key: renderjob.KeyStopColors, Name: "u_stop_colors", Format: uniform.F4V, Count: maxStops},
		uniform.MappingSpec{Key: renderjob.KeyStopOffsets, Name: "u_stop_offsets", Format: uniform.F1V, Count: maxStops},
		uniform.MappingSpec{Key: renderjob.KeyStopCount, Name: "u_stop_count", Format: uniform.I1},
		uniform.MappingSpec{Key: renderjob.KeyCenter, Name: "u_center", Format: uniform.F2},
		uniform.MappingSpec{Key: renderjob.KeyOffset, Name: "u_offset", Format: uniform.F2},
		uniform.MappingSpec{Key: renderjob.KeySize, Name: "u_size", Format: uniform.F2},
		uniform.MappingSpec{Key: renderjob.KeyRadii, Name: "u_radii", Format: uniform.F2},
		uniform.MappingSpec{Key: renderjob.KeyAngle, Name: "u_angle", Format: uniform.F1},
		uniform.MappingSpec{Key: renderjob.KeyRepeatFlag, Name: "u_repeat_flag", Format: uniform.I1},
	)
}

func shadowSpecs() []uniform.MappingSpec {
	return withBase(
		uniform.MappingSpec{Key: renderjob.KeyRoundedRect, Name: "u_rounded_rect", Format: uniform.RoundedRect},
		uniform.MappingSpec{Key: renderjob.KeyWidths, Name: "u_widths", Format: uniform.F4},
		uniform.MappingSpec{Key: renderjob.KeyColor, Name: "u_color", Format: uniform.Color},
	)
}

// newProgramSet compiles and registers every ProgramKind's program up
// front; a compile failure is fatal, since a missing program would
// otherwise surface as a confusing nil dereference deep in a visitor.
func newProgramSet(store *uniform.Store, gl glctx.GL) (*programSet, error) {
	ps := &programSet{}
	for kind, src := range kindSources() {
		id, err := driver.CompileProgram(gl, vertexSrc, src.fragment)
		if err != nil {
			return nil, fmt.Errorf("neoglview: compile program %d: %w", kind, err)
		}
		ps.progs[kind] = store.GetProgram(gl, id, src.specs, false)
	}
	return ps, nil
}

func (ps *programSet) Program(kind renderjob.ProgramKind) *uniform.Program {
	return ps.progs[kind]
}

func (ps *programSet) CombineShader(snippet string) (vertex, fragment string) {
	return combineShader(snippet)
}
