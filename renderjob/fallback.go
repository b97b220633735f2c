package renderjob

import (
	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/rendernode"
)

// cairoTexture adapts a Cairo node's raw pixel callback to
// rendernode.ExternalTexture so it can go through the same
// driver.LoadTexture upload path as every other texture source.
// Cairo's own ARGB32 surfaces are sRGB and premultiplied; the render
// job assumes Draw returns bytes already in that convention.
type cairoTexture struct {
	pixels []byte
	w, h   int
}

func (t cairoTexture) Width() int                       { return t.w }
func (t cairoTexture) Height() int                       { return t.h }
func (t cairoTexture) Format() rendernode.TextureFormat  { return rendernode.FormatRGBA8 }
func (t cairoTexture) ColorSpace() rendernode.ColorSpace { return rendernode.ColorSpaceSRGB }
func (t cairoTexture) Premultiplied() bool               { return true }
func (t cairoTexture) YFlip() bool                       { return false }
func (t cairoTexture) Pixels() []byte                    { return t.pixels }
func (t cairoTexture) GLID() (uint32, bool)              { return 0, false }

// visitCairo invokes a Cairo node's external rasterizer and draws the
// result as a single textured quad. The callback is re-invoked on
// every visit: Draw's identity carries no stable key the render job
// could cache against (unlike icon.Library's pointer-identity
// ExternalTexture sources), so caching is left to the caller
// (wrap the same Node rather than rebuilding the tree each frame).
func (j *Job) visitCairo(n *rendernode.Node) {
	d := n.AsCairo()
	if d.Draw == nil {
		return
	}
	pixels, w, h := d.Draw(j.scale)
	if w <= 0 || h <= 0 {
		return
	}
	texID := j.drv.LoadTexture(cairoTexture{pixels, w, h}, glctx.Linear, glctx.Linear)
	j.drawTexturedQuad(n.Bounds, texID, 0, 0, 1, 1)
}

// visitGLShader renders a user GLShader node's children offscreen,
// binds each as a texture unit, and draws n.Bounds through the
// compiled program. Args is a shader-specific uniform layout the core
// has no knowledge of (same out-of-scope boundary as GLSL authoring
// itself, spec §1) and is not forwarded; a shader needing custom
// scalar uniforms has to derive them from its own Source() text via
// the combiner instead.
func (j *Job) visitGLShader(n *rendernode.Node) {
	d := n.AsGLShader()
	vertex, fragment := j.programs.CombineShader(d.Shader.Source())
	glProgram, err := j.drv.Registry().LookupShader(d.Shader.Source(), func(string) (string, string) {
		return vertex, fragment
	})
	if err != nil {
		j.visitFallback(n)
		return
	}
	// Registry.LookupShader only compiles and links glProgram; unlike
	// every built-in ProgramKind (registered with its real uniform set
	// before any draw touches it), nothing else ever calls GetProgram
	// for a user shader's GL id. Doing it here, rather than through
	// drv.ProgramLookup's nil-spec fallback, is what makes the
	// u_texture1..4 binds below resolve to real locations instead of
	// silently no-op'ing on an empty Mappings table.
	p := j.store.GetProgram(j.gl, glProgram, userShaderSpecs, false)
	j.applyCommon(p)
	childKeys := [4]int32{KeyChildTex0, KeyChildTex1, KeyChildTex2, KeyChildTex3}
	for i, child := range d.Children {
		if i >= len(childKeys) {
			break
		}
		res, ok := j.renderOffscreen(n, child, offscreenOpts{Filter: attach.FilterLinear, ResetClip: true, IsChild: true})
		if !ok {
			continue
		}
		j.bindTextureAt(p, i, childKeys[i], res.TexID, attach.FilterLinear, attach.FilterLinear)
	}
	w, h := j.currentSize()
	j.queue.BeginDraw(p, w, h)
	v := quad(n.Bounds, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}

// visitFallback handles any node kind (or failed GLShader compile)
// with no specialized visitor: in debug builds it draws a translucent
// red overlay over the node's bounds so a missing path is obvious on
// screen instead of silently vanishing; otherwise it is a no-op.
func (j *Job) visitFallback(n *rendernode.Node) {
	if !j.drv.Config().DebugShaders {
		return
	}
	p := j.programs.Program(ProgFlatColor)
	j.applyCommon(p)
	w, h := j.currentSize()
	j.queue.BeginDraw(p, w, h)
	v := quad(n.Bounds, glm.Vec4{1, 0, 0, 0.5})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}
