package renderjob

import (
	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/gpucmd"
	"github.com/gviegas/neogl/uniform"
)

// applyCommon writes the uniform set every draw program shares
// (alpha, clip rect, viewport, projection, modelview) before a
// visitor calls BeginDraw. w/h is the current render target's size in
// pixels, needed by BeginDraw itself.
func (j *Job) applyCommon(p *uniform.Program) {
	m3 := j.effectiveMat3()
	m4 := glm.From3(&m3)
	j.store.SetMatrix(p, int32(uniform.Modelview), j.store.Stamp(uniform.Modelview), &m4)
	j.store.SetMatrix(p, int32(uniform.Projection), j.store.Stamp(uniform.Projection), &j.projection)
	j.store.Set1F(p, int32(uniform.Alpha), j.store.Stamp(uniform.Alpha), j.alpha)
	j.store.SetRoundedRect(p, int32(uniform.ClipRect), j.store.Stamp(uniform.ClipRect), &j.curClip.Rect)
	j.store.Set4F(p, int32(uniform.Viewport), j.store.Stamp(uniform.Viewport),
		j.viewport.X0, j.viewport.Y0, j.viewport.X1, j.viewport.Y1)
}

// quad builds the six vertices (two triangles) of r, in local node
// space; the modelview uniform set by applyCommon is what maps them
// to clip space.
func quad(r glm.Rect, color glm.Vec4) [6]gpucmd.Vertex {
	tl := gpucmd.Vertex{Pos: glm.Vec2{r.X0, r.Y0}, Color: color}
	tr := gpucmd.Vertex{Pos: glm.Vec2{r.X1, r.Y0}, Color: color}
	bl := gpucmd.Vertex{Pos: glm.Vec2{r.X0, r.Y1}, Color: color}
	br := gpucmd.Vertex{Pos: glm.Vec2{r.X1, r.Y1}, Color: color}
	return [6]gpucmd.Vertex{tl, tr, bl, tr, br, bl}
}

// texturedQuad is quad with a UV rect sampling [u0,v0]-[u1,v1].
func texturedQuad(r glm.Rect, u0, v0, u1, v1 float32, color glm.Vec4) [6]gpucmd.Vertex {
	tl := gpucmd.Vertex{Pos: glm.Vec2{r.X0, r.Y0}, UV: glm.Vec2{u0, v0}, Color: color}
	tr := gpucmd.Vertex{Pos: glm.Vec2{r.X1, r.Y0}, UV: glm.Vec2{u1, v0}, Color: color}
	bl := gpucmd.Vertex{Pos: glm.Vec2{r.X0, r.Y1}, UV: glm.Vec2{u0, v1}, Color: color}
	br := gpucmd.Vertex{Pos: glm.Vec2{r.X1, r.Y1}, UV: glm.Vec2{u1, v1}, Color: color}
	return [6]gpucmd.Vertex{tl, tr, bl, tr, br, bl}
}

// bindTexture0 records texID as unit 0's desired binding under the
// given filter pair and writes the corresponding sampler uniform.
func (j *Job) bindTexture0(p *uniform.Program, texID uint32, min, mag attach.Filter) {
	j.attachState.SetTexture(0, glctx.Texture2D, texID, min, mag)
	j.store.SetTexture(p, int32(uniform.Source), j.store.Stamp(uniform.Source), 0)
}

// bindTextureAt is bindTexture0 for a second (or later) texture unit,
// writing a custom sampler key instead of the shared Source uniform.
func (j *Job) bindTextureAt(p *uniform.Program, unit int, key int32, texID uint32, min, mag attach.Filter) {
	j.attachState.SetTexture(unit, glctx.Texture2D, texID, min, mag)
	j.store.SetTexture(p, key, j.nextStamp(), uint32(unit))
}

// whitePixelResult is the GL-ready form of glyph.WhitePixelEntry: a
// texture id in place of a driver texture-pool index.
type whitePixelResult struct {
	texID              uint32
	u0, v0, u1, v1 float32
}

// whitePixel resolves the glyph library's shared atlas seed pixel to a
// GL texture id, for the Color visitor's atlas-merge optimization.
func (j *Job) whitePixel() (whitePixelResult, bool) {
	e, ok := j.glyphs.WhitePixel()
	if !ok {
		return whitePixelResult{}, false
	}
	texID := j.drv.TextureAt(e.TextureIdx).ID
	return whitePixelResult{texID, e.U0, e.V0, e.U1, e.V1}, true
}

// currentSize returns the active render target's width/height in
// pixels, i.e. the viewport unless an offscreen pass temporarily
// narrowed it (tracked by targetW/targetH).
func (j *Job) currentSize() (uint16, uint16) {
	if j.targetW != 0 || j.targetH != 0 {
		return j.targetW, j.targetH
	}
	return uint16(j.viewport.Width()), uint16(j.viewport.Height())
}
