package renderjob

import (
	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/rendernode"
)

// visitBlur draws a Blur node: a zero radius is a plain passthrough,
// otherwise the child is rasterized through the two-pass Gaussian
// blur and the result blitted back over n.Bounds grown by the blur
// padding (spec §4.6.4).
func (j *Job) visitBlur(n *rendernode.Node) {
	d := n.AsBlur()
	if d.Radius <= 0 {
		j.visit(d.Child)
		return
	}
	res, ok := j.blur2Pass(n, d.Child, d.Radius)
	if !ok {
		return
	}
	p := j.programs.Program(ProgTexture)
	j.applyCommon(p)
	j.bindTexture0(p, res.TexID, attach.FilterLinear, attach.FilterLinear)
	w, h := j.currentSize()
	j.queue.BeginDraw(p, w, h)
	v := texturedQuad(res.Rect, res.U0, res.V0, res.U1, res.V1, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}

// visitCrossFade renders Start and End offscreen and mixes them by
// Progress in ProgCrossFade's fragment stage (spec §4.6.2); the two
// endpoints bypass the offscreen pass entirely.
func (j *Job) visitCrossFade(n *rendernode.Node) {
	d := n.AsCrossFade()
	if d.Progress <= 0 {
		j.visit(d.Start)
		return
	}
	if d.Progress >= 1 {
		j.visit(d.End)
		return
	}
	start, ok1 := j.renderOffscreen(n, d.Start, offscreenOpts{Filter: attach.FilterLinear, ResetClip: true, IsChild: true})
	end, ok2 := j.renderOffscreen(n, d.End, offscreenOpts{Filter: attach.FilterLinear, ResetClip: true})
	if !ok1 || !ok2 {
		return
	}
	p := j.programs.Program(ProgCrossFade)
	j.applyCommon(p)
	j.store.Set1F(p, KeyProgress, j.nextStamp(), d.Progress)
	j.bindTexture0(p, start.TexID, attach.FilterLinear, attach.FilterLinear)
	j.bindTextureAt(p, 1, KeySource2, end.TexID, attach.FilterLinear, attach.FilterLinear)
	w, h := j.currentSize()
	j.queue.BeginDraw(p, w, h)
	v := texturedQuad(n.Bounds, start.U0, start.V0, start.U1, start.V1, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}

// visitBlend renders Top and Bottom offscreen and composites them
// with ProgBlend's per-Mode CSS mix-blend-mode function.
func (j *Job) visitBlend(n *rendernode.Node) {
	d := n.AsBlend()
	bottom, okB := j.renderOffscreen(n, d.Bottom, offscreenOpts{Filter: attach.FilterLinear, ResetClip: true})
	top, okT := j.renderOffscreen(n, d.Top, offscreenOpts{Filter: attach.FilterLinear, ResetClip: true, IsChild: true})
	if !okB {
		if okT {
			j.visit(d.Top)
		}
		return
	}
	if !okT {
		j.visit(d.Bottom)
		return
	}
	p := j.programs.Program(ProgBlend)
	j.applyCommon(p)
	j.store.Set1I(p, KeyMode, j.nextStamp(), int32(d.Mode))
	j.bindTexture0(p, bottom.TexID, attach.FilterLinear, attach.FilterLinear)
	j.bindTextureAt(p, 1, KeySource2, top.TexID, attach.FilterLinear, attach.FilterLinear)
	w, h := j.currentSize()
	j.queue.BeginDraw(p, w, h)
	v := texturedQuad(n.Bounds, bottom.U0, bottom.V0, bottom.U1, bottom.V1, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}

// visitColorMatrix renders Child offscreen and applies
// `matrix * color + offset` per pixel in ProgColorMatrix's fragment
// stage.
func (j *Job) visitColorMatrix(n *rendernode.Node) {
	d := n.AsColorMatrix()
	res, ok := j.renderOffscreen(n, d.Child, offscreenOpts{Filter: attach.FilterLinear, ResetClip: true})
	if !ok {
		return
	}
	p := j.programs.Program(ProgColorMatrix)
	j.applyCommon(p)
	stamp := j.nextStamp()
	j.store.SetMatrix(p, KeyMatrix, stamp, &d.Matrix)
	j.store.Set4F(p, KeyMatrixOffset, stamp, d.Offset[0], d.Offset[1], d.Offset[2], d.Offset[3])
	j.bindTexture0(p, res.TexID, attach.FilterLinear, attach.FilterLinear)
	w, h := j.currentSize()
	j.queue.BeginDraw(p, w, h)
	v := texturedQuad(res.Rect, res.U0, res.V0, res.U1, res.V1, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}
