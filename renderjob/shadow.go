package renderjob

import (
	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/rendernode"
	"github.com/gviegas/neogl/uniform"
)

// visitShadow draws a Shadow node's drop-shadows behind its child, in
// back-to-front list order, then draws the child itself on top (spec
// §4.6.2).
func (j *Job) visitShadow(n *rendernode.Node) {
	d := n.AsShadow()
	for _, e := range d.Shadows {
		if e.Radius == 0 && d.Child != nil && d.Child.Kind == rendernode.Text {
			j.drawTextShadow(d.Child, e)
			continue
		}
		j.drawShadowEntry(n, d.Child, e)
	}
	j.visit(d.Child)
}

// drawTextShadow re-shapes an unblurred text shadow as another Text
// visit, tinted and offset, instead of paying for an offscreen pass:
// a text run's own glyph coverage already gives the shadow its shape.
func (j *Job) drawTextShadow(child *rendernode.Node, e rendernode.ShadowEntry) {
	if e.Color[3] <= 0 {
		return
	}
	td := child.AsText()
	bounds := glm.Rect{
		X0: child.Bounds.X0 + e.DX, Y0: child.Bounds.Y0 + e.DY,
		X1: child.Bounds.X1 + e.DX, Y1: child.Bounds.Y1 + e.DY,
	}
	offset := glm.Vec2{td.Offset[0] + e.DX, td.Offset[1] + e.DY}
	shadowNode := rendernode.NewText(bounds, td.Font, td.Glyphs, e.Color, offset)
	j.visit(shadowNode)
}

// drawShadowEntry renders child offscreen (blurred when e.Radius > 0),
// then composites the result tinted to e.Color and offset by DX/DY:
// the common case for an arbitrary-shape shadow.
func (j *Job) drawShadowEntry(n, child *rendernode.Node, e rendernode.ShadowEntry) {
	if e.Color[3] <= 0 {
		return
	}
	var res offscreenResult
	var ok bool
	if e.Radius > 0 {
		res, ok = j.blur2Pass(n, child, e.Radius)
	} else {
		res, ok = j.renderOffscreen(n, child, offscreenOpts{Filter: attach.FilterLinear, ResetClip: true})
	}
	if !ok {
		return
	}
	p := j.programs.Program(ProgShadowTint)
	j.applyCommon(p)
	j.store.SetColor(p, KeyColor, j.nextStamp(), e.Color)
	j.bindTexture0(p, res.TexID, attach.FilterLinear, attach.FilterLinear)
	w, h := j.currentSize()
	r := glm.Rect{X0: res.Rect.X0 + e.DX, Y0: res.Rect.Y0 + e.DY, X1: res.Rect.X1 + e.DX, Y1: res.Rect.Y1 + e.DY}
	j.queue.BeginDraw(p, w, h)
	v := texturedQuad(r, res.U0, res.V0, res.U1, res.V1, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}

// visitInsetShadow draws a shadow cast inward from a rounded-rect
// outline's own edge, entirely in the fragment stage (no offscreen
// pass): ProgInsetShadow evaluates the outline's signed distance and
// folds spread/blur into an analytic falloff.
func (j *Job) visitInsetShadow(n *rendernode.Node) {
	d := n.AsInsetShadow()
	if d.Color[3] <= 0 {
		return
	}
	j.drawShadowShape(j.programs.Program(ProgInsetShadow), d)
}

// visitOutsetShadow draws a shadow cast outward from the outline's
// edge. ProgUnblurredOutsetShadow's name reflects its GSK ancestry
// (that renderer splits blurred/unblurred outset shadows into two
// programs for throughput); here BlurRadius folds into the same
// analytic falloff term as the inset case, with 0 collapsing to the
// unblurred box shadow.
func (j *Job) visitOutsetShadow(n *rendernode.Node) {
	d := n.AsOutsetShadow()
	if d.Color[3] <= 0 {
		return
	}
	j.drawShadowShape(j.programs.Program(ProgUnblurredOutsetShadow), d)
}

func (j *Job) drawShadowShape(p *uniform.Program, d rendernode.InsetOutsetData) {
	j.applyCommon(p)
	stamp := j.nextStamp()
	j.store.SetRoundedRect(p, KeyRoundedRect, stamp, &d.Outline)
	j.store.Set4F(p, KeyWidths, stamp, d.Spread, d.BlurRadius, d.DX, d.DY)
	j.store.SetColor(p, KeyColor, stamp, d.Color)
	w, h := j.currentSize()
	bounds := d.Outline.Bounds.Outset(d.Spread + d.BlurRadius*2)
	j.queue.BeginDraw(p, w, h)
	v := quad(bounds, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}
