package renderjob

import (
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/rendernode"
)

// visitBorder draws a Border node (spec §4.6.2): a rectilinear outline
// needs no fragment-side rounded-rect test, so it is split into four
// flat-color rects; a rounded or skewed outline goes through
// ProgBorderShader, which evaluates the outline's signed distance and
// the per-edge width/color in the fragment stage.
func (j *Job) visitBorder(n *rendernode.Node) {
	d := n.AsBorder()
	if d.Outline.IsRectilinear() {
		j.drawRectilinearBorder(d)
		return
	}
	p := j.programs.Program(ProgBorderShader)
	j.applyCommon(p)
	stamp := j.nextStamp()
	j.store.SetRoundedRect(p, KeyRoundedRect, stamp, &d.Outline)
	j.store.Set4F(p, KeyWidths, stamp, d.Widths[0], d.Widths[1], d.Widths[2], d.Widths[3])
	colors := make([]float32, 0, 16)
	for _, c := range d.Colors {
		colors = append(colors, c[0], c[1], c[2], c[3])
	}
	j.store.Set4FV(p, KeyColor, stamp, colors)
	w, h := j.currentSize()
	j.queue.BeginDraw(p, w, h)
	v := quad(d.Outline.Bounds, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}

// drawRectilinearBorder draws each of the outline's four edges as its
// own flat rect, top and bottom spanning the full width and left/right
// inset by them so adjacent edges never overlap at the corners.
func (j *Job) drawRectilinearBorder(d rendernode.BorderData) {
	b := d.Outline.Bounds
	top, right, bottom, left := d.Widths[0], d.Widths[1], d.Widths[2], d.Widths[3]
	edges := [4]glm.Rect{
		{X0: b.X0, Y0: b.Y0, X1: b.X1, Y1: b.Y0 + top},
		{X0: b.X1 - right, Y0: b.Y0 + top, X1: b.X1, Y1: b.Y1 - bottom},
		{X0: b.X0, Y0: b.Y1 - bottom, X1: b.X1, Y1: b.Y1},
		{X0: b.X0, Y0: b.Y0 + top, X1: b.X0 + left, Y1: b.Y1 - bottom},
	}
	p := j.programs.Program(ProgFlatColor)
	j.applyCommon(p)
	w, h := j.currentSize()
	for i, r := range edges {
		if d.Widths[i] <= 0 || r.IsEmpty() {
			continue
		}
		color := d.Colors[i]
		if color[3] <= 0 {
			continue
		}
		j.queue.BeginDraw(p, w, h)
		v := quad(r, color)
		j.queue.AppendVertices(v[:]...)
		j.queue.EndDraw()
	}
}
