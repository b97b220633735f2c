package renderjob

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/glyph"
	"github.com/gviegas/neogl/rendernode"
)

// scaleOf recovers a glyph.Key's fixed-point Scale from a FontID.
// TextData documents FontID as opaque, but the render job and whatever
// external shaper populated the glyph atlas must still agree on a
// Scale to key entries by; the convention adopted here is that the
// shaper packs glyph.ScaleOf's result into FontID's low 16 bits.
func scaleOf(f rendernode.FontID) uint16 { return uint16(f) }

// visitText draws a shaped text run glyph by glyph, switching atlas
// textures with SplitDraw whenever consecutive glyphs land in
// different atlases (spec §4.6.2).
func (j *Job) visitText(n *rendernode.Node) {
	d := n.AsText()
	if len(d.Glyphs) == 0 {
		return
	}
	p := j.programs.Program(ProgText)
	j.applyCommon(p)
	w, h := j.currentSize()
	scale := scaleOf(d.Font)

	var curTex int32 = -1
	started := false
	for _, g := range d.Glyphs {
		x := d.Offset[0] + g.XOffset
		y := d.Offset[1] + g.YOffset
		shiftX := glyph.PhaseOf(x - math32.Floor(x))
		shiftY := glyph.PhaseOf(y - math32.Floor(y))
		key := glyph.Key{Font: d.Font, GID: g.GID, ShiftX: shiftX, ShiftY: shiftY, Scale: scale}
		e, ok := j.glyphs.Lookup(key)
		if !ok {
			continue
		}
		texIdx := e.TextureIdx()
		switch {
		case !started:
			j.bindTexture0(p, j.drv.TextureAt(texIdx).ID, attach.FilterLinear, attach.FilterLinear)
			j.queue.BeginDraw(p, w, h)
			started = true
			curTex = texIdx
		case texIdx != curTex:
			j.queue.SplitDraw(p, w, h)
			j.bindTexture0(p, j.drv.TextureAt(texIdx).ID, attach.FilterLinear, attach.FilterLinear)
			curTex = texIdx
		}
		color := d.Color
		if d.HasColorGlyphs && g.IsColor {
			color = rendernode.ColorGlyphSentinel
		}
		u0, v0, u1, v1 := e.UV()
		r := glm.Rect{X0: x, Y0: y, X1: x + float32(e.Width), Y1: y + float32(e.Height)}
		v := texturedQuad(r, u0, v0, u1, v1, color)
		j.queue.AppendVertices(v[:]...)
	}
	if started {
		j.queue.EndDraw()
	}
}
