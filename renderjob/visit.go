package renderjob

import (
	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/rendernode"
)

// visit dispatches n to its specialized visitor, per the table of
// spec §4.6.2. A nil node is a no-op so callers can pass an optional
// child without a separate nil check.
func (j *Job) visit(n *rendernode.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case rendernode.Color:
		j.visitColor(n)
	case rendernode.LinearGradient, rendernode.RadialGradient, rendernode.ConicGradient:
		j.visitGradient(n)
	case rendernode.Border:
		j.visitBorder(n)
	case rendernode.Clip:
		j.visitClip(n)
	case rendernode.RoundedClip:
		j.visitRoundedClip(n)
	case rendernode.Transform:
		j.visitTransform(n)
	case rendernode.Opacity:
		j.visitOpacity(n)
	case rendernode.Shadow:
		j.visitShadow(n)
	case rendernode.InsetShadow:
		j.visitInsetShadow(n)
	case rendernode.OutsetShadow:
		j.visitOutsetShadow(n)
	case rendernode.Blur:
		j.visitBlur(n)
	case rendernode.CrossFade:
		j.visitCrossFade(n)
	case rendernode.Blend:
		j.visitBlend(n)
	case rendernode.ColorMatrix:
		j.visitColorMatrix(n)
	case rendernode.Text:
		j.visitText(n)
	case rendernode.Texture:
		j.visitTexture(n)
	case rendernode.Repeat:
		j.visitRepeat(n)
	case rendernode.Container:
		j.visitContainer(n)
	case rendernode.Debug:
		j.visit(n.AsDebug().Child)
	case rendernode.Cairo:
		j.visitCairo(n)
	case rendernode.GLShader:
		j.visitGLShader(n)
	default:
		j.visitFallback(n)
	}
}

func (j *Job) visitContainer(n *rendernode.Node) {
	for _, c := range n.AsContainer().Children {
		j.visit(c)
	}
}

// visitColor draws a flat-color rect; fully transparent colors are
// skipped outright (spec §4.6.2). Small rects use ProgColor, sampling
// the glyph library's white seed entry (driver.NewAtlas) instead of
// ProgFlatColor, so consecutive small color rects sharing that atlas
// texture can merge with each other; text (ProgText) and icon
// (ProgTexture) draws use other programs and do not merge with them.
// Larger rects fall
// back to the dedicated flat-color program, for which a merge would
// need no texture at all and so never competes with atlas draws.
func (j *Job) visitColor(n *rendernode.Node) {
	color := n.AsColor().Color
	if color[3] <= 0 {
		return
	}
	const smallRectArea = 64 * 64
	r := n.Bounds
	if white, ok := j.whitePixel(); ok && r.Width()*r.Height() <= smallRectArea {
		p := j.programs.Program(ProgColor)
		j.applyCommon(p)
		j.bindTexture0(p, white.texID, attach.FilterNearest, attach.FilterNearest)
		w, h := j.currentSize()
		j.queue.BeginDraw(p, w, h)
		v := texturedQuad(r, white.u0, white.v0, white.u1, white.v1, color)
		j.queue.AppendVertices(v[:]...)
		j.queue.EndDraw()
		return
	}
	p := j.programs.Program(ProgFlatColor)
	j.applyCommon(p)
	w, h := j.currentSize()
	j.queue.BeginDraw(p, w, h)
	v := quad(r, color)
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}

// visitGradient draws a linear/radial/conic gradient up to 6 stops,
// passed as 5*N floats (spec §4.6.2); beyond that the caller must
// have constructed a Cairo fallback node instead, but a defensive
// check still falls back here rather than overrunning the uniform.
func (j *Job) visitGradient(n *rendernode.Node) {
	d := n.AsGradient()
	const maxStops = 6
	if len(d.Stops) == 0 {
		return
	}
	if len(d.Stops) > maxStops {
		j.visitFallback(n)
		return
	}
	kind := ProgLinearGradient
	switch n.Kind {
	case rendernode.RadialGradient:
		kind = ProgRadialGradient
	case rendernode.ConicGradient:
		kind = ProgConicGradient
	}
	p := j.programs.Program(kind)
	j.applyCommon(p)

	colors := make([]float32, 0, 4*len(d.Stops))
	offsets := make([]float32, 0, len(d.Stops))
	for _, s := range d.Stops {
		colors = append(colors, s.Color[0], s.Color[1], s.Color[2], s.Color[3])
		offsets = append(offsets, s.Offset)
	}
	j.store.Set4FV(p, KeyStopColors, j.nextStamp(), colors)
	j.store.Set1FV(p, KeyStopOffsets, j.nextStamp(), offsets)
	j.store.Set1I(p, KeyStopCount, j.nextStamp(), int32(len(d.Stops)))
	j.store.Set2F(p, KeyCenter, j.nextStamp(), d.Center[0], d.Center[1])
	j.store.Set2F(p, KeyOffset, j.nextStamp(), d.Start[0], d.Start[1])
	j.store.Set2F(p, KeySize, j.nextStamp(), d.End[0], d.End[1])
	j.store.Set2F(p, KeyRadii, j.nextStamp(), d.HRadius, d.VRadius)
	j.store.Set1F(p, KeyAngle, j.nextStamp(), d.Angle)
	if d.Repeat {
		j.store.Set1I(p, KeyRepeatFlag, j.nextStamp(), 1)
	} else {
		j.store.Set1I(p, KeyRepeatFlag, j.nextStamp(), 0)
	}

	w, h := j.currentSize()
	j.queue.BeginDraw(p, w, h)
	v := quad(n.Bounds, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}

// visitOpacity applies an Opacity node per spec §4.6.2: a clear new
// alpha skips the subtree outright, drawing the child directly
// multiplies into the current alpha (every visitor reads j.alpha),
// and anything that cannot tolerate that (a container mixing opaque
// and translucent draws) is rendered offscreen once and blitted.
func (j *Job) visitOpacity(n *rendernode.Node) {
	d := n.AsOpacity()
	if d.Opacity <= 0 {
		return
	}
	if d.Opacity >= 1 {
		j.visit(d.Child)
		return
	}
	if canDrawWithAlpha(d.Child) {
		prev := j.alpha
		j.alpha *= d.Opacity
		j.visit(d.Child)
		j.alpha = prev
		return
	}
	j.blitOffscreen(n, d.Child, d.Opacity, attach.FilterLinear)
}

// visitClip applies a rectangular Clip node's intersection against the
// current clip stack (spec §4.6.1).
func (j *Job) visitClip(n *rendernode.Node) {
	d := n.AsClip()
	j.enterClip(n, glm.RoundedRect{Bounds: d.Rect}, d.Child)
}

// visitRoundedClip is visitClip for an already-rounded outline.
func (j *Job) visitRoundedClip(n *rendernode.Node) {
	d := n.AsRoundedClip()
	j.enterClip(n, d.Rect, d.Child)
}

// visitTransform dispatches on the node's Transform.Category (spec
// §4.6.1): Identity is a plain visit, Translate folds into the pending
// offset, Affine/Twod push a real modelview frame, and anything finer
// (a general 3D transform) has no cheap representation in the 2D
// modelview stack and is rasterized offscreen instead.
func (j *Job) visitTransform(n *rendernode.Node) {
	d := n.AsTransform()
	switch d.T.Category {
	case glm.Identity:
		j.visit(d.Child)
	case glm.Translate:
		j.foldOffset(d.T.DX, d.T.DY, func() { j.visit(d.Child) })
	case glm.Affine, glm.Twod:
		j.pushModelview(d.T)
		j.visit(d.Child)
		j.popModelview()
	default:
		j.blitOffscreen(n, d.Child, 1, attach.FilterLinear)
	}
}

// canDrawWithAlpha reports whether kind's own visitor honors j.alpha
// directly instead of compositing as an opaque unit; every built-in
// visitor here multiplies its color by j.alpha via applyCommon, so
// only a Container, CrossFade or Blend, whose children must blend
// against each other (rather than against the final destination
// independently), needs the offscreen path.
func canDrawWithAlpha(n *rendernode.Node) bool {
	if n == nil {
		return true
	}
	switch n.Kind {
	case rendernode.Container, rendernode.CrossFade, rendernode.Blend:
		return false
	default:
		return true
	}
}
