package renderjob

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/driver"
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/rendernode"
	"github.com/gviegas/neogl/uniform"
)

// offscreenOpts configures a renderOffscreen call (spec §4.6.3).
type offscreenOpts struct {
	// ScaleX, ScaleY apply an extra axis flip/resize before sizing the
	// target, folded into the cache key's scale; zero means 1.
	ScaleX, ScaleY float32

	// Pad enlarges the target bounds by this many local-space units on
	// every side (a blur pass's "radius*2 extra" border).
	Pad float32

	Filter    attach.Filter
	IsChild   bool
	NoCache   bool
	ResetClip bool
}

// offscreenResult is a rendered pass's texture and the UV rect within
// it, plus the world-space rect (post-modelview, pre-pixel-alignment)
// it covers.
type offscreenResult struct {
	TexID          uint32
	U0, V0, U1, V1 float32
	Rect           glm.Rect
	W, H           uint16
}

// renderOffscreen renders n's subtree (rooted at child, which is
// usually n's own child but may be n itself for the blur/fallback
// paths) into a fresh texture sized and aligned per spec §4.6.3,
// returning it unless the node has degenerate (empty) bounds.
func (j *Job) renderOffscreen(n, child *rendernode.Node, opts offscreenOpts) (offscreenResult, bool) {
	extraX, extraY := opts.ScaleX, opts.ScaleY
	if extraX == 0 {
		extraX = 1
	}
	if extraY == 0 {
		extraY = 1
	}

	local := n.Bounds
	if opts.Pad != 0 {
		local = local.Outset(opts.Pad)
	}
	m3 := j.effectiveMat3()
	world := local.Transform(&m3)

	key := driver.TextureKey{
		Node: n, ScaleX: j.scale * extraX, ScaleY: j.scale * extraY,
		Filter: opts.Filter, IsChild: opts.IsChild, ParentBound: world,
	}
	if !opts.NoCache {
		if idx := j.drv.LookupTexture(key); idx >= 0 {
			tex := j.drv.TextureAt(idx)
			return offscreenResult{TexID: tex.ID, U1: 1, V1: 1, Rect: local, W: uint16(tex.Width), H: uint16(tex.Height)}, true
		}
	}

	scaleX, scaleY := j.scale*extraX, j.scale*extraY
	sx0, sx1 := world.X0*scaleX, world.X1*scaleX
	sy0, sy1 := world.Y0*scaleY, world.Y1*scaleY
	lo, hi := sx0, sx1
	if lo > hi {
		lo, hi = hi, lo
	}
	px0, px1 := math32.Floor(lo), math32.Ceil(hi)
	lo, hi = sy0, sy1
	if lo > hi {
		lo, hi = hi, lo
	}
	py0, py1 := math32.Floor(lo), math32.Ceil(hi)

	w, h := int(px1-px0), int(py1-py0)
	if w <= 0 || h <= 0 {
		return offscreenResult{}, false
	}

	maxSize := j.drv.Config().MaxTextureSize
	if w > maxSize || h > maxSize {
		d := float32(maxSize) / float32(max(w, h))
		w, h = int(float32(w)*d), int(float32(h)*d)
		scaleX *= d
		scaleY *= d
		sx0, sx1 = sx0*d, sx1*d
		sy0, sy1 = sy0*d, sy1*d
	}
	if w <= 0 || h <= 0 {
		return offscreenResult{}, false
	}

	rt, texIdx, err := j.drv.CreateRenderTarget(w, h, rendernode.FormatRGBA8, glctx.Linear, glctx.Linear)
	if err != nil {
		return offscreenResult{}, false
	}

	savedFB := j.attachState.Framebuffer.ID
	savedProj := j.projection
	savedViewport := j.viewport
	savedTW, savedTH := j.targetW, j.targetH
	savedClip, savedCurClip := j.clip, j.curClip

	j.attachState.SetFramebuffer(rt.Framebuffer)
	j.queue.Clear(glctx.ColorBufferBit, uint16(w), uint16(h))

	j.projection = glm.Ortho(sx0/scaleX, sx1/scaleX, sy1/scaleY, sy0/scaleY)
	j.viewport = glm.Rect{X0: sx0 / scaleX, Y0: sy0 / scaleY, X1: sx1 / scaleX, Y1: sy1 / scaleY}
	j.targetW, j.targetH = uint16(w), uint16(h)
	if opts.ResetClip {
		j.clip = nil
		j.curClip = rootClip(j.viewport)
	}
	j.store.BumpStamp(uniform.Viewport)
	j.store.BumpStamp(uniform.Projection)
	j.store.BumpStamp(uniform.ClipRect)

	j.visit(child)

	j.attachState.SetFramebuffer(savedFB)
	j.projection = savedProj
	j.viewport = savedViewport
	j.targetW, j.targetH = savedTW, savedTH
	j.clip, j.curClip = savedClip, savedCurClip
	j.store.BumpStamp(uniform.Viewport)
	j.store.BumpStamp(uniform.Projection)
	j.store.BumpStamp(uniform.ClipRect)

	// A one-off pass (NoCache) pools the whole render target for size-
	// based reuse; a cacheable pass keeps only the texture as a stable
	// entry the content key can find again (driver.ReleaseRenderTarget).
	texID := j.drv.ReleaseRenderTarget(rt, opts.NoCache)
	if !opts.NoCache {
		j.drv.CacheTexture(key, texIdx)
	}
	return offscreenResult{TexID: texID, U1: 1, V1: 1, Rect: local, W: uint16(w), H: uint16(h)}, true
}

// blitOffscreen renders child offscreen and composites the result as
// a single textured quad over n.Bounds at the given alpha, the common
// case for Opacity and the clip stack's offscreen fallback.
func (j *Job) blitOffscreen(n, child *rendernode.Node, alpha float32, filter attach.Filter) {
	res, ok := j.renderOffscreen(n, child, offscreenOpts{Filter: filter, ResetClip: true})
	if !ok {
		return
	}
	prev := j.alpha
	j.alpha = prev * alpha
	p := j.programs.Program(ProgTexture)
	j.applyCommon(p)
	j.bindTexture0(p, res.TexID, filter, filter)
	w, h := j.currentSize()
	j.queue.BeginDraw(p, w, h)
	v := texturedQuad(n.Bounds, res.U0, res.V0, res.U1, res.V1, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
	j.alpha = prev
}

// blur2Pass runs the two-pass separable Gaussian blur of spec §4.6.4
// over child's offscreen render, returning a texture covering the
// radius-padded rect.
func (j *Job) blur2Pass(n, child *rendernode.Node, radius float32) (offscreenResult, bool) {
	src, ok := j.renderOffscreen(n, child, offscreenOpts{Pad: radius * 2, Filter: attach.FilterLinear, ResetClip: true})
	if !ok {
		return offscreenResult{}, false
	}

	horiz, _, errH := j.drv.CreateRenderTarget(int(src.W), int(src.H), rendernode.FormatRGBA8, glctx.Linear, glctx.Linear)
	if errH != nil {
		return offscreenResult{}, false
	}
	j.runBlurPass(ProgBlurHorizontal, src.TexID, horiz, radius)
	midTex := j.drv.ReleaseRenderTarget(horiz, true)

	vert, _, errV := j.drv.CreateRenderTarget(int(src.W), int(src.H), rendernode.FormatRGBA8, glctx.Linear, glctx.Linear)
	if errV != nil {
		return offscreenResult{}, false
	}
	j.runBlurPass(ProgBlurVertical, midTex, vert, radius)
	finalTex := j.drv.ReleaseRenderTarget(vert, true)

	return offscreenResult{TexID: finalTex, U1: 1, V1: 1, Rect: src.Rect, W: src.W, H: src.H}, true
}

// runBlurPass draws a fullscreen quad sampling srcTex into rt with one
// of the two blur programs, at an identity modelview and a pixel-space
// projection/clip matching rt's own dimensions: this pass samples an
// already-rendered texture in its own pixel space, unrelated to the
// tree walk's current world transform/clip, the same one-off-pass
// convention blitRaw uses for atlas packing.
func (j *Job) runBlurPass(kind ProgramKind, srcTex uint32, rt driver.RenderTarget, radius float32) {
	savedFB := j.attachState.Framebuffer.ID
	j.attachState.SetFramebuffer(rt.Framebuffer)
	j.queue.Clear(glctx.ColorBufferBit, uint16(rt.Width), uint16(rt.Height))

	p := j.programs.Program(kind)
	full := glm.Rect{X0: 0, Y0: 0, X1: float32(rt.Width), Y1: float32(rt.Height)}
	var identity glm.Mat3
	identity.I()
	m4 := glm.From3(&identity)
	proj := glm.Ortho(0, float32(rt.Width), float32(rt.Height), 0)
	j.store.SetMatrix(p, int32(uniform.Modelview), j.store.BumpStamp(uniform.Modelview), &m4)
	j.store.SetMatrix(p, int32(uniform.Projection), j.store.BumpStamp(uniform.Projection), &proj)
	fullClip := glm.RoundedRect{Bounds: full}
	j.store.SetRoundedRect(p, int32(uniform.ClipRect), j.store.BumpStamp(uniform.ClipRect), &fullClip)
	j.store.Set4F(p, int32(uniform.Viewport), j.store.BumpStamp(uniform.Viewport), full.X0, full.Y0, full.X1, full.Y1)
	j.store.Set1F(p, KeyBlurRadius, j.nextStamp(), radius)
	j.bindTexture0(p, srcTex, attach.FilterLinear, attach.FilterLinear)
	j.store.Set1F(p, int32(uniform.Alpha), j.store.Stamp(uniform.Alpha), j.alpha)

	w, h := uint16(rt.Width), uint16(rt.Height)
	j.queue.BeginDraw(p, w, h)
	v := texturedQuad(full, 0, 0, 1, 1, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()

	j.attachState.SetFramebuffer(savedFB)
	j.store.BumpStamp(uniform.Modelview)
	j.store.BumpStamp(uniform.Projection)
	j.store.BumpStamp(uniform.ClipRect)
	j.store.BumpStamp(uniform.Viewport)
}

// renderClippedOffscreen handles a Clip/RoundedClip node whose child
// bounds neither lie safely inside the current rectilinear clip nor
// can be intersected into a new rectilinear clip, per spec §4.6.1's
// fallback: render the child into its own texture with rr as the
// active clip, then blit it back clipped to the caller's current
// clip, so the rounded outline still composites correctly against
// whatever clip shape is already active.
func (j *Job) renderClippedOffscreen(n *rendernode.Node, rr glm.RoundedRect, child *rendernode.Node) {
	savedClip, savedCurClip := j.clip, j.curClip
	j.clip = nil
	j.curClip = clipFrame{Rect: rr, IsRectilinear: rr.IsRectilinear()}
	res, ok := j.renderOffscreen(n, child, offscreenOpts{Filter: attach.FilterLinear, NoCache: true})
	j.clip, j.curClip = savedClip, savedCurClip
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
