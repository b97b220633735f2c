package renderjob

import (
	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/driver"
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/icon"
	"github.com/gviegas/neogl/rendernode"
	"github.com/gviegas/neogl/uniform"
)

// maxIconSize bounds a Texture node's source before it is packed into
// the shared icon atlas instead of getting its own GL texture,
// mirroring icon.Library's own maxEntrySize.
const maxIconSize = 256

// drawTexturedQuad is the common tail of every Texture-like visitor: a
// single textured quad over r sampling [u0,v0]-[u1,v1] of texID.
func (j *Job) drawTexturedQuad(r glm.Rect, texID uint32, u0, v0, u1, v1 float32) {
	p := j.programs.Program(ProgTexture)
	j.applyCommon(p)
	j.bindTexture0(p, texID, attach.FilterLinear, attach.FilterLinear)
	w, h := j.currentSize()
	j.queue.BeginDraw(p, w, h)
	v := texturedQuad(r, u0, v0, u1, v1, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}

// visitTexture draws a Texture node, routing through the icon atlas
// for small sources (so consecutive small textures sharing an icon
// atlas texture can merge), a dedicated upload for sources too large to
// share, and per-tile draws for sources wider or taller than the
// driver's max texture size (spec §4.5).
func (j *Job) visitTexture(n *rendernode.Node) {
	d := n.AsTexture()
	src := d.Source
	if src == nil {
		return
	}
	w, h := src.Width(), src.Height()
	if w <= 0 || h <= 0 {
		return
	}
	maxSize := j.drv.Config().MaxTextureSize
	switch {
	case w > maxSize || h > maxSize:
		j.visitTiledTexture(n, d, maxSize)
	case w <= maxIconSize && h <= maxIconSize:
		j.visitAtlasedTexture(n, d)
	default:
		texID := j.drv.LoadTexture(src, glctx.Linear, glctx.Linear)
		j.drawTexturedQuad(n.Bounds, texID, 0, 0, 1, 1)
	}
}

// visitAtlasedTexture packs d.Source into the icon atlas library on
// first use, blitting the uploaded source texture into the atlas's
// assigned region with a dedicated render pass (icon.Library.Insert
// only performs the packing bookkeeping), then draws the packed entry.
func (j *Job) visitAtlasedTexture(n *rendernode.Node, d rendernode.TextureData) {
	key := icon.NewSourceKey(d.Source)
	entry, ok := j.icons.Lookup(key)
	if !ok {
		w, h := d.Source.Width(), d.Source.Height()
		entry = j.icons.Insert(key, w, h)
		if entry == nil {
			// Atlas exhausted; fall back to a dedicated upload rather
			// than dropping the draw.
			texID := j.drv.LoadTexture(d.Source, glctx.Linear, glctx.Linear)
			j.drawTexturedQuad(n.Bounds, texID, 0, 0, 1, 1)
			return
		}
		srcID := j.drv.LoadTexture(d.Source, glctx.Linear, glctx.Linear)
		j.blitSourceIntoAtlas(entry, srcID)
	}
	u0, v0, u1, v1 := entry.UV()
	texID := j.drv.TextureAt(entry.TextureIdx()).ID
	j.drawTexturedQuad(n.Bounds, texID, u0, v0, u1, v1)
}

// blitSourceIntoAtlas copies srcID into entry's packed region of its
// atlas texture via a one-off framebuffer attached directly to the
// atlas (the atlas texture has no standing render target of its own,
// unlike an offscreen pass's scratch textures).
func (j *Job) blitSourceIntoAtlas(entry *icon.Entry, srcID uint32) {
	atlasTex := j.drv.TextureAt(entry.TextureIdx())
	fbo := j.gl.GenFramebuffer()
	j.gl.BindFramebuffer(glctx.Framebuffer, fbo)
	j.gl.FramebufferTexture2D(glctx.Framebuffer, glctx.ColorAttachment0, glctx.Texture2D, atlasTex.ID, 0)
	rt := driver.RenderTarget{Framebuffer: fbo, TextureID: atlasTex.ID, Width: atlasTex.Width, Height: atlasTex.Height}

	u0, v0, u1, v1 := entry.UV()
	dst := glm.Rect{
		X0: u0 * float32(rt.Width), Y0: v0 * float32(rt.Height),
		X1: u1 * float32(rt.Width), Y1: v1 * float32(rt.Height),
	}
	j.blitRaw(rt, dst, srcID)
	j.gl.DeleteFramebuffers([]uint32{fbo})
}

// blitRaw draws a single textured quad into rt at identity transform,
// full alpha and an unclipped full-target clip rect, saving and
// restoring the job's projection/viewport/framebuffer state around it.
// Used for bookkeeping blits (atlas packing) that must not inherit
// whatever modelview/clip/alpha state the current tree visit left
// active.
func (j *Job) blitRaw(rt driver.RenderTarget, dst glm.Rect, srcID uint32) {
	savedFB := j.attachState.Framebuffer.ID
	savedProj, savedView := j.projection, j.viewport
	savedTW, savedTH := j.targetW, j.targetH

	j.attachState.SetFramebuffer(rt.Framebuffer)
	j.projection = glm.Ortho(0, float32(rt.Width), float32(rt.Height), 0)
	j.viewport = glm.Rect{X0: 0, Y0: 0, X1: float32(rt.Width), Y1: float32(rt.Height)}
	j.targetW, j.targetH = uint16(rt.Width), uint16(rt.Height)

	p := j.programs.Program(ProgTexture)
	var identity glm.Mat3
	identity.I()
	m4 := glm.From3(&identity)
	j.store.SetMatrix(p, int32(uniform.Modelview), j.store.BumpStamp(uniform.Modelview), &m4)
	j.store.SetMatrix(p, int32(uniform.Projection), j.store.BumpStamp(uniform.Projection), &j.projection)
	j.store.Set1F(p, int32(uniform.Alpha), j.store.BumpStamp(uniform.Alpha), 1)
	fullClip := glm.RoundedRect{Bounds: j.viewport}
	j.store.SetRoundedRect(p, int32(uniform.ClipRect), j.store.BumpStamp(uniform.ClipRect), &fullClip)
	j.store.Set4F(p, int32(uniform.Viewport), j.store.BumpStamp(uniform.Viewport),
		j.viewport.X0, j.viewport.Y0, j.viewport.X1, j.viewport.Y1)
	j.bindTexture0(p, srcID, attach.FilterNearest, attach.FilterNearest)

	j.queue.BeginDraw(p, uint16(rt.Width), uint16(rt.Height))
	v := texturedQuad(dst, 0, 0, 1, 1, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()

	j.attachState.SetFramebuffer(savedFB)
	j.projection = savedProj
	j.viewport = savedView
	j.targetW, j.targetH = savedTW, savedTH
	j.store.BumpStamp(uniform.Modelview)
	j.store.BumpStamp(uniform.Projection)
	j.store.BumpStamp(uniform.Alpha)
	j.store.BumpStamp(uniform.ClipRect)
	j.store.BumpStamp(uniform.Viewport)
}

// visitTiledTexture handles a source wider or taller than maxSize by
// slicing its raw RGBA8 pixels into maxSize-bounded tiles, each
// uploaded and drawn as its own quad over the matching fraction of
// n.Bounds. Sources that cannot be sliced this way (anything not
// exposing RGBA8 Pixels, e.g. a shared-context GLID texture) fall
// back to a single oversized upload; the driver clamps or rejects it,
// which is preferable to silently cropping the image.
func (j *Job) visitTiledTexture(n *rendernode.Node, d rendernode.TextureData, maxSize int) {
	src := d.Source
	w, h := src.Width(), src.Height()
	pixels := src.Pixels()
	if pixels == nil || src.Format() != rendernode.FormatRGBA8 || len(pixels) < w*h*4 {
		texID := j.drv.LoadTexture(src, glctx.Linear, glctx.Linear)
		j.drawTexturedQuad(n.Bounds, texID, 0, 0, 1, 1)
		return
	}
	b := n.Bounds
	sx, sy := b.Width()/float32(w), b.Height()/float32(h)
	for y0 := 0; y0 < h; y0 += maxSize {
		y1 := min(y0+maxSize, h)
		for x0 := 0; x0 < w; x0 += maxSize {
			x1 := min(x0+maxSize, w)
			tile := textureTile{src: src, pixels: pixels, fullW: w, x0: x0, y0: y0, w: x1 - x0, h: y1 - y0}
			texID := j.drv.LoadTexture(tile, glctx.Linear, glctx.Linear)
			r := glm.Rect{
				X0: b.X0 + float32(x0)*sx, Y0: b.Y0 + float32(y0)*sy,
				X1: b.X0 + float32(x1)*sx, Y1: b.Y0 + float32(y1)*sy,
			}
			j.drawTexturedQuad(r, texID, 0, 0, 1, 1)
		}
	}
}

// textureTile is a read-only ExternalTexture view over one tile of a
// larger RGBA8 source, used only by visitTiledTexture.
type textureTile struct {
	src             rendernode.ExternalTexture
	pixels          []byte
	fullW, x0, y0   int
	w, h            int
}

func (t textureTile) Width() int                       { return t.w }
func (t textureTile) Height() int                      { return t.h }
func (t textureTile) Format() rendernode.TextureFormat  { return rendernode.FormatRGBA8 }
func (t textureTile) ColorSpace() rendernode.ColorSpace { return t.src.ColorSpace() }
func (t textureTile) Premultiplied() bool               { return t.src.Premultiplied() }
func (t textureTile) YFlip() bool                       { return t.src.YFlip() }
func (t textureTile) GLID() (uint32, bool)              { return 0, false }

func (t textureTile) Pixels() []byte {
	out := make([]byte, t.w*t.h*4)
	stride := t.fullW * 4
	for row := 0; row < t.h; row++ {
		srcOff := (t.y0+row)*stride + t.x0*4
		dstOff := row * t.w * 4
		copy(out[dstOff:dstOff+t.w*4], t.pixels[srcOff:srcOff+t.w*4])
	}
	return out
}

// visitRepeat tiles child across n.Bounds. The child is always
// rasterized once offscreen, whatever its bounds; there is no
// direct-draw path for a child that already fits its repeat cell. The
// repeat itself is left to the texture sampler's wrap mode via
// ProgRepeat, which receives the source rect in normalized texture
// space.
func (j *Job) visitRepeat(n *rendernode.Node) {
	d := n.AsRepeat()
	res, ok := j.renderOffscreen(n, d.Child, offscreenOpts{Filter: attach.FilterLinear, ResetClip: true})
	if !ok {
		return
	}
	p := j.programs.Program(ProgRepeat)
	j.applyCommon(p)
	stamp := j.nextStamp()
	cb := d.ChildBounds
	j.store.Set4F(p, KeySourceUV, stamp, cb.X0, cb.Y0, cb.X1, cb.Y1)
	j.bindTexture0(p, res.TexID, attach.FilterLinear, attach.FilterLinear)
	w, h := j.currentSize()
	j.queue.BeginDraw(p, w, h)
	v := texturedQuad(n.Bounds, res.U0, res.V0, res.U1, res.V1, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
}
