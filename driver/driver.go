// Package driver implements the Driver / Resource Cache: the owner of
// every GPU resource that outlives a single frame (textures, render
// targets, compiled programs) and the per-frame pools that recycle
// them.
//
// Not safe for concurrent use; a Driver is owned by the single thread
// driving the GL context for a frame.
package driver

import (
	"fmt"

	"github.com/gviegas/neogl"
	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/gpucmd"
	"github.com/gviegas/neogl/rendernode"
	"github.com/gviegas/neogl/uniform"
)

// Driver owns the texture and render-target pools, the texture-key
// cache, and the compiled-program registry.
type Driver struct {
	cfg Config

	gl    glctx.GL
	store *uniform.Store
	attach *attach.State

	sharedQueue *gpucmd.Queue
	curQueue    *gpucmd.Queue

	textures pool[Texture]
	targets  pool[pooledRT]

	byKey    map[TextureKey]int32 // -> textures index
	keyOf    map[int32]TextureKey

	reg *Registry

	frameID  int64
	toDelFB  []uint32
	toDelTex []uint32

	warnedSize bool
}

// New creates a Driver sharing store and attachment state with the
// command queue it will execute against, and owning queue as its
// shared (default) per-frame queue.
func New(gl glctx.GL, store *uniform.Store, state *attach.State, queue *gpucmd.Queue, cfg Config) *Driver {
	return &Driver{
		cfg:         cfg,
		gl:          gl,
		store:       store,
		attach:      state,
		sharedQueue: queue,
		curQueue:    queue,
		byKey:       make(map[TextureKey]int32),
		keyOf:       make(map[int32]TextureKey),
		reg:         newRegistry(store, gl),
	}
}

// Registry exposes the program registry for callers that need to
// compile ad hoc shaders (e.g. the render job's GLShader node).
func (d *Driver) Registry() *Registry { return d.reg }

// Config returns the configuration d was created with, letting
// callers (e.g. the render job's offscreen pass) read MaxTextureSize
// without duplicating it.
func (d *Driver) Config() Config { return d.cfg }

// ProgramLookup satisfies gpucmd.ProgramLookup.
func (d *Driver) ProgramLookup(glProgram uint32) *uniform.Program {
	return d.store.GetProgram(d.gl, glProgram, nil, false)
}

// BeginFrame advances the frame counter, optionally switches to a
// caller-supplied queue for this frame, and frees every texture that
// is neither permanent nor referenced and was last used no later than
// the previous frame (the eviction watermark), before new allocations
// this frame.
func (d *Driver) BeginFrame(queue *gpucmd.Queue) {
	d.frameID++
	if queue != nil {
		d.curQueue = queue
	} else {
		d.curQueue = d.sharedQueue
	}
	watermark := d.frameID - 1
	d.textures.each(func(idx int32, t *Texture) {
		if t.evictable(watermark) {
			d.releaseTextureLocked(idx)
		}
	})
}

// EndFrame marks the end of recording; the queue swap back to shared
// is deferred to AfterFrame so pool draining happens after execution.
func (d *Driver) EndFrame() {}

// AfterFrame drains the render-target pool, deletes every pooled FBO
// and texture in one batched call each, and swaps the queue back to
// shared.
func (d *Driver) AfterFrame() {
	var drained []int32
	d.targets.each(func(idx int32, p *pooledRT) {
		d.toDelFB = append(d.toDelFB, p.rt.Framebuffer)
		d.toDelTex = append(d.toDelTex, p.rt.TextureID)
		drained = append(drained, idx)
	})
	for _, idx := range drained {
		d.targets.free(idx)
	}

	if len(d.toDelFB) > 0 {
		d.gl.DeleteFramebuffers(d.toDelFB)
		d.toDelFB = d.toDelFB[:0]
	}
	if len(d.toDelTex) > 0 {
		d.gl.DeleteTextures(d.toDelTex)
		d.toDelTex = d.toDelTex[:0]
	}
	d.curQueue = d.sharedQueue
}

// CreateTexture allocates a GL texture of the given size and format,
// clamping to Config.MaxTextureSize with a one-time warning.
func (d *Driver) CreateTexture(w, h int, format rendernode.TextureFormat, min, mag int32) int32 {
	if w > d.cfg.MaxTextureSize || h > d.cfg.MaxTextureSize {
		if !d.warnedSize {
			neogl.Logger().Warn("driver: texture size exceeds max_texture_size, clamping",
				"width", w, "height", h, "max", d.cfg.MaxTextureSize)
			d.warnedSize = true
		}
		if w > d.cfg.MaxTextureSize {
			w = d.cfg.MaxTextureSize
		}
		if h > d.cfg.MaxTextureSize {
			h = d.cfg.MaxTextureSize
		}
	}
	id := d.gl.GenTexture()
	d.gl.BindTexture(glctx.Texture2D, id)
	internal, glFmt, xtype, ok := glFormat(format)
	if !ok {
		internal, glFmt, xtype, _ = glFormat(rendernode.FormatRGBA8)
	}
	d.gl.TexImage2D(glctx.Texture2D, 0, internal, int32(w), int32(h), glFmt, xtype, nil)
	d.gl.TexParameteri(glctx.Texture2D, glctx.TextureMinFilter, min)
	d.gl.TexParameteri(glctx.Texture2D, glctx.TextureMagFilter, mag)
	d.gl.TexParameteri(glctx.Texture2D, glctx.TextureWrapS, glctx.ClampToEdge)
	d.gl.TexParameteri(glctx.Texture2D, glctx.TextureWrapT, glctx.ClampToEdge)

	idx := d.textures.alloc()
	*d.textures.at(idx) = Texture{
		ID: id, Width: w, Height: h, Format: format,
		MinFilter: min, MagFilter: mag,
		LastUsedFrame: d.frameID,
	}
	return idx
}

// CreateRenderTarget creates a texture and a framebuffer that targets
// it as COLOR_ATTACHMENT0, checking completeness. The returned index
// is the texture's pool index, usable with CacheTexture once the
// caller knows the render target's content is worth keying (e.g. the
// render job's offscreen pass, spec §4.6.3).
func (d *Driver) CreateRenderTarget(w, h int, format rendernode.TextureFormat, min, mag int32) (RenderTarget, int32, error) {
	if rt, ok := d.AcquirePooledRenderTarget(w, h, min, mag); ok {
		idx := -1
		d.textures.each(func(i int32, t *Texture) {
			if idx < 0 && t.ID == rt.TextureID {
				idx = int(i)
			}
		})
		if idx >= 0 {
			tex := d.textures.at(int32(idx))
			tex.Referenced = true
			tex.LastUsedFrame = d.frameID
			return rt, int32(idx), nil
		}
		// The pooled target's texture fell out of the texture pool
		// (e.g. evicted while unreferenced); fall through and create
		// a fresh one instead of handing back a dangling index.
		d.gl.DeleteFramebuffers([]uint32{rt.Framebuffer})
		d.gl.DeleteTextures([]uint32{rt.TextureID})
	}

	texIdx := d.CreateTexture(w, h, format, min, mag)
	tex := d.textures.at(texIdx)
	tex.Referenced = true

	fbo := d.gl.GenFramebuffer()
	d.gl.BindFramebuffer(glctx.Framebuffer, fbo)
	d.gl.FramebufferTexture2D(glctx.Framebuffer, glctx.ColorAttachment0, glctx.Texture2D, tex.ID, 0)
	if status := d.gl.CheckFramebufferStatus(glctx.Framebuffer); status != glctx.FramebufferComplete {
		d.gl.DeleteFramebuffers([]uint32{fbo})
		d.releaseTextureLocked(texIdx)
		err := fmt.Errorf("driver: incomplete framebuffer (status 0x%x)", status)
		neogl.Logger().Warn("driver: render target creation failed", "error", err)
		return RenderTarget{}, -1, err
	}
	return RenderTarget{
		Framebuffer: fbo, TextureID: tex.ID,
		Width: w, Height: h,
		MinFilter: min, MagFilter: mag,
	}, texIdx, nil
}

// ReleaseRenderTarget releases rt. When keepTexture is false the
// texture becomes a live cache entry and the FBO is queued for
// deletion; when true the whole render target is pushed to a reuse
// pool and its texture id is returned to the caller, which retains
// ownership.
func (d *Driver) ReleaseRenderTarget(rt RenderTarget, keepTexture bool) uint32 {
	if keepTexture {
		idx := d.targets.alloc()
		*d.targets.at(idx) = pooledRT{rt: rt, age: d.frameID}
		return rt.TextureID
	}
	d.toDelFB = append(d.toDelFB, rt.Framebuffer)
	// The texture outlives the FBO as a plain cache entry; the caller
	// is responsible for CacheTexture-ing it if it wants it found
	// again, otherwise it leaks into the eviction path as
	// unreferenced and gets swept next frame.
	d.textures.each(func(idx int32, t *Texture) {
		if t.ID == rt.TextureID {
			t.Referenced = false
			t.LastUsedFrame = d.frameID
		}
	})
	return rt.TextureID
}

// AcquirePooledRenderTarget returns a previously kept render target
// matching w, h and the min/mag filters exactly (the format is not
// compared), removing it from the reuse pool,
// or ok=false if none matches.
func (d *Driver) AcquirePooledRenderTarget(w, h int, min, mag int32) (rt RenderTarget, ok bool) {
	var found int32 = -1
	d.targets.each(func(idx int32, p *pooledRT) {
		if found < 0 && p.rt.Width == w && p.rt.Height == h &&
			p.rt.MinFilter == min && p.rt.MagFilter == mag {
			found = idx
		}
	})
	if found < 0 {
		return RenderTarget{}, false
	}
	rt = d.targets.at(found).rt
	d.targets.free(found)
	return rt, true
}

// LoadTexture returns a GPU texture id usable directly for src,
// uploading and converting as needed. LoadTexture keeps no cache of
// earlier uploads: every call for a source without a directly usable
// GL id uploads a new texture.
func (d *Driver) LoadTexture(src rendernode.ExternalTexture, min, mag int32) uint32 {
	if id, ok := src.GLID(); ok && src.ColorSpace() == rendernode.ColorSpaceLinear && src.Premultiplied() {
		return id
	}

	w, h := src.Width(), src.Height()
	pixels := src.Pixels()
	format := src.Format()
	_, _, _, ok := glFormat(format)
	if !ok {
		pixels = toRGBA8(pixels, w, h, format)
		format = rendernode.FormatRGBA8
	}

	idx := d.CreateTexture(w, h, format, min, mag)
	tex := d.textures.at(idx)
	internal, glFmt, xtype, _ := glFormat(format)
	d.gl.BindTexture(glctx.Texture2D, tex.ID)
	d.gl.TexImage2D(glctx.Texture2D, 0, internal, int32(w), int32(h), glFmt, xtype, pixels)

	needsConv := src.ColorSpace() != rendernode.ColorSpaceLinear || !src.Premultiplied()
	if !needsConv {
		return tex.ID
	}

	conv := ConvLinearizePremultiply
	switch {
	case src.ColorSpace() != rendernode.ColorSpaceLinear && src.Premultiplied():
		conv = ConvLinearize
	case src.ColorSpace() == rendernode.ColorSpaceLinear && !src.Premultiplied():
		conv = ConvPremultiply
	}
	converted, err := d.runConversion(tex.ID, w, h, conv)
	if err != nil {
		neogl.Logger().Warn("driver: texture conversion pass failed, using source directly", "error", err)
		return tex.ID
	}
	d.releaseTextureLocked(idx)
	return converted
}

// runConversion renders srcTex through conv into a fresh render
// target and returns the resulting texture id, releasing the render
// target while keeping its texture (keep_texture = true per §4.4).
func (d *Driver) runConversion(srcTex uint32, w, h int, conv ConvProgram) (uint32, error) {
	_, prog, err := d.reg.conversionProgram(conv)
	if err != nil {
		return 0, err
	}
	rt, _, err := d.CreateRenderTarget(w, h, rendernode.FormatRGBA8, glctx.Linear, glctx.Linear)
	if err != nil {
		return 0, err
	}
	d.attach.SetFramebuffer(rt.Framebuffer)
	d.attach.SetTexture(0, glctx.Texture2D, srcTex, attach.FilterLinear, attach.FilterLinear)
	d.store.SetTexture(prog, int32(uniform.Source), d.store.Stamp(uniform.Source), 0)
	d.store.Set1F(prog, int32(uniform.Alpha), d.store.Stamp(uniform.Alpha), 1)

	d.curQueue.BeginDraw(prog, uint16(w), uint16(h))
	fullscreenQuad(d.curQueue, w, h)
	d.curQueue.EndDraw()

	return d.ReleaseRenderTarget(rt, true), nil
}

// fullscreenQuad appends the two triangles of a (0,0)-(w,h) quad with
// full-extent UVs, used by the internal conversion passes.
func fullscreenQuad(q *gpucmd.Queue, w, h int) {
	fw, fh := float32(w), float32(h)
	tl := gpucmd.Vertex{Pos: glm.Vec2{0, 0}, UV: glm.Vec2{0, 0}}
	tr := gpucmd.Vertex{Pos: glm.Vec2{fw, 0}, UV: glm.Vec2{1, 0}}
	bl := gpucmd.Vertex{Pos: glm.Vec2{0, fh}, UV: glm.Vec2{0, 1}}
	br := gpucmd.Vertex{Pos: glm.Vec2{fw, fh}, UV: glm.Vec2{1, 1}}
	q.AppendVertices(tl, tr, bl, tr, br, bl)
}

// CacheTexture inserts a key -> id entry and its reverse mapping.
func (d *Driver) CacheTexture(key TextureKey, idx int32) {
	d.byKey[key] = idx
	d.keyOf[idx] = key
}

// LookupTexture returns the cached texture index for key, or -1.
func (d *Driver) LookupTexture(key TextureKey) int32 {
	if idx, ok := d.byKey[key]; ok {
		d.textures.at(idx).LastUsedFrame = d.frameID
		return idx
	}
	return -1
}

// TextureAt returns a pointer to the texture stored at idx.
func (d *Driver) TextureAt(idx int32) *Texture { return d.textures.at(idx) }

// releaseTextureLocked frees idx's GL texture (queued, batched) and
// drops its key-cache entry if present.
func (d *Driver) releaseTextureLocked(idx int32) {
	t := d.textures.at(idx)
	if t.ID != 0 {
		d.toDelTex = append(d.toDelTex, t.ID)
		d.toDelTex = append(d.toDelTex, t.Slices...)
	}
	if key, ok := d.keyOf[idx]; ok {
		delete(d.byKey, key)
		delete(d.keyOf, idx)
	}
	d.textures.free(idx)
}
