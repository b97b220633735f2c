package glyph

import (
	"github.com/gviegas/neogl/driver"
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/rendernode"
)

const (
	atlasSize      = 512
	frontCacheSize = 256

	// maxEntrySize bounds a glyph's padded size before it gets a
	// dedicated texture instead of sharing an atlas (spec §4.5's "max
	// entry size").
	maxEntrySize = 256
)

// Entry is a cached, atlas-packed glyph (spec §4.5's "value carries
// the ink rect").
type Entry struct {
	atlas *driver.Atlas
	ae    *driver.AtlasEntry

	// Width, Height are the glyph's ink rect in pixels, excluding the
	// 1-pixel padding border.
	Width, Height int
}

// TextureIdx returns the driver texture-pool index of the atlas this
// entry is packed into.
func (e *Entry) TextureIdx() int32 { return e.atlas.TextureIdx }

// UV returns the entry's normalized atlas coordinates, inset by one
// padding pixel on each side.
func (e *Entry) UV() (x0, y0, x1, y1 float32) {
	return e.ae.X0, e.ae.Y0, e.ae.X1, e.ae.Y1
}

type frontSlot struct {
	key   Key
	entry *Entry
	valid bool
}

// Library is the glyph atlas library: a 256-entry front cache backed by
// a full map, itself backed by a set of shared atlas textures packed
// with driver.Packer (spec §4.5).
type Library struct {
	drv *driver.Driver
	gl  glctx.GL
	ctx glctx.Context

	atlases []*driver.Atlas
	entries map[Key]*Entry
	front   [frontCacheSize]frontSlot

	maxFrameAge int64
	frameID     int64
}

// NewLibrary creates a glyph atlas library backed by drv, using gl for
// texture uploads and ctx to decide whether the edge-replication
// upload trick can use GL's unpack-subimage path.
func NewLibrary(drv *driver.Driver, gl glctx.GL, ctx glctx.Context, maxFrameAge int64) *Library {
	return &Library{drv: drv, gl: gl, ctx: ctx, entries: make(map[Key]*Entry), maxFrameAge: maxFrameAge}
}

// BeginFrame advances the frame counter and runs the shared
// compaction scan, dropping atlases more than half unused and aging
// entries untouched for maxFrameAge frames.
func (s *Library) BeginFrame(frameID int64) {
	s.frameID = frameID
	s.atlases = driver.CompactAtlases(s.atlases, frameID, s.maxFrameAge, s.dropAtlas)
}

func (s *Library) dropAtlas(texIdx int32) {
	for k, e := range s.entries {
		if e.atlas.TextureIdx == texIdx {
			delete(s.entries, k)
		}
	}
	for i := range s.front {
		if s.front[i].valid && s.front[i].entry.atlas.TextureIdx == texIdx {
			s.front[i].valid = false
		}
	}
}

// WhitePixelEntry locates an atlas's shared 3x3 opaque seed pixel
// (driver.NewAtlas), letting the render job's Color visitor sample it
// with the atlas-aware coloring program instead of a dedicated flat
// program, so consecutive small color rects can merge with each
// other (spec §4.6.2); glyph draws use a different program and do not
// merge with them.
type WhitePixelEntry struct {
	TextureIdx             int32
	U0, V0, U1, V1 float32
}

// WhitePixel returns the seed entry of the first atlas created so
// far, or ok=false if none has been created yet.
func (s *Library) WhitePixel() (WhitePixelEntry, bool) {
	for _, a := range s.atlases {
		if e := a.WhitePixel(); e != nil {
			return WhitePixelEntry{a.TextureIdx, e.X0, e.Y0, e.X1, e.Y1}, true
		}
	}
	return WhitePixelEntry{}, false
}

// Lookup returns the cached entry for key, checking the front cache
// first, then falling back to the full map, or ok=false if absent.
func (s *Library) Lookup(key Key) (*Entry, bool) {
	h := key.frontHash()
	if slot := &s.front[h]; slot.valid && slot.key == key {
		slot.entry.ae.Touch(s.frameID)
		return slot.entry, true
	}
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	e.ae.Touch(s.frameID)
	s.front[h] = frontSlot{key: key, entry: e, valid: true}
	return e, true
}

// Insert packs bmp into an atlas (or a dedicated texture when it
// exceeds maxEntrySize) and uploads it with a 1-pixel padding border,
// caching the result under key.
func (s *Library) Insert(key Key, bmp *Bitmap) *Entry {
	w, h := bmp.Rect.Dx(), bmp.Rect.Dy()
	paddedW, paddedH := w+2, h+2

	var e *Entry
	if paddedW > maxEntrySize || paddedH > maxEntrySize {
		e = s.allocateDedicated(paddedW, paddedH, w, h)
	} else {
		e = s.allocateShared(paddedW, paddedH, w, h)
	}
	if e == nil {
		return nil
	}
	s.upload(e, bmp)

	s.entries[key] = e
	s.front[key.frontHash()] = frontSlot{key: key, entry: e, valid: true}
	return e
}

func (s *Library) allocateShared(paddedW, paddedH, w, h int) *Entry {
	for _, a := range s.atlases {
		if ae, ok := a.Allocate(paddedW, paddedH, s.frameID); ok {
			return &Entry{atlas: a, ae: insetEntry(ae, a, w, h), Width: w, Height: h}
		}
	}
	a := s.newAtlas(atlasSize, atlasSize)
	ae, ok := a.Allocate(paddedW, paddedH, s.frameID)
	if !ok {
		return nil
	}
	return &Entry{atlas: a, ae: insetEntry(ae, a, w, h), Width: w, Height: h}
}

func (s *Library) allocateDedicated(paddedW, paddedH, w, h int) *Entry {
	a := s.newAtlas(paddedW, paddedH)
	ae, ok := a.Allocate(paddedW, paddedH, s.frameID)
	if !ok {
		return nil
	}
	return &Entry{atlas: a, ae: insetEntry(ae, a, w, h), Width: w, Height: h}
}

// insetEntry rewrites ae's normalized UVs to exclude the 1-pixel
// padding border the caller packed it with, so sampling never reads
// the replicated edge pixels.
func insetEntry(ae *driver.AtlasEntry, a *driver.Atlas, w, h int) *driver.AtlasEntry {
	x0 := ae.X0*float32(a.Width) + 1
	y0 := ae.Y0*float32(a.Height) + 1
	ae.X0, ae.Y0 = x0/float32(a.Width), y0/float32(a.Height)
	ae.X1, ae.Y1 = (x0+float32(w))/float32(a.Width), (y0+float32(h))/float32(a.Height)
	return ae
}

func (s *Library) newAtlas(w, h int) *driver.Atlas {
	texIdx := s.drv.CreateTexture(w, h, rendernode.FormatR8, glctx.Linear, glctx.Linear)
	s.drv.TextureAt(texIdx).Permanent = true
	a := driver.NewAtlas(texIdx, w, h)
	s.atlases = append(s.atlases, a)
	return a
}

// upload writes bmp into e's packed rectangle, replicating a 1-pixel
// border from the edge pixels so bilinear sampling at the entry's
// boundary never bleeds into an atlas neighbor (spec §4.5).
func (s *Library) upload(e *Entry, bmp *Bitmap) {
	w, h := e.Width, e.Height
	texID := s.drv.TextureAt(e.TextureIdx()).ID
	s.gl.BindTexture(glctx.Texture2D, texID)

	// e.ae's UVs were rewritten to the inset (inner) rect by
	// insetEntry, so its origin is already the interior upload target.
	innerX := int32(e.ae.X0 * float32(e.atlas.Width))
	innerY := int32(e.ae.Y0 * float32(e.atlas.Height))

	pix := bmp.Mask.Pix
	stride := bmp.Mask.Stride

	if w == 0 || h == 0 {
		return
	}

	if !s.ctx.HasUnpackSubimage() {
		s.uploadPadded(texID, innerX, innerY, w, h, pix, stride)
		return
	}

	s.gl.PixelStorei(glctx.UnpackRowLength, int32(stride))
	defer s.gl.PixelStorei(glctx.UnpackRowLength, 0)

	// Interior.
	s.gl.PixelStorei(glctx.UnpackSkipPixels, 0)
	s.gl.PixelStorei(glctx.UnpackSkipRows, 0)
	s.gl.TexSubImage2D(glctx.Texture2D, 0, innerX, innerY, int32(w), int32(h), glctx.Red, glctx.UnsignedByte, pix)

	// Left/right edge columns, replicated one pixel wide.
	s.gl.PixelStorei(glctx.UnpackSkipPixels, 0)
	s.gl.TexSubImage2D(glctx.Texture2D, 0, innerX-1, innerY, 1, int32(h), glctx.Red, glctx.UnsignedByte, pix)
	s.gl.PixelStorei(glctx.UnpackSkipPixels, int32(w-1))
	s.gl.TexSubImage2D(glctx.Texture2D, 0, innerX+int32(w), innerY, 1, int32(h), glctx.Red, glctx.UnsignedByte, pix)

	// Top/bottom edge rows.
	s.gl.PixelStorei(glctx.UnpackSkipPixels, 0)
	s.gl.PixelStorei(glctx.UnpackSkipRows, 0)
	s.gl.TexSubImage2D(glctx.Texture2D, 0, innerX, innerY-1, int32(w), 1, glctx.Red, glctx.UnsignedByte, pix)
	s.gl.PixelStorei(glctx.UnpackSkipRows, int32(h-1))
	s.gl.TexSubImage2D(glctx.Texture2D, 0, innerX, innerY+int32(h), int32(w), 1, glctx.Red, glctx.UnsignedByte, pix)

	// Corners, one pixel each, sourced from the nearest ink corner.
	corner := func(skipX, skipY, dx, dy int32) {
		s.gl.PixelStorei(glctx.UnpackSkipPixels, skipX)
		s.gl.PixelStorei(glctx.UnpackSkipRows, skipY)
		s.gl.TexSubImage2D(glctx.Texture2D, 0, innerX+dx, innerY+dy, 1, 1, glctx.Red, glctx.UnsignedByte, pix)
	}
	corner(0, 0, -1, -1)
	corner(int32(w-1), 0, int32(w), -1)
	corner(0, int32(h-1), -1, int32(h))
	corner(int32(w-1), int32(h-1), int32(w), int32(h))

	s.gl.PixelStorei(glctx.UnpackSkipPixels, 0)
	s.gl.PixelStorei(glctx.UnpackSkipRows, 0)
}

// uploadPadded is the CPU-side fallback for contexts lacking
// UNPACK_ROW_LENGTH/SKIP_*: it builds a single (w+2)x(h+2) buffer with
// the border replicated and uploads it in one call.
func (s *Library) uploadPadded(texID uint32, innerX, innerY int32, w, h int, pix []byte, stride int) {
	padded := make([]byte, (w+2)*(h+2))
	at := func(x, y int) byte {
		if x < 0 {
			x = 0
		}
		if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		}
		if y >= h {
			y = h - 1
		}
		return pix[y*stride+x]
	}
	for y := -1; y <= h; y++ {
		for x := -1; x <= w; x++ {
			padded[(y+1)*(w+2)+(x+1)] = at(x, y)
		}
	}
	s.gl.PixelStorei(glctx.UnpackRowLength, 0)
	s.gl.TexSubImage2D(glctx.Texture2D, 0, innerX-1, innerY-1, int32(w+2), int32(h+2), glctx.Red, glctx.UnsignedByte, padded)
}
