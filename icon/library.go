// Package icon is the icon/texture atlas library (spec §4.5): small
// external textures are packed into shared atlases the same way
// glyphs are, keyed by the identity of their source rather than a
// font/glyph pair.
package icon

import (
	"reflect"

	"github.com/gviegas/neogl/driver"
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/rendernode"
)

const (
	atlasSize      = 512
	frontCacheSize = 256
	maxEntrySize   = 256
)

// SourceKey identifies an icon by the identity of the ExternalTexture
// that produced it: packing the same source twice returns the same
// entry, and releasing the source at the caller invalidates it.
type SourceKey struct {
	src rendernode.ExternalTexture
}

// NewSourceKey wraps src for use as a Library key.
func NewSourceKey(src rendernode.ExternalTexture) SourceKey { return SourceKey{src} }

// Entry is a cached, atlas-packed icon.
type Entry struct {
	atlas *driver.Atlas
	ae    *driver.AtlasEntry

	Width, Height int
}

// TextureIdx returns the driver texture-pool index of the atlas this
// entry is packed into.
func (e *Entry) TextureIdx() int32 { return e.atlas.TextureIdx }

// UV returns the entry's normalized atlas coordinates.
func (e *Entry) UV() (x0, y0, x1, y1 float32) {
	return e.ae.X0, e.ae.Y0, e.ae.X1, e.ae.Y1
}

type frontSlot struct {
	key   SourceKey
	entry *Entry
	valid bool
}

// Library is the icon atlas library: same front cache and skyline
// packing as glyph.Library, keyed by source identity instead of a
// font/glyph pair (spec §4.5).
type Library struct {
	drv *driver.Driver
	gl  glctx.GL

	atlases []*driver.Atlas
	entries map[SourceKey]*Entry
	front   [frontCacheSize]frontSlot

	maxFrameAge int64
	frameID     int64
}

// NewLibrary creates an icon atlas library backed by drv.
func NewLibrary(drv *driver.Driver, gl glctx.GL, maxFrameAge int64) *Library {
	return &Library{drv: drv, gl: gl, entries: make(map[SourceKey]*Entry), maxFrameAge: maxFrameAge}
}

// BeginFrame advances the frame counter and runs the shared
// compaction scan.
func (l *Library) BeginFrame(frameID int64) {
	l.frameID = frameID
	l.atlases = driver.CompactAtlases(l.atlases, frameID, l.maxFrameAge, l.dropAtlas)
}

func (l *Library) dropAtlas(texIdx int32) {
	for k, e := range l.entries {
		if e.atlas.TextureIdx == texIdx {
			delete(l.entries, k)
		}
	}
	for i := range l.front {
		if l.front[i].valid && l.front[i].entry.atlas.TextureIdx == texIdx {
			l.front[i].valid = false
		}
	}
}

// Release drops the cached entry for key, e.g. because the caller
// released the underlying source texture.
func (l *Library) Release(key SourceKey) {
	delete(l.entries, key)
	h := key.frontHash()
	if l.front[h].valid && l.front[h].key == key {
		l.front[h].valid = false
	}
}

// Lookup returns the cached entry for key, or ok=false if absent.
func (l *Library) Lookup(key SourceKey) (*Entry, bool) {
	h := key.frontHash()
	if slot := &l.front[h]; slot.valid && slot.key == key {
		slot.entry.ae.Touch(l.frameID)
		return slot.entry, true
	}
	e, ok := l.entries[key]
	if !ok {
		return nil, false
	}
	e.ae.Touch(l.frameID)
	l.front[h] = frontSlot{key: key, entry: e, valid: true}
	return e, true
}

// Insert packs an already-loaded w x h RGBA8 icon (uploaded to a GL
// texture the caller owns, e.g. via driver.LoadTexture) into an atlas
// by copying it with a framebuffer blit the render job issues; this
// only performs the bookkeeping side (packing, caching) and returns
// where the caller should blit the source into.
func (l *Library) Insert(key SourceKey, w, h int) *Entry {
	var e *Entry
	if w > maxEntrySize || h > maxEntrySize {
		e = l.allocateDedicated(w, h)
	} else {
		e = l.allocateShared(w, h)
	}
	if e == nil {
		return nil
	}
	l.entries[key] = e
	l.front[key.frontHash()] = frontSlot{key: key, entry: e, valid: true}
	return e
}

func (l *Library) allocateShared(w, h int) *Entry {
	for _, a := range l.atlases {
		if ae, ok := a.Allocate(w, h, l.frameID); ok {
			return &Entry{atlas: a, ae: ae, Width: w, Height: h}
		}
	}
	a := l.newAtlas(atlasSize, atlasSize)
	ae, ok := a.Allocate(w, h, l.frameID)
	if !ok {
		return nil
	}
	return &Entry{atlas: a, ae: ae, Width: w, Height: h}
}

func (l *Library) allocateDedicated(w, h int) *Entry {
	a := l.newAtlas(w, h)
	ae, ok := a.Allocate(w, h, l.frameID)
	if !ok {
		return nil
	}
	return &Entry{atlas: a, ae: ae, Width: w, Height: h}
}

func (l *Library) newAtlas(w, h int) *driver.Atlas {
	texIdx := l.drv.CreateTexture(w, h, rendernode.FormatRGBA8, glctx.Linear, glctx.Linear)
	l.drv.TextureAt(texIdx).Permanent = true
	a := driver.NewAtlas(texIdx, w, h)
	l.atlases = append(l.atlases, a)
	return a
}

// frontHash indexes the 256-entry front cache by source identity.
// ExternalTexture implementations are expected to be pointer types
// (spec §4.5: "key: the source texture pointer"), so reflect.Value's
// Pointer gives a stable identity to hash.
func (k SourceKey) frontHash() uint8 {
	p := uint64(reflect.ValueOf(k.src).Pointer())
	h := p*2654435761 + (p >> 17)
	return uint8(h >> 24)
}
