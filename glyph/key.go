// Package glyph is the glyph atlas library (spec §4.5): it shapes text
// through a pluggable Shaper, rasterizes individual glyphs, and packs
// the resulting bitmaps into shared atlas textures owned by a
// driver.Driver.
package glyph

import "github.com/gviegas/neogl/rendernode"

// Key identifies one rasterized glyph instance: a font, a glyph index,
// the sub-pixel phase the glyph was rendered at, and a fixed-point
// scale. Four glyphs of the same font/size/gid can be cached
// independently, one per sub-pixel shift, so that bilinear sampling
// lands on correctly hinted coverage at any fractional pen position.
type Key struct {
	Font   rendernode.FontID
	GID    rendernode.GlyphID
	ShiftX uint8 // 0-3, quarter-pixel sub-pixel phase in x
	ShiftY uint8 // 0-3, quarter-pixel sub-pixel phase in y
	Scale  uint16 // font size * 1024
}

// frontHash indexes the 256-entry front cache. Mixing only GID and
// ShiftX matches spec §4.5 ("a hash of the glyph id and x-shift");
// Font/Scale/ShiftY collisions are resolved by the equality check the
// caller performs against the stored key.
func (k Key) frontHash() uint8 {
	h := uint32(k.GID)*2654435761 + uint32(k.ShiftX)
	return uint8(h >> 24)
}

// PhaseOf quantizes a fractional pen-position offset (in [0,1)) into
// one of the four sub-pixel shift buckets a Key records.
func PhaseOf(frac float32) uint8 {
	if frac < 0 {
		frac = 0
	}
	s := uint8(frac * 4)
	if s > 3 {
		s = 3
	}
	return s
}

// ScaleOf converts an em size in pixels to a Key's fixed-point Scale.
func ScaleOf(size float32) uint16 {
	return uint16(size * 1024)
}
