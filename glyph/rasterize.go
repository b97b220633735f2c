package glyph

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gviegas/neogl/rendernode"
)

// Bitmap is a rasterized glyph: an 8-bit alpha coverage mask plus the
// pixel rect it occupies, with no padding border (the atlas store adds
// that on upload).
type Bitmap struct {
	Mask *image.Alpha
	Rect image.Rectangle
}

// Rasterize renders gid at ppem (pixels per em), offsetting the draw
// by a sub-pixel phase in [0,1) on each axis so the resulting coverage
// matches the requested Key.ShiftX/ShiftY bucket.
//
// Grounded on gogpu-gg's RasterizeGlyph; golang.org/x/image/font keys
// glyph lookup by rune rather than glyph index, so like the reference
// this treats gid as a rune code point. That is exact for simple
// faces where shaping hasn't remapped codepoints to ligature or
// contextual glyph indices; callers needing exact GID-addressed
// rasterization should supply a Face whose font never reorders glyphs
// relative to its cmap.
func Rasterize(src []byte, gid rendernode.GlyphID, ppem float64, fracX, fracY float64) (*Bitmap, error) {
	otFont, err := opentype.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}
	otFace, err := opentype.NewFace(otFont, &opentype.FaceOptions{
		Size:    ppem,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: new face: %w", err)
	}
	defer otFace.Close()

	bounds, _, ok := otFace.GlyphBounds(rune(gid))
	if !ok {
		return nil, fmt.Errorf("glyph: no bounds for gid %d", gid)
	}

	phaseX := fixed.Int26_6(fracX * 64)
	phaseY := fixed.Int26_6(fracY * 64)
	minX := int(bounds.Min.X+phaseX) >> 6
	minY := int(bounds.Min.Y+phaseY) >> 6
	maxX := int(bounds.Max.X+phaseX+63) >> 6
	maxY := int(bounds.Max.Y+phaseY+63) >> 6
	rect := image.Rect(minX, minY, maxX, maxY)
	if rect.Empty() {
		return &Bitmap{Mask: image.NewAlpha(image.Rect(0, 0, 1, 1)), Rect: image.Rect(0, 0, 1, 1)}, nil
	}

	mask := image.NewAlpha(rect)
	drawer := &font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: otFace,
		Dot:  fixed.Point26_6{X: -bounds.Min.X + phaseX, Y: -bounds.Min.Y + phaseY},
	}
	drawer.DrawString(string(rune(gid)))

	return &Bitmap{Mask: mask, Rect: rect}, nil
}
