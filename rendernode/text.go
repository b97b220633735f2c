package rendernode

import "github.com/gviegas/neogl/glm"

// FontID opaquely identifies a shaped font resource; its meaning is
// defined by whatever glyph.Shaper produced the glyphs.
type FontID uint64

// GlyphID is a font-specific glyph index.
type GlyphID uint32

// ColorGlyphSentinel is the color the text visitor substitutes for
// TextData.Color when drawing a glyph with IsColor set: the shader
// interprets this exact value as "sample the atlas color unmodified,
// do not recolor".
var ColorGlyphSentinel = glm.Vec4{-1, -1, -1, -1}

// TextGlyph is one glyph of a shaped text run, in the coordinate
// space established by TextData.Offset.
type TextGlyph struct {
	GID              GlyphID
	Width            float32
	XOffset, YOffset float32

	// IsColor marks a color (e.g. emoji) glyph. The text visitor draws
	// such glyphs with ColorGlyphSentinel instead of TextData.Color.
	IsColor bool
}

// TextData is the payload of a Text node.
type TextData struct {
	Font   FontID
	Glyphs []TextGlyph
	Color  glm.Vec4
	Offset glm.Vec2

	// HasColorGlyphs lets the text visitor skip the per-glyph IsColor
	// check entirely when false.
	HasColorGlyphs bool
}

// NewText creates a shaped text-run node.
func NewText(bounds glm.Rect, font FontID, glyphs []TextGlyph, color glm.Vec4, offset glm.Vec2) *Node {
	hasColor := false
	for _, g := range glyphs {
		if g.IsColor {
			hasColor = true
			break
		}
	}
	return &Node{Kind: Text, Bounds: bounds, data: TextData{font, glyphs, color, offset, hasColor}}
}

// AsText returns n's payload. n.Kind must be Text.
func (n *Node) AsText() TextData {
	if n.Kind != Text {
		wrongKind(n.Kind, Text)
	}
	return n.data.(TextData)
}
