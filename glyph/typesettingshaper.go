package glyph

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gviegas/neogl/rendernode"
)

// TypesettingShaper shapes text with go-text/typesetting's HarfBuzz
// port, giving ligatures, kerning and complex-script support the
// builtin advance-only path can't. Grounded on gogpu-gg's
// text.GoTextShaper.
//
// Safe for concurrent use: parsed *font.Font values are read-only and
// cached per Face; shaping.HarfbuzzShaper instances carry mutable
// scratch state and are pooled instead of shared.
type TypesettingShaper struct {
	shaperPool sync.Pool

	mu        sync.RWMutex
	fontCache map[Face]*font.Font
}

// NewTypesettingShaper creates a ready-to-use TypesettingShaper.
func NewTypesettingShaper() *TypesettingShaper {
	return &TypesettingShaper{
		shaperPool: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
		fontCache:  make(map[Face]*font.Font),
	}
}

// Shape implements Shaper.
func (s *TypesettingShaper) Shape(text string, face Face) []ShapedGlyph {
	if text == "" || face == nil {
		return nil
	}
	goFont, err := s.getOrCreateFont(face)
	if err != nil {
		return nil
	}
	goFace := font.NewFace(goFont)

	runes := []rune(text)
	dir := mapDirection(face.Direction())
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      goFace,
		Size:      floatToFixed(face.Size()),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.shaperPool.Put(hb)

	return convertGlyphs(out.Glyphs, dir)
}

func (s *TypesettingShaper) getOrCreateFont(face Face) (*font.Font, error) {
	s.mu.RLock()
	if f, ok := s.fontCache[face]; ok {
		s.mu.RUnlock()
		return f, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fontCache[face]; ok {
		return f, nil
	}
	parsed, err := font.ParseTTF(bytes.NewReader(face.Source()))
	if err != nil {
		return nil, err
	}
	s.fontCache[face] = parsed.Font
	return parsed.Font, nil
}

// ClearCache drops every cached parsed font.
func (s *TypesettingShaper) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fontCache = make(map[Face]*font.Font)
}

func mapDirection(d Direction) di.Direction {
	switch d {
	case DirectionRTL:
		return di.DirectionRTL
	case DirectionTTB:
		return di.DirectionTTB
	case DirectionBTT:
		return di.DirectionBTT
	default:
		return di.DirectionLTR
	}
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

func convertGlyphs(glyphs []shaping.Glyph, dir di.Direction) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}
	out := make([]ShapedGlyph, len(glyphs))
	var x, y float64
	for i, g := range glyphs {
		out[i] = ShapedGlyph{
			GID:     rendernode.GlyphID(g.GlyphID),
			Cluster: g.TextIndex(),
			X:       x + fixedToFloat(g.XOffset),
			Y:       y + fixedToFloat(g.YOffset),
		}
		adv := fixedToFloat(g.Advance)
		if dir.IsVertical() {
			out[i].YAdvance = adv
			y += adv
		} else {
			out[i].XAdvance = adv
			x += adv
		}
	}
	return out
}
