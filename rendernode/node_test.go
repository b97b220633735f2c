package rendernode

import (
	"testing"

	"github.com/gviegas/neogl/glm"
)

func TestColorAccessor(t *testing.T) {
	bounds := glm.Rect{X0: 10, Y0: 20, X1: 30, Y1: 40}
	color := glm.Vec4{1, 0, 0, 1}
	n := NewColor(bounds, color)
	if n.Kind != Color {
		t.Fatalf("Kind:\nhave %v\nwant Color", n.Kind)
	}
	if n.Bounds != bounds {
		t.Fatalf("Bounds:\nhave %v\nwant %v", n.Bounds, bounds)
	}
	if got := n.AsColor().Color; got != color {
		t.Fatalf("AsColor:\nhave %v\nwant %v", got, color)
	}
}

func TestWrongKindPanics(t *testing.T) {
	n := NewColor(glm.Rect{}, glm.Vec4{})
	defer func() {
		if recover() == nil {
			t.Fatal("AsBorder on a Color node: expected panic, got none")
		}
	}()
	n.AsBorder()
}

func TestContainerChildren(t *testing.T) {
	a := NewColor(glm.Rect{X1: 10, Y1: 10}, glm.Vec4{1, 0, 0, 1})
	b := NewColor(glm.Rect{X0: 10, X1: 20, Y1: 10}, glm.Vec4{1, 0, 0, 1})
	c := NewContainer(glm.Rect{X1: 20, Y1: 10}, a, b)
	children := c.AsContainer().Children
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Fatalf("AsContainer.Children:\nhave %v\nwant [%v %v]", children, a, b)
	}
}

func TestGradientKindSharesAccessor(t *testing.T) {
	stops := []GradientStop{{Color: glm.Vec4{1, 1, 1, 1}, Offset: 0}, {Color: glm.Vec4{0, 0, 0, 1}, Offset: 1}}
	lin := NewLinearGradient(glm.Rect{X1: 10, Y1: 10}, glm.Vec2{0, 0}, glm.Vec2{10, 0}, stops, false)
	rad := NewRadialGradient(glm.Rect{X1: 10, Y1: 10}, glm.Vec2{5, 5}, 5, 5, stops, false)
	con := NewConicGradient(glm.Rect{X1: 10, Y1: 10}, glm.Vec2{5, 5}, 0, stops)
	for _, n := range []*Node{lin, rad, con} {
		if g := n.AsGradient(); len(g.Stops) != 2 {
			t.Fatalf("AsGradient(%v).Stops:\nhave %d\nwant 2", n.Kind, len(g.Stops))
		}
	}
}

func TestTextHasColorGlyphs(t *testing.T) {
	glyphs := []TextGlyph{{GID: 1}, {GID: 2, IsColor: true}}
	n := NewText(glm.Rect{X1: 20, Y1: 10}, FontID(1), glyphs, glm.Vec4{0, 0, 0, 1}, glm.Vec2{})
	if !n.AsText().HasColorGlyphs {
		t.Fatal("HasColorGlyphs: have false, want true (one glyph has IsColor set)")
	}
}
