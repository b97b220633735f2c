package rendernode

import "github.com/gviegas/neogl/glm"

// ShadowEntry is a single drop-shadow applied to a Shadow node's child.
type ShadowEntry struct {
	Color          glm.Vec4
	DX, DY, Radius float32
}

// ShadowData is the payload of a Shadow node.
type ShadowData struct {
	Shadows []ShadowEntry
	Child   *Node
}

// NewShadow creates a node that draws one or more drop-shadows behind
// its child, then draws the child on top.
func NewShadow(bounds glm.Rect, shadows []ShadowEntry, child *Node) *Node {
	return &Node{Kind: Shadow, Bounds: bounds, data: ShadowData{shadows, child}}
}

// AsShadow returns n's payload. n.Kind must be Shadow.
func (n *Node) AsShadow() ShadowData {
	if n.Kind != Shadow {
		wrongKind(n.Kind, Shadow)
	}
	return n.data.(ShadowData)
}

// InsetOutsetData is the payload of an InsetShadow or OutsetShadow
// node: a shadow cast by a rounded-rect outline itself, as opposed to
// one cast behind an arbitrary child (see ShadowData).
type InsetOutsetData struct {
	Outline            glm.RoundedRect
	Spread, BlurRadius float32
	DX, DY             float32
	Color              glm.Vec4
}

// NewInsetShadow creates a shadow cast inward from outline's edge.
func NewInsetShadow(bounds glm.Rect, d InsetOutsetData) *Node {
	return &Node{Kind: InsetShadow, Bounds: bounds, data: d}
}

// NewOutsetShadow creates a shadow cast outward from outline's edge.
func NewOutsetShadow(bounds glm.Rect, d InsetOutsetData) *Node {
	return &Node{Kind: OutsetShadow, Bounds: bounds, data: d}
}

// AsInsetShadow returns n's payload. n.Kind must be InsetShadow.
func (n *Node) AsInsetShadow() InsetOutsetData {
	if n.Kind != InsetShadow {
		wrongKind(n.Kind, InsetShadow)
	}
	return n.data.(InsetOutsetData)
}

// AsOutsetShadow returns n's payload. n.Kind must be OutsetShadow.
func (n *Node) AsOutsetShadow() InsetOutsetData {
	if n.Kind != OutsetShadow {
		wrongKind(n.Kind, OutsetShadow)
	}
	return n.data.(InsetOutsetData)
}
