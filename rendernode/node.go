package rendernode

import "github.com/gviegas/neogl/glm"

// Node is an immutable render-node: a Kind discriminant, its bounds in
// local coordinates, and an opaque payload. The tree supplied to a
// render job is built and owned by the caller; the core never mutates
// a Node.
type Node struct {
	Kind   Kind
	Bounds glm.Rect
	data   any
}

func wrongKind(have Kind, want ...Kind) {
	panic("rendernode: accessor requires " + kindList(want) + ", node is " + have.String())
}

func kindList(ks []Kind) string {
	s := ks[0].String()
	for _, k := range ks[1:] {
		s += "/" + k.String()
	}
	return s
}

// ColorData is the payload of a Color node.
type ColorData struct {
	Color glm.Vec4
}

// NewColor creates a flat-color node.
func NewColor(bounds glm.Rect, color glm.Vec4) *Node {
	return &Node{Kind: Color, Bounds: bounds, data: ColorData{color}}
}

// AsColor returns n's payload. n.Kind must be Color.
func (n *Node) AsColor() ColorData {
	if n.Kind != Color {
		wrongKind(n.Kind, Color)
	}
	return n.data.(ColorData)
}

// BorderData is the payload of a Border node.
type BorderData struct {
	Outline      glm.RoundedRect
	Widths       [4]float32 // top, right, bottom, left
	Colors       [4]glm.Vec4
	UniformColor bool
}

// NewBorder creates a border node. uniformColor should be true when
// all four Colors are equal; the render job's rectilinear border path
// depends only on the outline, not on this flag.
func NewBorder(bounds glm.Rect, outline glm.RoundedRect, widths [4]float32, colors [4]glm.Vec4, uniformColor bool) *Node {
	return &Node{Kind: Border, Bounds: bounds, data: BorderData{outline, widths, colors, uniformColor}}
}

// AsBorder returns n's payload. n.Kind must be Border.
func (n *Node) AsBorder() BorderData {
	if n.Kind != Border {
		wrongKind(n.Kind, Border)
	}
	return n.data.(BorderData)
}

// ClipData is the payload of a Clip node.
type ClipData struct {
	Rect  glm.Rect
	Child *Node
}

// NewClip creates a rectangular clip node.
func NewClip(bounds, rect glm.Rect, child *Node) *Node {
	return &Node{Kind: Clip, Bounds: bounds, data: ClipData{rect, child}}
}

// AsClip returns n's payload. n.Kind must be Clip.
func (n *Node) AsClip() ClipData {
	if n.Kind != Clip {
		wrongKind(n.Kind, Clip)
	}
	return n.data.(ClipData)
}

// RoundedClipData is the payload of a RoundedClip node.
type RoundedClipData struct {
	Rect  glm.RoundedRect
	Child *Node
}

// NewRoundedClip creates a rounded-rect clip node.
func NewRoundedClip(bounds glm.Rect, rect glm.RoundedRect, child *Node) *Node {
	return &Node{Kind: RoundedClip, Bounds: bounds, data: RoundedClipData{rect, child}}
}

// AsRoundedClip returns n's payload. n.Kind must be RoundedClip.
func (n *Node) AsRoundedClip() RoundedClipData {
	if n.Kind != RoundedClip {
		wrongKind(n.Kind, RoundedClip)
	}
	return n.data.(RoundedClipData)
}

// TransformData is the payload of a Transform node.
type TransformData struct {
	T     glm.Transform
	Child *Node
}

// NewTransform creates a transform node.
func NewTransform(bounds glm.Rect, t glm.Transform, child *Node) *Node {
	return &Node{Kind: Transform, Bounds: bounds, data: TransformData{t, child}}
}

// AsTransform returns n's payload. n.Kind must be Transform.
func (n *Node) AsTransform() TransformData {
	if n.Kind != Transform {
		wrongKind(n.Kind, Transform)
	}
	return n.data.(TransformData)
}

// OpacityData is the payload of an Opacity node.
type OpacityData struct {
	Opacity float32
	Child   *Node
}

// NewOpacity creates an opacity node.
func NewOpacity(bounds glm.Rect, opacity float32, child *Node) *Node {
	return &Node{Kind: Opacity, Bounds: bounds, data: OpacityData{opacity, child}}
}

// AsOpacity returns n's payload. n.Kind must be Opacity.
func (n *Node) AsOpacity() OpacityData {
	if n.Kind != Opacity {
		wrongKind(n.Kind, Opacity)
	}
	return n.data.(OpacityData)
}

// ContainerData is the payload of a Container node.
type ContainerData struct {
	Children []*Node
}

// NewContainer creates a node holding an ordered list of children,
// painted back-to-front.
func NewContainer(bounds glm.Rect, children ...*Node) *Node {
	return &Node{Kind: Container, Bounds: bounds, data: ContainerData{children}}
}

// AsContainer returns n's payload. n.Kind must be Container.
func (n *Node) AsContainer() ContainerData {
	if n.Kind != Container {
		wrongKind(n.Kind, Container)
	}
	return n.data.(ContainerData)
}

// DebugData is the payload of a Debug node.
type DebugData struct {
	Child   *Node
	Message string
}

// NewDebug creates a passthrough node that carries a diagnostic
// message but renders its child unmodified.
func NewDebug(bounds glm.Rect, message string, child *Node) *Node {
	return &Node{Kind: Debug, Bounds: bounds, data: DebugData{child, message}}
}

// AsDebug returns n's payload. n.Kind must be Debug.
func (n *Node) AsDebug() DebugData {
	if n.Kind != Debug {
		wrongKind(n.Kind, Debug)
	}
	return n.data.(DebugData)
}
