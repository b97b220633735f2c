package rendernode

import "github.com/gviegas/neogl/glm"

// BlurData is the payload of a Blur node.
type BlurData struct {
	Radius float32
	Child  *Node
}

// NewBlur creates a node that rasterizes its child offscreen and
// applies a two-pass Gaussian blur of the given radius.
func NewBlur(bounds glm.Rect, radius float32, child *Node) *Node {
	return &Node{Kind: Blur, Bounds: bounds, data: BlurData{radius, child}}
}

// AsBlur returns n's payload. n.Kind must be Blur.
func (n *Node) AsBlur() BlurData {
	if n.Kind != Blur {
		wrongKind(n.Kind, Blur)
	}
	return n.data.(BlurData)
}

// CrossFadeData is the payload of a CrossFade node.
type CrossFadeData struct {
	Start, End *Node
	Progress   float32
}

// NewCrossFade creates a node that blends from start to end as
// progress goes from 0 to 1.
func NewCrossFade(bounds glm.Rect, start, end *Node, progress float32) *Node {
	return &Node{Kind: CrossFade, Bounds: bounds, data: CrossFadeData{start, end, progress}}
}

// AsCrossFade returns n's payload. n.Kind must be CrossFade.
func (n *Node) AsCrossFade() CrossFadeData {
	if n.Kind != CrossFade {
		wrongKind(n.Kind, CrossFade)
	}
	return n.data.(CrossFadeData)
}

// BlendMode selects the compositing function a Blend node applies
// between its top and bottom children, matching the CSS
// mix-blend-mode keyword set.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendColor
	BlendHue
	BlendSaturation
	BlendLuminosity
)

// BlendData is the payload of a Blend node.
type BlendData struct {
	Top, Bottom *Node
	Mode        BlendMode
}

// NewBlend creates a node that composites top over bottom using mode.
func NewBlend(bounds glm.Rect, top, bottom *Node, mode BlendMode) *Node {
	return &Node{Kind: Blend, Bounds: bounds, data: BlendData{top, bottom, mode}}
}

// AsBlend returns n's payload. n.Kind must be Blend.
func (n *Node) AsBlend() BlendData {
	if n.Kind != Blend {
		wrongKind(n.Kind, Blend)
	}
	return n.data.(BlendData)
}

// ColorMatrixData is the payload of a ColorMatrix node.
type ColorMatrixData struct {
	Matrix glm.Mat4
	Offset glm.Vec4
	Child  *Node
}

// NewColorMatrix creates a node that rasterizes its child offscreen
// and applies `matrix * color + offset` per pixel.
func NewColorMatrix(bounds glm.Rect, matrix glm.Mat4, offset glm.Vec4, child *Node) *Node {
	return &Node{Kind: ColorMatrix, Bounds: bounds, data: ColorMatrixData{matrix, offset, child}}
}

// AsColorMatrix returns n's payload. n.Kind must be ColorMatrix.
func (n *Node) AsColorMatrix() ColorMatrixData {
	if n.Kind != ColorMatrix {
		wrongKind(n.Kind, ColorMatrix)
	}
	return n.data.(ColorMatrixData)
}
