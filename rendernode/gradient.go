package rendernode

import "github.com/gviegas/neogl/glm"

// GradientStop is a single color stop, passed to the gradient shaders
// as 5 floats (RGBA + offset) per stop.
type GradientStop struct {
	Color  glm.Vec4
	Offset float32
}

// GradientData is the payload of a LinearGradient, RadialGradient or
// ConicGradient node. Fields not meaningful for a given Kind are left
// at their zero value (e.g. HRadius/VRadius for a linear gradient).
type GradientData struct {
	Center, Start, End glm.Vec2
	Angle              float32
	HRadius, VRadius   float32
	Stops              []GradientStop
	Repeat             bool
}

// NewLinearGradient creates a linear gradient node running from start
// to end. Supported up to 6 stops; callers exceeding that must fall
// back before constructing the node.
func NewLinearGradient(bounds glm.Rect, start, end glm.Vec2, stops []GradientStop, repeat bool) *Node {
	return &Node{Kind: LinearGradient, Bounds: bounds, data: GradientData{
		Start: start, End: end, Stops: stops, Repeat: repeat,
	}}
}

// NewRadialGradient creates a radial gradient node centered at center
// with independent horizontal/vertical radii.
func NewRadialGradient(bounds glm.Rect, center glm.Vec2, hRadius, vRadius float32, stops []GradientStop, repeat bool) *Node {
	return &Node{Kind: RadialGradient, Bounds: bounds, data: GradientData{
		Center: center, HRadius: hRadius, VRadius: vRadius, Stops: stops, Repeat: repeat,
	}}
}

// NewConicGradient creates a conic (angular) gradient node centered at
// center, with stop offset 0 at angle.
func NewConicGradient(bounds glm.Rect, center glm.Vec2, angle float32, stops []GradientStop) *Node {
	return &Node{Kind: ConicGradient, Bounds: bounds, data: GradientData{
		Center: center, Angle: angle, Stops: stops,
	}}
}

// AsGradient returns n's payload. n.Kind must be one of the gradient
// kinds (see Kind.IsGradient).
func (n *Node) AsGradient() GradientData {
	if !n.Kind.IsGradient() {
		wrongKind(n.Kind, LinearGradient, RadialGradient, ConicGradient)
	}
	return n.data.(GradientData)
}
