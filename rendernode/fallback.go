package rendernode

import "github.com/gviegas/neogl/glm"

// CairoData is the payload of a Cairo node: a process-wide escape
// hatch for node kinds the core has no specialized path for. Draw is
// invoked with the render job's current scale factor and must return
// a tightly packed RGBA8 buffer of size w*h*4, upload-ready.
type CairoData struct {
	Draw func(scale float32) (pixels []byte, w, h int)
}

// NewCairo creates a fallback node rendered by an external rasterizer.
func NewCairo(bounds glm.Rect, draw func(scale float32) (pixels []byte, w, h int)) *Node {
	return &Node{Kind: Cairo, Bounds: bounds, data: CairoData{draw}}
}

// AsCairo returns n's payload. n.Kind must be Cairo.
func (n *Node) AsCairo() CairoData {
	if n.Kind != Cairo {
		wrongKind(n.Kind, Cairo)
	}
	return n.data.(CairoData)
}

// GLShader is a user-supplied fragment shader snippet. The driver's
// resource cache compiles it (see driver.Registry.LookupShader) with the
// standard preamble and uniform set glued in front.
type GLShader interface {
	Name() string
	Source() string
}

// GLShaderData is the payload of a GLShader node.
type GLShaderData struct {
	Shader   GLShader
	Children []*Node
	Args     []byte
}

// NewGLShader creates a node invoking a user shader over one or more
// rendered children.
func NewGLShader(bounds glm.Rect, shader GLShader, args []byte, children ...*Node) *Node {
	return &Node{Kind: GLShader, Bounds: bounds, data: GLShaderData{shader, children, args}}
}

// AsGLShader returns n's payload. n.Kind must be GLShader.
func (n *Node) AsGLShader() GLShaderData {
	if n.Kind != GLShader {
		wrongKind(n.Kind, GLShader)
	}
	return n.data.(GLShaderData)
}
