package driver

// RenderTarget pairs a texture with the framebuffer that targets it.
type RenderTarget struct {
	Framebuffer uint32
	TextureID   uint32
	Width       int
	Height      int
	Format      uint32
	MinFilter   int32
	MagFilter   int32
}

// pooledRT is a released render target kept whole (both FBO and
// texture alive) for reuse by a later CreateRenderTarget call of the
// same shape.
type pooledRT struct {
	rt  RenderTarget
	age int64
}
