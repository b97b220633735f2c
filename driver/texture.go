package driver

import (
	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/rendernode"
)

// TextureKey memoizes an offscreen render across frames: the node
// pointer identity plus the parameters that change its rasterized
// output.
type TextureKey struct {
	Node        *rendernode.Node
	ScaleX      float32
	ScaleY      float32
	Filter      attach.Filter
	IsChild     bool
	ParentBound glm.Rect
}

// Texture tracks a GL texture's identity, shape, and lifecycle state.
type Texture struct {
	ID     uint32
	Width  int
	Height int
	Format rendernode.TextureFormat

	// MinFilter/MagFilter are the filters the texture was uploaded
	// with; re-requesting it under different filters forces a new
	// upload rather than a filter change, matching the teacher's
	// one-texture-one-sampling-mode convention.
	MinFilter, MagFilter int32

	LastUsedFrame int64
	Permanent     bool
	Referenced    bool

	// Slices holds the sub-texture ids used when the source exceeded
	// MaxTextureSize and had to be tiled on upload.
	Slices []uint32
}

// evictable reports whether t may be reclaimed given watermark, the
// frame id below-or-equal which an unused, non-permanent, unreferenced
// texture is considered stale (spec §4.4 eviction policy).
func (t *Texture) evictable(watermark int64) bool {
	return !t.Permanent && !t.Referenced && t.LastUsedFrame <= watermark
}
