// Package attach implements the Attachment State: the currently bound
// framebuffer and texture units, tracked so the command queue can tell
// whether a draw actually needs a new GL bind call or can reuse the
// previous one.
//
// Not safe for concurrent use; a State is owned by the single thread
// driving the GL context for a frame.
package attach

// NTextureUnit is the number of texture units a State tracks. It must
// match the maximum unit index any shader samples from.
const NTextureUnit = 4

// Framebuffer is the currently bound draw framebuffer.
type Framebuffer struct {
	ID      uint32
	Changed bool
}

// TextureSlot is one texture unit's desired binding.
type TextureSlot struct {
	Target  uint32
	Sampler int32
	ID      uint32
	Changed bool
	Initial bool
}

// State holds the framebuffer and texture-unit bindings a draw wants,
// independent of what is actually bound in GL right now.
type State struct {
	Framebuffer Framebuffer
	Textures    [NTextureUnit]TextureSlot
}

// NewState returns a State with every slot marked Initial, forcing the
// first real bind of each.
func NewState() *State {
	s := &State{}
	for i := range s.Textures {
		s.Textures[i].Initial = true
	}
	return s
}

// SetFramebuffer records fbo as the desired draw framebuffer. It is
// idempotent: if fbo already equals the stored id, Changed stays false.
func (s *State) SetFramebuffer(fbo uint32) {
	if s.Framebuffer.ID == fbo {
		s.Framebuffer.Changed = false
		return
	}
	s.Framebuffer.ID = fbo
	s.Framebuffer.Changed = true
}

// SetTexture records id as unit's desired binding, target as the bind
// target (e.g. TEXTURE_2D) and (min, mag) as the filter pair used to
// resolve a sampler index. Idempotent: requesting the same target, id
// and sampler leaves Changed false.
func (s *State) SetTexture(unit int, target, id uint32, min, mag Filter) {
	slot := &s.Textures[unit]
	sampler := samplerIndex(min, mag)
	if !slot.Initial && slot.Target == target && slot.ID == id && slot.Sampler == sampler {
		slot.Changed = false
		return
	}
	slot.Target = target
	slot.ID = id
	slot.Sampler = sampler
	slot.Changed = true
	slot.Initial = false
}

// ResetTexture clears unit's binding to id 0 and marks it Initial, so
// the next SetTexture call is guaranteed to force a real GL bind even
// if it happens to request id 0 again.
func (s *State) ResetTexture(unit int) {
	s.Textures[unit] = TextureSlot{Initial: true}
}

// Filter is a minification or magnification filter mode.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

// samplerTable maps a (min, mag) filter pair to a precomputed sampler
// index: 2 filters x 2 = 4 combinations, indexed min*2+mag.
var samplerTable = [4]int32{
	FilterNearest*2 + FilterNearest: 0,
	FilterNearest*2 + FilterLinear:  1,
	FilterLinear*2 + FilterNearest:  2,
	FilterLinear*2 + FilterLinear:   3,
}

func samplerIndex(min, mag Filter) int32 {
	return samplerTable[int(min)*2+int(mag)]
}
