package attach

import "testing"

func TestSetFramebufferIdempotent(t *testing.T) {
	s := NewState()
	s.SetFramebuffer(5)
	if !s.Framebuffer.Changed {
		t.Fatal("first SetFramebuffer(5): have Changed=false, want true")
	}
	s.Framebuffer.Changed = false
	s.SetFramebuffer(5)
	if s.Framebuffer.Changed {
		t.Fatal("repeated SetFramebuffer(5): have Changed=true, want false")
	}
	s.SetFramebuffer(6)
	if !s.Framebuffer.Changed {
		t.Fatal("SetFramebuffer(6) after 5: have Changed=false, want true")
	}
}

func TestSetTextureIdempotent(t *testing.T) {
	s := NewState()
	s.SetTexture(0, 0x0DE1, 7, FilterLinear, FilterNearest)
	if !s.Textures[0].Changed {
		t.Fatal("first SetTexture: have Changed=false, want true")
	}
	s.Textures[0].Changed = false
	s.SetTexture(0, 0x0DE1, 7, FilterLinear, FilterNearest)
	if s.Textures[0].Changed {
		t.Fatal("repeated identical SetTexture: have Changed=true, want false")
	}
	s.SetTexture(0, 0x0DE1, 8, FilterLinear, FilterNearest)
	if !s.Textures[0].Changed {
		t.Fatal("SetTexture with a new id: have Changed=false, want true")
	}
}

func TestResetTextureForcesNextBind(t *testing.T) {
	s := NewState()
	s.SetTexture(1, 0x0DE1, 0, FilterNearest, FilterNearest)
	s.Textures[1].Changed = false
	s.ResetTexture(1)
	s.SetTexture(1, 0x0DE1, 0, FilterNearest, FilterNearest)
	if !s.Textures[1].Changed {
		t.Fatal("SetTexture after ResetTexture with the same id 0: have Changed=false, want true")
	}
}

func TestSamplerIndexCoversAllFilterPairs(t *testing.T) {
	seen := map[int32]bool{}
	for _, min := range []Filter{FilterNearest, FilterLinear} {
		for _, mag := range []Filter{FilterNearest, FilterLinear} {
			seen[samplerIndex(min, mag)] = true
		}
	}
	if len(seen) != 4 {
		t.Fatalf("distinct sampler indices across 4 filter pairs:\nhave %d\nwant 4", len(seen))
	}
}
