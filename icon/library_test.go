package icon

import (
	"testing"

	"github.com/gviegas/neogl/rendernode"
)

// fakeTexture is a minimal rendernode.ExternalTexture used only for its
// pointer identity.
type fakeTexture struct {
	w, h int
}

func (t *fakeTexture) Width() int                       { return t.w }
func (t *fakeTexture) Height() int                       { return t.h }
func (t *fakeTexture) Format() rendernode.TextureFormat  { return rendernode.FormatRGBA8 }
func (t *fakeTexture) ColorSpace() rendernode.ColorSpace { return rendernode.ColorSpaceSRGB }
func (t *fakeTexture) Premultiplied() bool               { return false }
func (t *fakeTexture) YFlip() bool                       { return false }
func (t *fakeTexture) Pixels() []byte                    { return nil }
func (t *fakeTexture) GLID() (uint32, bool)              { return 0, false }

func TestSourceKeyEquality(t *testing.T) {
	a := &fakeTexture{w: 16, h: 16}
	b := &fakeTexture{w: 16, h: 16}
	ka1 := NewSourceKey(a)
	ka2 := NewSourceKey(a)
	kb := NewSourceKey(b)
	if ka1 != ka2 {
		t.Fatal("NewSourceKey: same source pointer produced unequal keys")
	}
	if ka1 == kb {
		t.Fatal("NewSourceKey: distinct source pointers produced equal keys")
	}
}

func TestSourceKeyFrontHashStable(t *testing.T) {
	a := &fakeTexture{}
	k := NewSourceKey(a)
	if k.frontHash() != k.frontHash() {
		t.Fatal("SourceKey.frontHash: not stable across calls")
	}
}

func TestLibraryLookupMiss(t *testing.T) {
	l := NewLibrary(nil, nil, 60)
	a := &fakeTexture{}
	if _, ok := l.Lookup(NewSourceKey(a)); ok {
		t.Fatal("Lookup on an empty library returned ok=true")
	}
}

func TestLibraryReleaseAbsentKey(t *testing.T) {
	l := NewLibrary(nil, nil, 60)
	a := &fakeTexture{}
	// Releasing a key that was never inserted must not panic.
	l.Release(NewSourceKey(a))
}
