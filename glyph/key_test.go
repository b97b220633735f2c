package glyph

import "testing"

func TestPhaseOf(t *testing.T) {
	for _, x := range []struct {
		frac float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.1, 0},
		{0.24, 0},
		{0.25, 1},
		{0.49, 1},
		{0.5, 2},
		{0.74, 2},
		{0.75, 3},
		{0.999, 3},
		{1, 3},
		{2, 3},
	} {
		if got := PhaseOf(x.frac); got != x.want {
			t.Fatalf("PhaseOf(%v):\nhave %d\nwant %d", x.frac, got, x.want)
		}
	}
}

func TestScaleOf(t *testing.T) {
	for _, x := range []struct {
		size float32
		want uint16
	}{
		{0, 0},
		{1, 1024},
		{12, 12288},
		{16.5, 16896},
	} {
		if got := ScaleOf(x.size); got != x.want {
			t.Fatalf("ScaleOf(%v):\nhave %d\nwant %d", x.size, got, x.want)
		}
	}
}

func TestFrontHashStable(t *testing.T) {
	k1 := Key{GID: 42, ShiftX: 2}
	k2 := Key{GID: 42, ShiftX: 2, Font: 7, ShiftY: 3, Scale: 16384}
	if k1.frontHash() != k2.frontHash() {
		t.Fatalf("frontHash: Font/ShiftY/Scale changed the hash:\nhave %d\nwant %d", k2.frontHash(), k1.frontHash())
	}
	k3 := Key{GID: 43, ShiftX: 2}
	if k1.frontHash() == k3.frontHash() {
		// Not a correctness requirement, but two adjacent gids should
		// not collide under this multiplicative hash; a failure here
		// would indicate frontHash degenerated to a near-constant.
		t.Log("frontHash: adjacent GIDs collided, which is allowed but worth noting")
	}
}
