package driver

import "testing"

func TestNewAtlasWhitePixel(t *testing.T) {
	a := NewAtlas(0, 64, 64)
	wp := a.WhitePixel()
	if wp == nil {
		t.Fatal("NewAtlas: WhitePixel:\nhave nil\nwant an entry")
	}
	if wp.X0 != 0 || wp.Y0 != 0 {
		t.Fatalf("NewAtlas: WhitePixel origin:\nhave %v,%v\nwant 0,0", wp.X0, wp.Y0)
	}
	if wp.PixelCount != 9 {
		t.Fatalf("NewAtlas: WhitePixel.PixelCount:\nhave %d\nwant 9", wp.PixelCount)
	}
	if !wp.Used || !wp.Accessed {
		t.Fatal("NewAtlas: WhitePixel must start Used and Accessed")
	}
}

func TestAtlasAllocate(t *testing.T) {
	a := NewAtlas(0, 64, 64)
	e, ok := a.Allocate(8, 8, 1)
	if !ok {
		t.Fatal("Atlas.Allocate(8,8): ok:\nhave false\nwant true")
	}
	if e.PixelCount != 64 {
		t.Fatalf("Atlas.Allocate: PixelCount:\nhave %d\nwant 64", e.PixelCount)
	}
	if e.X1 <= e.X0 || e.Y1 <= e.Y0 {
		t.Fatalf("Atlas.Allocate: degenerate UV rect %v,%v,%v,%v", e.X0, e.Y0, e.X1, e.Y1)
	}
}

func TestAtlasAllocateFull(t *testing.T) {
	a := NewAtlas(0, 4, 4)
	// The white-pixel seed already claims a 3x3 corner; nothing this
	// size should still fit.
	if _, ok := a.Allocate(4, 4, 1); ok {
		t.Fatal("Atlas.Allocate(4,4) on a near-full atlas: ok:\nhave true\nwant false")
	}
}

func TestAtlasTouch(t *testing.T) {
	a := NewAtlas(0, 64, 64)
	e, _ := a.Allocate(8, 8, 1)
	e.Accessed = false
	e.Touch(5)
	if !e.Accessed || e.lastAccessFrame != 5 {
		t.Fatalf("AtlasEntry.Touch:\nhave accessed=%t frame=%d\nwant accessed=true frame=5", e.Accessed, e.lastAccessFrame)
	}
}

func TestUnusedFraction(t *testing.T) {
	a := NewAtlas(0, 10, 10)
	// 9 pixels used out of 100, all Used.
	if f := a.unusedFraction(); f < 0.9 || f > 0.91 {
		t.Fatalf("unusedFraction after seed:\nhave %v\nwant ~0.91", f)
	}
}

func TestCompactAtlasesDropsMostlyUnused(t *testing.T) {
	a := NewAtlas(5, 10, 10)
	a.Entries[0].Used = false // drop the seed's 9 used pixels too
	var released []int32
	kept := CompactAtlases([]*Atlas{a}, 0, 0, func(idx int32) { released = append(released, idx) })
	if len(kept) != 0 {
		t.Fatalf("CompactAtlases: len(kept):\nhave %d\nwant 0", len(kept))
	}
	if len(released) != 1 || released[0] != 5 {
		t.Fatalf("CompactAtlases: released:\nhave %v\nwant [5]", released)
	}
}

func TestCompactAtlasesKeepsUsed(t *testing.T) {
	a := NewAtlas(0, 64, 64)
	a.Allocate(60, 60, 1) // dominates the atlas, well under 50% unused
	kept := CompactAtlases([]*Atlas{a}, 0, 0, func(int32) {
		t.Fatal("CompactAtlases: release called on a mostly-used atlas")
	})
	if len(kept) != 1 {
		t.Fatalf("CompactAtlases: len(kept):\nhave %d\nwant 1", len(kept))
	}
}

func TestCompactAtlasesAgesOutEntries(t *testing.T) {
	a := NewAtlas(0, 64, 64)
	e, _ := a.Allocate(60, 60, 1)
	e.Accessed = false
	// frameID=10 is a multiple of maxFrameAge=5, and the entry's last
	// access (frame 1) is more than 5 frames stale.
	kept := CompactAtlases([]*Atlas{a}, 10, 5, func(int32) {})
	if len(kept) != 1 {
		t.Fatalf("CompactAtlases: len(kept):\nhave %d\nwant 1", len(kept))
	}
	if e.Used {
		t.Fatal("CompactAtlases: stale unaccessed entry was not marked unused")
	}
}

func TestCompactAtlasesSkipsOffCadenceFrame(t *testing.T) {
	a := NewAtlas(0, 64, 64)
	e, _ := a.Allocate(60, 60, 1)
	e.Accessed = false
	// frameID=3 is not a multiple of maxFrameAge=10: the age sweep must
	// not run this frame.
	CompactAtlases([]*Atlas{a}, 3, 10, func(int32) {})
	if !e.Used {
		t.Fatal("CompactAtlases: age sweep ran on an off-cadence frame")
	}
}
