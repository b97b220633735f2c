package driver

import "testing"

func TestNewPacker(t *testing.T) {
	p := NewPacker(64, 32)
	if p.width != 64 || p.height != 32 {
		t.Fatalf("NewPacker: width/height:\nhave %d/%d\nwant 64/32", p.width, p.height)
	}
	if len(p.nodes) != 1 {
		t.Fatalf("NewPacker: len(nodes):\nhave %d\nwant 1", len(p.nodes))
	}
	if n := p.nodes[0]; n.x != 0 || n.width != 64 || n.y != 0 {
		t.Fatalf("NewPacker: nodes[0]:\nhave %+v\nwant {x:0 width:64 y:0}", n)
	}
}

func TestPackerAllocateFitsSequentially(t *testing.T) {
	p := NewPacker(16, 16)
	x1, y1, ok := p.Allocate(8, 8)
	if !ok || x1 != 0 || y1 != 0 {
		t.Fatalf("Allocate(8,8) #1:\nhave %d,%d,%t\nwant 0,0,true", x1, y1, ok)
	}
	x2, y2, ok := p.Allocate(8, 8)
	if !ok || x2 != 8 || y2 != 0 {
		t.Fatalf("Allocate(8,8) #2:\nhave %d,%d,%t\nwant 8,0,true", x2, y2, ok)
	}
	// The skyline is now flat at y=8 across the full width: the next
	// rect lands on the row above.
	x3, y3, ok := p.Allocate(16, 8)
	if !ok || x3 != 0 || y3 != 8 {
		t.Fatalf("Allocate(16,8) #3:\nhave %d,%d,%t\nwant 0,8,true", x3, y3, ok)
	}
}

func TestPackerAllocateExhausted(t *testing.T) {
	p := NewPacker(8, 8)
	if _, _, ok := p.Allocate(8, 8); !ok {
		t.Fatal("Allocate(8,8): ok:\nhave false\nwant true")
	}
	if _, _, ok := p.Allocate(1, 1); ok {
		t.Fatal("Allocate(1,1) on a full atlas: ok:\nhave true\nwant false")
	}
}

func TestPackerAllocateTooWide(t *testing.T) {
	p := NewPacker(8, 8)
	if _, _, ok := p.Allocate(9, 1); ok {
		t.Fatal("Allocate(9,1) wider than atlas: ok:\nhave true\nwant false")
	}
}

func TestPackerAllocateTooTall(t *testing.T) {
	p := NewPacker(8, 8)
	if _, _, ok := p.Allocate(1, 9); ok {
		t.Fatal("Allocate(1,9) taller than atlas: ok:\nhave true\nwant false")
	}
}

func TestPackerMergeSkyline(t *testing.T) {
	p := NewPacker(16, 16)
	// Two adjacent allocations landing at the same height must collapse
	// into a single skyline node rather than staying split.
	p.Allocate(4, 4)
	p.Allocate(4, 4)
	for i := 0; i+1 < len(p.nodes); i++ {
		if p.nodes[i].y == p.nodes[i+1].y && p.nodes[i].x+p.nodes[i].width == p.nodes[i+1].x {
			t.Fatalf("mergeSkyline: adjacent same-height nodes left unmerged: %+v, %+v", p.nodes[i], p.nodes[i+1])
		}
	}
}
