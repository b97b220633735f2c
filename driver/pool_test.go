package driver

import "testing"

func TestPoolAllocFree(t *testing.T) {
	var p pool[int]
	i0 := p.alloc()
	i1 := p.alloc()
	if i0 == i1 {
		t.Fatalf("pool.alloc: distinct allocations returned the same index %d", i0)
	}
	*p.at(i0) = 10
	*p.at(i1) = 20
	if v := *p.at(i0); v != 10 {
		t.Fatalf("pool.at(%d):\nhave %d\nwant 10", i0, v)
	}
	p.free(i0)
	if v := *p.at(i0); v != 0 {
		t.Fatalf("pool.at(%d) after free:\nhave %d\nwant 0", i0, v)
	}
	i2 := p.alloc()
	if i2 != i0 {
		t.Fatalf("pool.alloc after free:\nhave %d\nwant reused index %d", i2, i0)
	}
}

func TestPoolEach(t *testing.T) {
	var p pool[string]
	ia := p.alloc()
	ib := p.alloc()
	*p.at(ia) = "a"
	*p.at(ib) = "b"
	p.free(ib)
	seen := map[int32]string{}
	p.each(func(idx int32, v *string) {
		seen[idx] = *v
	})
	if len(seen) != 1 {
		t.Fatalf("pool.each: len(seen):\nhave %d\nwant 1", len(seen))
	}
	if seen[ia] != "a" {
		t.Fatalf("pool.each: seen[%d]:\nhave %q\nwant %q", ia, seen[ia], "a")
	}
	if _, ok := seen[ib]; ok {
		t.Fatalf("pool.each: freed index %d was visited", ib)
	}
}
