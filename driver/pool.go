package driver

import "github.com/gviegas/neogl/internal/slotmap"

// pool is a slotmap-indexed array of T, used by Driver for textures
// and render targets. Grounded on the teacher's dataMap
// index-table idiom (engine/id.go), re-expressed over
// internal/slotmap instead of the teacher's unimplemented
// weak-reference graph. Freed slots are reused by later allocs; the
// backing slice never shrinks, so a freed index stays valid (its
// value zeroed) until reallocated.
type pool[T any] struct {
	bits  slotmap.SlotMap[uint32]
	slots []T
}

// alloc reserves a slot, growing the pool if necessary, and returns
// its index.
func (p *pool[T]) alloc() int32 {
	idx, ok := p.bits.Search()
	if !ok {
		base := p.bits.Grow(1)
		idx = base
		p.slots = append(p.slots, make([]T, p.bits.Len()-len(p.slots))...)
	}
	p.bits.Set(idx)
	return int32(idx)
}

// free releases idx and zeroes its slot so a stale reference cannot
// observe the previous occupant's resource ids.
func (p *pool[T]) free(idx int32) {
	var zero T
	p.slots[idx] = zero
	p.bits.Unset(int(idx))
}

// at returns a pointer to idx's slot.
func (p *pool[T]) at(idx int32) *T {
	return &p.slots[idx]
}

// each calls fn for every currently allocated slot.
func (p *pool[T]) each(fn func(idx int32, v *T)) {
	for i := range p.slots {
		if p.bits.IsSet(i) {
			fn(int32(i), &p.slots[i])
		}
	}
}
