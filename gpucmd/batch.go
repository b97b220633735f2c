package gpucmd

import "github.com/gviegas/neogl/uniform"

// MaxBatches is the per-frame batch cap (spec §3.3), the largest count
// an int16 index can hold; the indices themselves (Batch.PrevIdx and
// NextIdx, the queue's head and tail) are stored as int32.
const MaxBatches = 32767

// Kind tags a Batch as a clear or a draw.
type Kind uint8

const (
	ClearBatch Kind = iota
	DrawBatch
)

// Bind is one texture-unit binding a draw batch requires to hold at
// execution time.
type Bind struct {
	Unit uint32
	ID   uint32
}

// UniformRef is one uniform key a draw batch must push to the GL
// pipeline at execution time, paired with the Snapshot its value had
// when the batch was finalized (used for merge byte-compare and for
// re-deriving the (program, key) pair at Apply time).
type UniformRef struct {
	Key      int32
	Snapshot uniform.Snapshot
}

// Batch is a single recorded unit of work: a clear or a draw, plus
// everything Execute needs to reproduce its GL state without
// re-deriving it from the render job. Implemented as a plain struct
// rather than a hand-packed bitfield (spec §9 design notes permit
// this "if size is less critical").
type Batch struct {
	Kind        Kind
	Program     uint32 // GL program id; 0 for a clear batch
	Framebuffer uint32
	Width       uint16
	Height      uint16

	// Valid for DrawBatch.
	VBOOffset     uint16
	VBOCount      uint16
	BindOffset    uint16
	BindCount     uint16
	UniformOffset uint16
	UniformCount  uint16

	// Valid for ClearBatch.
	ClearMask uint32

	// Doubly-linked-list indices into Queue.batches, forming the
	// execution order after Reorder; array order is recording order.
	// -1 marks a list terminator.
	PrevIdx int32
	NextIdx int32
}
