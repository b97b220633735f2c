// Package gpucmd implements the Command Queue: records draw/clear
// batches with packed, indexed references to per-batch texture
// bindings, uniform updates and vertex ranges; merges adjacent
// compatible batches; reorders batches by framebuffer; and executes
// them against an OpenGL context.
//
// Not safe for concurrent use; a Queue is owned by the single thread
// driving the GL context for a frame.
package gpucmd

import (
	"github.com/gviegas/neogl"
	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/uniform"
)

// Queue records a frame's batches and executes them.
//
// Lifecycle: BeginFrame -> (BeginDraw/EndDraw/SplitDraw/Clear)* ->
// Execute -> EndFrame.
type Queue struct {
	attach *attach.State
	store  *uniform.Store

	batches []Batch
	binds   []Bind
	uniform []UniformRef
	vbo     []byte

	head, tail int32 // -1 when empty; indices into batches

	inDraw     bool
	curProgram *uniform.Program

	warnedLimit bool
}

// NewQueue creates a Queue sharing store and state with its driver.
// The per-frame queue and the shared queue both reference the same
// Store so program definitions and the uniform arena carry across
// frames (spec §5).
func NewQueue(store *uniform.Store, state *attach.State) *Queue {
	return &Queue{store: store, attach: state, head: -1, tail: -1}
}

// BeginFrame resets the queue for a new frame's recording.
func (q *Queue) BeginFrame() {
	q.batches = q.batches[:0]
	q.binds = q.binds[:0]
	q.uniform = q.uniform[:0]
	q.vbo = q.vbo[:0]
	q.head, q.tail = -1, -1
	q.inDraw = false
	q.curProgram = nil
	q.warnedLimit = false
}

func (q *Queue) atLimit() bool {
	if len(q.batches) < MaxBatches {
		return false
	}
	if !q.warnedLimit {
		neogl.Logger().Warn("gpucmd: per-frame batch limit reached, dropping further batches", "limit", MaxBatches)
		q.warnedLimit = true
	}
	return true
}

// link appends idx (already present in q.batches) to the tail of the
// execution list.
func (q *Queue) link(idx int32) {
	q.batches[idx].PrevIdx = q.tail
	q.batches[idx].NextIdx = -1
	if q.tail >= 0 {
		q.batches[q.tail].NextIdx = idx
	} else {
		q.head = idx
	}
	q.tail = idx
}

// BeginDraw starts recording a new draw batch targeting a program/
// viewport pair. Re-entrancy is strictly one deep: calling BeginDraw
// again before EndDraw panics.
func (q *Queue) BeginDraw(program *uniform.Program, w, h uint16) {
	if q.inDraw {
		panic("gpucmd: BeginDraw called while already recording a draw")
	}
	if q.atLimit() {
		return
	}
	idx := int32(len(q.batches))
	q.batches = append(q.batches, Batch{
		Kind:      DrawBatch,
		Program:   program.ID,
		Width:     w,
		Height:    h,
		VBOOffset: uint16(len(q.vbo) / VertexSize),
	})
	q.link(idx)
	q.inDraw = true
	q.curProgram = program
}

// AppendVertices appends vs to the current draw's vertex range. Valid
// only between BeginDraw and EndDraw.
func (q *Queue) AppendVertices(vs ...Vertex) {
	if !q.inDraw {
		panic("gpucmd: AppendVertices called outside a draw")
	}
	for _, v := range vs {
		q.vbo = appendVertex(q.vbo, v)
	}
}

// EndDraw finalizes the current draw. An empty draw (no vertices
// appended) is discarded. Otherwise the batch snapshots the current
// framebuffer, active texture binds and written uniforms, then is
// merged into the preceding batch when the merge predicate holds
// (spec §4.3.1).
func (q *Queue) EndDraw() {
	if !q.inDraw {
		panic("gpucmd: EndDraw called outside a draw")
	}
	idx := int32(len(q.batches) - 1)
	b := &q.batches[idx]
	vertCount := uint16(len(q.vbo)/VertexSize) - b.VBOOffset
	if vertCount == 0 {
		q.discardTail()
		q.inDraw = false
		q.curProgram = nil
		return
	}
	b.VBOCount = vertCount
	b.Framebuffer = q.attach.Framebuffer.ID

	if q.curProgram.HasAttachments {
		b.BindOffset = uint16(len(q.binds))
		for unit, slot := range q.attach.Textures {
			if slot.ID != 0 {
				q.binds = append(q.binds, Bind{Unit: uint32(unit), ID: slot.ID})
			}
		}
		b.BindCount = uint16(len(q.binds)) - b.BindOffset
	}

	b.UniformOffset = uint16(len(q.uniform))
	for key := int32(0); key < uniform.NMappings; key++ {
		snap := q.store.SnapshotOf(q.curProgram, key)
		if snap.Format == uniform.None {
			continue
		}
		q.uniform = append(q.uniform, UniformRef{Key: key, Snapshot: snap})
	}
	b.UniformCount = uint16(len(q.uniform)) - b.UniformOffset

	q.tryMerge(idx)
	q.inDraw = false
	q.curProgram = nil
}

// SplitDraw ends the current draw and immediately begins a new one
// with the same program and viewport. Used when a single conceptual
// draw must be emitted as several underlying ones (e.g. per-slice
// texture binds, or a text run spanning two glyph atlases).
//
// Correct because BeginDraw reads the vertex buffer's current length
// to seed the new batch's VBOOffset, and EndDraw has already advanced
// that length (possibly after folding the just-ended batch into its
// predecessor) by the time BeginDraw runs (spec §9 open question).
func (q *Queue) SplitDraw(program *uniform.Program, w, h uint16) {
	q.EndDraw()
	q.BeginDraw(program, w, h)
}

// Clear appends a clear batch bound to the current framebuffer. Clear
// batches are never merged with draws, or with each other.
func (q *Queue) Clear(mask uint32, w, h uint16) {
	if q.inDraw {
		panic("gpucmd: Clear called while recording a draw")
	}
	if q.atLimit() {
		return
	}
	idx := int32(len(q.batches))
	q.batches = append(q.batches, Batch{
		Kind:        ClearBatch,
		Framebuffer: q.attach.Framebuffer.ID,
		Width:       w,
		Height:      h,
		ClearMask:   mask,
	})
	q.link(idx)
}

// tryMerge compares the batch at idx against its immediate array
// predecessor (the last batch appended before it, which is also its
// list predecessor prior to any Reorder) and folds it in when the
// merge predicate of spec §4.3.1 holds.
func (q *Queue) tryMerge(idx int32) {
	if idx == 0 {
		return
	}
	prev := &q.batches[idx-1]
	cur := &q.batches[idx]
	if prev.Kind != DrawBatch || cur.Kind != DrawBatch {
		return
	}
	if prev.Program != cur.Program || prev.Width != cur.Width || prev.Height != cur.Height ||
		prev.Framebuffer != cur.Framebuffer {
		return
	}
	if uint32(prev.VBOOffset)+uint32(prev.VBOCount) != uint32(cur.VBOOffset) {
		return
	}
	merged := uint32(prev.VBOCount) + uint32(cur.VBOCount)
	if merged > 0xFFFF {
		return
	}
	if !q.snapshotsEqual(prev, cur) {
		return
	}
	prev.VBOCount = uint16(merged)
	q.discardTail()
}

// snapshotsEqual implements the byte-equal half of the merge
// predicate: bind count+ids+units match element-wise, and uniform
// count+format+array-count match with, per slot, either a shared
// arena offset or byte-identical value bytes.
func (q *Queue) snapshotsEqual(prev, cur *Batch) bool {
	if prev.BindCount != cur.BindCount {
		return false
	}
	for i := uint16(0); i < prev.BindCount; i++ {
		if q.binds[prev.BindOffset+i] != q.binds[cur.BindOffset+i] {
			return false
		}
	}
	if prev.UniformCount != cur.UniformCount {
		return false
	}
	for i := uint16(0); i < prev.UniformCount; i++ {
		a := q.uniform[prev.UniformOffset+i]
		b := q.uniform[cur.UniformOffset+i]
		if a.Key != b.Key {
			return false
		}
		if !q.store.Equal(a.Snapshot, b.Snapshot) {
			return false
		}
	}
	return true
}

// discardTail removes the most-recently-appended batch (always the
// last array element at the time this is called, by either EndDraw's
// zero-vertex path or tryMerge) from both the array and the
// execution list, truncating the side arrays back to the point it
// started consuming them.
func (q *Queue) discardTail() {
	idx := int32(len(q.batches) - 1)
	b := q.batches[idx]
	q.binds = q.binds[:b.BindOffset]
	q.uniform = q.uniform[:b.UniformOffset]
	q.tail = b.PrevIdx
	if q.tail >= 0 {
		q.batches[q.tail].NextIdx = -1
	} else {
		q.head = -1
	}
	q.batches = q.batches[:idx]
}

// unlink removes idx from the execution list without touching the
// array.
func (q *Queue) unlink(idx int32) {
	b := &q.batches[idx]
	p, n := b.PrevIdx, b.NextIdx
	if p >= 0 {
		q.batches[p].NextIdx = n
	} else {
		q.head = n
	}
	if n >= 0 {
		q.batches[n].PrevIdx = p
	} else {
		q.tail = p
	}
}

// insertBefore relinks idx into the list immediately before target.
func (q *Queue) insertBefore(idx, target int32) {
	b := &q.batches[idx]
	t := &q.batches[target]
	p := t.PrevIdx
	b.PrevIdx = p
	b.NextIdx = target
	t.PrevIdx = idx
	if p >= 0 {
		q.batches[p].NextIdx = idx
	} else {
		q.head = idx
	}
}

// Reorder performs the framebuffer-aware reorder of spec §4.3.2: scan
// the list in reverse, and for each batch whose framebuffer has a
// more-recent occurrence elsewhere in the list, move it immediately
// before that occurrence. This groups all batches targeting the same
// FBO consecutively, under the invariant that no batch sampling from
// FBO F's texture appears, in the unreordered stream, before every
// batch that writes to F (the render job guarantees this by always
// completing an offscreen render before appending the consumer's
// draw).
func (q *Queue) Reorder() {
	seen := make(map[uint32]int32, 8)
	cur := q.tail
	for cur >= 0 {
		b := &q.batches[cur]
		next := b.PrevIdx // capture before any mutation
		if seenIdx, ok := seen[b.Framebuffer]; ok && b.NextIdx != seenIdx {
			q.unlink(cur)
			q.insertBefore(cur, seenIdx)
		}
		seen[b.Framebuffer] = cur
		cur = next
	}
}

// Head returns the index of the first batch in execution order, or -1
// if the queue is empty.
func (q *Queue) Head() int32 { return q.head }

// Batch returns the batch stored at idx.
func (q *Queue) Batch(idx int32) Batch { return q.batches[idx] }

// Bind returns the bind stored at idx.
func (q *Queue) Bind(idx uint16) Bind { return q.binds[idx] }

// UniformRef returns the uniform ref stored at idx.
func (q *Queue) UniformRef(idx uint16) UniformRef { return q.uniform[idx] }

// VertexBuffer returns the recorded, interleaved vertex bytes.
func (q *Queue) VertexBuffer() []byte { return q.vbo }

// EndFrame releases any per-frame-only scratch. The byte/side arrays
// are retained (capacity kept) across frames; BeginFrame reuses them.
func (q *Queue) EndFrame() {}
