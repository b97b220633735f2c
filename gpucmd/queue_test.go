package gpucmd

import (
	"testing"

	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/uniform"
)

func newTestQueue(t *testing.T) (*Queue, *uniform.Store, *attach.State, *uniform.Program) {
	t.Helper()
	store := uniform.NewStore()
	state := attach.NewState()
	q := NewQueue(store, state)
	q.BeginFrame()
	gl := newFakeGL()
	p := store.GetProgram(gl, 1, []uniform.MappingSpec{
		{Key: 0, Name: "u_alpha", Format: uniform.F1},
	}, false)
	return q, store, state, p
}

func red(w, h float32) (glm.Vec4, glm.Rect) {
	return glm.Vec4{1, 0, 0, 1}, glm.Rect{X0: 10, Y0: 20, X1: 10 + w, Y1: 20 + h}
}

func quad(r glm.Rect, color glm.Vec4) [6]Vertex {
	tl := Vertex{Pos: glm.Vec2{r.X0, r.Y0}, Color: color}
	tr := Vertex{Pos: glm.Vec2{r.X1, r.Y0}, Color: color}
	bl := Vertex{Pos: glm.Vec2{r.X0, r.Y1}, Color: color}
	br := Vertex{Pos: glm.Vec2{r.X1, r.Y1}, Color: color}
	return [6]Vertex{tl, tr, bl, tr, br, bl}
}

// Scenario A: single red rect draws one batch, six vertices, no
// binds, no uniform changes from initial.
func TestSingleRectIsOneBatch(t *testing.T) {
	q, _, _, p := newTestQueue(t)
	color, r := red(30, 40)

	q.BeginDraw(p, 100, 100)
	v := quad(r, color)
	q.AppendVertices(v[:]...)
	q.EndDraw()

	if q.Head() < 0 {
		t.Fatal("expected one recorded batch, have none")
	}
	b := q.Batch(q.Head())
	if b.Kind != DrawBatch {
		t.Fatalf("batch kind: have %v, want DrawBatch", b.Kind)
	}
	if b.VBOCount != 6 {
		t.Fatalf("vertex count: have %d, want 6", b.VBOCount)
	}
	if b.BindCount != 0 {
		t.Fatalf("bind count: have %d, want 0 (program has no attachments)", b.BindCount)
	}
	if b.NextIdx != -1 {
		t.Fatalf("single batch must be both head and tail")
	}
}

// Scenario B: two adjacent color draws of identical color, contiguous
// vertex ranges, merge into one 12-vertex batch.
func TestAdjacentIdenticalDrawsMerge(t *testing.T) {
	q, _, _, p := newTestQueue(t)
	color := glm.Vec4{0, 1, 0, 1}

	q.BeginDraw(p, 50, 50)
	v1 := quad(glm.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}, color)
	q.AppendVertices(v1[:]...)
	q.EndDraw()

	q.BeginDraw(p, 50, 50)
	v2 := quad(glm.Rect{X0: 10, Y0: 0, X1: 20, Y1: 10}, color)
	q.AppendVertices(v2[:]...)
	q.EndDraw()

	if q.Head() < 0 || q.Batch(q.Head()).NextIdx != -1 {
		t.Fatal("expected the two draws to merge into a single batch")
	}
	if got := q.Batch(q.Head()).VBOCount; got != 12 {
		t.Fatalf("merged vertex count: have %d, want 12", got)
	}
}

// A changed uniform value between two otherwise-identical draws must
// prevent merging.
func TestDifferingUniformsPreventMerge(t *testing.T) {
	q, store, _, p := newTestQueue(t)
	color := glm.Vec4{0, 0, 1, 1}

	q.BeginDraw(p, 50, 50)
	store.Set1F(p, 0, 0, 0.5)
	v1 := quad(glm.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}, color)
	q.AppendVertices(v1[:]...)
	q.EndDraw()

	q.BeginDraw(p, 50, 50)
	store.Set1F(p, 0, 1, 0.9)
	v2 := quad(glm.Rect{X0: 10, Y0: 0, X1: 20, Y1: 10}, color)
	q.AppendVertices(v2[:]...)
	q.EndDraw()

	if q.Batch(q.Head()).NextIdx == -1 {
		t.Fatal("draws with differing alpha uniforms must not merge")
	}
}

// An empty draw (BeginDraw/EndDraw with no vertices) records nothing.
func TestEmptyDrawIsDiscarded(t *testing.T) {
	q, _, _, p := newTestQueue(t)
	q.BeginDraw(p, 10, 10)
	q.EndDraw()
	if q.Head() != -1 {
		t.Fatal("an empty draw must not produce a batch")
	}
}

// Scenario E / §9 open question: SplitDraw produces two batches whose
// vertex ranges are contiguous and disjoint.
func TestSplitDrawProducesContiguousRanges(t *testing.T) {
	q, store, state, p := newTestQueue(t)
	// Binds are only recorded for a program with attachments.
	p = store.GetProgram(newFakeGL(), 2, []uniform.MappingSpec{{Key: 0, Name: "u_alpha", Format: uniform.F1}}, true)
	color := glm.Vec4{1, 1, 1, 1}

	state.SetTexture(0, 0x0DE1, 7, attach.FilterLinear, attach.FilterLinear)
	q.BeginDraw(p, 10, 10)
	v1 := quad(glm.Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}, color)
	q.AppendVertices(v1[:]...)
	// Split before rebinding, so the closed-out half keeps unit 0 bound
	// to 7 while the second half binds 8 and the two cannot merge, the
	// way a text run switching atlases would.
	q.SplitDraw(p, 10, 10)
	state.SetTexture(0, 0x0DE1, 8, attach.FilterLinear, attach.FilterLinear)
	v2 := quad(glm.Rect{X0: 1, Y0: 0, X1: 2, Y1: 1}, color)
	q.AppendVertices(v2[:]...)
	q.EndDraw()

	first := q.Batch(q.Head())
	if first.NextIdx == -1 {
		t.Fatal("expected two distinct batches after SplitDraw with a changed bind")
	}
	second := q.Batch(first.NextIdx)
	if uint32(first.VBOOffset)+uint32(first.VBOCount) != uint32(second.VBOOffset) {
		t.Fatalf("vertex ranges not contiguous: first [%d,+%d) second offset %d",
			first.VBOOffset, first.VBOCount, second.VBOOffset)
	}
}

// Invariant 1: after Reorder, the list is acyclic, every batch appears
// exactly once, head.Prev == -1 and tail.Next == -1.
func TestReorderListConsistency(t *testing.T) {
	q, _, state, p := newTestQueue(t)
	color := glm.Vec4{1, 1, 1, 1}

	// Draw to FBO 1, then FBO 2, then FBO 1 again: a realistic case
	// where an offscreen render (FBO 2) is sampled by a later FBO-1
	// draw, so batches targeting FBO 1 should end up adjacent.
	state.SetFramebuffer(1)
	q.BeginDraw(p, 10, 10)
	v := quad(glm.Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}, color)
	q.AppendVertices(v[:]...)
	q.EndDraw()

	state.SetFramebuffer(2)
	q.BeginDraw(p, 10, 10)
	q.AppendVertices(v[:]...)
	q.EndDraw()

	state.SetFramebuffer(1)
	q.BeginDraw(p, 10, 10)
	v2 := quad(glm.Rect{X0: 5, Y0: 5, X1: 6, Y1: 6}, color)
	q.AppendVertices(v2[:]...)
	q.EndDraw()

	q.Reorder()

	seen := make(map[int32]bool)
	count := 0
	idx := q.Head()
	if idx >= 0 && q.Batch(idx).PrevIdx != -1 {
		t.Fatal("head batch must have PrevIdx == -1")
	}
	var last int32 = -1
	for idx >= 0 {
		if seen[idx] {
			t.Fatalf("batch %d visited twice: list is cyclic", idx)
		}
		seen[idx] = true
		count++
		last = idx
		idx = q.Batch(idx).NextIdx
	}
	if count != 3 {
		t.Fatalf("batches visited: have %d, want 3", count)
	}
	if last >= 0 && q.Batch(last).NextIdx != -1 {
		t.Fatal("tail batch must have NextIdx == -1")
	}
}

// Clear batches never merge with draws, even when framebuffer and
// viewport coincide.
func TestClearNeverMergesWithDraw(t *testing.T) {
	q, _, _, p := newTestQueue(t)
	color := glm.Vec4{1, 0, 0, 1}

	q.Clear(0x4000, 64, 64)
	q.BeginDraw(p, 64, 64)
	v := quad(glm.Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}, color)
	q.AppendVertices(v[:]...)
	q.EndDraw()

	if q.Batch(q.Head()).NextIdx == -1 {
		t.Fatal("a clear followed by a draw must remain two batches")
	}
}
