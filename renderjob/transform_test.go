package renderjob

import (
	"testing"

	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/uniform"
)

func newTestJob() *Job {
	j := &Job{store: uniform.NewStore(), alpha: 1}
	j.curMat3.I()
	return j
}

func TestFoldOffset(t *testing.T) {
	j := newTestJob()
	var ran bool
	j.foldOffset(10, 20, func() {
		ran = true
		if j.offsetX != 10 || j.offsetY != 20 {
			t.Fatalf("offset inside body = (%v, %v), want (10, 20)", j.offsetX, j.offsetY)
		}
	})
	if !ran {
		t.Fatal("foldOffset did not call body")
	}
	if j.offsetX != 0 || j.offsetY != 0 {
		t.Fatalf("offset after foldOffset = (%v, %v), want (0, 0)", j.offsetX, j.offsetY)
	}
}

func TestEffectiveMat3NoOffset(t *testing.T) {
	j := newTestJob()
	m := j.effectiveMat3()
	var id glm.Mat3
	id.I()
	if m != id {
		t.Fatalf("effectiveMat3() with no offset = %v, want identity", m)
	}
}

func TestEffectiveMat3WithOffset(t *testing.T) {
	j := newTestJob()
	j.offsetX, j.offsetY = 5, -3
	m := j.effectiveMat3()
	r := glm.Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}
	got := r.Transform(&m)
	want := glm.Rect{X0: 5, Y0: -3, X1: 6, Y1: -2}
	if got != want {
		t.Fatalf("effectiveMat3() translated rect = %v, want %v", got, want)
	}
}

func TestPushPopModelviewRestoresState(t *testing.T) {
	j := newTestJob()
	j.offsetX, j.offsetY = 1, 2
	savedMat := j.curMat3
	startStamp := j.store.Stamp(uniform.Modelview)

	tr := glm.Transform{Category: glm.Affine, ScaleX: 1, ScaleY: 1, DX: 100, DY: 0}
	j.pushModelview(tr)
	if j.offsetX != 0 || j.offsetY != 0 {
		t.Fatalf("pushModelview did not reset pending offset: (%v, %v)", j.offsetX, j.offsetY)
	}
	if j.curMat3 == savedMat {
		t.Fatal("pushModelview did not change curMat3")
	}
	if got := j.store.Stamp(uniform.Modelview); got != startStamp+1 {
		t.Fatalf("Modelview stamp after push = %v, want %v", got, startStamp+1)
	}

	j.popModelview()
	if j.curMat3 != savedMat {
		t.Fatalf("curMat3 after pop = %v, want %v", j.curMat3, savedMat)
	}
	if j.offsetX != 1 || j.offsetY != 2 {
		t.Fatalf("offset after pop = (%v, %v), want (1, 2)", j.offsetX, j.offsetY)
	}
	if got := j.store.Stamp(uniform.Modelview); got != startStamp+2 {
		t.Fatalf("Modelview stamp after pop = %v, want %v", got, startStamp+2)
	}
}

func TestPushModelviewNestedRestoresEachFrame(t *testing.T) {
	j := newTestJob()
	outer := glm.Transform{Category: glm.Affine, ScaleX: 2, ScaleY: 2}
	inner := glm.Transform{Category: glm.Affine, ScaleX: 1, ScaleY: 1, DX: 1, DY: 1}

	root := j.curMat3
	j.pushModelview(outer)
	afterOuter := j.curMat3
	j.pushModelview(inner)
	j.popModelview()
	if j.curMat3 != afterOuter {
		t.Fatalf("curMat3 after inner pop = %v, want %v", j.curMat3, afterOuter)
	}
	j.popModelview()
	if j.curMat3 != root {
		t.Fatalf("curMat3 after outer pop = %v, want %v", j.curMat3, root)
	}
}
