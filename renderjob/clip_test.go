package renderjob

import (
	"testing"

	"github.com/gviegas/neogl/driver"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/rendernode"
	"github.com/gviegas/neogl/uniform"
)

func newTestJobWithClip(viewport glm.Rect) *Job {
	j := newTestJob()
	// A node kind with no visitor routes to visitFallback, which is a
	// safe no-op as long as Config().DebugShaders is false (the zero
	// value), letting these tests drive j.visit through enterClip
	// without a real GL-backed driver.
	j.drv = new(driver.Driver)
	j.viewport = viewport
	j.curClip = rootClip(viewport)
	return j
}

func unhandledNode() *rendernode.Node {
	return &rendernode.Node{Kind: rendernode.Kind(-1)}
}

func TestEnterClipEmptyIntersectionSkipsChild(t *testing.T) {
	j := newTestJobWithClip(glm.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10})
	rr := glm.RoundedRect{Bounds: glm.Rect{X0: 100, Y0: 100, X1: 200, Y1: 200}}
	stamp := j.store.Stamp(uniform.ClipRect)
	j.enterClip(nil, rr, unhandledNode())
	if len(j.clip) != 0 {
		t.Fatalf("clip stack not empty after empty-intersection bail: %v", j.clip)
	}
	if got := j.store.Stamp(uniform.ClipRect); got != stamp {
		t.Fatalf("ClipRect stamp changed on empty-intersection bail: %v -> %v", stamp, got)
	}
}

// TestEnterClipRoundedChildInsideCurrentClip exercises the second
// switch case of enterClip: a non-rectilinear rr (so the cheap
// rectilinear-intersect branch does not apply) whose bounds already
// lie entirely inside the active clip needs no new clip geometry at
// all, just the "fully contained" sentinel.
func TestEnterClipRoundedChildInsideCurrentClip(t *testing.T) {
	j := newTestJobWithClip(glm.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100})
	corner := glm.Corner{5, 5}
	rr := glm.RoundedRect{
		Bounds:      glm.Rect{X0: 10, Y0: 10, X1: 50, Y1: 50},
		TopLeft:     corner,
		TopRight:    corner,
		BottomRight: corner,
		BottomLeft:  corner,
	}
	stamp := j.store.Stamp(uniform.ClipRect)
	j.enterClip(nil, rr, unhandledNode())
	// pushClipFullyContained does not bump ClipRect; popClip always
	// does, so a net delta of exactly 1 over the round trip is this
	// path's signature (vs. 2 for pushClipIntersect's push+pop).
	if got := j.store.Stamp(uniform.ClipRect); got != stamp+1 {
		t.Fatalf("ClipRect stamp delta = %v, want 1 (fully-contained path)", got-stamp)
	}
	if len(j.clip) != 0 {
		t.Fatalf("clip stack not restored: %v", j.clip)
	}
	if j.curClip.Rect.Bounds != (glm.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}) {
		t.Fatalf("curClip not restored: %v", j.curClip)
	}
}

func TestEnterClipRectilinearIntersect(t *testing.T) {
	j := newTestJobWithClip(glm.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100})
	rr := glm.RoundedRect{Bounds: glm.Rect{X0: 50, Y0: 50, X1: 200, Y1: 200}}
	stamp := j.store.Stamp(uniform.ClipRect)
	j.enterClip(nil, rr, unhandledNode())
	if got := j.store.Stamp(uniform.ClipRect); got != stamp+2 {
		t.Fatalf("ClipRect stamp delta = %v, want 2 (push+pop of a real intersect)", got-stamp)
	}
	if len(j.clip) != 0 {
		t.Fatalf("clip stack not restored: %v", j.clip)
	}
	if j.curClip.Rect.Bounds != (glm.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}) {
		t.Fatalf("curClip not restored: %v", j.curClip)
	}
}

func TestEnterClipInheritedFullyContained(t *testing.T) {
	j := newTestJobWithClip(glm.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100})
	j.curClip.IsFullyContained = true
	stamp := j.store.Stamp(uniform.ClipRect)
	rr := glm.RoundedRect{Bounds: glm.Rect{X0: 10, Y0: 10, X1: 20, Y1: 20}}
	j.enterClip(nil, rr, unhandledNode())
	// pushClipFullyContained (no bump) + popClip (bump) = net +1, and
	// the geometry is untouched (spec §4.6.1's sentinel).
	if got := j.store.Stamp(uniform.ClipRect); got != stamp+1 {
		t.Fatalf("ClipRect stamp delta = %v, want 1", got-stamp)
	}
	if !j.curClip.IsFullyContained {
		t.Fatal("IsFullyContained not restored")
	}
}

func TestPushPopClipIntersectRestoresRect(t *testing.T) {
	j := newTestJobWithClip(glm.Rect{X0: 0, Y0: 0, X1: 50, Y1: 50})
	saved := j.curClip
	j.pushClipIntersect(glm.RoundedRect{Bounds: glm.Rect{X0: 5, Y0: 5, X1: 10, Y1: 10}})
	if j.curClip.Rect.Bounds != (glm.Rect{X0: 5, Y0: 5, X1: 10, Y1: 10}) {
		t.Fatalf("curClip after push = %v", j.curClip)
	}
	j.popClip()
	if j.curClip != saved {
		t.Fatalf("curClip after pop = %v, want %v", j.curClip, saved)
	}
	if len(j.clip) != 0 {
		t.Fatalf("clip stack not empty after pop: %v", j.clip)
	}
}
