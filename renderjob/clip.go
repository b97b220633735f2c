package renderjob

import (
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/rendernode"
	"github.com/gviegas/neogl/uniform"
)

// clipFrame is one entry of the clip stack (spec §3.6): a rounded-rect
// outline, whether it degenerates to a plain rectangle, and whether
// every descendant draw is already certainly inside it.
type clipFrame struct {
	Rect             glm.RoundedRect
	IsRectilinear    bool
	IsFullyContained bool
}

func rootClip(viewport glm.Rect) clipFrame {
	return clipFrame{Rect: glm.RoundedRect{Bounds: viewport}, IsRectilinear: true}
}

// pushClipFullyContained records the "fully contained" sentinel of
// spec §4.6.1: the clip geometry is unchanged, but descendants can
// skip their own containment test.
func (j *Job) pushClipFullyContained() {
	j.clip = append(j.clip, j.curClip)
	j.curClip.IsFullyContained = true
}

// pushClipIntersect replaces the active clip with rr, which the
// caller has already established intersects the previous clip.
func (j *Job) pushClipIntersect(rr glm.RoundedRect) {
	j.clip = append(j.clip, j.curClip)
	j.curClip = clipFrame{Rect: rr, IsRectilinear: rr.IsRectilinear()}
	j.store.BumpStamp(uniform.ClipRect)
}

func (j *Job) popClip() {
	n := len(j.clip) - 1
	j.curClip = j.clip[n]
	j.clip = j.clip[:n]
	j.store.BumpStamp(uniform.ClipRect)
}

// enterClip applies the clip-intersection algorithm of spec §4.6.1
// for a child clipped to rr (already in node-local space) and visits
// child under the resulting clip state, or renders it offscreen when
// neither a rectilinear intersection nor rounded containment applies.
// n is the owning Clip/RoundedClip node, used as the offscreen cache
// key when that fallback is needed.
func (j *Job) enterClip(n *rendernode.Node, rr glm.RoundedRect, child *rendernode.Node) {
	if j.curClip.IsFullyContained {
		j.pushClipFullyContained()
		j.visit(child)
		j.popClip()
		return
	}

	transformed := rr.Bounds.Transform(&j.curMat3)
	if transformed.Intersect(j.curClip.Rect.Bounds).IsEmpty() {
		return
	}

	switch {
	case j.curClip.IsRectilinear && rr.IsRectilinear():
		inter := transformed.Intersect(j.curClip.Rect.Bounds)
		if j.curClip.Rect.Bounds.Contains(transformed) {
			j.pushClipFullyContained()
		} else {
			j.pushClipIntersect(glm.RoundedRect{Bounds: inter})
		}
		j.visit(child)
		j.popClip()
	case j.curClip.Rect.ContainsRect(transformed):
		j.pushClipFullyContained()
		j.visit(child)
		j.popClip()
	default:
		j.renderClippedOffscreen(n, rr, child)
	}
}
