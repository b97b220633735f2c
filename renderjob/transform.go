package renderjob

import (
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/uniform"
)

// modelviewFrame is one entry of the modelview stack (spec §3.6).
type modelviewFrame struct {
	T                      glm.Transform
	PreOffsetX, PreOffsetY float32
}

// pushModelview folds t onto the cached current matrix and records a
// frame so popModelview can restore both the matrix and the pre-push
// offset. Only valid for t.Category Affine or Twod; Identity/Translate
// are folded into offsetX/Y instead (see foldOffset), and Threed never
// reaches here (the Transform visitor renders it offscreen).
func (j *Job) pushModelview(t glm.Transform) {
	var local glm.Mat3
	if t.Category <= glm.Affine {
		local = t.ToAffine()
	} else {
		local = t.To2D()
	}
	var next glm.Mat3
	next.Mul(&j.curMat3, &local)

	j.modelview = append(j.modelview, modelviewFrame{T: t, PreOffsetX: j.offsetX, PreOffsetY: j.offsetY})
	j.mat3Stack = append(j.mat3Stack, j.curMat3)
	j.curMat3 = next
	j.offsetX, j.offsetY = 0, 0
	j.store.BumpStamp(uniform.Modelview)
}

func (j *Job) popModelview() {
	n := len(j.modelview) - 1
	frame := j.modelview[n]
	j.modelview = j.modelview[:n]
	j.curMat3 = j.mat3Stack[n]
	j.mat3Stack = j.mat3Stack[:n]
	j.offsetX, j.offsetY = frame.PreOffsetX, frame.PreOffsetY
	j.store.BumpStamp(uniform.Modelview)
}

// foldOffset applies dx/dy as plain pointer arithmetic on offsetX/Y
// (spec §4.6.1's "offset" rule), cheaper than pushModelview because
// it touches neither the matrix stack nor the shared-uniform stamp.
func (j *Job) foldOffset(dx, dy float32, body func()) {
	j.offsetX += dx
	j.offsetY += dy
	body()
	j.offsetX -= dx
	j.offsetY -= dy
}

// effectiveMat3 returns the modelview matrix a draw emitted right now
// must use: the cached current matrix composed with the pending
// translate-only offset.
func (j *Job) effectiveMat3() glm.Mat3 {
	if j.offsetX == 0 && j.offsetY == 0 {
		return j.curMat3
	}
	off := glm.Translation2D(j.offsetX, j.offsetY)
	var m glm.Mat3
	m.Mul(&j.curMat3, &off)
	return m
}
