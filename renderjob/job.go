// Package renderjob implements the Render Job: it walks a rendernode
// tree and records the draws it implies onto a gpucmd.Queue, tracking
// the clip/modelview/alpha state of spec §3.6 along the way.
//
// Not safe for concurrent use; a Job is owned by the single thread
// driving the GL context for a frame, the same contract gpucmd.Queue,
// uniform.Store and driver.Driver state in their own package docs.
package renderjob

import (
	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/driver"
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/glyph"
	"github.com/gviegas/neogl/gpucmd"
	"github.com/gviegas/neogl/icon"
	"github.com/gviegas/neogl/uniform"
)

// Region is the optional damage rect a render pass may scissor to
// (spec §3.6).
type Region struct {
	Rect    glm.Rect
	Scissor bool
}

// Job carries the per-frame state a tree walk needs: the viewport/
// projection the walk renders into, the clip/modelview/alpha stacks
// of spec §3.6, and the resources (queue, store, driver, atlas
// libraries, program set) every visitor draws through.
type Job struct {
	ctx glctx.Context
	gl  glctx.GL

	drv         *driver.Driver
	store       *uniform.Store
	attachState *attach.State
	queue       *gpucmd.Queue
	programs    Programs
	glyphs      *glyph.Library
	icons       *icon.Library

	viewport   glm.Rect
	projection glm.Mat4

	// modelview is the transform-frame stack; curMat3 is the cached
	// "current" pointer spec §4.6.1 describes, kept as a running
	// product rather than re-derived from the stack on every node.
	modelview []modelviewFrame
	mat3Stack []glm.Mat3
	curMat3   glm.Mat3

	clip    []clipFrame
	curClip clipFrame

	offsetX, offsetY float32
	alpha            float32

	region Region
	scale  float32

	// targetW/targetH track the pixel size of the render target
	// currently bound by an in-progress offscreen pass; zero means
	// "draw straight to the viewport-sized target" (see currentSize).
	targetW, targetH uint16

	frameID int64

	// customStamp is handed out fresh to every Set* call on a
	// visitor-local uniform key (anything not in SharedUniform): it
	// only needs to differ from whatever stamp that Mapping last saw,
	// so a plain per-call counter satisfies that cheaply without a
	// per-key bump table.
	customStamp uint32
}

// nextStamp returns a stamp value guaranteed to differ from the one
// passed to the previous Set* call, for uniform keys that change on
// every draw (gradient stops, blur radius, and similar program-local
// values with no SharedUniform slot of their own).
func (j *Job) nextStamp() uint32 {
	j.customStamp++
	return j.customStamp
}

// New creates a Job with a device scale factor of 1; Render and
// RenderFlipped set the scale used for offscreen render-target sizing
// (spec §4.6.3).
func New(
	ctx glctx.Context, gl glctx.GL,
	drv *driver.Driver, store *uniform.Store, attachState *attach.State, queue *gpucmd.Queue,
	programs Programs, glyphs *glyph.Library, icons *icon.Library,
) *Job {
	j := &Job{
		ctx: ctx, gl: gl,
		drv: drv, store: store, attachState: attachState, queue: queue,
		programs: programs, glyphs: glyphs, icons: icons,
		alpha: 1,
		scale: 1,
	}
	j.curMat3.I()
	return j
}

// reset prepares j for a new frame targeting viewport, with scale as
// the device scale factor and region as the optional damage rect.
func (j *Job) reset(viewport glm.Rect, scale float32, region Region) {
	j.viewport = viewport
	j.projection = glm.Ortho(viewport.X0, viewport.X1, viewport.Y1, viewport.Y0)
	j.modelview = j.modelview[:0]
	j.mat3Stack = j.mat3Stack[:0]
	j.curMat3.I()
	j.clip = j.clip[:0]
	j.curClip = rootClip(viewport)
	j.offsetX, j.offsetY = 0, 0
	j.alpha = 1
	j.region = region
	j.scale = scale
	j.targetW, j.targetH = 0, 0
	j.frameID++
	j.store.BumpStamp(uniform.Viewport)
	j.store.BumpStamp(uniform.Projection)
	j.store.BumpStamp(uniform.Modelview)
	j.store.BumpStamp(uniform.ClipRect)
}
