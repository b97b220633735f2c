package renderjob

import (
	"fmt"

	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/gpucmd"
	"github.com/gviegas/neogl/rendernode"
)

// Render walks root and executes the resulting draws against the
// window-system framebuffer, per spec §4.6.5's render-job lifecycle:
// BeginFrame, tree walk, Reorder, Execute, EndFrame.
func (j *Job) Render(root *rendernode.Node, viewport glm.Rect, scale float32, region Region) error {
	if err := j.ctx.MakeCurrent(); err != nil {
		return fmt.Errorf("renderjob: make current: %w", err)
	}
	defFB := j.ctx.DefaultFramebuffer()

	j.beginFrame()
	j.reset(viewport, scale, region)
	j.attachState.SetFramebuffer(defFB)
	w, h := uint16(viewport.Width()), uint16(viewport.Height())
	j.queue.Clear(glctx.ColorBufferBit, w, h)
	if root != nil {
		j.visit(root)
	}
	j.queue.Reorder()
	j.queue.Execute(j.gl, j.drv.ProgramLookup, j.execParams(defFB, viewport, region))
	j.endFrame()
	return nil
}

// RenderFlipped is Render for callers needing the result with a
// flipped Y axis (e.g. handing the frame to an external compositor
// that expects top-left origin where this renderer assumes
// bottom-left, spec §4.6.5): root is first rendered into an
// intermediate target with an inverted projection, then blitted to
// the default framebuffer with a final unflipped draw.
func (j *Job) RenderFlipped(root *rendernode.Node, viewport glm.Rect, scale float32, region Region) error {
	if err := j.ctx.MakeCurrent(); err != nil {
		return fmt.Errorf("renderjob: make current: %w", err)
	}
	defFB := j.ctx.DefaultFramebuffer()

	w, h := int(viewport.Width()*scale), int(viewport.Height()*scale)
	if w <= 0 || h <= 0 {
		return nil
	}
	rt, _, err := j.drv.CreateRenderTarget(w, h, rendernode.FormatRGBA8, glctx.Linear, glctx.Linear)
	if err != nil {
		return fmt.Errorf("renderjob: create flip target: %w", err)
	}

	j.beginFrame()
	j.reset(viewport, scale, Region{})
	// Flip by swapping the projection's Y bounds; the rest of the
	// tree-walk state (clip, modelview) is unaffected since it is all
	// expressed in the un-flipped viewport's own coordinate space.
	j.projection = glm.Ortho(viewport.X0, viewport.X1, viewport.Y0, viewport.Y1)
	j.attachState.SetFramebuffer(rt.Framebuffer)
	j.targetW, j.targetH = uint16(w), uint16(h)
	j.queue.Clear(glctx.ColorBufferBit, uint16(w), uint16(h))
	if root != nil {
		j.visit(root)
	}
	j.queue.Reorder()
	j.queue.Execute(j.gl, j.drv.ProgramLookup, j.execParams(rt.Framebuffer, viewport, Region{}))

	texID := j.drv.ReleaseRenderTarget(rt, true)

	// The intermediate pass's batches were already executed; start a
	// fresh recording for the blit instead of appending onto them.
	j.queue.BeginFrame()
	j.reset(viewport, scale, region)
	j.attachState.SetFramebuffer(defFB)
	j.queue.Clear(glctx.ColorBufferBit, uint16(viewport.Width()), uint16(viewport.Height()))
	p := j.programs.Program(ProgTexture)
	j.applyCommon(p)
	j.bindTexture0(p, texID, attach.FilterLinear, attach.FilterLinear)
	vw, vh := j.currentSize()
	j.queue.BeginDraw(p, vw, vh)
	v := texturedQuad(viewport, 0, 0, 1, 1, glm.Vec4{1, 1, 1, 1})
	j.queue.AppendVertices(v[:]...)
	j.queue.EndDraw()
	j.queue.Reorder()
	j.queue.Execute(j.gl, j.drv.ProgramLookup, j.execParams(defFB, viewport, region))
	j.endFrame()
	return nil
}

// beginFrame advances the driver and atlas libraries' frame counters
// and the queue's own recording state, shared by Render and
// RenderFlipped.
func (j *Job) beginFrame() {
	j.drv.BeginFrame(j.queue)
	j.glyphs.BeginFrame(j.frameID + 1)
	j.icons.BeginFrame(j.frameID + 1)
	j.queue.BeginFrame()
}

func (j *Job) endFrame() {
	j.queue.EndFrame()
	j.drv.EndFrame()
	j.drv.AfterFrame()
}

// execParams builds the gpucmd.ExecParams for a pass targeting fb,
// converting region's top-left damage rect into GL's bottom-left
// scissor convention.
func (j *Job) execParams(fb uint32, viewport glm.Rect, region Region) gpucmd.ExecParams {
	p := gpucmd.ExecParams{
		ViewportHeight:     int32(viewport.Height()),
		DefaultFramebuffer: fb,
	}
	if region.Scissor {
		p.HasScissor = true
		p.ScissorX = int32(region.Rect.X0)
		p.ScissorY = int32(region.Rect.Y0)
		p.ScissorW = int32(region.Rect.Width())
		p.ScissorH = int32(region.Rect.Height())
	}
	return p
}
