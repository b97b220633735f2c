package gpucmd

import (
	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/uniform"
)

// ExecParams carries the per-frame values Execute needs that the
// queue itself does not track: the viewport height used to flip
// scissor coordinates into GL's bottom-left origin, an optional
// damage (scissor) rect, and the default framebuffer id (scissor is
// only enabled when the bound FBO equals this id and a damage rect
// was supplied).
type ExecParams struct {
	ViewportHeight   int32
	HasScissor       bool
	ScissorX         int32
	ScissorY         int32
	ScissorW         int32
	ScissorH         int32
	DefaultFramebuffer uint32
}

// Execute walks the batch list head to tail, issuing the minimal
// sequence of GL state changes and draw/clear calls per spec §4.3.3.
// Call Reorder first if a framebuffer-aware reorder is desired; the
// un-reordered (recording-order) list is also a valid, if less
// efficient, execution order.
func (q *Queue) Execute(gl glctx.GL, lookup ProgramLookup, p ExecParams) {
	gl.Enable(glctx.DepthTest)
	gl.DepthFunc(glctx.LEqual)
	gl.Enable(glctx.Blend)
	gl.BlendFunc(glctx.One, glctx.OneMinusSrcAlpha)
	gl.BlendEquation(glctx.FuncAdd)

	vao := gl.GenVertexArray()
	vbo := gl.GenBuffer()
	gl.BindVertexArray(vao)
	gl.BindBuffer(glctx.ArrayBuffer, vbo)
	gl.BufferData(glctx.ArrayBuffer, q.vbo, glctx.StreamDraw)

	const stride = int32(VertexSize)
	gl.VertexAttribPointer(0, 2, glctx.Float, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, glctx.Float, false, stride, 8)
	gl.EnableVertexAttribArray(1)
	// Color and color2 are packed as half-floats (see VertexSize); the
	// type passed here must match that packing, not the float32 the
	// Vertex struct exposes to Go callers.
	gl.VertexAttribPointer(2, 4, glctx.HalfFloat, false, stride, 16)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(3, 4, glctx.HalfFloat, false, stride, 24)
	gl.EnableVertexAttribArray(3)

	var curFB uint32 = ^uint32(0)
	var curProgram uint32
	var curW, curH uint16
	var units [4]uint32
	for i := range units {
		units[i] = ^uint32(0)
	}
	haveFB := false

	setFB := func(fbo uint32, w, h uint16) {
		if !haveFB || fbo != curFB {
			gl.BindFramebuffer(glctx.Framebuffer, fbo)
			curFB = fbo
			haveFB = true
			if p.HasScissor && fbo == p.DefaultFramebuffer {
				gl.Enable(glctx.ScissorTest)
				gl.Scissor(p.ScissorX, p.ViewportHeight-p.ScissorY-p.ScissorH, p.ScissorW, p.ScissorH)
			} else {
				gl.Disable(glctx.ScissorTest)
			}
		}
		if w != curW || h != curH {
			gl.Viewport(0, 0, int32(w), int32(h))
			curW, curH = w, h
		}
	}

	for idx := q.head; idx >= 0; {
		b := q.batches[idx]
		switch b.Kind {
		case ClearBatch:
			setFB(b.Framebuffer, b.Width, b.Height)
			gl.ClearColor(0, 0, 0, 0)
			gl.Clear(b.ClearMask)
		case DrawBatch:
			setFB(b.Framebuffer, b.Width, b.Height)
			if b.Program != curProgram {
				gl.UseProgram(b.Program)
				curProgram = b.Program
			}
			for i := uint16(0); i < b.BindCount; i++ {
				bind := q.binds[b.BindOffset+i]
				if units[bind.Unit] != bind.ID {
					gl.ActiveTexture(glctx.Texture0 + bind.Unit)
					gl.BindTexture(glctx.Texture2D, bind.ID)
					units[bind.Unit] = bind.ID
				}
			}
			program := lookup(b.Program)
			if program != nil {
				for i := uint16(0); i < b.UniformCount; i++ {
					ref := q.uniform[b.UniformOffset+i]
					q.store.ApplySnapshot(gl, program.ID, ref.Snapshot)
				}
			}
			gl.DrawArrays(glctx.Triangles, int32(b.VBOOffset), int32(b.VBOCount))
		}
		idx = b.NextIdx
	}

	gl.BindVertexArray(0)
	gl.DeleteVertexArrays([]uint32{vao})
	gl.DeleteBuffers([]uint32{vbo})
}

// ProgramLookup resolves a GL program id back to the *uniform.Program
// record Apply needs. The driver's program registry satisfies this.
type ProgramLookup func(glProgram uint32) *uniform.Program
