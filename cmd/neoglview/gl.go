// Command neoglview is a minimal example program: it opens a window,
// wires every core package together, and renders a small demo
// rendernode tree each frame. It exists to prove the core compiles
// and links against a real GL context, not as a reference UI toolkit.
package main

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// glImpl implements glctx.GL over github.com/go-gl/gl/v3.3-core/gl.
// It assumes the caller already made the owning context current;
// every method is a thin, allocation-light wrapper around the
// corresponding gl package call.
type glImpl struct{}

func (glImpl) Enable(cap uint32)                     { gl.Enable(cap) }
func (glImpl) Disable(cap uint32)                    { gl.Disable(cap) }
func (glImpl) DepthFunc(fn uint32)                   { gl.DepthFunc(fn) }
func (glImpl) BlendFunc(sfactor, dfactor uint32)     { gl.BlendFunc(sfactor, dfactor) }
func (glImpl) BlendEquation(mode uint32)             { gl.BlendEquation(mode) }
func (glImpl) Viewport(x, y, w, h int32)             { gl.Viewport(x, y, w, h) }
func (glImpl) Scissor(x, y, w, h int32)              { gl.Scissor(x, y, w, h) }
func (glImpl) ClearColor(r, g, b, a float32)         { gl.ClearColor(r, g, b, a) }
func (glImpl) Clear(mask uint32)                     { gl.Clear(mask) }

func (glImpl) BindFramebuffer(target, fbo uint32) { gl.BindFramebuffer(target, fbo) }

func (glImpl) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (glImpl) DeleteFramebuffers(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	gl.DeleteFramebuffers(int32(len(ids)), &ids[0])
}

func (glImpl) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, textarget, texture, level)
}

func (glImpl) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

func (glImpl) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (glImpl) DeleteTextures(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	gl.DeleteTextures(int32(len(ids)), &ids[0])
}

func (glImpl) BindTexture(target, id uint32) { gl.BindTexture(target, id) }
func (glImpl) ActiveTexture(unit uint32)     { gl.ActiveTexture(unit) }

func (glImpl) TexImage2D(target uint32, level int32, internalFormat int32, w, h int32, format, xtype uint32, pixels []byte) {
	var p unsafe.Pointer
	if len(pixels) > 0 {
		p = unsafe.Pointer(&pixels[0])
	}
	gl.TexImage2D(target, level, internalFormat, w, h, 0, format, xtype, p)
}

func (glImpl) TexSubImage2D(target uint32, level, xoff, yoff, w, h int32, format, xtype uint32, pixels []byte) {
	var p unsafe.Pointer
	if len(pixels) > 0 {
		p = unsafe.Pointer(&pixels[0])
	}
	gl.TexSubImage2D(target, level, xoff, yoff, w, h, format, xtype, p)
}

func (glImpl) TexParameteri(target, pname uint32, param int32) { gl.TexParameteri(target, pname, param) }
func (glImpl) PixelStorei(pname uint32, param int32)           { gl.PixelStorei(pname, param) }
func (glImpl) GenerateMipmap(target uint32)                    { gl.GenerateMipmap(target) }

func (glImpl) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (glImpl) DeleteVertexArrays(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	gl.DeleteVertexArrays(int32(len(ids)), &ids[0])
}

func (glImpl) BindVertexArray(id uint32) { gl.BindVertexArray(id) }

func (glImpl) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (glImpl) DeleteBuffers(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	gl.DeleteBuffers(int32(len(ids)), &ids[0])
}

func (glImpl) BindBuffer(target, id uint32) { gl.BindBuffer(target, id) }

func (glImpl) BufferData(target uint32, data []byte, usage uint32) {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	gl.BufferData(target, len(data), p, usage)
}

func (glImpl) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (glImpl) EnableVertexAttribArray(index uint32)      { gl.EnableVertexAttribArray(index) }
func (glImpl) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (glImpl) CreateShader(shaderType uint32) uint32 { return gl.CreateShader(shaderType) }

func (glImpl) ShaderSource(shader uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
}

func (glImpl) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (glImpl) GetShaderCompileStatus(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (glImpl) GetShaderInfoLog(shader uint32) string {
	var logLen int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen))
	gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
	return log
}

func (glImpl) DeleteShader(shader uint32) { gl.DeleteShader(shader) }
func (glImpl) CreateProgram() uint32      { return gl.CreateProgram() }
func (glImpl) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (glImpl) LinkProgram(program uint32)          { gl.LinkProgram(program) }

func (glImpl) GetProgramLinkStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (glImpl) GetProgramInfoLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	if logLen == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return log
}

func (glImpl) UseProgram(program uint32)    { gl.UseProgram(program) }
func (glImpl) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (glImpl) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (glImpl) Uniform1f(location int32, v0 float32)                 { gl.Uniform1f(location, v0) }
func (glImpl) Uniform2f(location int32, v0, v1 float32)             { gl.Uniform2f(location, v0, v1) }
func (glImpl) Uniform3f(location int32, v0, v1, v2 float32)         { gl.Uniform3f(location, v0, v1, v2) }
func (glImpl) Uniform4f(location int32, v0, v1, v2, v3 float32)     { gl.Uniform4f(location, v0, v1, v2, v3) }

func (glImpl) Uniform1fv(location int32, values []float32) {
	if len(values) == 0 {
		return
	}
	gl.Uniform1fv(location, int32(len(values)), &values[0])
}

func (glImpl) Uniform2fv(location int32, values []float32) {
	if len(values) == 0 {
		return
	}
	gl.Uniform2fv(location, int32(len(values)/2), &values[0])
}

func (glImpl) Uniform3fv(location int32, values []float32) {
	if len(values) == 0 {
		return
	}
	gl.Uniform3fv(location, int32(len(values)/3), &values[0])
}

func (glImpl) Uniform4fv(location int32, values []float32) {
	if len(values) == 0 {
		return
	}
	gl.Uniform4fv(location, int32(len(values)/4), &values[0])
}

func (glImpl) Uniform1i(location int32, v0 int32)             { gl.Uniform1i(location, v0) }
func (glImpl) Uniform2i(location int32, v0, v1 int32)         { gl.Uniform2i(location, v0, v1) }
func (glImpl) Uniform3i(location int32, v0, v1, v2 int32)     { gl.Uniform3i(location, v0, v1, v2) }
func (glImpl) Uniform4i(location int32, v0, v1, v2, v3 int32) { gl.Uniform4i(location, v0, v1, v2, v3) }
func (glImpl) Uniform1ui(location int32, v0 uint32)           { gl.Uniform1ui(location, v0) }

func (glImpl) UniformMatrix4fv(location int32, transpose bool, value *[16]float32) {
	gl.UniformMatrix4fv(location, 1, transpose, &value[0])
}
