package uniform

import (
	"testing"

	"github.com/gviegas/neogl/glm"
)

// fakeGL is a recording glctx.GL fake: every Uniform* upload call is
// appended to uploads, every other call is a no-op.
type fakeGL struct {
	locations map[string]int32
	uploads   []string
}

func newFakeGL(locations map[string]int32) *fakeGL {
	return &fakeGL{locations: locations}
}

func (f *fakeGL) GetUniformLocation(program uint32, name string) int32 {
	if loc, ok := f.locations[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeGL) Uniform1f(loc int32, v0 float32)                            { f.uploads = append(f.uploads, "1f") }
func (f *fakeGL) Uniform2f(loc int32, v0, v1 float32)                        { f.uploads = append(f.uploads, "2f") }
func (f *fakeGL) Uniform3f(loc int32, v0, v1, v2 float32)                    { f.uploads = append(f.uploads, "3f") }
func (f *fakeGL) Uniform4f(loc int32, v0, v1, v2, v3 float32)                { f.uploads = append(f.uploads, "4f") }
func (f *fakeGL) Uniform1fv(loc int32, values []float32)                     { f.uploads = append(f.uploads, "1fv") }
func (f *fakeGL) Uniform2fv(loc int32, values []float32)                     { f.uploads = append(f.uploads, "2fv") }
func (f *fakeGL) Uniform3fv(loc int32, values []float32)                     { f.uploads = append(f.uploads, "3fv") }
func (f *fakeGL) Uniform4fv(loc int32, values []float32)                     { f.uploads = append(f.uploads, "4fv") }
func (f *fakeGL) Uniform1i(loc int32, v0 int32)                              { f.uploads = append(f.uploads, "1i") }
func (f *fakeGL) Uniform2i(loc int32, v0, v1 int32)                          { f.uploads = append(f.uploads, "2i") }
func (f *fakeGL) Uniform3i(loc int32, v0, v1, v2 int32)                      { f.uploads = append(f.uploads, "3i") }
func (f *fakeGL) Uniform4i(loc int32, v0, v1, v2, v3 int32)                  { f.uploads = append(f.uploads, "4i") }
func (f *fakeGL) Uniform1ui(loc int32, v0 uint32)                           { f.uploads = append(f.uploads, "1ui") }
func (f *fakeGL) UniformMatrix4fv(loc int32, transpose bool, v *[16]float32) { f.uploads = append(f.uploads, "mat4") }

func (f *fakeGL) Enable(uint32)                                                              {}
func (f *fakeGL) Disable(uint32)                                                              {}
func (f *fakeGL) DepthFunc(uint32)                                                            {}
func (f *fakeGL) BlendFunc(uint32, uint32)                                                    {}
func (f *fakeGL) BlendEquation(uint32)                                                        {}
func (f *fakeGL) Viewport(int32, int32, int32, int32)                                         {}
func (f *fakeGL) Scissor(int32, int32, int32, int32)                                          {}
func (f *fakeGL) ClearColor(float32, float32, float32, float32)                                {}
func (f *fakeGL) Clear(uint32)                                                                {}
func (f *fakeGL) BindFramebuffer(uint32, uint32)                                               {}
func (f *fakeGL) GenFramebuffer() uint32                                                       { return 1 }
func (f *fakeGL) DeleteFramebuffers([]uint32)                                                  {}
func (f *fakeGL) FramebufferTexture2D(uint32, uint32, uint32, uint32, int32)                   {}
func (f *fakeGL) CheckFramebufferStatus(uint32) uint32                                         { return 0x8CD5 }
func (f *fakeGL) GenTexture() uint32                                                           { return 1 }
func (f *fakeGL) DeleteTextures([]uint32)                                                      {}
func (f *fakeGL) BindTexture(uint32, uint32)                                                   {}
func (f *fakeGL) ActiveTexture(uint32)                                                         {}
func (f *fakeGL) TexImage2D(uint32, int32, int32, int32, int32, uint32, uint32, []byte)        {}
func (f *fakeGL) TexSubImage2D(uint32, int32, int32, int32, int32, int32, uint32, uint32, []byte) {
}
func (f *fakeGL) TexParameteri(uint32, uint32, int32) {}
func (f *fakeGL) PixelStorei(uint32, int32)           {}
func (f *fakeGL) GenerateMipmap(uint32)               {}
func (f *fakeGL) GenVertexArray() uint32              { return 1 }
func (f *fakeGL) DeleteVertexArrays([]uint32)         {}
func (f *fakeGL) BindVertexArray(uint32)              {}
func (f *fakeGL) GenBuffer() uint32                   { return 1 }
func (f *fakeGL) DeleteBuffers([]uint32)              {}
func (f *fakeGL) BindBuffer(uint32, uint32)           {}
func (f *fakeGL) BufferData(uint32, []byte, uint32)   {}
func (f *fakeGL) VertexAttribPointer(uint32, int32, uint32, bool, int32, uintptr) {}
func (f *fakeGL) EnableVertexAttribArray(uint32)                                  {}
func (f *fakeGL) DrawArrays(uint32, int32, int32)                                 {}
func (f *fakeGL) CreateShader(uint32) uint32                                      { return 1 }
func (f *fakeGL) ShaderSource(uint32, string)                                     {}
func (f *fakeGL) CompileShader(uint32)                                            {}
func (f *fakeGL) GetShaderCompileStatus(uint32) bool                              { return true }
func (f *fakeGL) GetShaderInfoLog(uint32) string                                  { return "" }
func (f *fakeGL) DeleteShader(uint32)                                             {}
func (f *fakeGL) CreateProgram() uint32                                           { return 1 }
func (f *fakeGL) AttachShader(uint32, uint32)                                     {}
func (f *fakeGL) LinkProgram(uint32)                                              {}
func (f *fakeGL) GetProgramLinkStatus(uint32) bool                                { return true }
func (f *fakeGL) GetProgramInfoLog(uint32) string                                 { return "" }
func (f *fakeGL) UseProgram(uint32)                                               {}
func (f *fakeGL) DeleteProgram(uint32)                                            {}

func testProgram(t *testing.T, s *Store) (*Program, *fakeGL) {
	t.Helper()
	gl := newFakeGL(map[string]int32{"u_color": 0, "u_alpha": 1})
	p := s.GetProgram(gl, 42, []MappingSpec{
		{Key: 0, Name: "u_color", Format: Color},
		{Key: 1, Name: "u_alpha", Format: F1},
	}, false)
	return p, gl
}

func TestSetColorWriteAndDedup(t *testing.T) {
	s := NewStore()
	p, _ := testProgram(t, s)

	if !s.SetColor(p, 0, 1, glm.Vec4{1, 0, 0, 1}) {
		t.Fatal("first SetColor: have no-op, want a write")
	}
	if s.SetColor(p, 0, 2, glm.Vec4{1, 0, 0, 1}) {
		t.Fatal("repeated SetColor with identical value: have a write, want no-op")
	}
	if !s.SetColor(p, 0, 3, glm.Vec4{0, 1, 0, 1}) {
		t.Fatal("SetColor with a new value: have no-op, want a write")
	}
}

func TestApplySkipsRedundantUpload(t *testing.T) {
	s := NewStore()
	p, gl := testProgram(t, s)

	s.SetColor(p, 0, 0, glm.Vec4{1, 0, 0, 1})
	s.Apply(gl, p, 0)
	s.Apply(gl, p, 0)
	if len(gl.uploads) != 1 {
		t.Fatalf("uploads after two Apply calls with unchanged state:\nhave %d\nwant 1", len(gl.uploads))
	}

	s.SetColor(p, 0, 1, glm.Vec4{0, 1, 0, 1})
	s.Apply(gl, p, 0)
	if len(gl.uploads) != 2 {
		t.Fatalf("uploads after a changed value:\nhave %d\nwant 2", len(gl.uploads))
	}
}

func TestEndFrameResetsForFreshReads(t *testing.T) {
	s := NewStore()
	p, _ := testProgram(t, s)

	s.SetColor(p, 0, 0, glm.Vec4{1, 0, 0, 1})
	if snap := s.SnapshotOf(p, 0); snap.Format != Color {
		t.Fatalf("SnapshotOf before EndFrame:\nhave %v\nwant Color", snap.Format)
	}
	s.EndFrame()
	if snap := s.SnapshotOf(p, 0); snap.Format != None {
		t.Fatalf("SnapshotOf after EndFrame:\nhave %v\nwant None (mapping untouched this frame)", snap.Format)
	}
	if !s.SetColor(p, 0, 0, glm.Vec4{1, 0, 0, 1}) {
		t.Fatal("first SetColor of the new frame: have no-op, want a write")
	}
}

func TestSharedUniformStampSkipsComparison(t *testing.T) {
	s := NewStore()
	p, _ := testProgram(t, s)

	stamp := s.Stamp(Projection)
	if !s.Set1F(p, 1, stamp, 0.5) {
		t.Fatal("first Set1F at current stamp: have no-op, want a write")
	}
	// Same stamp, different value: the stamp optimization must still
	// skip the write, since callers only bump the stamp when the
	// shared uniform actually changes.
	if s.Set1F(p, 1, stamp, 0.75) {
		t.Fatal("Set1F with unchanged stamp: have a write, want no-op")
	}
	stamp = s.BumpStamp(Projection)
	if !s.Set1F(p, 1, stamp, 0.75) {
		t.Fatal("Set1F after BumpStamp: have no-op, want a write")
	}
}

func TestArrayShapeChangeReallocates(t *testing.T) {
	s := NewStore()
	gl := newFakeGL(map[string]int32{"stops": 0})
	p := s.GetProgram(gl, 7, []MappingSpec{{Key: 0, Name: "stops", Format: F4V}}, false)

	s.Set4FV(p, 0, 0, []float32{1, 0, 0, 1, 0, 1, 0, 1})
	first := s.SnapshotOf(p, 0).Offset
	s.Set4FV(p, 0, 1, []float32{1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1})
	second := s.SnapshotOf(p, 0).Offset
	if first == second {
		t.Fatal("Set4FV with a different stop count: expected a new arena slot")
	}
}
