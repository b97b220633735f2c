package gpucmd

// fakeGL is a no-op glctx.GL used only to resolve uniform locations
// when building test programs; gpucmd's own tests exercise recording
// and merge logic, not Execute's GL call sequence.
type fakeGL struct{}

func newFakeGL() *fakeGL { return &fakeGL{} }

func (f *fakeGL) GetUniformLocation(program uint32, name string) int32 { return 0 }

func (f *fakeGL) Uniform1f(int32, float32)                     {}
func (f *fakeGL) Uniform2f(int32, float32, float32)            {}
func (f *fakeGL) Uniform3f(int32, float32, float32, float32)   {}
func (f *fakeGL) Uniform4f(int32, float32, float32, float32, float32) {}
func (f *fakeGL) Uniform1fv(int32, []float32)                  {}
func (f *fakeGL) Uniform2fv(int32, []float32)                  {}
func (f *fakeGL) Uniform3fv(int32, []float32)                  {}
func (f *fakeGL) Uniform4fv(int32, []float32)                  {}
func (f *fakeGL) Uniform1i(int32, int32)                       {}
func (f *fakeGL) Uniform2i(int32, int32, int32)                {}
func (f *fakeGL) Uniform3i(int32, int32, int32, int32)         {}
func (f *fakeGL) Uniform4i(int32, int32, int32, int32, int32)  {}
func (f *fakeGL) Uniform1ui(int32, uint32)                     {}
func (f *fakeGL) UniformMatrix4fv(int32, bool, *[16]float32)   {}

func (f *fakeGL) Enable(uint32)                                                                {}
func (f *fakeGL) Disable(uint32)                                                                {}
func (f *fakeGL) DepthFunc(uint32)                                                              {}
func (f *fakeGL) BlendFunc(uint32, uint32)                                                      {}
func (f *fakeGL) BlendEquation(uint32)                                                          {}
func (f *fakeGL) Viewport(int32, int32, int32, int32)                                           {}
func (f *fakeGL) Scissor(int32, int32, int32, int32)                                            {}
func (f *fakeGL) ClearColor(float32, float32, float32, float32)                                 {}
func (f *fakeGL) Clear(uint32)                                                                  {}
func (f *fakeGL) BindFramebuffer(uint32, uint32)                                                 {}
func (f *fakeGL) GenFramebuffer() uint32                                                        { return 1 }
func (f *fakeGL) DeleteFramebuffers([]uint32)                                                   {}
func (f *fakeGL) FramebufferTexture2D(uint32, uint32, uint32, uint32, int32)                     {}
func (f *fakeGL) CheckFramebufferStatus(uint32) uint32                                          { return 0x8CD5 }
func (f *fakeGL) GenTexture() uint32                                                            { return 1 }
func (f *fakeGL) DeleteTextures([]uint32)                                                       {}
func (f *fakeGL) BindTexture(uint32, uint32)                                                    {}
func (f *fakeGL) ActiveTexture(uint32)                                                          {}
func (f *fakeGL) TexImage2D(uint32, int32, int32, int32, int32, uint32, uint32, []byte)          {}
func (f *fakeGL) TexSubImage2D(uint32, int32, int32, int32, int32, int32, uint32, uint32, []byte) {}
func (f *fakeGL) TexParameteri(uint32, uint32, int32)                                           {}
func (f *fakeGL) PixelStorei(uint32, int32)                                                     {}
func (f *fakeGL) GenerateMipmap(uint32)                                                         {}
func (f *fakeGL) GenVertexArray() uint32                                                        { return 1 }
func (f *fakeGL) DeleteVertexArrays([]uint32)                                                   {}
func (f *fakeGL) BindVertexArray(uint32)                                                        {}
func (f *fakeGL) GenBuffer() uint32                                                             { return 1 }
func (f *fakeGL) DeleteBuffers([]uint32)                                                        {}
func (f *fakeGL) BindBuffer(uint32, uint32)                                                     {}
func (f *fakeGL) BufferData(uint32, []byte, uint32)                                             {}
func (f *fakeGL) VertexAttribPointer(uint32, int32, uint32, bool, int32, uintptr)                {}
func (f *fakeGL) EnableVertexAttribArray(uint32)                                                {}
func (f *fakeGL) DrawArrays(uint32, int32, int32)                                               {}
func (f *fakeGL) CreateShader(uint32) uint32                                                    { return 1 }
func (f *fakeGL) ShaderSource(uint32, string)                                                   {}
func (f *fakeGL) CompileShader(uint32)                                                          {}
func (f *fakeGL) GetShaderCompileStatus(uint32) bool                                            { return true }
func (f *fakeGL) GetShaderInfoLog(uint32) string                                                { return "" }
func (f *fakeGL) DeleteShader(uint32)                                                           {}
func (f *fakeGL) CreateProgram() uint32                                                         { return 1 }
func (f *fakeGL) AttachShader(uint32, uint32)                                                   {}
func (f *fakeGL) LinkProgram(uint32)                                                            {}
func (f *fakeGL) GetProgramLinkStatus(uint32) bool                                              { return true }
func (f *fakeGL) GetProgramInfoLog(uint32) string                                               { return "" }
func (f *fakeGL) UseProgram(uint32)                                                             {}
func (f *fakeGL) DeleteProgram(uint32)                                                          {}
