package main

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gviegas/neogl/glctx"
)

// windowContext implements glctx.Context over a single glfw.Window,
// the same bootstrap sequence soypat-glgl's InitWithCurrentWindow33
// uses: glfw.Init, window hints pinning a 3.3 core forward-compatible
// profile, glfw.CreateWindow, MakeContextCurrent, then gl.Init.
type windowContext struct {
	win            *glfw.Window
	major, minor   int
	unpackSubimage bool
}

// newWindowContext creates title's window at w x h and makes its GL
// context current on the calling thread. The caller must arrange for
// every subsequent GL call to happen on that same thread (glfw and
// go-gl/gl are both not safe to call from elsewhere).
func newWindowContext(w, h int, title string) (*windowContext, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("neoglview: glfw init: %w", err)
	}
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(w, h, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("neoglview: create window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("neoglview: gl init: %w", err)
	}
	return &windowContext{win: win, major: 3, minor: 3, unpackSubimage: true}, nil
}

func (c *windowContext) MakeCurrent() error {
	c.win.MakeContextCurrent()
	return nil
}

func (c *windowContext) DefaultFramebuffer() uint32 { return 0 }

// PushDebugGroup/PopDebugGroup are no-ops: KHR_debug groups need GL
// 4.3 or the extension, and this example pins a 3.3 core context.
func (c *windowContext) PushDebugGroup(name string) {}
func (c *windowContext) PopDebugGroup()             {}

func (c *windowContext) Version() (major, minor int) { return c.major, c.minor }

func (c *windowContext) UseES() bool { return false }

func (c *windowContext) HasUnpackSubimage() bool { return c.unpackSubimage }

// SharedWith reports whether other is the same context: this example
// never creates a second, sharing context.
func (c *windowContext) SharedWith(other glctx.Context) bool {
	o, ok := other.(*windowContext)
	return ok && o == c
}

func (c *windowContext) shouldClose() bool { return c.win.ShouldClose() }
func (c *windowContext) swapBuffers()      { c.win.SwapBuffers() }
func (c *windowContext) framebufferSize() (int, int) { return c.win.GetFramebufferSize() }
func (c *windowContext) terminate()        { glfw.Terminate() }
