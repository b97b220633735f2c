package main

import (
	"log/slog"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gviegas/neogl"
	"github.com/gviegas/neogl/attach"
	"github.com/gviegas/neogl/driver"
	"github.com/gviegas/neogl/glm"
	"github.com/gviegas/neogl/glyph"
	"github.com/gviegas/neogl/gpucmd"
	"github.com/gviegas/neogl/icon"
	"github.com/gviegas/neogl/rendernode"
	"github.com/gviegas/neogl/renderjob"
	"github.com/gviegas/neogl/uniform"
)

func main() {
	neogl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	const winW, winH = 1024, 768
	ctx, err := newWindowContext(winW, winH, "neoglview")
	if err != nil {
		neogl.Logger().Error("neoglview: window creation failed", "error", err)
		os.Exit(1)
	}
	defer ctx.terminate()

	gl := glImpl{}
	store := uniform.NewStore()
	attachState := attach.NewState()
	queue := gpucmd.NewQueue(store, attachState)
	drv := driver.New(gl, store, attachState, queue, driver.DefaultConfig())
	drv.Registry().RegisterConvSource(driver.ConvLinearize, convVertexSrc, convFragLinearize)
	drv.Registry().RegisterConvSource(driver.ConvPremultiply, convVertexSrc, convFragPremultiply)
	drv.Registry().RegisterConvSource(driver.ConvLinearizePremultiply, convVertexSrc, convFragLinearizePremultiply)

	progs, err := newProgramSet(store, gl)
	if err != nil {
		neogl.Logger().Error("neoglview: program set compile failed", "error", err)
		os.Exit(1)
	}

	const maxFrameAge = 60
	glyphs := glyph.NewLibrary(drv, gl, ctx, maxFrameAge)
	icons := icon.NewLibrary(drv, gl, maxFrameAge)

	job := renderjob.New(ctx, gl, drv, store, attachState, queue, progs, glyphs, icons)

	tree := demoTree()

	for !ctx.shouldClose() {
		glfw.PollEvents()
		fbW, fbH := ctx.framebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		viewport := glm.Rect{X0: 0, Y0: 0, X1: float32(fbW), Y1: float32(fbH)}
		if err := job.Render(tree, viewport, 1, renderjob.Region{}); err != nil {
			neogl.Logger().Error("neoglview: render failed", "error", err)
			break
		}
		ctx.swapBuffers()
	}
}

// demoTree builds a small, static scene exercising a cross-section of
// render-node kinds: a flat background, a linear gradient panel, a
// rounded border, and a soft drop shadow behind an opaque panel. It
// exists to prove the wiring end to end, not as a UI.
func demoTree() *rendernode.Node {
	bg := rendernode.NewColor(glm.Rect{X0: 0, Y0: 0, X1: 1024, Y1: 768}, glm.Vec4{0.12, 0.12, 0.14, 1})

	gradient := rendernode.NewLinearGradient(
		glm.Rect{X0: 80, Y0: 80, X1: 480, Y1: 360},
		glm.Vec2{80, 80}, glm.Vec2{480, 360},
		[]rendernode.GradientStop{
			{Color: glm.Vec4{0.2, 0.4, 0.9, 1}, Offset: 0},
			{Color: glm.Vec4{0.8, 0.2, 0.6, 1}, Offset: 1},
		},
		false,
	)

	panelOutline := glm.RoundedRect{
		Bounds:      glm.Rect{X0: 560, Y0: 80, X1: 944, Y1: 360},
		TopLeft:     glm.Corner{16, 16},
		TopRight:    glm.Corner{16, 16},
		BottomRight: glm.Corner{16, 16},
		BottomLeft:  glm.Corner{16, 16},
	}
	panel := rendernode.NewColor(panelOutline.Bounds, glm.Vec4{0.92, 0.92, 0.95, 1})
	border := rendernode.NewBorder(
		panelOutline.Bounds, panelOutline,
		[4]float32{4, 4, 4, 4},
		[4]glm.Vec4{{0.3, 0.3, 0.35, 1}, {0.3, 0.3, 0.35, 1}, {0.3, 0.3, 0.35, 1}, {0.3, 0.3, 0.35, 1}},
		true,
	)
	panelWithBorder := rendernode.NewContainer(panelOutline.Bounds, panel, border)

	shadow := rendernode.NewShadow(panelOutline.Bounds, []rendernode.ShadowEntry{
		{Color: glm.Vec4{0, 0, 0, 0.45}, DX: 0, DY: 8, Radius: 18},
	}, panelWithBorder)

	faded := rendernode.NewOpacity(glm.Rect{X0: 80, Y0: 440, X1: 480, Y1: 680}, 0.6,
		rendernode.NewColor(glm.Rect{X0: 80, Y0: 440, X1: 480, Y1: 680}, glm.Vec4{0.9, 0.7, 0.1, 1}))

	return rendernode.NewContainer(glm.Rect{X0: 0, Y0: 0, X1: 1024, Y1: 768},
		bg, gradient, shadow, faded)
}
