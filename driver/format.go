package driver

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/rendernode"
)

// glFormat reports the (internalFormat, format, type) triple a
// rendernode.TextureFormat uploads as directly, and whether direct
// upload is supported at all.
func glFormat(f rendernode.TextureFormat) (internal int32, format, xtype uint32, ok bool) {
	switch f {
	case rendernode.FormatR8:
		return glctx.R8, glctx.Red, glctx.UnsignedByte, true
	case rendernode.FormatRG8:
		return glctx.Rg8, glctx.Rg, glctx.UnsignedByte, true
	case rendernode.FormatRGB8:
		return glctx.Rgb8, glctx.Rgb, glctx.UnsignedByte, true
	case rendernode.FormatRGBA8:
		return glctx.Rgba8, glctx.Rgba, glctx.UnsignedByte, true
	case rendernode.FormatRGBA16F:
		return glctx.Rgba16F, glctx.Rgba, glctx.HalfFloat, true
	default:
		return 0, 0, 0, false
	}
}

// toRGBA8 converts an arbitrary source's raw pixels to tightly packed
// RGBA8 bytes via x/image/draw, for the "upload path fallback" of
// spec §7: a format with no direct GL upload path is normalized to a
// known one in software before the real upload.
func toRGBA8(pixels []byte, w, h int, format rendernode.TextureFormat) []byte {
	src := decodeToImage(pixels, w, h, format)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	return dst.Pix
}

// decodeToImage wraps raw pixel bytes in the stdlib image.Image whose
// layout matches format, so x/image/draw can reinterpret it.
func decodeToImage(pixels []byte, w, h int, format rendernode.TextureFormat) image.Image {
	switch format {
	case rendernode.FormatR8:
		return &image.Gray{Pix: pixels, Stride: w, Rect: image.Rect(0, 0, w, h)}
	case rendernode.FormatRGB8:
		return &rgbImage{pix: pixels, stride: w * 3, rect: image.Rect(0, 0, w, h)}
	case rendernode.FormatRGBA8:
		return &image.RGBA{Pix: pixels, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	default:
		// RG8 and float formats have no direct stdlib analogue; treat
		// as opaque gray using the first channel so the fallback path
		// never panics on an unexpected format.
		return &image.Gray{Pix: pixels, Stride: w, Rect: image.Rect(0, 0, w, h)}
	}
}

// rgbImage adapts a tightly packed RGB8 buffer to image.Image so
// x/image/draw can convert it; stdlib has no RGB-without-alpha type.
type rgbImage struct {
	pix    []byte
	stride int
	rect   image.Rectangle
}

func (m *rgbImage) ColorModel() color.Model { return color.RGBAModel }
func (m *rgbImage) Bounds() image.Rectangle { return m.rect }
func (m *rgbImage) At(x, y int) color.Color {
	i := (y-m.rect.Min.Y)*m.stride + (x-m.rect.Min.X)*3
	return color.RGBA{m.pix[i], m.pix[i+1], m.pix[i+2], 0xff}
}
