package glm

import "github.com/chewxy/math32"

// Rect is an axis-aligned rectangle described by its two corners.
type Rect struct {
	X0, Y0, X1, Y1 float32
}

// Width returns the rectangle's width.
func (r Rect) Width() float32 { return r.X1 - r.X0 }

// Height returns the rectangle's height.
func (r Rect) Height() float32 { return r.Y1 - r.Y0 }

// IsEmpty reports whether r has zero or negative area.
func (r Rect) IsEmpty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Outset returns r expanded by d on every side (a blur pass's "extra
// border" rect, spec §4.6.4).
func (r Rect) Outset(d float32) Rect {
	return Rect{X0: r.X0 - d, Y0: r.Y0 - d, X1: r.X1 + d, Y1: r.Y1 + d}
}

// Intersect returns the intersection of r and s. The result is empty
// (per IsEmpty) if the rectangles do not overlap.
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{
		X0: max(r.X0, s.X0),
		Y0: max(r.Y0, s.Y0),
		X1: min(r.X1, s.X1),
		Y1: min(r.Y1, s.Y1),
	}
	return out
}

// Contains reports whether s lies entirely within r.
func (r Rect) Contains(s Rect) bool {
	return s.X0 >= r.X0 && s.Y0 >= r.Y0 && s.X1 <= r.X1 && s.Y1 <= r.Y1
}

// Transform applies the 2D affine transform m to r's four corners and
// returns the resulting axis-aligned bounding rectangle. Used when
// testing a node's bounds against the current clip (spec §4.6.1): a
// rotated or skewed quad is conservatively over-approximated by its
// AABB, which only ever widens the visible set, never narrows it.
func (r Rect) Transform(m *Mat3) Rect {
	corners := [4]Vec2{
		{r.X0, r.Y0}, {r.X1, r.Y0}, {r.X1, r.Y1}, {r.X0, r.Y1},
	}
	out := Rect{X0: posInf, Y0: posInf, X1: negInf, Y1: negInf}
	for _, c := range corners {
		x := m[0][0]*c[0] + m[1][0]*c[1] + m[2][0]
		y := m[0][1]*c[0] + m[1][1]*c[1] + m[2][1]
		out.X0 = min(out.X0, x)
		out.Y0 = min(out.Y0, y)
		out.X1 = max(out.X1, x)
		out.Y1 = max(out.Y1, y)
	}
	return out
}

var (
	posInf = math32.Inf(1)
	negInf = math32.Inf(-1)
)

// Corner is the (width, height) of a single rounded-rect corner.
type Corner = Vec2

// RoundedRect is an axis-aligned rectangle with four independently
// sized elliptical corners, matching the 12-float ROUNDED_RECT
// uniform layout (bounds xyxy + 4 corner sizes wh) from the uniform
// format table.
type RoundedRect struct {
	Bounds Rect
	// TopLeft, TopRight, BottomRight, BottomLeft corner radii.
	TopLeft, TopRight, BottomRight, BottomLeft Corner
}

// IsRectilinear reports whether every corner has zero radius, i.e.
// the shape degenerates into a plain rectangle.
func (r RoundedRect) IsRectilinear() bool {
	return r.TopLeft == (Corner{}) && r.TopRight == (Corner{}) &&
		r.BottomRight == (Corner{}) && r.BottomLeft == (Corner{})
}

// ContainsRect reports whether s lies strictly inside r's inner
// rectangle: the largest axis-aligned rectangle guaranteed to avoid
// every rounded corner. Used by the clip stack's "fully contained"
// check (spec §4.6.1): when true, descendants can skip clip work
// entirely because nothing they draw can reach outside r.
func (r RoundedRect) ContainsRect(s Rect) bool {
	inner := r.Bounds
	inner.X0 += max(r.TopLeft[0], r.BottomLeft[0])
	inner.Y0 += max(r.TopLeft[1], r.TopRight[1])
	inner.X1 -= max(r.TopRight[0], r.BottomRight[0])
	inner.Y1 -= max(r.BottomLeft[1], r.BottomRight[1])
	if inner.IsEmpty() {
		return false
	}
	return inner.Contains(s)
}

// Outline returns the 12 floats of the ROUNDED_RECT uniform layout:
// bounds (xyxy) followed by the four corner sizes (wh), in the
// top-left, top-right, bottom-right, bottom-left order used by the
// border and shadow shaders.
func (r RoundedRect) Outline() [12]float32 {
	return [12]float32{
		r.Bounds.X0, r.Bounds.Y0, r.Bounds.X1, r.Bounds.Y1,
		r.TopLeft[0], r.TopLeft[1],
		r.TopRight[0], r.TopRight[1],
		r.BottomRight[0], r.BottomRight[1],
		r.BottomLeft[0], r.BottomLeft[1],
	}
}
