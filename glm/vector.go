// Package glm implements the 2D/3D math used by the render job and
// command queue: vectors, matrices, axis-aligned and rounded
// rectangles, and transform-category decomposition.
package glm

import "github.com/chewxy/math32"

// Vec2 is a 2-component vector of float32.
type Vec2 [2]float32

// Add sets v to contain l + r.
func (v *Vec2) Add(l, r *Vec2) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *Vec2) Sub(l, r *Vec2) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s * w.
func (v *Vec2) Scale(s float32, w *Vec2) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Len returns the length of v.
func (v *Vec2) Len() float32 { return math32.Sqrt(v[0]*v[0] + v[1]*v[1]) }

// Vec3 is a 3-component vector of float32.
type Vec3 [3]float32

// Add sets v to contain l + r.
func (v *Vec3) Add(l, r *Vec3) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *Vec3) Sub(l, r *Vec3) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s * w.
func (v *Vec3) Scale(s float32, w *Vec3) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Dot returns v . w.
func (v *Vec3) Dot(w *Vec3) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *Vec3) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Mul sets v to contain m * w.
func (v *Vec3) Mul(m *Mat3, w *Vec3) {
	*v = Vec3{}
	for i := range v {
		for j := range v {
			v[i] += m[j][i] * w[j]
		}
	}
}

// Vec4 is a 4-component vector of float32.
type Vec4 [4]float32

// Add sets v to contain l + r.
func (v *Vec4) Add(l, r *Vec4) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Scale sets v to contain s * w.
func (v *Vec4) Scale(s float32, w *Vec4) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Mul sets v to contain m * w.
func (v *Vec4) Mul(m *Mat4, w *Vec4) {
	*v = Vec4{}
	for i := range v {
		for j := range v {
			v[i] += m[j][i] * w[j]
		}
	}
}
