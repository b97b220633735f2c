package glm

import "testing"

func TestVec3(t *testing.T) {
	v := Vec3{1, 2, 4}
	w := Vec3{0, -1, 2}
	var u Vec3
	u.Add(&v, &w)
	if u != (Vec3{1, 1, 6}) {
		t.Fatalf("Add:\nhave %v\nwant [1 1 6]", u)
	}
	u.Sub(&v, &w)
	if u != (Vec3{1, 3, 2}) {
		t.Fatalf("Sub:\nhave %v\nwant [1 3 2]", u)
	}
	if d := v.Dot(&w); d != 6 {
		t.Fatalf("Dot:\nhave %v\nwant 6", d)
	}
}

func TestMat4Identity(t *testing.T) {
	var m Mat4
	m.I()
	var v, out Vec4
	v = Vec4{3, 4, 5, 1}
	out.Mul(&m, &v)
	if out != v {
		t.Fatalf("identity Mul:\nhave %v\nwant %v", out, v)
	}
}

func TestMat4Invert(t *testing.T) {
	m := Translation2D(10, -5)
	m4 := From3(&m)
	var inv Mat4
	inv.Invert(&m4)
	var prod Mat4
	prod.Mul(&m4, &inv)
	var id Mat4
	id.I()
	for i := range prod {
		for j := range prod[i] {
			if diff := prod[i][j] - id[i][j]; diff > 1e-4 || diff < -1e-4 {
				t.Fatalf("Mul(m, Invert(m)) != I:\nhave %v\nwant %v", prod, id)
			}
		}
	}
}

func TestRectTransformIdentity(t *testing.T) {
	r := Rect{X0: 10, Y0: 20, X1: 40, Y1: 60}
	var m Mat3
	m.I()
	out := r.Transform(&m)
	if out != r {
		t.Fatalf("Transform(identity):\nhave %v\nwant %v", out, r)
	}
}

func TestRectTransformTranslate(t *testing.T) {
	r := Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	m := Translation2D(5, -5)
	out := r.Transform(&m)
	want := Rect{X0: 5, Y0: -5, X1: 15, Y1: 5}
	if out != want {
		t.Fatalf("Transform(translate):\nhave %v\nwant %v", out, want)
	}
}

func TestRoundedRectContainsRect(t *testing.T) {
	rr := RoundedRect{
		Bounds:      Rect{X0: 0, Y0: 0, X1: 100, Y1: 100},
		TopLeft:     Corner{10, 10},
		TopRight:    Corner{10, 10},
		BottomRight: Corner{10, 10},
		BottomLeft:  Corner{10, 10},
	}
	inside := Rect{X0: 20, Y0: 20, X1: 80, Y1: 80}
	if !rr.ContainsRect(inside) {
		t.Fatalf("ContainsRect: expected %v to be contained", inside)
	}
	corner := Rect{X0: 0, Y0: 0, X1: 5, Y1: 5}
	if rr.ContainsRect(corner) {
		t.Fatalf("ContainsRect: expected %v (in rounded corner) to NOT be contained", corner)
	}
}

func TestRoundedRectIsRectilinear(t *testing.T) {
	rr := RoundedRect{Bounds: Rect{X1: 10, Y1: 10}}
	if !rr.IsRectilinear() {
		t.Fatal("IsRectilinear: zero corners should be rectilinear")
	}
	rr.TopLeft = Corner{1, 1}
	if rr.IsRectilinear() {
		t.Fatal("IsRectilinear: non-zero corner should not be rectilinear")
	}
}

func TestClassify(t *testing.T) {
	var id Mat4
	id.I()
	if c := Classify(id).Category; c != Identity {
		t.Fatalf("Classify(I):\nhave %v\nwant Identity", c)
	}
	tr := From3(ptr(Translation2D(3, 4)))
	if c := Classify(tr).Category; c != Translate {
		t.Fatalf("Classify(translate):\nhave %v\nwant Translate", c)
	}
	sc := From3(ptr(Scaling2D(2, 3)))
	if c := Classify(sc).Category; c != Affine {
		t.Fatalf("Classify(scale):\nhave %v\nwant Affine", c)
	}
	var threed Mat4
	threed.I()
	threed[0][2] = 0.5 // perspective-ish term breaks axis alignment
	if c := Classify(threed).Category; c != Threed {
		t.Fatalf("Classify(3d):\nhave %v\nwant Threed", c)
	}
}

func ptr[T any](v T) *T { return &v }
