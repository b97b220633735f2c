package glm

// Category classifies a transform node's matrix so the render job can
// pick the cheapest valid path: fold a translation into offset_x/y,
// push a 2D affine modelview frame, or fall back to rasterizing the
// subtree offscreen for a general 3D transform. Mirrors the category
// enum of the external Transform object (spec §6 Inputs).
type Category int

const (
	Identity Category = iota
	Translate
	Affine
	Twod
	Threed
	// Any/Unknown collapse into Threed for our purposes: the render
	// job always treats a transform it cannot classify as requiring
	// the general offscreen path.
)

// Transform pairs a 4x4 matrix with its precomputed category and the
// decomposed quantities the render job needs without re-deriving them
// on every node visit.
type Transform struct {
	Category Category
	M        Mat4

	// Valid when Category is Translate or finer.
	DX, DY float32
	// Valid when Category is Affine or finer.
	ScaleX, ScaleY float32
}

// Classify inspects m and returns the most specific Transform that
// describes it, using the same tolerances a 2D compositor applies
// when deciding whether a transform can be expressed as a cheap
// translate/scale instead of a full matrix multiply.
func Classify(m Mat4) Transform {
	t := Transform{M: m}
	isAxisAligned := m[0][2] == 0 && m[0][3] == 0 &&
		m[1][2] == 0 && m[1][3] == 0 &&
		m[2][0] == 0 && m[2][1] == 0 && m[2][2] == 1 && m[2][3] == 0 &&
		m[3][2] == 0 && m[3][3] == 1
	if !isAxisAligned {
		t.Category = Threed
		return t
	}
	hasSkew := m[0][1] != 0 || m[1][0] != 0
	if hasSkew {
		t.Category = Twod
		t.ScaleX, t.ScaleY = m[0][0], m[1][1]
		t.DX, t.DY = m[3][0], m[3][1]
		return t
	}
	t.ScaleX, t.ScaleY = m[0][0], m[1][1]
	t.DX, t.DY = m[3][0], m[3][1]
	if t.ScaleX == 1 && t.ScaleY == 1 {
		if t.DX == 0 && t.DY == 0 {
			t.Category = Identity
		} else {
			t.Category = Translate
		}
		return t
	}
	t.Category = Affine
	return t
}

// ToAffine returns the 2D affine (scale+translate) equivalent of t.
// Valid only when t.Category is Affine or coarser (Translate,
// Identity); callers must check Category first, per the external
// Transform object's contract (spec §6 Inputs).
func (t Transform) ToAffine() Mat3 {
	var m Mat3
	m.I()
	m[0][0], m[1][1] = t.ScaleX, t.ScaleY
	m[2][0], m[2][1] = t.DX, t.DY
	return m
}

// To2D returns the general 2D (affine with skew) equivalent of t.
// Valid when t.Category is Twod or coarser.
func (t Transform) To2D() Mat3 {
	var m Mat3
	m[0][0], m[0][1] = t.M[0][0], t.M[0][1]
	m[1][0], m[1][1] = t.M[1][0], t.M[1][1]
	m[2][0], m[2][1], m[2][2] = t.M[3][0], t.M[3][1], 1
	return m
}
