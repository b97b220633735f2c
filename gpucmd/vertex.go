package gpucmd

import (
	"encoding/binary"
	"math"

	"github.com/gviegas/neogl/glm"
)

// VertexSize is the byte size of one interleaved vertex record: pos
// (2 floats), uv (2 floats), color and color2 (4 half-floats each),
// per spec §3.3's vertex-buffer row and §4.3.3's four vertex
// attribute pointers (position, uv/color2 overlay, color, color2).
// Color2 carries a second straight-alpha color used by two-color
// draws (filled borders, some gradient variants); visitors that don't
// need it leave it zeroed.
const VertexSize = 4*4 + 4*2*2

// Vertex is one interleaved vertex. Visitors append six of these per
// quad (two triangles).
type Vertex struct {
	Pos    glm.Vec2
	UV     glm.Vec2
	Color  glm.Vec4
	Color2 glm.Vec4
}

// appendVertex packs v onto the end of buf and returns the grown
// slice.
func appendVertex(buf []byte, v Vertex) []byte {
	var tmp [VertexSize]byte
	binary.LittleEndian.PutUint32(tmp[0:], math.Float32bits(v.Pos[0]))
	binary.LittleEndian.PutUint32(tmp[4:], math.Float32bits(v.Pos[1]))
	binary.LittleEndian.PutUint32(tmp[8:], math.Float32bits(v.UV[0]))
	binary.LittleEndian.PutUint32(tmp[12:], math.Float32bits(v.UV[1]))
	binary.LittleEndian.PutUint16(tmp[16:], f32To16(v.Color[0]))
	binary.LittleEndian.PutUint16(tmp[18:], f32To16(v.Color[1]))
	binary.LittleEndian.PutUint16(tmp[20:], f32To16(v.Color[2]))
	binary.LittleEndian.PutUint16(tmp[22:], f32To16(v.Color[3]))
	binary.LittleEndian.PutUint16(tmp[24:], f32To16(v.Color2[0]))
	binary.LittleEndian.PutUint16(tmp[26:], f32To16(v.Color2[1]))
	binary.LittleEndian.PutUint16(tmp[28:], f32To16(v.Color2[2]))
	binary.LittleEndian.PutUint16(tmp[30:], f32To16(v.Color2[3]))
	return append(buf, tmp[:]...)
}

// f32To16 converts a float32 to an IEEE-754 binary16 half-float,
// rounding to nearest. No ecosystem package in the retrieved example
// pack supplies this conversion (it is a GPU vertex-packing detail,
// not a general-purpose numerics concern), so it is hand-rolled here
// per DESIGN.md.
func f32To16(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF
	switch {
	case exp <= 0:
		// Too small to represent as a normal half; flush to signed zero.
		return sign
	case exp >= 0x1F:
		// Overflow: saturate to infinity, preserving NaN payload loss.
		if (bits&0x7F800000) == 0x7F800000 && mant != 0 {
			return sign | 0x7C00 | 0x0200
		}
		return sign | 0x7C00
	default:
		h := uint32(sign) | uint32(exp)<<10 | mant>>13
		// Round to nearest, ties to even; a carry out of the mantissa
		// bumps the exponent, up to infinity.
		if rem := mant & 0x1FFF; rem > 0x1000 || (rem == 0x1000 && h&1 != 0) {
			h++
		}
		return uint16(h)
	}
}
