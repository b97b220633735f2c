package uniform

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/gviegas/neogl/glctx"
	"github.com/gviegas/neogl/glm"
)

// SharedUniform names one of the uniforms bound to every program by
// convention and tracked with a per-slot stamp, so repeated draws can
// skip per-key equality checks when the value has not changed since
// the last recorded snapshot (e.g. the projection matrix).
type SharedUniform int

const (
	Alpha SharedUniform = iota
	Source
	ClipRect
	Viewport
	Projection
	Modelview
	nSharedUniform
)

// sentinelSize is the byte size of the always-zero region reserved at
// the front of the arena so offset 0 can mean "never written".
const sentinelSize = 16

const applyHashSize = 256

// appliedEntry is the last-applied (format, count, offset) for one
// (program, location) bucket. Buckets collide on purpose (direct-
// mapped, no chaining); a collision just forces one extra GL upload.
type appliedEntry struct {
	valid    bool
	program  uint32
	location int32
	format   Format
	count    uint16
	offset   uint32
}

// Store is the Uniform State Store: an append-only byte arena shared
// by every Program, plus the program registry and the shared-uniform
// stamp counters.
//
// Not safe for concurrent use; a Store is owned by the single thread
// driving the GL context for a frame.
type Store struct {
	arena []byte
	bump  int

	programs []*Program
	byGLID   map[uint32]int // GL program id -> index into programs

	stamps    [nSharedUniform]uint32
	applyHash [applyHashSize]appliedEntry
}

// NewStore creates an empty Uniform State Store.
func NewStore() *Store {
	s := &Store{
		arena:  make([]byte, sentinelSize, 4096),
		bump:   sentinelSize,
		byGLID: make(map[uint32]int),
	}
	return s
}

// BumpStamp advances u's monotonic counter, signaling that every
// Mapping last written with u's previous stamp value is now stale.
func (s *Store) BumpStamp(u SharedUniform) uint32 {
	s.stamps[u]++
	return s.stamps[u]
}

// Stamp returns u's current counter value, to pass into a set_<format>
// call so it can skip the comparison when unchanged.
func (s *Store) Stamp(u SharedUniform) uint32 {
	return s.stamps[u]
}

// GetProgram creates or returns the Program record for glProgram,
// resolving each spec's GL uniform location via gl.
func (s *Store) GetProgram(gl glctx.GL, glProgram uint32, specs []MappingSpec, hasAttachments bool) *Program {
	if idx, ok := s.byGLID[glProgram]; ok {
		return s.programs[idx]
	}
	p := &Program{ID: glProgram, HasAttachments: hasAttachments}
	for _, spec := range specs {
		if spec.Key < 0 || int(spec.Key) >= NMappings {
			continue
		}
		loc := gl.GetUniformLocation(glProgram, spec.Name)
		p.Mappings[spec.Key] = Mapping{
			Location: loc,
			Format:   spec.Format,
			Count:    spec.Count,
			Initial:  true,
		}
		p.NUsed++
	}
	s.programs = append(s.programs, p)
	s.byGLID[glProgram] = len(s.programs) - 1
	return p
}

// grow doubles the arena until it can hold at least n more bytes past
// the current bump pointer.
func (s *Store) grow(n int) {
	for s.bump+n > cap(s.arena) {
		grown := make([]byte, len(s.arena), cap(s.arena)*2)
		copy(grown, s.arena)
		s.arena = grown
	}
	if s.bump+n > len(s.arena) {
		s.arena = s.arena[:s.bump+n]
	}
}

// alloc reserves and zeroes n bytes aligned to align, returning the
// byte offset of the reservation.
func (s *Store) alloc(n, align int) uint32 {
	s.bump = (s.bump + align - 1) &^ (align - 1)
	s.grow(n)
	off := s.bump
	s.bump += n
	return uint32(off)
}

// write stores val at m's slot. While m.Initial is set there is no
// slot yet to overwrite, so the write claims one via a single
// allocation. Once initial has cleared, the arena is append-only: any
// further change to the value allocates a fresh slot rather than
// clobbering the bytes an earlier batch's Snapshot may still point
// at, and the mapping's offset moves forward to the new slot. Returns
// true iff the stored bytes changed (false for a no-op equal write).
func (s *Store) write(m *Mapping, count uint16, val []byte) bool {
	if m.Location < 0 || m.Format == None {
		return false
	}
	if !m.Initial && m.Count == count && bytes.Equal(s.bytesAt(m.Offset*4, len(val)), val) {
		return false
	}
	off := s.alloc(len(val), m.Format.Align(int(count)))
	copy(s.arena[off:], val)
	m.Offset = off / 4
	m.Count = count
	m.Initial = false
	return true
}

func (s *Store) bytesAt(byteOffset uint32, n int) []byte {
	if int(byteOffset)+n > len(s.arena) {
		return nil
	}
	return s.arena[byteOffset : int(byteOffset)+n]
}

func putF32s(dst []byte, vs ...float32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}

func putI32s(dst []byte, vs ...int32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(dst[i*4:], uint32(v))
	}
}

// Set1F writes a single-float uniform. stamp lets a shared uniform
// skip the comparison when it has not advanced since the mapping's
// last write.
func (s *Store) Set1F(p *Program, key int32, stamp uint32, v0 float32) bool {
	m := &p.Mappings[key]
	if !m.Initial && m.Stamp == stamp {
		return false
	}
	buf := make([]byte, 4)
	putF32s(buf, v0)
	changed := s.write(m, 1, buf)
	m.Stamp = stamp
	return changed
}

// Set2F writes a two-float uniform.
func (s *Store) Set2F(p *Program, key int32, stamp uint32, v0, v1 float32) bool {
	m := &p.Mappings[key]
	if !m.Initial && m.Stamp == stamp {
		return false
	}
	buf := make([]byte, 8)
	putF32s(buf, v0, v1)
	changed := s.write(m, 1, buf)
	m.Stamp = stamp
	return changed
}

// Set3F writes a three-float uniform.
func (s *Store) Set3F(p *Program, key int32, stamp uint32, v0, v1, v2 float32) bool {
	m := &p.Mappings[key]
	if !m.Initial && m.Stamp == stamp {
		return false
	}
	buf := make([]byte, 12)
	putF32s(buf, v0, v1, v2)
	changed := s.write(m, 1, buf)
	m.Stamp = stamp
	return changed
}

// Set4F writes a four-float uniform.
func (s *Store) Set4F(p *Program, key int32, stamp uint32, v0, v1, v2, v3 float32) bool {
	m := &p.Mappings[key]
	if !m.Initial && m.Stamp == stamp {
		return false
	}
	buf := make([]byte, 16)
	putF32s(buf, v0, v1, v2, v3)
	changed := s.write(m, 1, buf)
	m.Stamp = stamp
	return changed
}

// Set1FV writes a 1-float-per-element array uniform (used by gradient
// stop offsets).
func (s *Store) Set1FV(p *Program, key int32, stamp uint32, values []float32) bool {
	return s.setFV(p, key, stamp, 1, values)
}

// Set2FV writes a 2-float-per-element array uniform.
func (s *Store) Set2FV(p *Program, key int32, stamp uint32, values []float32) bool {
	return s.setFV(p, key, stamp, 2, values)
}

// Set3FV writes a 3-float-per-element array uniform.
func (s *Store) Set3FV(p *Program, key int32, stamp uint32, values []float32) bool {
	return s.setFV(p, key, stamp, 3, values)
}

// Set4FV writes a 4-float-per-element array uniform (used by gradient
// stop colors).
func (s *Store) Set4FV(p *Program, key int32, stamp uint32, values []float32) bool {
	return s.setFV(p, key, stamp, 4, values)
}

func (s *Store) setFV(p *Program, key int32, stamp uint32, width int, values []float32) bool {
	m := &p.Mappings[key]
	if !m.Initial && m.Stamp == stamp {
		return false
	}
	count := len(values) / width
	buf := make([]byte, len(values)*4)
	putF32s(buf, values...)
	changed := s.write(m, uint16(count), buf)
	m.Stamp = stamp
	return changed
}

// Set1I writes a single-int uniform.
func (s *Store) Set1I(p *Program, key int32, stamp uint32, v0 int32) bool {
	m := &p.Mappings[key]
	if !m.Initial && m.Stamp == stamp {
		return false
	}
	buf := make([]byte, 4)
	putI32s(buf, v0)
	changed := s.write(m, 1, buf)
	m.Stamp = stamp
	return changed
}

// Set1UI writes a single-uint uniform.
func (s *Store) Set1UI(p *Program, key int32, stamp uint32, v0 uint32) bool {
	m := &p.Mappings[key]
	if !m.Initial && m.Stamp == stamp {
		return false
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v0)
	changed := s.write(m, 1, buf)
	m.Stamp = stamp
	return changed
}

// SetTexture writes a texture-unit-index uniform (0..15).
func (s *Store) SetTexture(p *Program, key int32, stamp uint32, unit uint32) bool {
	m := &p.Mappings[key]
	if !m.Initial && m.Stamp == stamp {
		return false
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, unit)
	changed := s.write(m, 1, buf)
	m.Stamp = stamp
	return changed
}

// SetMatrix writes a 4x4 float matrix uniform (column-major).
func (s *Store) SetMatrix(p *Program, key int32, stamp uint32, v *glm.Mat4) bool {
	m := &p.Mappings[key]
	if !m.Initial && m.Stamp == stamp {
		return false
	}
	buf := make([]byte, 64)
	for i, col := range v {
		putF32s(buf[i*16:], col[0], col[1], col[2], col[3])
	}
	changed := s.write(m, 1, buf)
	m.Stamp = stamp
	return changed
}

// SetRoundedRect writes a 12-float ROUNDED_RECT uniform.
func (s *Store) SetRoundedRect(p *Program, key int32, stamp uint32, v *glm.RoundedRect) bool {
	m := &p.Mappings[key]
	if !m.Initial && m.Stamp == stamp {
		return false
	}
	outline := v.Outline()
	buf := make([]byte, 48)
	putF32s(buf, outline[:]...)
	changed := s.write(m, 1, buf)
	m.Stamp = stamp
	return changed
}

// SetColor writes a straight-alpha RGBA color uniform.
func (s *Store) SetColor(p *Program, key int32, stamp uint32, v glm.Vec4) bool {
	m := &p.Mappings[key]
	if !m.Initial && m.Stamp == stamp {
		return false
	}
	buf := make([]byte, 16)
	putF32s(buf, v[0], v[1], v[2], v[3])
	changed := s.write(m, 1, buf)
	m.Stamp = stamp
	return changed
}

// Snapshot is the {format, array count, arena offset} a command batch
// captures for one uniform key when it finalizes (see gpucmd.EndDraw).
// Two snapshots are considered byte-equal per §4.3.1 either when their
// offsets match, or when their value bytes compare equal.
type Snapshot struct {
	Location int32
	Format   Format
	Count    uint16
	Offset   uint32
}

// SnapshotOf returns key's current Snapshot, or the zero Snapshot
// (Format None) if the mapping was never written or is optimized out.
func (s *Store) SnapshotOf(p *Program, key int32) Snapshot {
	m := &p.Mappings[key]
	if m.Location < 0 || m.Format == None || m.Initial {
		return Snapshot{}
	}
	return Snapshot{m.Location, m.Format, m.Count, m.Offset}
}

// Equal reports whether two snapshots of the same format/count refer
// to byte-identical values, either because they share an offset or
// because the underlying bytes compare equal.
func (s *Store) Equal(a, b Snapshot) bool {
	if a.Format != b.Format || a.Count != b.Count {
		return false
	}
	if a.Format == None {
		return true
	}
	if a.Offset == b.Offset {
		return true
	}
	sz := a.Format.Size(int(a.Count))
	return bytes.Equal(s.bytesAt(a.Offset*4, sz), s.bytesAt(b.Offset*4, sz))
}

// Apply pushes key's stored value into the GL pipeline, skipping the
// upload if the apply hash shows an identical (program, location,
// format, count, offset) was already applied.
func (s *Store) Apply(gl glctx.GL, p *Program, key int32) {
	m := &p.Mappings[key]
	if m.Location < 0 || m.Format == None || m.Initial {
		return
	}
	s.apply(gl, p.ID, m.Location, m.Format, m.Count, m.Offset)
}

// ApplySnapshot pushes the value snap recorded at batch-finalize time
// into the GL pipeline, rather than whatever the mapping holds now.
// Draw batches sharing a program each carry their own Snapshot
// (gpucmd.UniformRef) precisely so that a later write to the same
// mapping does not change what an earlier batch uploads.
func (s *Store) ApplySnapshot(gl glctx.GL, program uint32, snap Snapshot) {
	if snap.Location < 0 || snap.Format == None {
		return
	}
	s.apply(gl, program, snap.Location, snap.Format, snap.Count, snap.Offset)
}

func (s *Store) apply(gl glctx.GL, program uint32, location int32, format Format, count uint16, offset uint32) {
	bucket := applyBucket(program, location)
	e := &s.applyHash[bucket]
	if e.valid && e.program == program && e.location == location &&
		e.format == format && e.count == count && e.offset == offset {
		return
	}
	s.upload(gl, location, format, count, offset)
	*e = appliedEntry{true, program, location, format, count, offset}
}

func applyBucket(program uint32, location int32) int {
	h := program*2654435761 ^ uint32(location)
	return int(h % applyHashSize)
}

func (s *Store) upload(gl glctx.GL, loc int32, format Format, count uint16, offset uint32) {
	data := s.bytesAt(offset*4, format.Size(int(count)))
	f32 := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	i32 := func(i int) int32 { return int32(binary.LittleEndian.Uint32(data[i*4:])) }
	floats := func() []float32 {
		out := make([]float32, len(data)/4)
		for i := range out {
			out[i] = f32(i)
		}
		return out
	}
	switch format {
	case F1:
		gl.Uniform1f(loc, f32(0))
	case F2:
		gl.Uniform2f(loc, f32(0), f32(1))
	case F3:
		gl.Uniform3f(loc, f32(0), f32(1), f32(2))
	case F4, Color:
		gl.Uniform4f(loc, f32(0), f32(1), f32(2), f32(3))
	case F1V:
		gl.Uniform1fv(loc, floats())
	case F2V:
		gl.Uniform2fv(loc, floats())
	case F3V:
		gl.Uniform3fv(loc, floats())
	case F4V, RoundedRect:
		gl.Uniform4fv(loc, floats())
	case I1:
		gl.Uniform1i(loc, i32(0))
	case I2:
		gl.Uniform2i(loc, i32(0), i32(1))
	case I3:
		gl.Uniform3i(loc, i32(0), i32(1), i32(2))
	case I4:
		gl.Uniform4i(loc, i32(0), i32(1), i32(2), i32(3))
	case UI1, Texture:
		gl.Uniform1ui(loc, binary.LittleEndian.Uint32(data))
	case Matrix:
		var mat [16]float32
		for i := range mat {
			mat[i] = f32(i)
		}
		gl.UniformMatrix4fv(loc, false, &mat)
	}
}

// EndFrame resets the arena's bump pointer and clears the apply hash.
// Every program's mappings are also reset to their initial state:
// values are per-frame scratch, so a mapping untouched by the next
// frame must read back as zero rather than stale bytes the arena is
// about to overwrite.
func (s *Store) EndFrame() {
	s.bump = sentinelSize
	s.arena = s.arena[:sentinelSize]
	for i := range s.applyHash {
		s.applyHash[i] = appliedEntry{}
	}
	for _, p := range s.programs {
		for i := range p.Mappings {
			m := &p.Mappings[i]
			if m.Format == None {
				continue
			}
			m.Offset = 0
			m.Initial = true
			m.Stamp = 0
		}
	}
}
