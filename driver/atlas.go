package driver

// Atlas is a rectangular GPU texture partitioned by a Packer, shared
// by the glyph and icon libraries. The core only owns the bookkeeping
// here; the libraries own their key types and upload logic.
type Atlas struct {
	TextureIdx int32 // index into Driver's texture pool
	Width      int
	Height     int
	Packer     *Packer
	Entries    []*AtlasEntry

	UnusedPixels int
}

// AtlasEntry records one packed sub-rectangle, in normalized
// coordinates, plus the bookkeeping the per-frame compaction scan
// needs.
type AtlasEntry struct {
	Atlas *Atlas

	X0, Y0, X1, Y1 float32 // normalized [0,1] coordinates
	PixelCount     int

	Used     bool
	Accessed bool

	lastAccessFrame int64
}

// NewAtlas creates an atlas of the given size, seeding a 3x3 opaque
// white pixel block at (0,0) so color-only draws can sample a
// guaranteed-opaque texel from any atlas (spec §4.5).
func NewAtlas(texIdx int32, w, h int) *Atlas {
	a := &Atlas{TextureIdx: texIdx, Width: w, Height: h, Packer: NewPacker(w, h)}
	if x, y, ok := a.Packer.Allocate(3, 3); ok {
		a.Entries = append(a.Entries, &AtlasEntry{
			Atlas: a,
			X0:    float32(x) / float32(w), Y0: float32(y) / float32(h),
			X1: float32(x+3) / float32(w), Y1: float32(y+3) / float32(h),
			PixelCount: 9, Used: true, Accessed: true,
		})
	}
	return a
}

// WhitePixel returns the guaranteed-opaque seed entry, always index 0
// when present.
func (a *Atlas) WhitePixel() *AtlasEntry {
	if len(a.Entries) == 0 {
		return nil
	}
	return a.Entries[0]
}

// Allocate packs a w x h rectangle and appends a new entry for it, or
// returns ok=false when the atlas has no room (the caller should
// construct a new atlas and retry, per spec §4.5).
func (a *Atlas) Allocate(w, h int, frameID int64) (e *AtlasEntry, ok bool) {
	x, y, fits := a.Packer.Allocate(w, h)
	if !fits {
		return nil, false
	}
	e = &AtlasEntry{
		Atlas: a,
		X0:    float32(x) / float32(a.Width), Y0: float32(y) / float32(a.Height),
		X1: float32(x+w) / float32(a.Width), Y1: float32(y+h) / float32(a.Height),
		PixelCount: w * h, Used: true, Accessed: true, lastAccessFrame: frameID,
	}
	a.Entries = append(a.Entries, e)
	return e, true
}

// Touch marks e as accessed this frame, keeping it alive through the
// age-based compaction pass. Callers (the glyph and icon libraries)
// call this on every cache hit.
func (e *AtlasEntry) Touch(frameID int64) {
	e.Accessed = true
	e.lastAccessFrame = frameID
}

// unusedFraction reports the atlas's wasted area as a fraction of its
// total pixel count.
func (a *Atlas) unusedFraction() float32 {
	total := a.Width * a.Height
	if total == 0 {
		return 0
	}
	used := 0
	for _, e := range a.Entries {
		if e.Used {
			used += e.PixelCount
		}
	}
	return float32(total-used) / float32(total)
}

// CompactAtlases runs the per-frame compaction scan of spec §4.5:
// atlases over 50% unused are dropped wholesale (their texture index
// returned for release); every maxFrameAge frames, entries not
// accessed since are marked unused (atlased) so their pixels count
// against the next compaction pass.
//
// release is called with the texture pool index of any atlas dropped
// wholesale.
func CompactAtlases(atlases []*Atlas, frameID, maxFrameAge int64, release func(texIdx int32)) []*Atlas {
	kept := atlases[:0]
	for _, a := range atlases {
		if a.unusedFraction() > 0.5 {
			release(a.TextureIdx)
			continue
		}
		kept = append(kept, a)
	}

	if maxFrameAge <= 0 || frameID%maxFrameAge != 0 {
		return kept
	}
	for _, a := range kept {
		for _, e := range a.Entries {
			if e.Used && !e.Accessed && frameID-e.lastAccessFrame >= maxFrameAge {
				e.Used = false
			}
			e.Accessed = false
		}
	}
	return kept
}
