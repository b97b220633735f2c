package uniform

// NMappings is the number of uniform keys a Program can hold (0..31
// per §3.1).
const NMappings = 32

// Mapping binds one of a program's 0..31 integer keys to a GPU
// location, a format, an array count, and a slot offset into the
// store's arena (measured in 4-byte slots; 0 means "never written",
// so an untouched Mapping reads back as zero bytes).
type Mapping struct {
	Location int32
	Format   Format
	Count    uint16
	Offset   uint32

	// Initial is true until the first user write. While true the
	// mapping has no arena slot; the first write allocates one and
	// clears Initial. No write, including the first, stores in place.
	Initial bool

	// Stamp records the monotonic counter passed to the write that
	// last touched this mapping, letting a caller skip the byte
	// comparison entirely for a shared uniform whose stamp has not
	// advanced since the previous write (see Store.BumpStamp).
	Stamp uint32
}

// MappingSpec describes one uniform key a program exposes, supplied
// by the caller to GetProgram so the store can resolve each key's GL
// location once, at program-creation time.
type MappingSpec struct {
	Key    int32
	Name   string
	Format Format
	Count  uint16
}

// Program owns a mapping table keyed by an integer 0..31 and the
// count of keys actually populated.
type Program struct {
	ID             uint32
	HasAttachments bool
	Mappings       [NMappings]Mapping
	NUsed          int
}
