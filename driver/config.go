package driver

// Config configures a Driver. Grounded on the teacher's
// engine.Config/DefaultConfig pattern (package-level defaults struct
// with doc-commented fields).
type Config struct {
	// MaxTextureSize clamps the width/height CreateTexture accepts. A
	// request exceeding this is clamped and logged once.
	//
	// Default is 4096.
	MaxTextureSize int

	// AtlasMaxFrameAge is the number of frames an atlas entry may go
	// un-accessed before a compaction scan drops it.
	//
	// Default is 60.
	AtlasMaxFrameAge int64

	// DebugShaders enables logging of compiled GLSL source and red
	// overlays on fallback draws.
	//
	// Default is false.
	DebugShaders bool
}

const (
	dflMaxTextureSize    = 4096
	dflAtlasMaxFrameAge  = 60
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxTextureSize:   dflMaxTextureSize,
		AtlasMaxFrameAge: dflAtlasMaxFrameAge,
	}
}
