package types

import "fmt"

const (
	// DefaultMaxChunkSize is the chunk size ceiling in characters
	DefaultMaxChunkSize = 2000

	// DefaultMinChunkSize is the size below which a fragment is merged into its predecessor
	DefaultMinChunkSize = 100

	// DefaultOverlapSize is carried by configuration only. Chunks never overlap.
	DefaultOverlapSize = 50
)

// ChunkOptions are the size constraints for a chunking pass.
// Zero or negative values select the defaults.
type ChunkOptions struct {
	MaxChunkSize int
	MinChunkSize int
}

// DefaultChunkOptions returns the default size constraints
func DefaultChunkOptions() ChunkOptions {
	return ChunkOptions{
		MaxChunkSize: DefaultMaxChunkSize,
		MinChunkSize: DefaultMinChunkSize,
	}
}

// WithDefaults returns a copy with unset values replaced by defaults
func (o ChunkOptions) WithDefaults() ChunkOptions {
	if o.MaxChunkSize <= 0 {
		o.MaxChunkSize = DefaultMaxChunkSize
	}
	if o.MinChunkSize <= 0 {
		o.MinChunkSize = DefaultMinChunkSize
	}
	return o
}

// Validate rejects explicitly inconsistent options. Unset values are valid.
func (o ChunkOptions) Validate() error {
	if o.MaxChunkSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChunkSize, o.MaxChunkSize)
	}
	if o.MaxChunkSize > 0 && o.MinChunkSize > o.MaxChunkSize {
		return fmt.Errorf("%w: min %d, max %d", ErrMinExceedsMax, o.MinChunkSize, o.MaxChunkSize)
	}
	return nil
}
