package chunker

import "github.com/dshills/textchunk-mcp/pkg/types"

// Option configures a Chunker.
// This follows the functional options pattern for clean and flexible configuration.
type Option func(*Chunker)

// WithMaxChunkSize sets the chunk size ceiling in characters
func WithMaxChunkSize(size int) Option {
	return func(c *Chunker) {
		c.opts.MaxChunkSize = size
	}
}

// WithMinChunkSize sets the size below which fragments are merged backwards
func WithMinChunkSize(size int) Option {
	return func(c *Chunker) {
		c.opts.MinChunkSize = size
	}
}

// WithOptions replaces both size constraints
func WithOptions(opts types.ChunkOptions) Option {
	return func(c *Chunker) {
		c.opts = opts
	}
}

// WithStrategy selects sentence-first or paragraph-first chunking
func WithStrategy(s types.Strategy) Option {
	return func(c *Chunker) {
		c.strategy = s
	}
}

// WithTokenCounter sets the counter used for Chunk.TokenCount
func WithTokenCounter(counter TokenCounter) Option {
	return func(c *Chunker) {
		c.counter = counter
	}
}
