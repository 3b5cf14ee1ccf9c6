package chunker

import (
	"github.com/dshills/textchunk-mcp/pkg/types"
)

// Chunker applies a fixed chunking configuration to many texts.
// It holds no mutable state and is safe for concurrent use.
type Chunker struct {
	opts     types.ChunkOptions
	strategy types.Strategy
	counter  TokenCounter
}

// New creates a Chunker. Unset sizes fall back to the package defaults,
// the strategy to sentence-first and the counter to the heuristic estimator.
func New(options ...Option) *Chunker {
	c := &Chunker{
		opts:     types.DefaultChunkOptions(),
		strategy: types.StrategySentence,
		counter:  HeuristicCounter{},
	}
	for _, opt := range options {
		opt(c)
	}
	c.opts = c.opts.WithDefaults()
	if types.ValidateStrategy(c.strategy) != nil {
		c.strategy = types.StrategySentence
	}
	if c.counter == nil {
		c.counter = HeuristicCounter{}
	}
	return c
}

// With returns a copy of c with further options applied
func (c *Chunker) With(options ...Option) *Chunker {
	base := []Option{WithOptions(c.opts), WithStrategy(c.strategy), WithTokenCounter(c.counter)}
	return New(append(base, options...)...)
}

// Options returns the effective size constraints
func (c *Chunker) Options() types.ChunkOptions {
	return c.opts
}

// Strategy returns the effective chunking strategy
func (c *Chunker) Strategy() types.Strategy {
	return c.strategy
}

// Counter returns the token counter
func (c *Chunker) Counter() TokenCounter {
	return c.counter
}

// CountTokens counts tokens with the configured counter
func (c *Chunker) CountTokens(text string) int {
	return c.counter.Count(text)
}

// Split returns the chunk contents for text
func (c *Chunker) Split(text string) []string {
	return texts(c.pieces(text))
}

// ChunkDocument splits text and returns chunks annotated with their source
// span, token count and content hash
func (c *Chunker) ChunkDocument(text string) []*types.Chunk {
	pieces := c.pieces(text)
	chunks := make([]*types.Chunk, 0, len(pieces))
	for i, p := range pieces {
		chunk := &types.Chunk{
			Index:      i,
			Content:    p.text,
			TokenCount: c.counter.Count(p.text),
			Start:      p.start,
			End:        p.end,
			Merged:     p.merged,
		}
		chunk.ComputeContentHash()
		chunks = append(chunks, chunk)
	}
	return chunks
}

func (c *Chunker) pieces(text string) []piece {
	runes := []rune(text)
	switch c.strategy {
	case types.StrategyParagraph:
		return chunkParagraphs(runes, c.opts)
	default:
		return chunkRunes(runes, 0, c.opts)
	}
}
