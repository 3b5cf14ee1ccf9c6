package types

import (
	"crypto/sha256"
	"errors"
)

// Strategy selects how a text is divided into chunks
type Strategy string

const (
	// StrategySentence splits at sentence, clause, then word boundaries
	StrategySentence Strategy = "sentence"
	// StrategyParagraph groups blank-line separated paragraphs first
	StrategyParagraph Strategy = "paragraph"
)

// Chunk is a trimmed piece of a source text sized for a single LLM request
type Chunk struct {
	// Position in the chunk sequence (0-based)
	Index int

	// Content
	Content     string
	ContentHash [32]byte // SHA-256 of Content
	TokenCount  int

	// Span in the source text, in characters (runes). End is exclusive.
	// When undersized fragments were merged in, the span covers them too.
	Start int
	End   int

	// Merged is set when at least one undersized fragment was appended
	Merged bool
}

// Length returns the chunk length in characters
func (c *Chunk) Length() int {
	return len([]rune(c.Content))
}

// ValidateContent checks if the chunk content is valid
func (c *Chunk) ValidateContent() error {
	if c.Content == "" {
		return ErrEmptyContent
	}

	if c.Start < 0 || c.End < 0 {
		return ErrInvalidSpan
	}

	if c.Start > c.End {
		return errors.New("span start must be before or equal to end")
	}

	return nil
}

// ComputeContentHash computes the SHA-256 hash of the chunk content
func (c *Chunk) ComputeContentHash() {
	c.ContentHash = sha256.Sum256([]byte(c.Content))
}

// Validate performs comprehensive validation of the chunk
func (c *Chunk) Validate() error {
	if err := c.ValidateContent(); err != nil {
		return err
	}

	if c.Index < 0 {
		return ErrInvalidChunkIndex
	}

	// Verify content hash is computed
	var zeroHash [32]byte
	if c.ContentHash == zeroHash {
		return errors.New("content hash must be computed")
	}

	return nil
}

// ValidateStrategy checks if the strategy is known
func ValidateStrategy(s Strategy) error {
	switch s {
	case StrategySentence, StrategyParagraph:
		return nil
	default:
		return ErrUnknownStrategy
	}
}
