package types

// Document is a chunked source text, either a file or an in-memory string
type Document struct {
	// Identification
	Path        string // Relative to the processed root; empty for in-memory texts
	ContentHash [32]byte
	SizeBytes   int64

	// Chunking output
	Chunks     []*Chunk
	TokenCount int  // Sum of chunk token counts
	Lossless   bool // Every word of the source appears in the chunks, in order
}

// ChunkTexts returns the chunk contents in order
func (d *Document) ChunkTexts() []string {
	out := make([]string, len(d.Chunks))
	for i, c := range d.Chunks {
		out[i] = c.Content
	}
	return out
}

// Validate checks if the document is valid
func (d *Document) Validate() error {
	for _, c := range d.Chunks {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
