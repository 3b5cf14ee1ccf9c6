// Package chunker divides long text into LLM-sized chunks at natural language boundaries.
//
// The chunker is pure and synchronous: no I/O, no package state, no errors. Every
// function may be called concurrently. Sizes and offsets are measured in characters
// (runes), never bytes.
//
// # Basic Usage
//
//	chunks := chunker.ChunkText(text, types.ChunkOptions{
//	    MaxChunkSize: 2000,
//	    MinChunkSize: 100,
//	})
//
//	for _, chunk := range chunks {
//	    corrected, err := correct(ctx, chunk)
//	    ...
//	}
//
// Zero option values select types.DefaultMaxChunkSize and types.DefaultMinChunkSize.
//
// # Split Points
//
// FindBestSplitPoint searches a window around the target offset, from
// target-lookback to target+50, and takes the first tier that matches:
//
//  1. Sentence: '.', '!' or '?' followed by whitespace, ending at most 50 past the target
//  2. Clause: ';', ':', ',' or '-' followed by whitespace, at most 30 past the target
//  3. Word: any whitespace run, at most 10 past the target
//  4. The target itself (a mid-word split)
//
// Within a tier the match closest to the end of the range wins. The offset
// returned is just past the whitespace, so the next chunk starts on a word.
//
// # Chunk Assembly
//
// ChunkText walks the text with a cursor, asking for a split point
// MaxChunkSize characters ahead. Each piece is trimmed; pieces shorter than
// MinChunkSize are appended to the previous chunk with a single space. Text
// that already fits is returned unchanged, including surrounding whitespace.
//
// Because the sentence tier may look up to 50 characters past the target, a
// chunk can exceed MaxChunkSize by that much when a sentence ends just after it.
//
// # Paragraphs
//
// ChunkByParagraphs splits on blank lines first and packs whole paragraphs
// into chunks joined by "\n\n". Oversized paragraphs go through ChunkText.
//
// # Chunker
//
// Chunker fixes a configuration and annotates output for downstream use:
//
//	c := chunker.New(
//	    chunker.WithMaxChunkSize(1500),
//	    chunker.WithStrategy(types.StrategyParagraph),
//	    chunker.WithTokenCounter(chunker.WordCounter{}),
//	)
//	for _, chunk := range c.ChunkDocument(text) {
//	    fmt.Printf("#%d [%d:%d] %d tokens\n", chunk.Index, chunk.Start, chunk.End, chunk.TokenCount)
//	}
//
// # Token Counting
//
// EstimateTokenCount is a fast heuristic (1.3 tokens per word). WordCounter
// counts Unicode words and TikTokenCounter gives exact BPE counts for OpenAI
// encodings. NewTokenCounter resolves any of them by name.
//
// # Coverage
//
// VerifyCoverage confirms that a chunk sequence rejoined with single spaces
// still holds every non-space character of the original, in order.
package chunker
