// Package types provides shared type definitions for the textchunk MCP server.
//
// This package defines the domain types passed between the chunker, the batch
// processor and the MCP tool layer: chunk options, chunks and chunked documents.
//
// # Options
//
// ChunkOptions carries the two size constraints of a chunking pass, measured
// in characters (runes). Zero values mean "use the default":
//
//	opts := types.ChunkOptions{MaxChunkSize: 1500}.WithDefaults()
//	// opts.MinChunkSize == types.DefaultMinChunkSize
//
// # Chunks
//
// Chunk is one trimmed piece of a source text together with its rune span,
// token count and SHA-256 content hash:
//
//	chunk := &types.Chunk{
//	    Index:   0,
//	    Content: "First sentence. Second sentence.",
//	    Start:   0,
//	    End:     32,
//	}
//	chunk.ComputeContentHash()
//
// Chunks are transient. They are produced per request and never stored.
//
// # Validation
//
//	if err := chunk.Validate(); err != nil {
//	    return fmt.Errorf("invalid chunk: %w", err)
//	}
//
// Errors are sentinel values usable with errors.Is.
package types
