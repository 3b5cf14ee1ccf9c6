// Package mcp implements the Model Context Protocol (MCP) server for textchunk.
//
// The MCP server exposes the chunker to AI assistants as five tools:
//   - chunk_text: Split text at sentence, clause or word boundaries
//   - chunk_by_paragraphs: Group paragraphs into chunks
//   - find_split_point: Locate the best break near an offset
//   - estimate_tokens: Count tokens with the heuristic, word or tiktoken counters
//   - chunk_files: Chunk a file or directory of text files
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// Logs go to stderr because stdout carries the protocol.
//
// # Basic Usage
//
//	textchunk serve
//
// # Tool: chunk_text
//
//	Request:
//	{
//	  "name": "chunk_text",
//	  "arguments": {
//	    "text": "First sentence. Second sentence. ...",
//	    "max_chunk_size": 2000,
//	    "min_chunk_size": 100,
//	    "strategy": "sentence"
//	  }
//	}
//
//	Response:
//	{
//	  "original_length": 5230,
//	  "chunk_count": 3,
//	  "chunks": ["First sentence. ...", "...", "..."],
//	  "details": [{"index": 0, "start": 0, "end": 1987, "tokens": 402, "merged": false}, ...],
//	  "lossless": true
//	}
//
// Empty text is rejected with code -32004. chunk_by_paragraphs takes the same
// size arguments and always uses the paragraph strategy.
//
// # Tool: find_split_point
//
//	{"name": "find_split_point", "arguments": {"text": "...", "target_position": 2000}}
//
// returns {"split_point": 1987, "text_length": 5230, ...}.
//
// # Tool: chunk_files
//
//	{"name": "chunk_files", "arguments": {"path": "/abs/notes", "recursive": true}}
//
// Only one chunk_files run executes at a time; a concurrent call fails with
// -32002. A missing path fails with -32001.
//
// # Error Codes
//
//	-32602  Invalid parameters
//	-32603  Internal error
//	-32001  Path not found
//	-32002  Processing in progress
//	-32004  Empty text
package mcp
