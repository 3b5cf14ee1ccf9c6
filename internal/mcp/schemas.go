package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

func sizeProperties() map[string]interface{} {
	return map[string]interface{}{
		"max_chunk_size": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum chunk size in characters (a chunk may run up to 50 past it to finish a sentence)",
			"default":     types.DefaultMaxChunkSize,
			"minimum":     1,
		},
		"min_chunk_size": map[string]interface{}{
			"type":        "integer",
			"description": "Fragments shorter than this are appended to the previous chunk",
			"default":     types.DefaultMinChunkSize,
			"minimum":     1,
		},
	}
}

// chunkTextTool returns the tool definition for chunk_text
func chunkTextTool() mcp.Tool {
	props := sizeProperties()
	props["text"] = map[string]interface{}{
		"type":        "string",
		"description": "Text to split into chunks",
	}
	props["strategy"] = map[string]interface{}{
		"type":        "string",
		"description": "sentence: split at sentence, clause or word boundaries; paragraph: group blank-line separated paragraphs first",
		"enum":        []string{string(types.StrategySentence), string(types.StrategyParagraph)},
		"default":     string(types.StrategySentence),
	}

	return mcp.Tool{
		Name:        "chunk_text",
		Description: "Split long text into chunks sized for a language model, breaking at natural language boundaries",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"text"},
		},
	}
}

// chunkByParagraphsTool returns the tool definition for chunk_by_paragraphs
func chunkByParagraphsTool() mcp.Tool {
	props := sizeProperties()
	props["text"] = map[string]interface{}{
		"type":        "string",
		"description": "Text with paragraphs separated by blank lines",
	}

	return mcp.Tool{
		Name:        "chunk_by_paragraphs",
		Description: "Group whole paragraphs into chunks, splitting only paragraphs that are too large on their own",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"text"},
		},
	}
}

// findSplitPointTool returns the tool definition for find_split_point
func findSplitPointTool() mcp.Tool {
	return mcp.Tool{
		Name:        "find_split_point",
		Description: "Find the best character offset near a target position to break text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to search",
				},
				"target_position": map[string]interface{}{
					"type":        "integer",
					"description": "Desired split offset in characters",
				},
				"lookback": map[string]interface{}{
					"type":        "integer",
					"description": "How far before the target to search for a boundary",
					"default":     200,
				},
			},
			Required: []string{"text", "target_position"},
		},
	}
}

// estimateTokensTool returns the tool definition for estimate_tokens
func estimateTokensTool() mcp.Tool {
	return mcp.Tool{
		Name:        "estimate_tokens",
		Description: "Estimate how many language model tokens a text uses",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text to measure",
				},
				"counter": map[string]interface{}{
					"type":        "string",
					"description": "heuristic (1.3 tokens per word), words (Unicode word count) or a tiktoken encoding such as cl100k_base",
				},
			},
			Required: []string{"text"},
		},
	}
}

// chunkFilesTool returns the tool definition for chunk_files
func chunkFilesTool() mcp.Tool {
	props := sizeProperties()
	props["path"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to a text file or a directory of .txt, .md and .text files",
	}
	props["recursive"] = map[string]interface{}{
		"type":        "boolean",
		"description": "If true, descend into subdirectories",
		"default":     true,
	}

	return mcp.Tool{
		Name:        "chunk_files",
		Description: "Chunk every text file under a path and report per-file results",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   []string{"path"},
		},
	}
}
