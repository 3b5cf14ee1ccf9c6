package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/textchunk-mcp/internal/chunker"
	"github.com/dshills/textchunk-mcp/internal/processor"
	"github.com/dshills/textchunk-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams        = -32602 // Invalid method parameters
	ErrorCodeInternalError        = -32603 // Internal JSON-RPC error
	ErrorCodePathNotFound         = -32001 // Specified path does not exist
	ErrorCodeProcessingInProgress = -32002 // Another chunk_files run is in progress
	ErrorCodeEmptyText            = -32004 // Text parameter is empty
)

// maxReportedErrors caps the per-file errors returned by chunk_files
const maxReportedErrors = 5

// handleChunkText handles the chunk_text tool invocation
func (s *Server) handleChunkText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or not a string",
		})
	}
	if text == "" {
		return nil, newMCPError(ErrorCodeEmptyText, "text parameter cannot be empty", map[string]interface{}{
			"param":  "text",
			"reason": "empty",
		})
	}

	strategy := types.Strategy(getStringDefault(args, "strategy", string(types.StrategySentence)))
	if err := types.ValidateStrategy(strategy); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid strategy", map[string]interface{}{
			"param":   "strategy",
			"value":   string(strategy),
			"allowed": []string{string(types.StrategySentence), string(types.StrategyParagraph)},
		})
	}

	c, err := s.chunkerFor(args, chunker.WithStrategy(strategy))
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(formatJSON(chunkResponse(c, text))), nil
}

// handleChunkByParagraphs handles the chunk_by_paragraphs tool invocation
func (s *Server) handleChunkByParagraphs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or not a string",
		})
	}

	c, err := s.chunkerFor(args, chunker.WithStrategy(types.StrategyParagraph))
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(formatJSON(chunkResponse(c, text))), nil
}

// handleFindSplitPoint handles the find_split_point tool invocation
func (s *Server) handleFindSplitPoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or not a string",
		})
	}

	target, ok := getInt(args, "target_position")
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "target_position parameter is required", map[string]interface{}{
			"param":  "target_position",
			"reason": "missing or not a number",
		})
	}

	lookback := getIntDefault(args, "lookback", chunker.DefaultLookback)
	if lookback <= 0 {
		lookback = chunker.DefaultLookback
	}

	response := map[string]interface{}{
		"split_point":     chunker.FindBestSplitPoint(text, target, lookback),
		"target_position": target,
		"lookback":        lookback,
		"text_length":     utf8.RuneCountInString(text),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleEstimateTokens handles the estimate_tokens tool invocation
func (s *Server) handleEstimateTokens(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing or not a string",
		})
	}

	name := getStringDefault(args, "counter", "")
	counter := s.processor.Chunker().Counter()
	if name == "" {
		name = s.counterName
	} else {
		var err error
		counter, err = chunker.NewTokenCounter(name)
		if err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "unknown token counter", map[string]interface{}{
				"param":  "counter",
				"value":  name,
				"reason": err.Error(),
			})
		}
	}

	response := map[string]interface{}{
		"tokens":     counter.Count(text),
		"counter":    name,
		"words":      len(strings.Fields(text)),
		"characters": utf8.RuneCountInString(text),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleChunkFiles handles the chunk_files tool invocation
func (s *Server) handleChunkFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	if err := validatePath(path); err != nil {
		code := ErrorCodeInvalidParams
		if errors.Is(err, ErrPathNotFound) {
			code = ErrorCodePathNotFound
		}
		return nil, newMCPError(code, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	opts, err := sizeOptions(args)
	if err != nil {
		return nil, err
	}

	config := &processor.Config{
		Workers:   s.workers,
		Options:   opts,
		Recursive: getBoolDefault(args, "recursive", true),
	}

	if !s.runLock.TryAcquire() {
		return nil, newMCPError(ErrorCodeProcessingInProgress, types.ErrProcessingInProgress.Error(), map[string]interface{}{
			"path": path,
		})
	}
	defer s.runLock.Release()

	s.logger.Debug("chunk_files", "path", path, "recursive", config.Recursive)

	result, err := s.processor.ProcessPath(ctx, path, config)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrPathNotFound):
			return nil, newMCPError(ErrorCodePathNotFound, "path not found", map[string]interface{}{
				"path": path,
			})
		default:
			return nil, newMCPError(ErrorCodeInternalError, "processing failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	stats := result.Statistics
	files := make([]map[string]interface{}, 0, len(result.Documents))
	for _, doc := range result.Documents {
		files = append(files, map[string]interface{}{
			"path":     doc.Path,
			"chunks":   len(doc.Chunks),
			"tokens":   doc.TokenCount,
			"bytes":    doc.SizeBytes,
			"lossless": doc.Lossless,
		})
	}

	response := map[string]interface{}{
		"run_id":           stats.RunID,
		"files_processed":  stats.FilesProcessed,
		"files_skipped":    stats.FilesSkipped,
		"files_failed":     stats.FilesFailed,
		"chunks_created":   stats.ChunksCreated,
		"tokens_estimated": stats.TokensEstimated,
		"duration_ms":      stats.Duration.Milliseconds(),
		"files":            files,
	}

	if len(stats.ErrorMessages) > 0 {
		// Include first few errors
		errorCount := len(stats.ErrorMessages)
		if errorCount > maxReportedErrors {
			response["errors"] = stats.ErrorMessages[:maxReportedErrors]
			response["error_count"] = errorCount
		} else {
			response["errors"] = stats.ErrorMessages
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// chunkerFor derives a chunker from the server's base configuration and the
// size arguments of a request
func (s *Server) chunkerFor(args map[string]interface{}, extra ...chunker.Option) (*chunker.Chunker, error) {
	opts, err := sizeOptions(args)
	if err != nil {
		return nil, err
	}

	var options []chunker.Option
	if opts.MaxChunkSize > 0 {
		options = append(options, chunker.WithMaxChunkSize(opts.MaxChunkSize))
	}
	if opts.MinChunkSize > 0 {
		options = append(options, chunker.WithMinChunkSize(opts.MinChunkSize))
	}
	return s.processor.Chunker().With(append(options, extra...)...), nil
}

// chunkResponse chunks text and formats the result
func chunkResponse(c *chunker.Chunker, text string) map[string]interface{} {
	chunks := c.ChunkDocument(text)

	contents := make([]string, len(chunks))
	details := make([]map[string]interface{}, len(chunks))
	total := 0
	for i, chunk := range chunks {
		contents[i] = chunk.Content
		details[i] = map[string]interface{}{
			"index":  chunk.Index,
			"start":  chunk.Start,
			"end":    chunk.End,
			"length": chunk.Length(),
			"tokens": chunk.TokenCount,
			"merged": chunk.Merged,
		}
		total += chunk.TokenCount
	}

	opts := c.Options()
	return map[string]interface{}{
		"original_length": utf8.RuneCountInString(text),
		"chunk_count":     len(chunks),
		"chunks":          contents,
		"details":         details,
		"total_tokens":    total,
		"lossless":        chunker.VerifyCoverage(text, contents) == nil,
		"strategy":        string(c.Strategy()),
		"max_chunk_size":  opts.MaxChunkSize,
		"min_chunk_size":  opts.MinChunkSize,
	}
}

// sizeOptions reads max_chunk_size and min_chunk_size. Absent or zero means default.
func sizeOptions(args map[string]interface{}) (types.ChunkOptions, error) {
	opts := types.ChunkOptions{
		MaxChunkSize: getIntDefault(args, "max_chunk_size", 0),
		MinChunkSize: getIntDefault(args, "min_chunk_size", 0),
	}
	if opts.MaxChunkSize < 0 || opts.MinChunkSize < 0 {
		return opts, newMCPError(ErrorCodeInvalidParams, "chunk sizes must be positive", map[string]interface{}{
			"max_chunk_size": opts.MaxChunkSize,
			"min_chunk_size": opts.MinChunkSize,
		})
	}
	if err := opts.Validate(); err != nil {
		return opts, newMCPError(ErrorCodeInvalidParams, "invalid chunk sizes", map[string]interface{}{
			"reason": err.Error(),
		})
	}
	return opts, nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validatePath checks if a path exists and is accessible
func validatePath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if info.IsDir() {
		f, err := os.Open(path)
		if err != nil {
			return ErrPathNotReadable
		}
		_ = f.Close()
	}

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getInt extracts an integer parameter, reporting whether it was present
func getInt(args map[string]interface{}, key string) (int, bool) {
	switch val := args[key].(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	default:
		return 0, false
	}
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := getInt(args, key); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
)
