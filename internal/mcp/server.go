package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/textchunk-mcp/internal/chunker"
	"github.com/dshills/textchunk-mcp/internal/config"
	"github.com/dshills/textchunk-mcp/internal/processor"
)

const (
	// ServerName is the MCP server name
	ServerName = "textchunk-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp       *server.MCPServer
	processor *processor.Processor
	logger    *slog.Logger
	runLock   processor.RunLock // Held while chunk_files runs

	counterName string
	workers     int
}

// NewServer creates a new MCP server instance from the resolved configuration.
// A nil logger uses slog.Default().
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	counter, err := chunker.NewTokenCounter(cfg.TokenCounter)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token counter: %w", err)
	}

	c := chunker.New(
		chunker.WithOptions(cfg.ChunkOptions()),
		chunker.WithTokenCounter(counter),
	)

	s := &Server{
		mcp:         server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false)),
		processor:   processor.New(c, logger),
		logger:      logger,
		counterName: cfg.TokenCounter,
		workers:     cfg.Workers,
	}

	s.registerTools()

	return s, nil
}

// Serve runs the MCP protocol over in and out until ctx is cancelled or in is closed
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(chunkTextTool(), s.handleChunkText)
	s.mcp.AddTool(chunkByParagraphsTool(), s.handleChunkByParagraphs)
	s.mcp.AddTool(findSplitPointTool(), s.handleFindSplitPoint)
	s.mcp.AddTool(estimateTokensTool(), s.handleEstimateTokens)
	s.mcp.AddTool(chunkFilesTool(), s.handleChunkFiles)
}
