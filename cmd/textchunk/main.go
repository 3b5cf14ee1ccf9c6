package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/textchunk-mcp/internal/config"
	"github.com/dshills/textchunk-mcp/internal/mcp"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe(args)
	case "chunk":
		err = runChunk(args, os.Stdin, os.Stdout)
	case "files":
		err = runFiles(args, os.Stdout)
	case "tokens":
		err = runTokens(args, os.Stdin, os.Stdout)
	case "version", "--version", "-v":
		printVersion(os.Stdout)
	case "help", "--help", "-h":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(args []string) error {
	opts, rest, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("serve takes no arguments, got %q", rest[0])
	}

	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}

	// Logs go to stderr (stdout reserved for MCP protocol)
	logger.Info("textchunk MCP server starting",
		"version", version,
		"max_chunk_size", cfg.MaxChunkSize,
		"min_chunk_size", cfg.MinChunkSize,
		"token_counter", cfg.TokenCounter)

	server, err := mcp.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("MCP server ready, listening on stdio")
		errChan <- server.Serve(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case sig := <-sigChan:
		logger.Info("shutting down", "signal", sig.String())
		cancel()
	case err := <-errChan:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

// setup resolves configuration and builds the stderr logger
func setup(opts cliOptions) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Resolve(opts.resolve)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return cfg, logger, nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "textchunk MCP Server\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `textchunk - split long text into LLM-sized chunks

Usage:
  textchunk [serve]                        Run the MCP server on stdio
  textchunk chunk [flags] [file|-]         Chunk a file or stdin, print JSON
  textchunk files [flags] <path>           Chunk every text file under path
  textchunk tokens [flags] [file|-]        Count tokens in a file or stdin
  textchunk version                        Print version information

Flags:
  --max N          Maximum chunk size in characters (default 2000)
  --min N          Minimum chunk size in characters (default 100)
  --paragraphs     Group paragraphs first (chunk)
  -r, --recursive  Descend into subdirectories (files)
  --counter NAME   heuristic, words or a tiktoken encoding such as cl100k_base
  --workers N      Concurrent files (files)
  --log-level L    debug, info, warn or error
  --config PATH    Config file (default ~/.textchunk/config.yaml)

Environment:
  MAX_CHUNK_SIZE, MIN_CHUNK_SIZE, OVERLAP_SIZE, TEXTCHUNK_WORKERS,
  TEXTCHUNK_LOG_LEVEL, TEXTCHUNK_TOKEN_COUNTER, TEXTCHUNK_CONFIG
`)
}
