package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/textchunk-mcp/internal/chunker"
	"github.com/dshills/textchunk-mcp/internal/config"
	"github.com/dshills/textchunk-mcp/internal/processor"
	"github.com/dshills/textchunk-mcp/pkg/types"
)

// cliOptions holds the parsed command-line flags
type cliOptions struct {
	resolve    config.ResolveOptions
	paragraphs bool
	recursive  bool
}

// parseFlags accepts both "--flag value" and "--flag=value"
func parseFlags(args []string) (cliOptions, []string, error) {
	var opts cliOptions
	var rest []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			rest = append(rest, arg)
			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")
		next := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("flag %s needs a value", name)
			}
			i++
			return args[i], nil
		}
		nextInt := func() (int, error) {
			v, err := next()
			if err != nil {
				return 0, err
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return 0, fmt.Errorf("flag %s: invalid number %q", name, v)
			}
			return n, nil
		}

		var err error
		switch name {
		case "--max":
			opts.resolve.CLIMaxChunkSize, err = nextInt()
		case "--min":
			opts.resolve.CLIMinChunkSize, err = nextInt()
		case "--workers":
			opts.resolve.CLIWorkers, err = nextInt()
		case "--counter":
			opts.resolve.CLITokenCounter, err = next()
		case "--log-level":
			opts.resolve.CLILogLevel, err = next()
		case "--config":
			opts.resolve.ConfigPath, err = next()
		case "--paragraphs", "-p":
			opts.paragraphs = true
		case "--recursive", "-r":
			opts.recursive = true
		default:
			return opts, nil, fmt.Errorf("unknown flag: %s", arg)
		}
		if err != nil {
			return opts, nil, err
		}
	}

	return opts, rest, nil
}

// readInput reads the single file argument, or stdin when it is absent or "-"
func readInput(rest []string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	switch {
	case len(rest) > 1:
		return "", fmt.Errorf("expected at most one input, got %d", len(rest))
	case len(rest) == 0 || rest[0] == "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(rest[0])
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if !utf8.Valid(data) {
		return "", types.ErrNotText
	}
	return string(data), nil
}

func newChunker(cfg *config.Config, paragraphs bool) (*chunker.Chunker, error) {
	counter, err := chunker.NewTokenCounter(cfg.TokenCounter)
	if err != nil {
		return nil, err
	}
	strategy := types.StrategySentence
	if paragraphs {
		strategy = types.StrategyParagraph
	}
	return chunker.New(
		chunker.WithOptions(cfg.ChunkOptions()),
		chunker.WithStrategy(strategy),
		chunker.WithTokenCounter(counter),
	), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type chunkOutput struct {
	Index  int    `json:"index"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Tokens int    `json:"tokens"`
	Merged bool   `json:"merged,omitempty"`
	Text   string `json:"text"`
}

func runChunk(args []string, stdin io.Reader, stdout io.Writer) error {
	opts, rest, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}

	text, err := readInput(rest, stdin)
	if err != nil {
		return err
	}

	c, err := newChunker(cfg, opts.paragraphs)
	if err != nil {
		return err
	}

	chunks := c.ChunkDocument(text)
	out := make([]chunkOutput, len(chunks))
	contents := make([]string, len(chunks))
	for i, chunk := range chunks {
		out[i] = chunkOutput{
			Index:  chunk.Index,
			Start:  chunk.Start,
			End:    chunk.End,
			Tokens: chunk.TokenCount,
			Merged: chunk.Merged,
			Text:   chunk.Content,
		}
		contents[i] = chunk.Content
	}

	if err := chunker.VerifyCoverage(text, contents); err != nil {
		logger.Warn("chunks do not cover input", "error", err)
	}
	logger.Debug("chunked input", "characters", utf8.RuneCountInString(text), "chunks", len(chunks))

	return writeJSON(stdout, map[string]interface{}{
		"original_length": utf8.RuneCountInString(text),
		"strategy":        string(c.Strategy()),
		"chunk_count":     len(chunks),
		"chunks":          out,
	})
}

func runFiles(args []string, stdout io.Writer) error {
	opts, rest, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("usage: textchunk files [--recursive] <path>")
	}
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}

	c, err := newChunker(cfg, opts.paragraphs)
	if err != nil {
		return err
	}

	result, err := processor.New(c, logger).ProcessPath(context.Background(), rest[0], &processor.Config{
		Workers:   cfg.Workers,
		Recursive: opts.recursive,
	})
	if err != nil {
		return err
	}

	type fileOutput struct {
		Path     string `json:"path"`
		Chunks   int    `json:"chunks"`
		Tokens   int    `json:"tokens"`
		Lossless bool   `json:"lossless"`
	}
	files := make([]fileOutput, len(result.Documents))
	for i, doc := range result.Documents {
		files[i] = fileOutput{Path: doc.Path, Chunks: len(doc.Chunks), Tokens: doc.TokenCount, Lossless: doc.Lossless}
	}

	return writeJSON(stdout, map[string]interface{}{
		"statistics": result.Statistics,
		"files":      files,
	})
}

func runTokens(args []string, stdin io.Reader, stdout io.Writer) error {
	opts, rest, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, _, err := setup(opts)
	if err != nil {
		return err
	}

	text, err := readInput(rest, stdin)
	if err != nil {
		return err
	}

	counter, err := chunker.NewTokenCounter(cfg.TokenCounter)
	if err != nil {
		return err
	}

	return writeJSON(stdout, map[string]interface{}{
		"tokens":  counter.Count(text),
		"counter": cfg.TokenCounter,
		"words":   len(strings.Fields(text)),
	})
}
