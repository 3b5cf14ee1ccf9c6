package processor

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/textchunk-mcp/internal/chunker"
	"github.com/dshills/textchunk-mcp/pkg/types"
)

// DefaultMaxFileBytes is the largest file ProcessPath will read
const DefaultMaxFileBytes = 10 << 20

// DefaultExtensions are the file extensions treated as text
var DefaultExtensions = []string{".txt", ".md", ".text"}

// Processor chunks batches of texts and text files concurrently
type Processor struct {
	chunker *chunker.Chunker
	logger  *slog.Logger
}

// Config contains configuration for a processing run
type Config struct {
	Workers      int                // Number of concurrent workers (default: runtime.NumCPU())
	Options      types.ChunkOptions // Overrides the chunker's sizes when set
	Recursive    bool               // Descend into subdirectories (ProcessPath only)
	Extensions   []string           // File extensions to process (default: DefaultExtensions)
	MaxFileBytes int64              // Larger files fail (default: DefaultMaxFileBytes)
}

// Statistics contains statistics about a processing run
type Statistics struct {
	RunID           string        `json:"run_id"`
	FilesProcessed  int           `json:"files_processed"`
	FilesSkipped    int           `json:"files_skipped"`
	FilesFailed     int           `json:"files_failed"`
	ChunksCreated   int           `json:"chunks_created"`
	TokensEstimated int           `json:"tokens_estimated"`
	Duration        time.Duration `json:"duration"`
	ErrorMessages   []string      `json:"error_messages,omitempty"`
}

// Result holds the chunked documents of a run.
// ProcessTexts keeps input order; ProcessPath orders by path and omits failed files.
type Result struct {
	Documents  []*types.Document
	Statistics *Statistics
}

// New creates a new Processor. A nil chunker uses chunker defaults and a nil
// logger uses slog.Default().
func New(c *chunker.Chunker, logger *slog.Logger) *Processor {
	if c == nil {
		c = chunker.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		chunker: c,
		logger:  logger,
	}
}

// Chunker returns the base chunker
func (p *Processor) Chunker() *chunker.Chunker {
	return p.chunker
}

// ProcessTexts chunks in-memory texts concurrently. Empty texts count as
// skipped and yield a document without chunks.
func (p *Processor) ProcessTexts(ctx context.Context, texts []string, config *Config) (*Result, error) {
	config = withDefaults(config)
	c := p.chunkerFor(config)
	startTime := time.Now()
	stats := newStatistics()

	log := p.logger.With("run_id", stats.RunID)
	log.Debug("processing texts", "count", len(texts), "workers", config.Workers)

	docs := make([]*types.Document, len(texts))
	var counters runCounters

	err := runPool(ctx, len(texts), config.Workers, func(ctx context.Context, i int) error {
		doc := chunkDocument(c, texts[i], "")
		docs[i] = doc
		counters.record(doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process texts: %w", err)
	}

	counters.apply(stats)
	stats.Duration = time.Since(startTime)
	log.Debug("texts processed", "chunks", stats.ChunksCreated, "duration", stats.Duration)

	return &Result{Documents: docs, Statistics: stats}, nil
}

// ProcessPath chunks every text file under root. root may also name a single
// file, which is processed whatever its extension. Per-file failures are
// recorded in the statistics and do not stop the run; cancellation does.
func (p *Processor) ProcessPath(ctx context.Context, root string, config *Config) (*Result, error) {
	config = withDefaults(config)
	c := p.chunkerFor(config)
	startTime := time.Now()
	stats := newStatistics()

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrPathNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}

	var files []string
	base := root
	if info.IsDir() {
		files, err = discoverFiles(root, config)
		if err != nil {
			return nil, fmt.Errorf("failed to discover files: %w", err)
		}
	} else {
		files = []string{root}
		base = filepath.Dir(root)
	}

	log := p.logger.With("run_id", stats.RunID, "root", root)
	log.Info("processing files", "files", len(files), "workers", config.Workers, "recursive", config.Recursive)

	docs := make([]*types.Document, len(files))
	var (
		counters runCounters
		failed   atomic.Int32
		mu       sync.Mutex // Protects stats.ErrorMessages
	)

	err = runPool(ctx, len(files), config.Workers, func(ctx context.Context, i int) error {
		doc, err := processFile(c, base, files[i], config.MaxFileBytes)
		if err != nil {
			failed.Add(1)
			mu.Lock()
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", files[i], err))
			mu.Unlock()
			log.Warn("file failed", "path", files[i], "error", err)
			// Continue with other files
			return nil
		}
		if !doc.Lossless {
			log.Warn("chunks do not cover file content", "path", doc.Path)
		}
		docs[i] = doc
		counters.record(doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process files: %w", err)
	}

	counters.apply(stats)
	stats.FilesFailed = int(failed.Load())
	stats.Duration = time.Since(startTime)
	slices.Sort(stats.ErrorMessages)

	log.Info("processing complete",
		"processed", stats.FilesProcessed,
		"skipped", stats.FilesSkipped,
		"failed", stats.FilesFailed,
		"chunks", stats.ChunksCreated,
		"duration", stats.Duration)

	return &Result{
		Documents:  slices.DeleteFunc(docs, func(d *types.Document) bool { return d == nil }),
		Statistics: stats,
	}, nil
}

// chunkerFor applies per-run size overrides to the base chunker
func (p *Processor) chunkerFor(config *Config) *chunker.Chunker {
	var opts []chunker.Option
	if config.Options.MaxChunkSize > 0 {
		opts = append(opts, chunker.WithMaxChunkSize(config.Options.MaxChunkSize))
	}
	if config.Options.MinChunkSize > 0 {
		opts = append(opts, chunker.WithMinChunkSize(config.Options.MinChunkSize))
	}
	if len(opts) == 0 {
		return p.chunker
	}
	return p.chunker.With(opts...)
}

func withDefaults(config *Config) *Config {
	out := Config{}
	if config != nil {
		out = *config
	}
	if out.Workers <= 0 {
		out.Workers = runtime.NumCPU()
	}
	if len(out.Extensions) == 0 {
		out.Extensions = DefaultExtensions
	}
	if out.MaxFileBytes <= 0 {
		out.MaxFileBytes = DefaultMaxFileBytes
	}
	return &out
}

func newStatistics() *Statistics {
	return &Statistics{
		RunID:         uuid.NewString(),
		ErrorMessages: make([]string, 0),
	}
}

// runPool calls fn for each index in [0, n) on at most workers goroutines.
// The first error returned by fn cancels the rest.
func runPool(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	semaphore := make(chan struct{}, workers)
	g, gctx := errgroup.WithContext(ctx)

dispatch:
	for i := 0; i < n; i++ {
		select {
		case <-gctx.Done():
			break dispatch
		case semaphore <- struct{}{}:
			// Acquire semaphore
		}

		g.Go(func() error {
			defer func() { <-semaphore }()
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// runCounters tracks per-document totals across workers
type runCounters struct {
	processed atomic.Int32
	skipped   atomic.Int32
	chunks    atomic.Int32
	tokens    atomic.Int64
}

func (r *runCounters) record(doc *types.Document) {
	if len(doc.Chunks) == 0 {
		r.skipped.Add(1)
		return
	}
	r.processed.Add(1)
	r.chunks.Add(int32(len(doc.Chunks)))
	r.tokens.Add(int64(doc.TokenCount))
}

func (r *runCounters) apply(stats *Statistics) {
	stats.FilesProcessed = int(r.processed.Load())
	stats.FilesSkipped = int(r.skipped.Load())
	stats.ChunksCreated = int(r.chunks.Load())
	stats.TokensEstimated = int(r.tokens.Load())
}

// chunkDocument chunks text and checks the chunks still cover it
func chunkDocument(c *chunker.Chunker, text, path string) *types.Document {
	doc := &types.Document{
		Path:        path,
		ContentHash: sha256.Sum256([]byte(text)),
		SizeBytes:   int64(len(text)),
		Chunks:      c.ChunkDocument(text),
	}
	for _, chunk := range doc.Chunks {
		doc.TokenCount += chunk.TokenCount
	}
	doc.Lossless = chunker.VerifyCoverage(text, doc.ChunkTexts()) == nil
	return doc
}

// processFile reads and chunks a single file
func processFile(c *chunker.Chunker, root, filePath string, maxBytes int64) (*types.Document, error) {
	relPath, err := filepath.Rel(root, filePath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", types.ErrFileTooLarge, info.Size())
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, types.ErrNotText
	}

	return chunkDocument(c, string(content), relPath), nil
}

// discoverFiles finds all text files under root
func discoverFiles(root string, config *Config) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			// Skip hidden directories
			if strings.HasPrefix(d.Name(), ".") || !config.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") || !d.Type().IsRegular() {
			return nil
		}
		if !hasExtension(path, config.Extensions) {
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
