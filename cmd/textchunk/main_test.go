package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textchunk-mcp/internal/config"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvMaxChunkSize, config.EnvMinChunkSize, config.EnvOverlapSize,
		config.EnvWorkers, config.EnvLogLevel, config.EnvTokenCounter,
	} {
		t.Setenv(k, "")
	}
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "none.yaml"))
}

func TestParseFlags(t *testing.T) {
	opts, rest, err := parseFlags([]string{"--max", "500", "--min=20", "-p", "input.txt", "--counter", "words", "-r"})
	require.NoError(t, err)

	assert.Equal(t, 500, opts.resolve.CLIMaxChunkSize)
	assert.Equal(t, 20, opts.resolve.CLIMinChunkSize)
	assert.Equal(t, "words", opts.resolve.CLITokenCounter)
	assert.True(t, opts.paragraphs)
	assert.True(t, opts.recursive)
	assert.Equal(t, []string{"input.txt"}, rest)
}

func TestParseFlags_Errors(t *testing.T) {
	_, _, err := parseFlags([]string{"--max"})
	assert.ErrorContains(t, err, "needs a value")

	_, _, err = parseFlags([]string{"--max", "big"})
	assert.ErrorContains(t, err, "invalid number")

	_, _, err = parseFlags([]string{"--frobnicate"})
	assert.ErrorContains(t, err, "unknown flag")
}

func TestParseFlags_StdinMarker(t *testing.T) {
	_, rest, err := parseFlags([]string{"-"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-"}, rest)
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o644))

	got, err := readInput([]string{path}, strings.NewReader("unused"))
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	got, err = readInput(nil, strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	_, err = readInput([]string{"a", "b"}, nil)
	assert.Error(t, err)

	_, err = readInput(nil, bytes.NewReader([]byte{0xff}))
	assert.Error(t, err)
}

func TestRunChunk(t *testing.T) {
	isolateConfig(t)
	text := "This is the first sentence. This is the second sentence. This is the third sentence."

	var out bytes.Buffer
	err := runChunk([]string{"--max", "60", "--min", "10", "-"}, strings.NewReader(text), &out)
	require.NoError(t, err)

	var got struct {
		ChunkCount int           `json:"chunk_count"`
		Strategy   string        `json:"strategy"`
		Chunks     []chunkOutput `json:"chunks"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	assert.Equal(t, 2, got.ChunkCount)
	assert.Equal(t, "sentence", got.Strategy)
	require.Len(t, got.Chunks, 2)
	assert.Equal(t, "This is the third sentence.", got.Chunks[1].Text)
	assert.Equal(t, 57, got.Chunks[1].Start)
}

func TestRunChunk_Paragraphs(t *testing.T) {
	isolateConfig(t)

	var out bytes.Buffer
	err := runChunk([]string{"--paragraphs"}, strings.NewReader("One.\n\nTwo."), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"strategy": "paragraph"`)
	assert.Contains(t, out.String(), `One.\n\nTwo.`)
}

func TestRunTokens(t *testing.T) {
	isolateConfig(t)

	var out bytes.Buffer
	err := runTokens(nil, strings.NewReader("one two three four five six seven eight nine ten"), &out)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, float64(13), got["tokens"])
	assert.Equal(t, "heuristic", got["counter"])
}

func TestRunFiles(t *testing.T) {
	isolateConfig(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("Alpha."), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.md"), []byte("Beta."), 0o644))

	var out bytes.Buffer
	require.NoError(t, runFiles([]string{"-r", root}, &out))

	var got struct {
		Statistics struct {
			FilesProcessed int `json:"files_processed"`
		} `json:"statistics"`
		Files []struct {
			Path string `json:"path"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 2, got.Statistics.FilesProcessed)
	require.Len(t, got.Files, 2)
	assert.Equal(t, "a.txt", got.Files[0].Path)
}

func TestRunFiles_Usage(t *testing.T) {
	isolateConfig(t)
	assert.Error(t, runFiles(nil, &bytes.Buffer{}))
}

func TestPrintUsage(t *testing.T) {
	var out bytes.Buffer
	printUsage(&out)
	for _, cmd := range []string{"serve", "chunk", "files", "tokens", "version"} {
		assert.Contains(t, out.String(), cmd)
	}
}
