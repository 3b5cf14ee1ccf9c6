package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// isolate points the config file at an empty temp dir and clears the environment
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{EnvMaxChunkSize, EnvMinChunkSize, EnvOverlapSize, EnvWorkers, EnvLogLevel, EnvTokenCounter} {
		t.Setenv(k, "")
	}
	t.Setenv(EnvConfigPath, filepath.Join(dir, "missing.yaml"))
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestResolve_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Resolve(ResolveOptions{})
	require.NoError(t, err)

	assert.Equal(t, types.DefaultMaxChunkSize, cfg.MaxChunkSize)
	assert.Equal(t, types.DefaultMinChunkSize, cfg.MinChunkSize)
	assert.Equal(t, types.DefaultOverlapSize, cfg.OverlapSize)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "heuristic", cfg.TokenCounter)
	assert.Equal(t, SourceDefault, cfg.Sources[KeyMaxChunkSize].Source)
	assert.Equal(t, types.DefaultChunkOptions(), cfg.ChunkOptions())
}

func TestResolve_Precedence_ConfigEnvCLI(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `chunking:
  max_chunk_size: 1500
  min_chunk_size: 80
  token_counter: words
workers: 3
log_level: debug
`)

	t.Setenv(EnvMaxChunkSize, "1200")
	t.Setenv(EnvWorkers, "6")

	cfg, err := Resolve(ResolveOptions{ConfigPath: path, CLIWorkers: 2})
	require.NoError(t, err)

	assert.Equal(t, 1200, cfg.MaxChunkSize)
	assert.Equal(t, ResolvedValue{Value: "1200", Source: SourceEnv, From: EnvMaxChunkSize}, cfg.Sources[KeyMaxChunkSize])

	assert.Equal(t, 80, cfg.MinChunkSize)
	assert.Equal(t, SourceConfig, cfg.Sources[KeyMinChunkSize].Source)
	assert.Equal(t, path, cfg.Sources[KeyMinChunkSize].From)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, SourceCLI, cfg.Sources[KeyWorkers].Source)

	assert.Equal(t, "words", cfg.TokenCounter)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, types.DefaultOverlapSize, cfg.OverlapSize)
}

func TestResolve_ConfigPathFromEnv(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "chunking:\n  max_chunk_size: 900\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Resolve(ResolveOptions{})
	require.NoError(t, err)
	assert.Equal(t, path, cfg.ConfigPath)
	assert.Equal(t, 900, cfg.MaxChunkSize)
}

func TestResolve_MissingFileIsNotAnError(t *testing.T) {
	dir := isolate(t)

	cfg, err := Resolve(ResolveOptions{ConfigPath: filepath.Join(dir, "nope.yaml")})
	require.NoError(t, err)
	assert.Equal(t, types.DefaultMaxChunkSize, cfg.MaxChunkSize)
}

func TestResolve_InvalidYAML(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "chunking: [unterminated\n")

	_, err := Resolve(ResolveOptions{ConfigPath: path})
	assert.ErrorContains(t, err, "parsing")
}

func TestResolve_InvalidEnvInteger(t *testing.T) {
	isolate(t)
	t.Setenv(EnvMinChunkSize, "ten")

	_, err := Resolve(ResolveOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvMinChunkSize)
}

func TestResolve_ZeroMeansUnset(t *testing.T) {
	isolate(t)
	t.Setenv(EnvMaxChunkSize, "0")

	cfg, err := Resolve(ResolveOptions{CLIMinChunkSize: -4})
	require.NoError(t, err)
	assert.Equal(t, types.DefaultMaxChunkSize, cfg.MaxChunkSize)
	assert.Equal(t, types.DefaultMinChunkSize, cfg.MinChunkSize)
}

func TestResolve_MinExceedsMax(t *testing.T) {
	isolate(t)

	_, err := Resolve(ResolveOptions{CLIMaxChunkSize: 50, CLIMinChunkSize: 100})
	assert.ErrorIs(t, err, types.ErrMinExceedsMax)
}

func TestResolve_UnknownLogLevel(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLogLevel, "chatty")

	_, err := Resolve(ResolveOptions{})
	assert.ErrorContains(t, err, "unknown log level")
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got, err := (&Config{LogLevel: tt.level}).SlogLevel()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
