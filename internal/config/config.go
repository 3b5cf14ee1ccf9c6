package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/textchunk-mcp/pkg/types"
)

// Environment variables read by Resolve
const (
	EnvMaxChunkSize = "MAX_CHUNK_SIZE"
	EnvMinChunkSize = "MIN_CHUNK_SIZE"
	EnvOverlapSize  = "OVERLAP_SIZE"
	EnvWorkers      = "TEXTCHUNK_WORKERS"
	EnvLogLevel     = "TEXTCHUNK_LOG_LEVEL"
	EnvTokenCounter = "TEXTCHUNK_TOKEN_COUNTER"
	EnvConfigPath   = "TEXTCHUNK_CONFIG"
)

// Setting names used as keys in Config.Sources
const (
	KeyMaxChunkSize = "max_chunk_size"
	KeyMinChunkSize = "min_chunk_size"
	KeyOverlapSize  = "overlap_size"
	KeyWorkers      = "workers"
	KeyLogLevel     = "log_level"
	KeyTokenCounter = "token_counter"
)

type ValueSource string

const (
	SourceDefault ValueSource = "default"
	SourceConfig  ValueSource = "config"
	SourceEnv     ValueSource = "env"
	SourceCLI     ValueSource = "cli"
)

type ResolvedValue struct {
	Value  string      `json:"value"`
	Source ValueSource `json:"source"`
	From   string      `json:"from,omitempty"`
}

// ResolveOptions carries the config file override and CLI flag values.
// Zero values mean the flag was not given.
type ResolveOptions struct {
	ConfigPath      string
	CLIMaxChunkSize int
	CLIMinChunkSize int
	CLIWorkers      int
	CLILogLevel     string
	CLITokenCounter string
}

// Config is the effective service configuration
type Config struct {
	ConfigPath string `json:"config_path"`

	MaxChunkSize int `json:"max_chunk_size"`
	MinChunkSize int `json:"min_chunk_size"`

	// OverlapSize is accepted for compatibility and never applied. Chunks do not overlap.
	OverlapSize int `json:"overlap_size"`

	Workers      int    `json:"workers"`
	LogLevel     string `json:"log_level"`
	TokenCounter string `json:"token_counter"`

	// Sources records where each setting came from
	Sources map[string]ResolvedValue `json:"sources"`
}

type fileConfig struct {
	Chunking struct {
		MaxChunkSize int    `yaml:"max_chunk_size"`
		MinChunkSize int    `yaml:"min_chunk_size"`
		OverlapSize  int    `yaml:"overlap_size"`
		TokenCounter string `yaml:"token_counter"`
	} `yaml:"chunking"`
	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".textchunk", "config.yaml")
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{Sources: map[string]ResolvedValue{}}
	cfg.setInt(KeyMaxChunkSize, &cfg.MaxChunkSize, types.DefaultMaxChunkSize, SourceDefault, "built-in default")
	cfg.setInt(KeyMinChunkSize, &cfg.MinChunkSize, types.DefaultMinChunkSize, SourceDefault, "built-in default")
	cfg.setInt(KeyOverlapSize, &cfg.OverlapSize, types.DefaultOverlapSize, SourceDefault, "built-in default")
	cfg.setInt(KeyWorkers, &cfg.Workers, runtime.NumCPU(), SourceDefault, "built-in default")
	cfg.setString(KeyLogLevel, &cfg.LogLevel, "info", SourceDefault, "built-in default")
	cfg.setString(KeyTokenCounter, &cfg.TokenCounter, "heuristic", SourceDefault, "built-in default")
	return cfg
}

// Resolve builds the configuration from, in increasing precedence: built-in
// defaults, the YAML config file, environment variables and CLI flags.
// A missing config file is not an error.
func Resolve(opts ResolveOptions) (*Config, error) {
	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path == "" {
		path = DefaultConfigPath()
	}
	path = expandUserPath(path)

	cfg := Default()
	cfg.ConfigPath = path

	fc, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if fc != nil {
		cfg.setInt(KeyMaxChunkSize, &cfg.MaxChunkSize, fc.Chunking.MaxChunkSize, SourceConfig, path)
		cfg.setInt(KeyMinChunkSize, &cfg.MinChunkSize, fc.Chunking.MinChunkSize, SourceConfig, path)
		cfg.setInt(KeyOverlapSize, &cfg.OverlapSize, fc.Chunking.OverlapSize, SourceConfig, path)
		cfg.setInt(KeyWorkers, &cfg.Workers, fc.Workers, SourceConfig, path)
		cfg.setString(KeyLogLevel, &cfg.LogLevel, fc.LogLevel, SourceConfig, path)
		cfg.setString(KeyTokenCounter, &cfg.TokenCounter, fc.Chunking.TokenCounter, SourceConfig, path)
	}

	for _, env := range []struct {
		key  string
		name string
		dst  *int
	}{
		{KeyMaxChunkSize, EnvMaxChunkSize, &cfg.MaxChunkSize},
		{KeyMinChunkSize, EnvMinChunkSize, &cfg.MinChunkSize},
		{KeyOverlapSize, EnvOverlapSize, &cfg.OverlapSize},
		{KeyWorkers, EnvWorkers, &cfg.Workers},
	} {
		if err := cfg.applyIntEnv(env.key, env.dst, env.name); err != nil {
			return nil, err
		}
	}
	cfg.applyStringEnv(KeyLogLevel, &cfg.LogLevel, EnvLogLevel)
	cfg.applyStringEnv(KeyTokenCounter, &cfg.TokenCounter, EnvTokenCounter)

	cfg.setInt(KeyMaxChunkSize, &cfg.MaxChunkSize, opts.CLIMaxChunkSize, SourceCLI, "--max")
	cfg.setInt(KeyMinChunkSize, &cfg.MinChunkSize, opts.CLIMinChunkSize, SourceCLI, "--min")
	cfg.setInt(KeyWorkers, &cfg.Workers, opts.CLIWorkers, SourceCLI, "--workers")
	cfg.setString(KeyLogLevel, &cfg.LogLevel, opts.CLILogLevel, SourceCLI, "--log-level")
	cfg.setString(KeyTokenCounter, &cfg.TokenCounter, opts.CLITokenCounter, SourceCLI, "--counter")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the resolved values for consistency
func (c *Config) Validate() error {
	if err := c.ChunkOptions().Validate(); err != nil {
		return fmt.Errorf("invalid chunk options: %w", err)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// ChunkOptions converts the chunk size settings for the chunker
func (c *Config) ChunkOptions() types.ChunkOptions {
	return types.ChunkOptions{
		MaxChunkSize: c.MaxChunkSize,
		MinChunkSize: c.MinChunkSize,
	}
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}

func (c *Config) setInt(key string, dst *int, v int, source ValueSource, from string) {
	if v <= 0 {
		return
	}
	*dst = v
	c.Sources[key] = ResolvedValue{Value: strconv.Itoa(v), Source: source, From: from}
}

func (c *Config) setString(key string, dst *string, raw string, source ValueSource, from string) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return
	}
	*dst = v
	c.Sources[key] = ResolvedValue{Value: v, Source: source, From: from}
}

func (c *Config) applyIntEnv(key string, dst *int, envKey string) error {
	raw := strings.TrimSpace(os.Getenv(envKey))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", envKey, raw, err)
	}
	c.setInt(key, dst, v, SourceEnv, envKey)
	return nil
}

func (c *Config) applyStringEnv(key string, dst *string, envKey string) {
	c.setString(key, dst, os.Getenv(envKey), SourceEnv, envKey)
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
