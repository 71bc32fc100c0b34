package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrContentDirRequired = errors.New("contentgraph config: content directory is required")
var ErrSourcesRequired = errors.New("contentgraph config: at least one source is required")
var ErrSourcePathRequired = errors.New("contentgraph config: source path is required")
var ErrSourcePathDuplicate = errors.New("contentgraph config: source path is configured twice")
var ErrSourceCategoryUnknown = errors.New("contentgraph config: source category is invalid")
var ErrStorageProviderUnknown = errors.New("contentgraph config: storage provider is invalid")
var ErrStorageDriverUnknown = errors.New("contentgraph config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("contentgraph config: storage dsn is required for the bun provider")

// ErrCacheTTLInvalid rejects an enabled cache without a positive TTL.
var ErrCacheTTLInvalid = errors.New("contentgraph config: cache ttl must be positive when cache is enabled")
var ErrLoggingProviderUnknown = errors.New("contentgraph config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("contentgraph config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("contentgraph config: logging format is invalid")
var ErrMetricsTextfileRequired = errors.New("contentgraph config: metrics textfile path is required when metrics are enabled")

const (
	StorageProviderMemory = "memory"
	StorageProviderBun    = "bun"
)

// Config aggregates everything a build run needs.
type Config struct {
	ContentDir string         `yaml:"content_dir"`
	Sources    []SourceConfig `yaml:"sources"`
	Storage    StorageConfig  `yaml:"storage"`
	Cache      CacheConfig    `yaml:"cache"`
	Logging    LoggingConfig  `yaml:"logging"`
	Output     OutputConfig   `yaml:"output"`
	Metrics    MetricsConfig  `yaml:"metrics"`
}

// SourceConfig binds a directory below ContentDir to a content category.
type SourceConfig struct {
	Path     string `yaml:"path"`
	Category string `yaml:"category"`
}

// StorageConfig selects where registered nodes are kept.
type StorageConfig struct {
	Provider string `yaml:"provider"`
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
}

// CacheConfig toggles the read-through cache on the bun store.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// OutputConfig controls the exported graph document.
type OutputConfig struct {
	Path           string `yaml:"path"`
	FailOnDangling bool   `yaml:"fail_on_dangling"`
}

type MetricsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	TextfilePath string `yaml:"textfile_path"`
}

// DefaultSources mirrors the conventional content layout.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{Path: "challenges", Category: "Challenge"},
		{Path: "lessons", Category: "Lesson"},
		{Path: "guest-tutorials", Category: "GuestTutorial"},
		{Path: "tracks", Category: "Track"},
	}
}

func DefaultConfig() Config {
	return Config{
		ContentDir: "content",
		Sources:    DefaultSources(),
		Storage: StorageConfig{
			Provider: StorageProviderMemory,
			Driver:   "sqlite3",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Output:  OutputConfig{},
		Metrics: MetricsConfig{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if len(cfg.Sources) == 0 {
		return ErrSourcesRequired
	}
	seen := map[string]bool{}
	for _, src := range cfg.Sources {
		path := strings.TrimSpace(src.Path)
		if path == "" {
			return ErrSourcePathRequired
		}
		if seen[path] {
			return fmt.Errorf("%w: %s", ErrSourcePathDuplicate, path)
		}
		seen[path] = true
		if !isSupportedCategory(src.Category) {
			return fmt.Errorf("%w: %s", ErrSourceCategoryUnknown, src.Category)
		}
	}

	switch provider := normalize(cfg.Storage.Provider); provider {
	case "", StorageProviderMemory:
	case StorageProviderBun:
		if driver := normalize(cfg.Storage.Driver); driver != "sqlite3" && driver != "postgres" {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}

	if provider := normalize(cfg.Logging.Provider); provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}

	if cfg.Metrics.Enabled && strings.TrimSpace(cfg.Metrics.TextfilePath) == "" {
		return ErrMetricsTextfileRequired
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedCategory(category string) bool {
	switch category {
	case "Challenge", "Lesson", "GuestTutorial", "Track":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
