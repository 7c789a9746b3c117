// Package runtimeconfig holds the runtime options for the snippet module.
// Fields intentionally use simple types so host applications can extend them
// later.
package runtimeconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrRootDirRequired indicates the sandbox root was left empty.
var ErrRootDirRequired = errors.New("snippet config: root directory is required")

// ErrRootDirNotAbsolute enforces the absolute-root contract before any
// placeholder is processed.
var ErrRootDirNotAbsolute = errors.New("snippet config: root directory must be an absolute path")

var ErrReaderCacheSizeInvalid = errors.New("snippet config: reader cache size must be zero or positive")
var ErrLoggingProviderUnknown = errors.New("snippet config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("snippet config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("snippet config: logging format is invalid")

// Config aggregates extraction behaviour and adapter bindings for the module.
type Config struct {
	// RootDir is the sandbox root; imports outside it fail unless
	// AllowImportingFromOutside is set.
	RootDir string
	// AllowImportingFromOutside disables the sandbox containment check.
	AllowImportingFromOutside bool
	// Async selects the concurrent-batch read strategy for a pass.
	Async bool
	// PreserveTrailingNewline keeps the synthetic empty line a trailing
	// newline produces when extracting open-ended ranges.
	PreserveTrailingNewline bool
	// RemoveRedundantIndentations routes extracted text through the
	// indentation normalizer before write-back.
	RemoveRedundantIndentations bool
	// Markdown configures document discovery for the bundled processor.
	Markdown MarkdownConfig
	// ReaderCacheSize bounds the LRU in front of the file reader; zero
	// disables caching.
	ReaderCacheSize int
	// Logging selects and configures the logger provider.
	Logging LoggingConfig
}

// MarkdownConfig controls how the markdown processor discovers documents.
type MarkdownConfig struct {
	// Pattern limits directory walks to matching files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the baseline configuration hosts usually start from.
// RootDir has no sensible default and must be supplied.
func DefaultConfig() Config {
	return Config{
		Markdown: MarkdownConfig{
			Pattern:   "*.md",
			Recursive: true,
		},
		ReaderCacheSize: 64,
		Logging: LoggingConfig{
			Provider: "noop",
			Level:    "info",
		},
	}
}

// Validate checks cross-field consistency. It runs once at setup; a failure
// here is fatal before any placeholder is processed.
func (cfg Config) Validate() error {
	root := strings.TrimSpace(cfg.RootDir)
	if root == "" {
		return ErrRootDirRequired
	}
	if !filepath.IsAbs(root) {
		return fmt.Errorf("%w: %s", ErrRootDirNotAbsolute, cfg.RootDir)
	}
	if cfg.ReaderCacheSize < 0 {
		return fmt.Errorf("%w: %d", ErrReaderCacheSizeInvalid, cfg.ReaderCacheSize)
	}
	if provider := normalizeProvider(cfg.Logging.Provider); provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if normalizeProvider(cfg.Logging.Provider) == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "noop", "console", "gologger":
		return true
	}
	return false
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	}
	return false
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case "json", "console", "pretty":
		return true
	}
	return false
}
