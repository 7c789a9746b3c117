// Package snippet embeds external source-file content into documentation
// code blocks. Authors annotate a fenced code block with a directive naming a
// source file and optionally a line range or marker groups; the engine
// resolves the file against a sandbox root, extracts the requested portion,
// and substitutes it for the block's content.
package snippet

import (
	"context"
	"fmt"
	"strings"

	snippetcmd "github.com/goliatone/go-snippet/internal/commands/snippets"
	"github.com/goliatone/go-snippet/internal/embedder"
	"github.com/goliatone/go-snippet/internal/indent"
	"github.com/goliatone/go-snippet/internal/logging"
	"github.com/goliatone/go-snippet/internal/logging/console"
	"github.com/goliatone/go-snippet/internal/logging/gologger"
	"github.com/goliatone/go-snippet/internal/markdown"
	"github.com/goliatone/go-snippet/pkg/interfaces"
	"github.com/goliatone/go-snippet/pkg/readers"
)

// Command surface aliases, so hosts can reference the message and registry
// types without reaching into internal packages.
type (
	ProcessFileCommand      = snippetcmd.ProcessFileCommand
	ProcessDirectoryCommand = snippetcmd.ProcessDirectoryCommand
	CommandRegistry         = snippetcmd.CommandRegistry
	CommandHandlerSet       = snippetcmd.HandlerSet
)

// Service is the assembled snippet engine: document processing on top of the
// extraction pass, wired from Config.
type Service struct {
	cfg       Config
	provider  interfaces.LoggerProvider
	processor *markdown.Processor
}

var _ interfaces.SnippetService = (*Service)(nil)

// Option overrides a default collaborator during assembly.
type Option func(*assembly)

type assembly struct {
	reader     interfaces.FileReader
	normalizer interfaces.Normalizer
	provider   interfaces.LoggerProvider
}

// WithFileReader replaces the default os-backed (and optionally LRU-cached)
// file reader.
func WithFileReader(reader interfaces.FileReader) Option {
	return func(a *assembly) { a.reader = reader }
}

// WithNormalizer replaces the default indentation normalizer.
func WithNormalizer(normalizer interfaces.Normalizer) Option {
	return func(a *assembly) { a.normalizer = normalizer }
}

// WithLoggerProvider replaces the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(a *assembly) { a.provider = provider }
}

// New validates the configuration and assembles a Service. Configuration
// failures (a relative sandbox root, for instance) are fatal here, before any
// document is touched.
func New(cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	asm := assembly{}
	for _, opt := range opts {
		if opt != nil {
			opt(&asm)
		}
	}

	provider := asm.provider
	if provider == nil {
		built, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	reader := asm.reader
	if reader == nil {
		reader = interfaces.FileReader(readers.NewOS())
		if cfg.ReaderCacheSize > 0 {
			cached, err := readers.NewCached(reader, cfg.ReaderCacheSize)
			if err != nil {
				return nil, err
			}
			reader = cached
		}
	}

	normalizer := asm.normalizer
	if normalizer == nil {
		normalizer = indent.Normalizer{}
	}

	emb, err := embedder.New(embedder.Config{
		RootDir:                     cfg.RootDir,
		AllowImportingFromOutside:   cfg.AllowImportingFromOutside,
		Async:                       cfg.Async,
		PreserveTrailingNewline:     cfg.PreserveTrailingNewline,
		RemoveRedundantIndentations: cfg.RemoveRedundantIndentations,
	}, reader, normalizer, logging.EmbedderLogger(provider))
	if err != nil {
		return nil, err
	}

	processor := markdown.NewProcessor(emb, markdown.Config{
		Pattern:   cfg.Markdown.Pattern,
		Recursive: cfg.Markdown.Recursive,
	}, logging.MarkdownLogger(provider))

	return &Service{
		cfg:       cfg,
		provider:  provider,
		processor: processor,
	}, nil
}

// ProcessDocument transforms a single in-memory document; docDir anchors
// relative directive paths.
func (s *Service) ProcessDocument(ctx context.Context, source []byte, docDir string) ([]byte, error) {
	return s.processor.ProcessDocument(ctx, source, docDir)
}

// ProcessFile loads, transforms, and returns one markdown file.
func (s *Service) ProcessFile(ctx context.Context, path string) ([]byte, error) {
	return s.processor.ProcessFile(ctx, path)
}

// ProcessDirectory walks dir for markdown documents and transforms each.
func (s *Service) ProcessDirectory(ctx context.Context, dir string) ([]interfaces.ProcessedDocument, error) {
	return s.processor.ProcessDirectory(ctx, dir)
}

// RegisterCommands wires the service's operations into a host command
// registry and returns the constructed handlers.
func (s *Service) RegisterCommands(reg CommandRegistry, opts ...snippetcmd.Option) (*CommandHandlerSet, error) {
	return snippetcmd.RegisterSnippetCommands(reg, s, s.provider, opts...)
}

func buildLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "noop":
		return nil, nil
	case "console":
		level := consoleLevel(cfg.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		// Validate() rejects unknown providers; this is unreachable through New.
		return nil, fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "", "info":
		return console.LevelInfo
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}
