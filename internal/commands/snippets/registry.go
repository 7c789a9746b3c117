package snippetcmd

import (
	"errors"

	"github.com/goliatone/go-snippet/internal/commands"
	"github.com/goliatone/go-snippet/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the snippet command handlers produced by
// RegisterSnippetCommands.
type HandlerSet struct {
	ProcessFile      *ProcessFileHandler
	ProcessDirectory *ProcessDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	fileHandlerOpts      []commands.HandlerOption[ProcessFileCommand]
	directoryHandlerOpts []commands.HandlerOption[ProcessDirectoryCommand]
}

// WithProcessFileOptions forwards options to the ProcessFileHandler
// constructor.
func WithProcessFileOptions(opts ...commands.HandlerOption[ProcessFileCommand]) Option {
	return func(cfg *options) {
		cfg.fileHandlerOpts = append(cfg.fileHandlerOpts, opts...)
	}
}

// WithProcessDirectoryOptions forwards options to the
// ProcessDirectoryHandler constructor.
func WithProcessDirectoryOptions(opts ...commands.HandlerOption[ProcessDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.directoryHandlerOpts = append(cfg.directoryHandlerOpts, opts...)
	}
}

// RegisterSnippetCommands builds the snippet command handlers and registers
// them with the provided registry. The constructed HandlerSet is returned so
// callers can wire additional integrations as needed.
func RegisterSnippetCommands(reg CommandRegistry, service interfaces.SnippetService, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("snippet command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "snippets")

	fileHandler := NewProcessFileHandler(service, logger, cfg.fileHandlerOpts...)
	directoryHandler := NewProcessDirectoryHandler(service, logger, cfg.directoryHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(fileHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(directoryHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		ProcessFile:      fileHandler,
		ProcessDirectory: directoryHandler,
	}, nil
}
