package snippetcmd

import (
	"context"
	"fmt"
	"os"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-snippet/internal/commands"
	"github.com/goliatone/go-snippet/internal/logging"
	"github.com/goliatone/go-snippet/pkg/interfaces"
)

const (
	processFileOperation      = "snippet.process_file"
	processDirectoryOperation = "snippet.process_directory"
)

var (
	_ command.Commander[ProcessFileCommand]      = (*ProcessFileHandler)(nil)
	_ command.Commander[ProcessDirectoryCommand] = (*ProcessDirectoryHandler)(nil)
)

// ProcessFileHandler runs single-document transforms via the shared command
// handler foundation.
type ProcessFileHandler struct {
	inner *commands.Handler[ProcessFileCommand]
}

// NewProcessFileHandler creates a handler bound to the supplied service.
func NewProcessFileHandler(service interfaces.SnippetService, logger interfaces.Logger, opts ...commands.HandlerOption[ProcessFileCommand]) *ProcessFileHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ProcessFileCommand) error {
		output, err := service.ProcessFile(ctx, msg.Path)
		if err != nil {
			return err
		}
		if msg.Write {
			if err := os.WriteFile(msg.Path, output, 0o644); err != nil {
				return fmt.Errorf("snippet command: write %s: %w", msg.Path, err)
			}
		}
		logging.WithFields(baseLogger, map[string]any{
			"path":    msg.Path,
			"bytes":   len(output),
			"written": msg.Write,
		}).Info("snippet.command.process_file.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ProcessFileCommand]{
		commands.WithLogger[ProcessFileCommand](baseLogger),
		commands.WithOperation[ProcessFileCommand](processFileOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ProcessFileHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute implements command.Commander.
func (h *ProcessFileHandler) Execute(ctx context.Context, msg ProcessFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ProcessDirectoryHandler runs directory transforms via the shared command
// handler foundation.
type ProcessDirectoryHandler struct {
	inner *commands.Handler[ProcessDirectoryCommand]
}

// NewProcessDirectoryHandler creates a handler bound to the supplied service.
func NewProcessDirectoryHandler(service interfaces.SnippetService, logger interfaces.Logger, opts ...commands.HandlerOption[ProcessDirectoryCommand]) *ProcessDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ProcessDirectoryCommand) error {
		results, err := service.ProcessDirectory(ctx, msg.Directory)
		if err != nil {
			return err
		}

		changed := 0
		for _, result := range results {
			if !result.Changed {
				continue
			}
			changed++
			if msg.Write {
				if err := os.WriteFile(result.Path, result.Output, 0o644); err != nil {
					return fmt.Errorf("snippet command: write %s: %w", result.Path, err)
				}
			}
		}

		logging.WithFields(baseLogger, map[string]any{
			"directory":      msg.Directory,
			"document_count": len(results),
			"changed_count":  changed,
			"written":        msg.Write,
		}).Info("snippet.command.process_directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ProcessDirectoryCommand]{
		commands.WithLogger[ProcessDirectoryCommand](baseLogger),
		commands.WithOperation[ProcessDirectoryCommand](processDirectoryOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ProcessDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute implements command.Commander.
func (h *ProcessDirectoryHandler) Execute(ctx context.Context, msg ProcessDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
