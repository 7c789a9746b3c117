package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-snippet/pkg/interfaces"
)

const (
	rootModule     = "snippet"
	embedderModule = "snippet.embedder"
	markdownModule = "snippet.markdown"
)

const (
	fieldDocumentPath = "document_path"
	fieldSourcePath   = "source_path"
	fieldGroupName    = "group"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// EmbedderLogger returns the logger namespace reserved for extraction passes.
func EmbedderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, embedderModule)
}

// MarkdownLogger returns the logger namespace reserved for the markdown
// document processor.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithExtractionContext enriches the provided logger with common extraction
// fields such as the document being processed, the referenced source file,
// and the group name involved. Empty values are ignored.
func WithExtractionContext(logger interfaces.Logger, document, source, group string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(document); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		fields[fieldSourcePath] = trimmed
	}
	if trimmed := strings.TrimSpace(group); trimmed != "" {
		fields[fieldGroupName] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
