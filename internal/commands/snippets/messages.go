// Package snippetcmd exposes the snippet engine's operations as go-command
// messages so host applications can dispatch them through their existing
// command bus.
package snippetcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	processFileMessageType      = "snippet.process_file"
	processDirectoryMessageType = "snippet.process_directory"
)

// ProcessFileCommand transforms a single markdown file, embedding referenced
// source snippets into its code blocks.
type ProcessFileCommand struct {
	// Path selects the markdown file to transform.
	Path string `json:"path"`
	// Write persists the transformed document back to Path instead of
	// discarding the output after logging.
	Write bool `json:"write,omitempty"`
}

// Type implements command.Message.
func (ProcessFileCommand) Type() string { return processFileMessageType }

// Validate ensures the target path is present before handlers execute.
func (cmd ProcessFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("snippet.process_file.path_required", "path is required")
			}
			return nil
		})),
	)
}

// ProcessDirectoryCommand walks a directory for markdown documents and
// transforms each one.
type ProcessDirectoryCommand struct {
	// Directory selects the filesystem path to walk for markdown files.
	Directory string `json:"directory"`
	// Write persists every changed document back to its source file.
	Write bool `json:"write,omitempty"`
}

// Type implements command.Message.
func (ProcessDirectoryCommand) Type() string { return processDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ProcessDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("snippet.process_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
