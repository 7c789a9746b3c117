package interfaces

import "context"

// CodeBlock is a candidate placeholder discovered by a host document walk.
// Implementations adapt whatever node type the host tree exposes (goldmark
// fenced code blocks in the bundled markdown processor) to the extraction
// engine.
type CodeBlock interface {
	// Meta returns the annotation string attached to the block, i.e. the
	// fence info remainder after the language word.
	Meta() string
	// Body returns the block's current content. In group mode this doubles
	// as the extraction template.
	Body() string
	// SetBody replaces the block content with the extracted snippet.
	SetBody(content string)
}

// FileReader obtains the full text of a referenced source file. Paths are
// absolute by the time they reach a reader; the sandbox resolver has already
// validated them.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// Normalizer rewrites extracted text before it is written back into a
// placeholder, e.g. stripping redundant leading indentation.
type Normalizer interface {
	Normalize(content string) string
}

// ProcessedDocument pairs a document path with its transformed output.
type ProcessedDocument struct {
	Path    string
	Output  []byte
	Changed bool
}

// SnippetService processes markdown documents, embedding referenced source
// snippets into their code blocks.
type SnippetService interface {
	// ProcessDocument transforms a single in-memory document. docDir anchors
	// relative directive paths.
	ProcessDocument(ctx context.Context, source []byte, docDir string) ([]byte, error)
	// ProcessFile loads, transforms, and returns one markdown file.
	ProcessFile(ctx context.Context, path string) ([]byte, error)
	// ProcessDirectory walks dir for markdown documents and transforms each.
	ProcessDirectory(ctx context.Context, dir string) ([]ProcessedDocument, error)
}
