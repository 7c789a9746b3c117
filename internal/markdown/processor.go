// Package markdown hosts the bundled document walk: it locates fenced code
// blocks carrying import annotations in markdown sources, runs the extraction
// pass over them, and splices the results back into the document bytes. The
// package never renders markdown; it only locates and rewrites.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-snippet/internal/embedder"
	"github.com/goliatone/go-snippet/internal/logging"
	"github.com/goliatone/go-snippet/pkg/interfaces"
)

// Config controls how the processor discovers markdown documents.
type Config struct {
	// Pattern limits directory walks to matching files (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Processor implements interfaces.SnippetService over goldmark's document
// tree.
type Processor struct {
	embedder *embedder.Embedder
	parser   parser.Parser
	cfg      Config
	logger   interfaces.Logger
}

var _ interfaces.SnippetService = (*Processor)(nil)

// NewProcessor builds a processor around the supplied embedder. The goldmark
// parser is stateless, so one processor can serve concurrent callers.
func NewProcessor(emb *embedder.Embedder, cfg Config, logger interfaces.Logger) *Processor {
	if strings.TrimSpace(cfg.Pattern) == "" {
		cfg.Pattern = "*.md"
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Processor{
		embedder: emb,
		parser:   goldmark.New().Parser(),
		cfg:      cfg,
		logger:   logger,
	}
}

// ProcessDocument transforms one in-memory document. docDir anchors relative
// directive paths, normally the directory the document lives in.
func (p *Processor) ProcessDocument(ctx context.Context, source []byte, docDir string) ([]byte, error) {
	blocks := p.collectBlocks(source)
	if len(blocks) == 0 {
		return source, nil
	}

	candidates := make([]interfaces.CodeBlock, len(blocks))
	for i, b := range blocks {
		candidates[i] = b
	}

	if err := p.embedder.Process(ctx, docDir, candidates, parseOverrides(source, docDir)); err != nil {
		return nil, err
	}

	return splice(source, blocks), nil
}

// ProcessFile loads, transforms, and returns one markdown file.
func (p *Processor) ProcessFile(ctx context.Context, path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("snippet markdown: resolve %s: %w", path, err)
	}
	source, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("snippet markdown: read %s: %w", path, err)
	}
	return p.ProcessDocument(ctx, source, filepath.Dir(abs))
}

// ProcessDirectory walks dir for markdown documents and transforms each one.
// Results are ordered by path so repeated runs are comparable.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) ([]interfaces.ProcessedDocument, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("snippet markdown: resolve %s: %w", dir, err)
	}

	var results []interfaces.ProcessedDocument

	walkErr := fs.WalkDir(os.DirFS(root), ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !p.cfg.Recursive && path != "." {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !p.matchesPattern(path) {
			return nil
		}

		full := filepath.Join(root, filepath.FromSlash(path))
		source, err := os.ReadFile(full)
		if err != nil {
			return fmt.Errorf("snippet markdown: read %s: %w", full, err)
		}
		output, err := p.ProcessDocument(ctx, source, filepath.Dir(full))
		if err != nil {
			return err
		}
		results = append(results, interfaces.ProcessedDocument{
			Path:    full,
			Output:  output,
			Changed: !bytes.Equal(source, output),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// collectBlocks walks the document tree for fenced code blocks. Every block
// becomes a candidate; the embedder decides which ones carry directives.
func (p *Processor) collectBlocks(source []byte) []*fencedBlock {
	doc := p.parser.Parse(text.NewReader(source))

	var blocks []*fencedBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fcb, ok := n.(*ast.FencedCodeBlock); ok {
			blocks = append(blocks, newFencedBlock(fcb, source))
		}
		return ast.WalkContinue, nil
	})
	return blocks
}

// splice rebuilds the document with each replaced block body substituted in
// place. Blocks appear in document order, so a single forward pass suffices.
func splice(source []byte, blocks []*fencedBlock) []byte {
	var out bytes.Buffer
	last := 0
	for _, b := range blocks {
		if b.replacement == nil {
			continue
		}
		start, stop, ok := b.span()
		if !ok || start < last {
			continue
		}
		out.Write(source[last:start])
		if *b.replacement != "" {
			out.WriteString(*b.replacement)
			out.WriteByte('\n')
		}
		last = stop
	}
	out.Write(source[last:])
	return out.Bytes()
}

func (p *Processor) matchesPattern(path string) bool {
	pattern := filepath.ToSlash(p.cfg.Pattern)
	if strings.Contains(pattern, "**") {
		// Basic support for ** by stripping repeated separators.
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	target := path
	if !strings.Contains(pattern, "/") {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}
