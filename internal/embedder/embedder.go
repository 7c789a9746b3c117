// Package embedder orchestrates one extraction pass: it parses directives,
// resolves paths, fetches file content through the reader collaborator, and
// writes extracted snippets back into their placeholders.
package embedder

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-snippet/internal/directive"
	"github.com/goliatone/go-snippet/internal/extract"
	"github.com/goliatone/go-snippet/internal/logging"
	"github.com/goliatone/go-snippet/internal/sandbox"
	"github.com/goliatone/go-snippet/pkg/interfaces"
)

// ErrReaderRequired is returned when an embedder is constructed without a
// file reader collaborator.
var ErrReaderRequired = errors.New("snippet embedder: file reader is required")

// Config captures the per-pass behaviour of an embedder.
type Config struct {
	// RootDir is the sandbox root directive paths resolve against.
	RootDir string
	// AllowImportingFromOutside disables the sandbox containment check.
	AllowImportingFromOutside bool
	// Async issues all file reads for a pass concurrently and awaits them as
	// a batch; the default reads one placeholder at a time.
	Async bool
	// PreserveTrailingNewline keeps the synthetic trailing empty line when
	// extracting open-ended ranges.
	PreserveTrailingNewline bool
	// RemoveRedundantIndentations routes results through the normalizer.
	RemoveRedundantIndentations bool
}

// Overrides narrows sandbox behaviour for a single pass, e.g. from document
// frontmatter. Zero values leave the configured behaviour untouched.
type Overrides struct {
	RootDir      string
	AllowOutside *bool
}

// Embedder runs extraction passes over discovered code blocks.
type Embedder struct {
	cfg        Config
	reader     interfaces.FileReader
	normalizer interfaces.Normalizer
	logger     interfaces.Logger
}

// New constructs an embedder. The normalizer may be nil when indentation
// normalization is disabled; the logger defaults to a no-op.
func New(cfg Config, reader interfaces.FileReader, normalizer interfaces.Normalizer, logger interfaces.Logger) (*Embedder, error) {
	if reader == nil {
		return nil, ErrReaderRequired
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Embedder{
		cfg:        cfg,
		reader:     reader,
		normalizer: normalizer,
		logger:     logger,
	}, nil
}

// task carries one placeholder through the pass. Tasks never share state, so
// the concurrent strategy needs no locking.
type task struct {
	block   interfaces.CodeBlock
	dir     *directive.Directive
	path    string
	content string
}

// Process runs one extraction pass over the supplied blocks. Blocks whose
// meta carries no directive are skipped. Parse errors, sandbox violations,
// and read failures are fatal and abort the pass; only the missing-marker
// diagnostic is non-fatal. Each placeholder body is written exactly once, in
// block order, so the result is deterministic under either read strategy.
func (e *Embedder) Process(ctx context.Context, docDir string, blocks []interfaces.CodeBlock, ov *Overrides) error {
	resolver := e.resolverFor(ov)

	logger := logging.WithFields(e.logger, map[string]any{
		"run_id": uuid.NewString(),
	})

	tasks := make([]*task, 0, len(blocks))
	for _, block := range blocks {
		d, err := directive.Parse(block.Meta())
		if err != nil {
			return err
		}
		if d == nil {
			continue
		}
		path, err := resolver.Resolve(docDir, d.Path)
		if err != nil {
			return err
		}
		tasks = append(tasks, &task{block: block, dir: d, path: path})
	}
	if len(tasks) == 0 {
		return nil
	}

	logger.Debug("snippet.embed.pass_start", "blocks", len(tasks), "async", e.cfg.Async)

	if err := e.fetch(ctx, tasks); err != nil {
		return err
	}

	for _, t := range tasks {
		e.apply(t, logger)
	}

	logger.Debug("snippet.embed.pass_done", "blocks", len(tasks))
	return nil
}

func (e *Embedder) resolverFor(ov *Overrides) *sandbox.Resolver {
	root := e.cfg.RootDir
	allow := e.cfg.AllowImportingFromOutside
	if ov != nil {
		if ov.RootDir != "" {
			root = ov.RootDir
		}
		if ov.AllowOutside != nil {
			allow = *ov.AllowOutside
		}
	}
	return sandbox.NewResolver(root, allow)
}

// fetch obtains file content for every task, either sequentially or as a
// concurrent batch. Both strategies feed the same extraction path; only the
// scheduling differs. Under the batch strategy the first failed read fails
// the whole pass.
func (e *Embedder) fetch(ctx context.Context, tasks []*task) error {
	if !e.cfg.Async {
		for _, t := range tasks {
			if err := e.read(ctx, t); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		g.Go(func() error {
			return e.read(ctx, t)
		})
	}
	return g.Wait()
}

func (e *Embedder) read(ctx context.Context, t *task) error {
	data, err := e.reader.ReadFile(ctx, t.path)
	if err != nil {
		return fmt.Errorf("snippet embedder: read %s: %w", t.path, err)
	}
	t.content = string(data)
	return nil
}

// apply extracts the directive's portion of the fetched content and replaces
// the placeholder body.
func (e *Embedder) apply(t *task, logger interfaces.Logger) {
	var result string

	switch t.dir.Mode {
	case directive.ModeGroups:
		var missing []string
		result, missing = extract.Groups(t.content, t.block.Body())
		for _, name := range missing {
			logging.WithExtractionContext(logger, "", t.path, name).
				Warn("snippet.embed.group_markers_missing")
		}
	default:
		result = extract.Classic(t.content, t.dir, e.cfg.PreserveTrailingNewline)
	}

	if e.cfg.RemoveRedundantIndentations && e.normalizer != nil {
		result = e.normalizer.Normalize(result)
	}

	t.block.SetBody(result)
}
