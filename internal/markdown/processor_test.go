package markdown

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-snippet/internal/embedder"
	"github.com/goliatone/go-snippet/pkg/readers"
)

func newTestProcessor(t *testing.T, cfg embedder.Config, mdCfg Config) *Processor {
	t.Helper()
	emb, err := embedder.New(cfg, readers.NewOS(), nil, nil)
	if err != nil {
		t.Fatalf("embedder.New: %v", err)
	}
	if mdCfg.Pattern == "" {
		mdCfg = Config{Pattern: "*.md", Recursive: true}
	}
	return NewProcessor(emb, mdCfg, nil)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestProcessDocumentSplicesClassicImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src.go"), "alpha\nbeta\ngamma\n")

	p := newTestProcessor(t, embedder.Config{RootDir: dir}, Config{})

	source := []byte("# Title\n\n```go file=./src.go#L1-L2\nplaceholder\n```\n\ntrailing text\n")
	out, err := p.ProcessDocument(context.Background(), source, dir)
	if err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	want := "# Title\n\n```go file=./src.go#L1-L2\nalpha\nbeta\n```\n\ntrailing text\n"
	if string(out) != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out, want)
	}
}

func TestProcessDocumentLeavesPlainBlocksAlone(t *testing.T) {
	dir := t.TempDir()
	p := newTestProcessor(t, embedder.Config{RootDir: dir}, Config{})

	source := []byte("```go\nfmt.Println(\"hi\")\n```\n")
	out, err := p.ProcessDocument(context.Background(), source, dir)
	if err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if !bytes.Equal(out, source) {
		t.Fatalf("expected document unchanged, got %q", out)
	}
}

func TestProcessDocumentFillsEmptyBlock(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src.go"), "only line\n")

	p := newTestProcessor(t, embedder.Config{RootDir: dir}, Config{})

	source := []byte("```go file=./src.go#L1\n```\n")
	out, err := p.ProcessDocument(context.Background(), source, dir)
	if err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if string(out) != "```go file=./src.go#L1\nonly line\n```\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestProcessDocumentRemovesBodyOnEmptyResult(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src.go"), "one\n")

	p := newTestProcessor(t, embedder.Config{RootDir: dir}, Config{})

	source := []byte("```go file=./src.go#L42\nstale body\n```\n")
	out, err := p.ProcessDocument(context.Background(), source, dir)
	if err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if string(out) != "```go file=./src.go#L42\n```\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestProcessDocumentGroups(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src.py"), strings.Join([]string{
		"# group setup",
		"import os",
		"# group setup",
		"rest of file",
	}, "\n"))

	p := newTestProcessor(t, embedder.Config{RootDir: dir}, Config{})

	source := []byte("```python file=./src.py groups\nintro\n<!-- group setup -->\noutro\n```\n")
	out, err := p.ProcessDocument(context.Background(), source, dir)
	if err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if string(out) != "```python file=./src.py groups\nintro\nimport os\noutro\n```\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestProcessDocumentFrontmatterOverride(t *testing.T) {
	docs := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "snippet.txt"), "allowed content\n")

	p := newTestProcessor(t, embedder.Config{RootDir: docs}, Config{})

	source := []byte(strings.Join([]string{
		"---",
		"snippets:",
		"  allow_outside: true",
		"---",
		"",
		"```text file=" + filepath.Join(outside, "snippet.txt") + "#L1",
		"```",
		"",
	}, "\n"))
	out, err := p.ProcessDocument(context.Background(), source, docs)
	if err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if !bytes.Contains(out, []byte("allowed content")) {
		t.Fatalf("expected override to admit the outside file, got %q", out)
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src.go"), "first\nsecond\n")
	writeFile(t, filepath.Join(dir, "doc.md"), "```go file=./src.go#L2\n```\n")

	p := newTestProcessor(t, embedder.Config{RootDir: dir}, Config{})

	out, err := p.ProcessFile(context.Background(), filepath.Join(dir, "doc.md"))
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if string(out) != "```go file=./src.go#L2\nsecond\n```\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src.go"), "payload\n")
	writeFile(t, filepath.Join(dir, "a.md"), "```go file=./src.go#L1\n```\n")
	writeFile(t, filepath.Join(dir, "b.md"), "no directives here\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not markdown\n")
	writeFile(t, filepath.Join(dir, "sub", "c.md"), "```go file=../src.go#L1\n```\n")

	p := newTestProcessor(t, embedder.Config{RootDir: dir}, Config{Pattern: "*.md", Recursive: true})

	results, err := p.ProcessDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ProcessDirectory: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Path > results[i].Path {
			t.Fatalf("results not sorted: %q before %q", results[i-1].Path, results[i].Path)
		}
	}

	byName := map[string]bool{}
	for _, r := range results {
		byName[filepath.Base(r.Path)] = r.Changed
	}
	if !byName["a.md"] || !byName["c.md"] {
		t.Fatalf("expected directive documents to change, got %v", byName)
	}
	if byName["b.md"] {
		t.Fatalf("expected document without directives to be unchanged")
	}
}

func TestProcessDirectoryNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.md"), "top level\n")
	writeFile(t, filepath.Join(dir, "sub", "nested.md"), "nested\n")

	p := newTestProcessor(t, embedder.Config{RootDir: dir}, Config{Pattern: "*.md", Recursive: false})

	results, err := p.ProcessDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ProcessDirectory: %v", err)
	}
	if len(results) != 1 || filepath.Base(results[0].Path) != "top.md" {
		t.Fatalf("expected only the top-level document, got %#v", results)
	}
}

func TestMatchesPattern(t *testing.T) {
	p := newTestProcessor(t, embedder.Config{RootDir: t.TempDir()}, Config{Pattern: "**/*.md", Recursive: true})

	for path, want := range map[string]bool{
		"guide.md":        true,
		"sub/deep/doc.md": true,
		"readme.txt":      false,
	} {
		if got := p.matchesPattern(path); got != want {
			t.Fatalf("matchesPattern(%q) = %v, want %v", path, got, want)
		}
	}
}
