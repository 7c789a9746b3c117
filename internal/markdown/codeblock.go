package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-snippet/pkg/interfaces"
)

// fencedBlock adapts a goldmark fenced code block to the CodeBlock contract.
// It records the replacement body instead of mutating the AST; the processor
// splices replacements into the source bytes afterwards.
type fencedBlock struct {
	node        *ast.FencedCodeBlock
	source      []byte
	replacement *string
}

var _ interfaces.CodeBlock = (*fencedBlock)(nil)

func newFencedBlock(node *ast.FencedCodeBlock, source []byte) *fencedBlock {
	return &fencedBlock{node: node, source: source}
}

// Meta returns the fence info remainder after the language word, which is
// where the import annotation lives.
func (b *fencedBlock) Meta() string {
	if b.node.Info == nil {
		return ""
	}
	info := string(b.node.Info.Segment.Value(b.source))
	lang := string(b.node.Language(b.source))
	return strings.TrimSpace(strings.TrimPrefix(info, lang))
}

// Body concatenates the block's line segments, dropping the final newline so
// the template matches what authors wrote between the fences.
func (b *fencedBlock) Body() string {
	lines := b.node.Lines()
	var builder strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		builder.Write(seg.Value(b.source))
	}
	return strings.TrimSuffix(builder.String(), "\n")
}

func (b *fencedBlock) SetBody(content string) {
	b.replacement = &content
}

// span returns the byte range in source occupied by the block body. For an
// empty block it degenerates to the insertion point right after the opening
// fence line.
func (b *fencedBlock) span() (int, int, bool) {
	lines := b.node.Lines()
	if lines.Len() > 0 {
		return lines.At(0).Start, lines.At(lines.Len() - 1).Stop, true
	}
	if b.node.Info == nil {
		return 0, 0, false
	}
	pos := b.node.Info.Segment.Stop
	for pos < len(b.source) && b.source[pos] != '\n' {
		pos++
	}
	if pos < len(b.source) {
		pos++
	}
	return pos, pos, true
}
