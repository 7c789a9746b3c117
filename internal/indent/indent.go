// Package indent implements the indentation-normalization collaborator: it
// removes the longest common leading whitespace from extracted text.
package indent

import (
	"strings"

	"github.com/goliatone/go-snippet/pkg/interfaces"
)

// Normalizer strips redundant leading indentation shared by every non-empty
// line. Blank lines are ignored when measuring and emptied in the output.
type Normalizer struct{}

var _ interfaces.Normalizer = Normalizer{}

func (Normalizer) Normalize(content string) string {
	lines := strings.Split(content, "\n")

	prefix := ""
	found := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWhitespace(line)
		if !found {
			prefix = indent
			found = true
			continue
		}
		prefix = commonPrefix(prefix, indent)
		if prefix == "" {
			return content
		}
	}
	if !found || prefix == "" {
		return content
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}

func commonPrefix(a, b string) string {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	for i := 0; i < max; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:max]
}
