// Package extract slices file content for embedding: either by numeric line
// bounds (classic mode) or by named marker pairs (group mode). Output is
// always joined with `\n` regardless of the source's original terminator.
package extract

import (
	"strings"

	"github.com/goliatone/go-snippet/internal/directive"
)

// Classic extracts the line range described by the directive. A directive
// without a from-line imports the whole file (from defaults to 1 with an
// implied open range). Out-of-range bounds are clamped rather than rejected;
// the lenient policy is part of the contract and silently yields empty or
// partial output.
func Classic(content string, d *directive.Directive, preserveTrailingNewline bool) string {
	from := 1
	hasDash := d.HasDash
	if d.From != nil {
		from = *d.From
	} else {
		hasDash = true
	}
	return Range(content, from, hasDash, d.To, preserveTrailingNewline)
}

// Range slices content by 1-based inclusive line bounds. Without a dash the
// range collapses to the single line `from`. With a dash and no explicit end,
// the range runs to the end of file, dropping the synthetic empty line a
// trailing newline produces unless preserveTrailingNewline is set.
func Range(content string, from int, hasDash bool, to *int, preserveTrailingNewline bool) string {
	lines := SplitLines(content)

	end := len(lines)
	switch {
	case !hasDash:
		end = from
	case to != nil:
		end = *to
	case !preserveTrailingNewline && len(lines) > 0 && lines[len(lines)-1] == "":
		end = len(lines) - 1
	}

	start := from - 1
	if start < 0 {
		start = 0
	}
	if start > len(lines) {
		start = len(lines)
	}
	if end > len(lines) {
		end = len(lines)
	}
	if end < start {
		end = start
	}

	return strings.Join(lines[start:end], "\n")
}

// SplitLines splits on `\n` and tolerates CRLF sources by trimming a
// trailing `\r` from each line.
func SplitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
