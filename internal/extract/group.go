package extract

import "strings"

// markerToken introduces a named group boundary inside a source line.
const markerToken = "group"

// markerIndex maps group names to the ordered line positions of their markers
// in one source file. Consumption advances a per-name cursor over the
// immutable position list, so repeated references to the same name walk
// successive marker pairs in file order without mutating the index data.
type markerIndex struct {
	positions map[string][]int
	cursors   map[string]int
}

func indexMarkers(lines []string) *markerIndex {
	idx := &markerIndex{
		positions: map[string][]int{},
		cursors:   map[string]int{},
	}
	for i, line := range lines {
		if name, ok := MarkerName(line); ok {
			idx.positions[name] = append(idx.positions[name], i)
		}
	}
	return idx
}

// nextPair consumes the next two positions recorded for name. It reports
// false when fewer than two remain; the cursor does not move in that case.
func (m *markerIndex) nextPair(name string) (int, int, bool) {
	cursor := m.cursors[name]
	positions := m.positions[name]
	if cursor+2 > len(positions) {
		return 0, 0, false
	}
	m.cursors[name] = cursor + 2
	return positions[cursor], positions[cursor+1], true
}

// Groups replays the placeholder template against markers found in content.
// Template lines without a parseable marker name pass through verbatim; each
// group reference emits the file lines strictly between the next unconsumed
// marker pair for that name. References that find fewer than two remaining
// markers emit nothing and are reported in the returned missing slice so the
// caller can surface a non-fatal diagnostic.
func Groups(content, template string) (string, []string) {
	fileLines := SplitLines(content)
	idx := indexMarkers(fileLines)

	var out []string
	var missing []string

	for _, line := range SplitLines(template) {
		name, ok := MarkerName(line)
		if !ok {
			out = append(out, line)
			continue
		}
		lo, hi, ok := idx.nextPair(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		out = append(out, fileLines[lo+1:hi]...)
	}

	return strings.Join(out, "\n"), missing
}

// MarkerName scans a line for the marker token followed by whitespace and a
// bare word, returning the group name it introduces. The scan is positional
// rather than regex-driven so a failed match costs nothing and a token
// embedded mid-line (e.g. inside a comment) still counts.
func MarkerName(line string) (string, bool) {
	for search := 0; search < len(line); {
		at := strings.Index(line[search:], markerToken)
		if at < 0 {
			return "", false
		}
		pos := search + at + len(markerToken)

		ws := pos
		for ws < len(line) && (line[ws] == ' ' || line[ws] == '\t') {
			ws++
		}
		if ws > pos {
			start := ws
			for ws < len(line) && isWordChar(line[ws]) {
				ws++
			}
			if ws > start {
				return line[start:ws], true
			}
		}
		search = pos
	}
	return "", false
}

func isWordChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	}
	return false
}
