// Package directive parses the compact file-import annotation attached to
// documentation code blocks:
//
//	file=<path>[#L<from>[-][L<to>]]
//
// Spaces inside the path are escaped with a backslash. A separate `groups`
// token in the annotation switches extraction to marker-driven group mode.
package directive

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// KeyPrefix marks the token carrying the import target.
	KeyPrefix = "file="
	// GroupsToken selects marker-driven extraction when present in the
	// annotation string.
	GroupsToken = "groups"
)

// ErrMalformed reports an annotation that carries the key prefix but does not
// match the directive grammar.
var ErrMalformed = errors.New("snippet directive: malformed annotation")

// Mode selects the extraction strategy for a directive.
type Mode int

const (
	// ModeClassic extracts by numeric line bounds.
	ModeClassic Mode = iota
	// ModeGroups extracts by named marker pairs, replaying the placeholder's
	// existing body as a template.
	ModeGroups
)

// Directive is the parsed representation of one import annotation. Line
// fields are unused when Mode is ModeGroups.
type Directive struct {
	Path    string
	From    *int
	To      *int
	HasDash bool
	Mode    Mode
}

// Parse scans the annotation string for a directive token. It returns
// (nil, nil) when no token carries the key prefix, meaning the block is not a
// placeholder and must be skipped without error. A token that carries the
// prefix but fails the grammar is a fatal parse error naming the raw token.
func Parse(meta string) (*Directive, error) {
	token, ok := findDirectiveToken(meta)
	if !ok {
		return nil, nil
	}

	d, err := parseToken(strings.TrimPrefix(token, KeyPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformed, token, err)
	}

	if strings.Contains(meta, GroupsToken) {
		d.Mode = ModeGroups
	}
	return d, nil
}

// findDirectiveToken returns the first whitespace-delimited token beginning
// with the key prefix. Backslash-escaped spaces do not end a token, so paths
// containing spaces survive tokenisation intact.
func findDirectiveToken(meta string) (string, bool) {
	var token strings.Builder
	flush := func() (string, bool) {
		t := token.String()
		token.Reset()
		return t, strings.HasPrefix(t, KeyPrefix)
	}

	escaped := false
	for _, r := range meta {
		switch {
		case escaped:
			token.WriteByte('\\')
			token.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ' ' || r == '\t':
			if t, ok := flush(); ok {
				return t, true
			}
		default:
			token.WriteRune(r)
		}
	}
	if escaped {
		token.WriteByte('\\')
	}
	if t, ok := flush(); ok {
		return t, true
	}
	return "", false
}

// parseToken consumes the remainder of a directive token: a path, optionally
// followed by `#` and a line-range fragment. Each failure names the grammar
// position that rejected the input.
func parseToken(rest string) (*Directive, error) {
	path, fragment := splitFragment(rest)
	if path == "" {
		return nil, errors.New("missing path")
	}

	d := &Directive{Path: unescape(path)}
	if fragment == "" {
		return d, nil
	}

	s := &scanner{input: fragment}
	if s.accept('L') {
		from, err := s.number("from line")
		if err != nil {
			return nil, err
		}
		d.From = &from
	}
	if s.accept('-') {
		d.HasDash = true
	}
	if s.accept('L') {
		to, err := s.number("to line")
		if err != nil {
			return nil, err
		}
		d.To = &to
	}
	if !s.done() {
		return nil, fmt.Errorf("unexpected %q in line range", s.remainder())
	}
	return d, nil
}

// splitFragment divides a token into path and range fragment at the first
// unescaped `#`. The path keeps its escape sequences for later unescaping.
func splitFragment(token string) (string, string) {
	escaped := false
	for i := 0; i < len(token); i++ {
		switch {
		case escaped:
			escaped = false
		case token[i] == '\\':
			escaped = true
		case token[i] == '#':
			return token[:i], token[i+1:]
		}
	}
	return token, ""
}

func unescape(path string) string {
	return strings.ReplaceAll(path, `\ `, " ")
}

// scanner is a minimal cursor over the range fragment.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) accept(c byte) bool {
	if s.pos < len(s.input) && s.input[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) number(what string) (int, error) {
	start := s.pos
	n := 0
	for s.pos < len(s.input) && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
		n = n*10 + int(s.input[s.pos]-'0')
		s.pos++
	}
	if s.pos == start {
		return 0, fmt.Errorf("expected digits after L for %s", what)
	}
	return n, nil
}

func (s *scanner) done() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) remainder() string {
	return s.input[s.pos:]
}
