// Package sandbox resolves directive paths against a sandbox root and
// enforces containment unless the host explicitly opts out.
package sandbox

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// RootToken is the literal prefix a directive path may use to address the
// configured sandbox root directly.
const RootToken = "<rootDir>"

// ErrOutsideRoot reports a resolved path that escapes the sandbox root while
// outside imports are not permitted.
var ErrOutsideRoot = errors.New("snippet sandbox: resolved path escapes the sandbox root")

// Resolver turns raw directive paths into absolute, sandbox-checked paths.
type Resolver struct {
	root         string
	allowOutside bool
}

// NewResolver builds a resolver for the given sandbox root. The root must
// already be validated as absolute (runtimeconfig does this at setup).
func NewResolver(root string, allowOutside bool) *Resolver {
	return &Resolver{
		root:         filepath.Clean(root),
		allowOutside: allowOutside,
	}
}

// Resolve substitutes the root token, resolves the path to an absolute
// location relative to the document directory, and verifies containment.
// The containment check is skipped entirely when outside imports are
// permitted; that opt-out is deliberate and callers own the consequences.
func (r *Resolver) Resolve(docDir, raw string) (string, error) {
	path := raw
	if strings.HasPrefix(path, RootToken) {
		path = r.root + strings.TrimPrefix(path, RootToken)
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(docDir, path)
	}
	path = filepath.Clean(path)

	if r.allowOutside {
		return path, nil
	}

	rel, err := filepath.Rel(r.root, path)
	if err != nil || escapesRoot(rel) {
		return "", fmt.Errorf("%w: %s resolves outside %s", ErrOutsideRoot, path, r.root)
	}
	return path, nil
}

func escapesRoot(rel string) bool {
	if filepath.IsAbs(rel) {
		return true
	}
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
