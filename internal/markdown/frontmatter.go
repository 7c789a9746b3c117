package markdown

import (
	"bytes"
	"path/filepath"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-snippet/internal/embedder"
)

// documentMeta models the frontmatter keys the processor honours. Documents
// can narrow or relocate their own sandbox without touching host config.
type documentMeta struct {
	Snippets struct {
		Root         string `yaml:"root"`
		AllowOutside *bool  `yaml:"allow_outside"`
	} `yaml:"snippets"`
}

// parseOverrides extracts per-document sandbox overrides from frontmatter.
// A document without frontmatter, or with unreadable frontmatter, simply
// gets no overrides; the pass proceeds with the configured defaults.
func parseOverrides(source []byte, docDir string) *embedder.Overrides {
	var meta documentMeta
	if _, err := frontmatter.Parse(bytes.NewReader(source), &meta); err != nil {
		return nil
	}

	root := meta.Snippets.Root
	allow := meta.Snippets.AllowOutside
	if root == "" && allow == nil {
		return nil
	}

	if root != "" && !filepath.IsAbs(root) {
		root = filepath.Join(docDir, root)
	}

	return &embedder.Overrides{
		RootDir:      root,
		AllowOutside: allow,
	}
}
