// Package readers provides the default FileReader collaborators: a direct
// os-backed reader and an LRU-caching decorator for passes that reference
// the same source file repeatedly.
package readers

import (
	"context"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goliatone/go-snippet/pkg/interfaces"
)

// OS reads files straight from the operating system. Paths arriving here are
// absolute; the sandbox resolver validated them already.
type OS struct{}

// NewOS returns the direct filesystem reader.
func NewOS() *OS {
	return &OS{}
}

var _ interfaces.FileReader = (*OS)(nil)

// ReadFile honours context cancellation before touching the filesystem.
func (r *OS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snippet reader: %w", err)
	}
	return data, nil
}

// Cached decorates a FileReader with a bounded LRU so repeated imports of
// the same source file hit memory instead of disk.
type Cached struct {
	inner interfaces.FileReader
	cache *lru.Cache[string, []byte]
}

// NewCached wraps inner with an LRU of the given size.
func NewCached(inner interfaces.FileReader, size int) (*Cached, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("snippet reader: build cache: %w", err)
	}
	return &Cached{inner: inner, cache: cache}, nil
}

var _ interfaces.FileReader = (*Cached)(nil)

// ReadFile serves from the cache when possible. Returned slices are copies;
// cached content must stay immutable across placeholders.
func (c *Cached) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if data, ok := c.cache.Get(path); ok {
		return append([]byte(nil), data...), nil
	}
	data, err := c.inner.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	c.cache.Add(path, append([]byte(nil), data...))
	return data, nil
}
