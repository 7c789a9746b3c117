package readers

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type countingReader struct {
	mu    sync.Mutex
	files map[string][]byte
	reads int
}

func (r *countingReader) ReadFile(ctx context.Context, path string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	data, ok := r.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

func TestOSReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := NewOS().ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestOSReadFileMissing(t *testing.T) {
	_, err := NewOS().ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestOSReadFileHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewOS().ReadFile(ctx, "/never/read")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCachedServesRepeatsFromMemory(t *testing.T) {
	inner := &countingReader{files: map[string][]byte{
		"/src/a.go": []byte("alpha"),
	}}
	cached, err := NewCached(inner, 8)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}

	for i := 0; i < 3; i++ {
		data, err := cached.ReadFile(context.Background(), "/src/a.go")
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(data) != "alpha" {
			t.Fatalf("unexpected content %q", data)
		}
	}
	if inner.reads != 1 {
		t.Fatalf("expected one backing read, got %d", inner.reads)
	}
}

func TestCachedDoesNotCacheFailures(t *testing.T) {
	inner := &countingReader{files: map[string][]byte{}}
	cached, err := NewCached(inner, 8)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := cached.ReadFile(context.Background(), "/src/missing.go"); err == nil {
			t.Fatalf("expected error")
		}
	}
	if inner.reads != 2 {
		t.Fatalf("expected failures to bypass the cache, got %d reads", inner.reads)
	}
}

func TestCachedReturnsDefensiveCopies(t *testing.T) {
	inner := &countingReader{files: map[string][]byte{
		"/src/a.go": []byte("alpha"),
	}}
	cached, err := NewCached(inner, 8)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}

	first, _ := cached.ReadFile(context.Background(), "/src/a.go")
	first[0] = 'X'

	second, err := cached.ReadFile(context.Background(), "/src/a.go")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(second) != "alpha" {
		t.Fatalf("cached content was mutated: %q", second)
	}
}

func TestCachedEvictsBeyondCapacity(t *testing.T) {
	inner := &countingReader{files: map[string][]byte{
		"/a": []byte("a"),
		"/b": []byte("b"),
	}}
	cached, err := NewCached(inner, 1)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}

	ctx := context.Background()
	if _, err := cached.ReadFile(ctx, "/a"); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if _, err := cached.ReadFile(ctx, "/b"); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if _, err := cached.ReadFile(ctx, "/a"); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if inner.reads != 3 {
		t.Fatalf("expected eviction to force a re-read, got %d reads", inner.reads)
	}
}

func TestNewCachedRejectsNonPositiveSize(t *testing.T) {
	if _, err := NewCached(NewOS(), 0); err == nil {
		t.Fatalf("expected error for zero cache size")
	}
}
