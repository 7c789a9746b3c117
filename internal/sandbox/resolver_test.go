package sandbox

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveRelativeToDocumentDir(t *testing.T) {
	r := NewResolver("/sandbox/docs", false)

	got, err := r.Resolve("/sandbox/docs/guide", "./examples/main.go")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/sandbox/docs/guide/examples/main.go" {
		t.Fatalf("unexpected resolution %q", got)
	}
}

func TestResolveRootToken(t *testing.T) {
	r := NewResolver("/sandbox/docs", false)

	got, err := r.Resolve("/sandbox/docs/deep/nested", "<rootDir>/shared/util.go")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/sandbox/docs/shared/util.go" {
		t.Fatalf("unexpected resolution %q", got)
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	r := NewResolver("/sandbox/docs", false)

	_, err := r.Resolve("/sandbox/docs", "../secret/key.pem")
	if !errors.Is(err, ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot, got %v", err)
	}
	if err != nil {
		msg := err.Error()
		for _, want := range []string{"/sandbox/secret/key.pem", "/sandbox/docs"} {
			if !strings.Contains(msg, want) {
				t.Fatalf("expected error to name %q, got %q", want, msg)
			}
		}
	}
}

func TestResolveRejectsDotDotViaJoin(t *testing.T) {
	r := NewResolver("/sandbox", false)

	_, err := r.Resolve("/sandbox/docs", "../../etc/passwd")
	if !errors.Is(err, ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot, got %v", err)
	}
}

func TestResolveAllowsOutsideWhenPermitted(t *testing.T) {
	r := NewResolver("/sandbox/docs", true)

	got, err := r.Resolve("/sandbox/docs", "../secret/key.pem")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/sandbox/secret/key.pem" {
		t.Fatalf("unexpected resolution %q", got)
	}
}

func TestResolveAcceptsPathsInsideRoot(t *testing.T) {
	r := NewResolver("/sandbox", false)

	got, err := r.Resolve("/sandbox/docs", "sub/../other/file.go")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/sandbox/docs/other/file.go" {
		t.Fatalf("unexpected resolution %q", got)
	}
}
