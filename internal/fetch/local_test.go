package fetch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeCollection creates a collection tree under a temp dir.
func writeCollection(t *testing.T, modules map[string]string) string {
	t.Helper()

	root := t.TempDir()
	modulesDir := filepath.Join(root, "plugins", "modules")
	if err := os.MkdirAll(modulesDir, 0750); err != nil {
		t.Fatalf("failed to create modules dir: %v", err)
	}
	for name, content := range modules {
		if err := os.WriteFile(filepath.Join(modulesDir, name), []byte(content), 0600); err != nil {
			t.Fatalf("failed to write module %s: %v", name, err)
		}
	}
	return root
}

// TestNewLocalFetcher tests local fetcher construction.
func TestNewLocalFetcher(t *testing.T) {
	t.Parallel()

	t.Run("derives collection name from directory base", func(t *testing.T) {
		t.Parallel()

		root := writeCollection(t, map[string]string{"a.py": "x"})

		f, err := NewLocalFetcher(root, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.CollectionName() != filepath.Base(root) {
			t.Errorf("CollectionName() = %q, expected %q", f.CollectionName(), filepath.Base(root))
		}
	})

	t.Run("rejects trees without plugins/modules", func(t *testing.T) {
		t.Parallel()

		_, err := NewLocalFetcher(t.TempDir(), "")
		if !errors.Is(err, ErrInvalidSource) {
			t.Errorf("expected ErrInvalidSource, got %v", err)
		}
	})
}

// TestLocalFetcherFetch tests reading modules from disk.
func TestLocalFetcherFetch(t *testing.T) {
	t.Parallel()

	t.Run("reads modules in sorted order", func(t *testing.T) {
		t.Parallel()

		root := writeCollection(t, map[string]string{
			"zulu_info.py":  "z",
			"alpha_info.py": "a",
			"__init__.py":   "",
			"notes.txt":     "skip",
		})

		f, err := NewLocalFetcher(root, "test.collection")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		docs, err := f.Fetch(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"alpha_info", "zulu_info"}
		if len(docs) != len(want) {
			t.Fatalf("got %d documents, expected %d", len(docs), len(want))
		}
		for i, name := range want {
			if docs[i].Name != name {
				t.Errorf("document %d: got %q, expected %q", i, docs[i].Name, name)
			}
		}
	})

	t.Run("returns ErrNoModules for empty trees", func(t *testing.T) {
		t.Parallel()

		root := writeCollection(t, map[string]string{"__init__.py": ""})

		f, err := NewLocalFetcher(root, "test.collection")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := f.Fetch(context.Background()); !errors.Is(err, ErrNoModules) {
			t.Errorf("expected ErrNoModules, got %v", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		root := writeCollection(t, map[string]string{"a.py": "x"})

		f, err := NewLocalFetcher(root, "test.collection")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := f.Fetch(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

// TestIsModuleFile tests module file detection.
func TestIsModuleFile(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		want bool
	}{
		{"cluster_info.py", true},
		{"__init__.py", false},
		{"README.md", false},
		{"cluster_info.pyc", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := isModuleFile(tc.name); got != tc.want {
				t.Errorf("isModuleFile(%q) = %v, expected %v", tc.name, got, tc.want)
			}
		})
	}
}
