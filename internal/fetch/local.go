package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/queryscan/queryscan/internal/model"
)

// LocalFetcher reads a collection's modules from a local directory tree
// with the standard plugins/modules layout.
type LocalFetcher struct {
	root       string
	collection string
	logger     *slog.Logger
}

// LocalOption configures a LocalFetcher.
type LocalOption func(*LocalFetcher)

// WithLocalLogger sets the logger for fetch progress.
func WithLocalLogger(logger *slog.Logger) LocalOption {
	return func(f *LocalFetcher) {
		f.logger = logger
	}
}

// NewLocalFetcher creates a fetcher rooted at the given collection
// directory. The collection name, when empty, is derived from the
// directory's base name.
func NewLocalFetcher(root, collection string, opts ...LocalOption) (*LocalFetcher, error) {
	modulesDir := filepath.Join(root, "plugins", "modules")
	info, err := os.Stat(modulesDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: no plugins/modules directory in %s", ErrInvalidSource, root)
	}

	if collection == "" {
		collection = filepath.Base(filepath.Clean(root))
	}

	f := &LocalFetcher{
		root:       root,
		collection: collection,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f, nil
}

// CollectionName returns the collection's namespace.collection name.
func (f *LocalFetcher) CollectionName() string {
	return f.collection
}

// Source returns the collection root directory.
func (f *LocalFetcher) Source() string {
	return f.root
}

// Fetch reads every module file under plugins/modules in sorted name
// order. Sorting keeps repeated runs over the same tree byte-identical
// regardless of filesystem enumeration order.
func (f *LocalFetcher) Fetch(ctx context.Context) ([]*model.ModuleDocument, error) {
	modulesDir := filepath.Join(f.root, "plugins", "modules")

	entries, err := os.ReadDir(modulesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", modulesDir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	docs := make([]*model.ModuleDocument, 0, len(entries))
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if entry.IsDir() || !isModuleFile(entry.Name()) {
			continue
		}

		name := moduleName(entry.Name())
		content, err := os.ReadFile(filepath.Join(modulesDir, entry.Name())) //nolint:gosec // Path under user-provided collection root is intentional
		if err != nil {
			f.logger.Warn("skipping module, read failed",
				"module", name,
				"error", err,
			)
			continue
		}

		f.logger.Debug("read module", "module", name, "bytes", len(content))
		docs = append(docs, &model.ModuleDocument{
			Name:       name,
			SourceText: string(content),
		})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoModules, modulesDir)
	}
	return docs, nil
}

// Ensure LocalFetcher implements Fetcher.
var _ Fetcher = (*LocalFetcher)(nil)
