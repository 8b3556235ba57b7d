package fetch

import (
	"context"
	"strings"

	"github.com/queryscan/queryscan/internal/model"
)

// moduleFileSuffix is the extension of module source files.
const moduleFileSuffix = ".py"

// Fetcher supplies the ordered sequence of module documents for one
// collection. Implementations must return documents in a stable order so
// repeated runs over identical input produce identical output files.
type Fetcher interface {
	// Fetch returns all module documents. It returns ErrNoModules when
	// the source holds no module files; that error aborts the run.
	Fetch(ctx context.Context) ([]*model.ModuleDocument, error)

	// CollectionName returns the collection's "namespace.collection"
	// name, either user-provided or derived from the source.
	CollectionName() string

	// Source returns a human-readable description of where the modules
	// come from, for logging and run history.
	Source() string
}

// isModuleFile reports whether a file name is an analyzable module source.
// Package markers are not modules.
func isModuleFile(name string) bool {
	return strings.HasSuffix(name, moduleFileSuffix) && name != "__init__"+moduleFileSuffix
}

// moduleName strips the source suffix from a module file name.
func moduleName(fileName string) string {
	return strings.TrimSuffix(fileName, moduleFileSuffix)
}
