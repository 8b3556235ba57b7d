package fetch

import "errors"

// Fetch errors. Unlike documentation errors, a failed fetch aborts the
// whole run: with zero modules there is nothing to analyze.
var (
	// ErrInvalidSource is returned when the source is neither a GitHub
	// URL nor an existing local collection directory.
	ErrInvalidSource = errors.New("invalid collection source")

	// ErrNoModules is returned when the source was reachable but
	// contained no module files.
	ErrNoModules = errors.New("no modules found in collection source")
)
