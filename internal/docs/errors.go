package docs

import "errors"

// Documentation processing errors.
//
// Design decision: sentinel errors rather than error types because callers
// only ever branch with errors.Is; none of these carry dynamic state. All
// three route the affected module to the fallback analysis path and are
// never surfaced to the end user as failures.
var (
	// ErrFragmentNotFound is returned when no RETURN documentation block
	// could be located under any supported quoting convention.
	ErrFragmentNotFound = errors.New("documentation fragment not found")

	// ErrParse is wrapped around YAML syntax errors in the extracted
	// fragment. Use errors.Is(err, ErrParse) to detect it.
	ErrParse = errors.New("documentation fragment is not valid YAML")

	// ErrEmptySchema is returned when the fragment parses but its root
	// is not mapping-shaped, so there is no schema to analyze.
	ErrEmptySchema = errors.New("documentation fragment has no mapping-shaped schema")
)
