package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoSource is returned when no collection source is specified.
	ErrNoSource = errors.New("no collection source specified: provide a GitHub URL or a local directory")

	// ErrNoOutputPath is returned when the output path is empty.
	ErrNoOutputPath = errors.New("no output path: provide a file path for the generated query file")

	// ErrInvalidConcurrency is returned when the analysis concurrency is
	// not positive. Zero workers would mean no analysis.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidTimeout is returned when the fetch timeout is not
	// positive. A zero timeout would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrConflictingSummaryFormats is returned when both --json and
	// --markdown are specified. Only one summary format can be used at
	// a time.
	ErrConflictingSummaryFormats = errors.New("conflicting summary formats: --json and --markdown cannot be used together")
)
