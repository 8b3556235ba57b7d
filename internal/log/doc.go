// Package log provides logging utilities for queryscan.
//
// CaptureHandler is an slog.Handler that records every log record it
// sees, optionally forwarding to an underlying handler. The analyzer
// takes its trace sink as an injected logger instead of a process-wide
// debug flag, and tests install a CaptureHandler to assert on the
// diagnostics emitted during analysis.
package log
