package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/queryscan/queryscan/internal/model"
)

// SimpleWriter outputs a human-readable run summary.
// This format is designed for terminal display after a generation run.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and is easy to pipe to
// files or other tools.
type SimpleWriter struct {
	baseWriter

	// verbose enables the per-module breakdown.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the per-module breakdown in the summary.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the run summary in human-readable format.
func (w *SimpleWriter) Write(report *model.GenerationReport) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString("Query Generation Summary\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&sb, "Collection:        %s\n", report.FullCollectionName())
	fmt.Fprintf(&sb, "Source:            %s\n", report.Source)
	fmt.Fprintf(&sb, "Modules analyzed:  %d\n", report.ModulesAnalyzed())
	fmt.Fprintf(&sb, "Queries generated: %d\n", report.QueriesGenerated())
	fmt.Fprintf(&sb, "Genuine parses:    %d\n", report.GenuineCount())

	// Silent degradation is visible here without failing the run.
	if degraded := report.ModulesAnalyzed() - report.GenuineCount(); degraded > 0 {
		fmt.Fprintf(&sb, "Fallback analyses: %d (weak identifiers)\n", degraded)
	}

	if w.verbose {
		sb.WriteString("\nModules:\n")
		for _, res := range report.Results {
			if res.Analysis == nil {
				continue
			}
			marker := "ok"
			if res.Analysis.Fallback {
				marker = "fallback"
			}
			container := res.Analysis.Container.Name
			if container == "" {
				container = "(root)"
			}
			fmt.Fprintf(&sb, "  %-40s %-8s container=%s identifiers=%d\n",
				res.Analysis.ModuleName, marker, container, len(res.Analysis.Identifiers))
		}
	}

	if report.ErrorMessage != "" {
		fmt.Fprintf(&sb, "\nError: %s\n", report.ErrorMessage)
	}

	return io.WriteString(w.output, sb.String())
}

// Ensure SimpleWriter implements Writer.
var _ Writer = (*SimpleWriter)(nil)
