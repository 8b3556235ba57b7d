package report

import (
	"io"
	"strings"

	"github.com/queryscan/queryscan/internal/model"
)

// QueryFileWriter renders the event_query.yml artifact.
//
// The grammar is fixed and consumed by machines, so it is rendered
// directly rather than through a YAML marshaller: per module, a
// "<namespace>.<collection>.<module>:" key, a "query: >-" folded block
// scalar, the query body indented four spaces relative to the query key,
// and a trailing blank line. Modules appear in fetch order, and every
// module yields one block; fallback analyses simply carry weaker
// identifiers.
type QueryFileWriter struct {
	baseWriter
}

// NewQueryFileWriter creates a QueryFileWriter that outputs to the given
// writer.
func NewQueryFileWriter(output io.Writer) *QueryFileWriter {
	return &QueryFileWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write renders every module's query block in order.
func (w *QueryFileWriter) Write(report *model.GenerationReport) (int, error) {
	var sb strings.Builder
	sb.WriteString("---\n")

	for _, res := range report.Results {
		if res.Analysis == nil || res.Query == nil {
			continue
		}

		sb.WriteString(report.FullCollectionName() + "." + res.Analysis.ModuleName + ":\n")
		sb.WriteString("  query: >-\n")
		for _, line := range strings.Split(res.Query.Render(), "\n") {
			sb.WriteString("    " + line + "\n")
		}
		sb.WriteString("\n")
	}

	return io.WriteString(w.output, sb.String())
}

// Ensure QueryFileWriter implements Writer.
var _ Writer = (*QueryFileWriter)(nil)
