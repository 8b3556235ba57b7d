package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/queryscan/queryscan/internal/model"
)

// MarkdownWriter outputs the run summary in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables and GitHub-flavored output.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(report *model.GenerationReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Query Generation Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Collection", "`" + report.FullCollectionName() + "`"},
			{"Source", report.Source},
			{"Run Date", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Modules Analyzed", strconv.Itoa(report.ModulesAnalyzed())},
			{"Queries Generated", strconv.Itoa(report.QueriesGenerated())},
			{"Genuine Parses", strconv.Itoa(report.GenuineCount())},
		},
	})
	md.PlainText("")

	w.writeModules(md, report)

	md.PlainText("")
	md.PlainText("Generated by queryscan.")

	return len(md.String()), md.Build()
}

// writeModules writes the per-module breakdown table.
func (w *MarkdownWriter) writeModules(md *markdown.Markdown, report *model.GenerationReport) {
	md.H2("Modules")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		if res.Analysis == nil {
			continue
		}

		container := res.Analysis.Container.Name
		if container == "" {
			container = "(root)"
		}

		canonical := ""
		device := ""
		bucket := ""
		if res.Query != nil {
			canonical = "`" + res.Query.CanonicalName + "`"
			device = string(res.Query.Facts.DeviceType)
			bucket = string(res.Query.Facts.InfraBucket)
		}

		status := "genuine"
		if res.Analysis.Fallback {
			status = "fallback"
		}

		rows = append(rows, []string{
			"`" + res.Analysis.ModuleName + "`",
			canonical,
			container + " (" + string(res.Analysis.Container.Cardinality) + ")",
			device,
			bucket,
			status,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Module", "Canonical Identifier", "Container", "Device Type", "Infra Bucket", "Status"},
		Rows:   rows,
	})
}

// Ensure MarkdownWriter implements Writer.
var _ Writer = (*MarkdownWriter)(nil)
