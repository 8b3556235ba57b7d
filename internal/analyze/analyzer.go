package analyze

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/queryscan/queryscan/internal/docs"
	"github.com/queryscan/queryscan/internal/model"
)

// instanceContainerKey is the top-level key that triggers the VM-module
// fallback when no identifier was found through the rules.
const instanceContainerKey = "instance"

// instanceFallbackIdentifiers is the fixed identifier triple emitted for
// modules whose documentation has an "instance" container but no
// rule-discoverable identifiers.
var instanceFallbackIdentifiers = []model.Identifier{
	{Path: "moid", Name: "moid"},
	{Path: "instance_uuid", Name: "instance_uuid"},
	{Path: "hw_product_uuid", Name: "hw_product_uuid"},
}

// Analyzer produces a ModuleAnalysis for one module document. It is
// stateless across calls, so one Analyzer can serve concurrent per-module
// analysis without synchronization.
//
// Design decision: diagnostics go to an injected slog.Logger rather than a
// process-wide env-toggled debug flag. Tests install a capturing handler
// and assert on the emitted records.
type Analyzer struct {
	classifier *Classifier
	logger     *slog.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLogger sets the trace sink for analysis diagnostics.
func WithLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithClassifier replaces the default classifier, e.g. to install a custom
// sample-key profile or extra deny terms.
func WithClassifier(classifier *Classifier) AnalyzerOption {
	return func(a *Analyzer) {
		a.classifier = classifier
	}
}

// NewAnalyzer creates an Analyzer with default rules and options applied.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		classifier: NewClassifier(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Analyze runs the full per-module analysis: extract the documentation
// fragment, parse it into a schema tree, classify identifiers, and resolve
// the container.
//
// Analyze never fails. A missing fragment, malformed YAML, or non-mapping
// schema routes the module to the fallback analysis so one broken module
// never blocks the rest; callers detect degradation through the Fallback
// flag, not through errors.
func (a *Analyzer) Analyze(doc *model.ModuleDocument) *model.ModuleAnalysis {
	fragment, err := docs.Extract(doc.SourceText)
	if err != nil {
		a.logger.Debug("no documentation fragment", "module", doc.Name)
		return fallbackAnalysis(doc.Name)
	}

	nodes, err := docs.Parse(fragment)
	if err != nil {
		switch {
		case errors.Is(err, docs.ErrEmptySchema):
			a.logger.Debug("documentation has no schema", "module", doc.Name)
		default:
			a.logger.Debug("documentation parse failed", "module", doc.Name, "error", err)
		}
		return fallbackAnalysis(doc.Name)
	}

	ids := dedupeByName(a.classifier.Collect(nodes))
	a.logger.Debug("identifiers collected",
		"module", doc.Name,
		"count", len(ids),
	)

	if len(ids) == 0 {
		return a.analyzeWithoutIdentifiers(doc.Name, nodes)
	}

	return &model.ModuleAnalysis{
		ModuleName:  doc.Name,
		Identifiers: ids,
		Container:   ResolveContainer(nodes, ids),
		Fallback:    false,
	}
}

// analyzeWithoutIdentifiers applies the zero-identifier policy: modules
// with an "instance" container get the fixed VM identifier triple; all
// others degrade to the generic "id" identifier.
func (a *Analyzer) analyzeWithoutIdentifiers(name string, nodes []*model.Node) *model.ModuleAnalysis {
	for _, n := range nodes {
		if strings.EqualFold(n.Key, instanceContainerKey) {
			a.logger.Debug("using instance identifier triple", "module", name)
			ids := make([]model.Identifier, len(instanceFallbackIdentifiers))
			copy(ids, instanceFallbackIdentifiers)
			return &model.ModuleAnalysis{
				ModuleName:  name,
				Identifiers: ids,
				Container: model.ContainerDescriptor{
					Name:        instanceContainerKey,
					Cardinality: model.CardinalityDict,
				},
				Fallback: false,
			}
		}
	}

	a.logger.Debug("no identifiers found, using fallback", "module", name)
	return &model.ModuleAnalysis{
		ModuleName:  name,
		Identifiers: []model.Identifier{{Path: "id", Name: "id"}},
		Container:   ResolveContainer(nodes, nil),
		Fallback:    true,
	}
}

// fallbackAnalysis is the degraded result for modules whose documentation
// could not be located or parsed.
func fallbackAnalysis(name string) *model.ModuleAnalysis {
	return &model.ModuleAnalysis{
		ModuleName:  name,
		Identifiers: []model.Identifier{{Path: "id", Name: "id"}},
		Container:   model.ContainerDescriptor{Cardinality: model.CardinalityDict},
		Fallback:    true,
	}
}
