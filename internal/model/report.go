package model

import "time"

// GenerationReport is the unit of work for one generation run. The pipeline
// steps fill it in stage by stage: fetch populates Documents, analyze
// populates Results, and the writers render from it.
//
// Design decision: a single mutable report threaded through the pipeline
// rather than per-step return values, because it keeps step signatures
// uniform and makes partial results available when a step fails.
type GenerationReport struct {
	// Namespace and Collection identify the analyzed collection
	// ("namespace.collection" in the output file's module keys).
	Namespace  string `json:"namespace"`
	Collection string `json:"collection"`

	// Source records where the modules came from (URL or directory).
	Source string `json:"source"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Documents holds the fetched module documents in fetch order.
	// Excluded from JSON due to size.
	Documents []*ModuleDocument `json:"-"`

	// Results holds one entry per fetched module, in fetch order.
	Results []*ModuleResult `json:"results"`

	// PerformedSteps tracks which pipeline steps ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error holds the first critical error, if any. ErrorMessage is its
	// serializable form.
	Error        error  `json:"-"`
	ErrorMessage string `json:"error,omitempty"`
}

// ModuleResult pairs a module's analysis with its synthesized query.
type ModuleResult struct {
	Analysis *ModuleAnalysis `json:"analysis"`
	Query    *Query          `json:"query,omitempty"`
}

// NewGenerationReport creates an empty report for the given collection.
func NewGenerationReport(namespace, collection, source string) *GenerationReport {
	return &GenerationReport{
		Namespace:  namespace,
		Collection: collection,
		Source:     source,
		StartedAt:  time.Now(),
		Results:    make([]*ModuleResult, 0),
	}
}

// FullCollectionName returns "namespace.collection".
func (r *GenerationReport) FullCollectionName() string {
	return r.Namespace + "." + r.Collection
}

// ModulesAnalyzed returns the number of modules that went through analysis.
func (r *GenerationReport) ModulesAnalyzed() int {
	return len(r.Results)
}

// GenuineCount returns the number of modules for which a genuine
// (non-fallback) identifier set was found. Callers compare this against
// ModulesAnalyzed to detect silent degradation without failing the run.
func (r *GenerationReport) GenuineCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Analysis != nil && !res.Analysis.Fallback {
			n++
		}
	}
	return n
}

// QueriesGenerated returns the number of synthesized queries.
func (r *GenerationReport) QueriesGenerated() int {
	n := 0
	for _, res := range r.Results {
		if res.Query != nil {
			n++
		}
	}
	return n
}
