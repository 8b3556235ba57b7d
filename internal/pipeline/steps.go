package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/queryscan/queryscan/internal/analyze"
	"github.com/queryscan/queryscan/internal/classify"
	"github.com/queryscan/queryscan/internal/fetch"
	"github.com/queryscan/queryscan/internal/model"
	"github.com/queryscan/queryscan/internal/synth"
)

// defaultConcurrency is the analysis worker limit when none is configured.
const defaultConcurrency = 8

// FetchStep obtains the collection's module documents through a Fetcher.
// This is the only step that performs I/O against the collection source;
// its failure is critical because nothing downstream can run without
// documents.
type FetchStep struct {
	fetcher fetch.Fetcher

	// only restricts the run to the named modules when non-empty.
	only map[string]bool

	logger *slog.Logger
}

// FetchStepOption configures a FetchStep.
type FetchStepOption func(*FetchStep)

// WithOnlyModules restricts analysis to the named modules.
func WithOnlyModules(names []string) FetchStepOption {
	return func(s *FetchStep) {
		if len(names) == 0 {
			return
		}
		s.only = make(map[string]bool, len(names))
		for _, n := range names {
			s.only[n] = true
		}
	}
}

// WithFetchLogger sets the step's logger.
func WithFetchLogger(logger *slog.Logger) FetchStepOption {
	return func(s *FetchStep) {
		s.logger = logger
	}
}

// NewFetchStep creates a FetchStep using the given fetcher.
func NewFetchStep(fetcher fetch.Fetcher, opts ...FetchStepOption) *FetchStep {
	s := &FetchStep{fetcher: fetcher}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do fetches all module documents, applies the module filter, and stores
// them on the report in fetch order.
func (s *FetchStep) Do(ctx context.Context, report *model.GenerationReport) error {
	docs, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if s.only != nil {
		filtered := make([]*model.ModuleDocument, 0, len(docs))
		for _, doc := range docs {
			if s.only[doc.Name] {
				filtered = append(filtered, doc)
			}
		}
		docs = filtered
	}

	if len(docs) == 0 {
		return fmt.Errorf("fetch failed: %w", fetch.ErrNoModules)
	}

	s.logger.Info("modules fetched",
		"collection", report.FullCollectionName(),
		"modules", len(docs),
	)
	report.Documents = docs
	return nil
}

// AnalyzeStep runs the per-module documentation analysis.
//
// Modules are analyzed concurrently: each analysis is a pure function of
// its document, so workers share nothing and results land in a
// pre-allocated slice by index, preserving fetch order.
type AnalyzeStep struct {
	analyzer    *analyze.Analyzer
	concurrency int
	logger      *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithConcurrency sets the maximum number of concurrent analyses.
func WithConcurrency(n int) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithAnalyzeLogger sets the step's logger.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// NewAnalyzeStep creates an AnalyzeStep around the given analyzer.
func NewAnalyzeStep(analyzer *analyze.Analyzer, opts ...AnalyzeStepOption) *AnalyzeStep {
	s := &AnalyzeStep{
		analyzer:    analyzer,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do analyzes every fetched module and stores the results in fetch order.
func (s *AnalyzeStep) Do(ctx context.Context, report *model.GenerationReport) error {
	results := make([]*model.ModuleResult, len(report.Documents))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, doc := range report.Documents {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			results[i] = &model.ModuleResult{
				Analysis: s.analyzer.Analyze(doc),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}

	report.Results = results
	s.logger.Info("modules analyzed",
		"collection", report.FullCollectionName(),
		"modules", len(results),
	)
	return nil
}

// SynthesizeStep builds one query per analyzed module from its analysis
// and the module name's device classification.
type SynthesizeStep struct {
	// rules is the device-classification table, custom rows first.
	rules  []classify.Rule
	logger *slog.Logger
}

// SynthesizeStepOption configures a SynthesizeStep.
type SynthesizeStepOption func(*SynthesizeStep)

// WithCustomDeviceRules prepends custom classification rows to the default
// table. Custom rows win because classification is first-match.
func WithCustomDeviceRules(rules []classify.Rule) SynthesizeStepOption {
	return func(s *SynthesizeStep) {
		combined := make([]classify.Rule, 0, len(rules)+len(classify.DefaultRules))
		combined = append(combined, rules...)
		combined = append(combined, classify.DefaultRules...)
		s.rules = combined
	}
}

// WithSynthesizeLogger sets the step's logger.
func WithSynthesizeLogger(logger *slog.Logger) SynthesizeStepOption {
	return func(s *SynthesizeStep) {
		s.logger = logger
	}
}

// NewSynthesizeStep creates a SynthesizeStep.
func NewSynthesizeStep(opts ...SynthesizeStepOption) *SynthesizeStep {
	s := &SynthesizeStep{
		rules: classify.DefaultRules,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Name returns the step name.
func (s *SynthesizeStep) Name() string {
	return "synthesize"
}

// Do synthesizes a query for every analysis result.
func (s *SynthesizeStep) Do(ctx context.Context, report *model.GenerationReport) error {
	for _, res := range report.Results {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if res == nil || res.Analysis == nil {
			continue
		}

		device := classify.DeviceWithRules(res.Analysis.ModuleName, s.rules)
		res.Query = synth.Build(res.Analysis, device)
	}

	s.logger.Info("queries synthesized",
		"collection", report.FullCollectionName(),
		"queries", report.QueriesGenerated(),
	)
	return nil
}

// DefaultPipeline assembles the standard fetch, analyze, and synthesize
// steps for one generation run.
func DefaultPipeline(fetchStep *FetchStep, analyzeStep *AnalyzeStep, synthStep *SynthesizeStep, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(fetchStep, analyzeStep, synthStep)
	return p
}
