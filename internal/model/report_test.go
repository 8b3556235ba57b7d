package model

import "testing"

// TestNewGenerationReport tests report construction.
func TestNewGenerationReport(t *testing.T) {
	t.Parallel()

	r := NewGenerationReport("vmware", "vmware", "https://github.com/ansible-collections/vmware.vmware")

	if r.FullCollectionName() != "vmware.vmware" {
		t.Errorf("FullCollectionName() = %q", r.FullCollectionName())
	}
	if r.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
	if r.ModulesAnalyzed() != 0 {
		t.Errorf("expected 0 modules analyzed, got %d", r.ModulesAnalyzed())
	}
}

// TestGenerationReportCounts tests the run accounting helpers.
func TestGenerationReportCounts(t *testing.T) {
	t.Parallel()

	r := NewGenerationReport("ns", "col", "src")
	r.Results = []*ModuleResult{
		{
			Analysis: &ModuleAnalysis{ModuleName: "a", Fallback: false},
			Query:    &Query{CanonicalName: "moid"},
		},
		{
			Analysis: &ModuleAnalysis{ModuleName: "b", Fallback: true},
			Query:    &Query{CanonicalName: "id"},
		},
		{
			Analysis: &ModuleAnalysis{ModuleName: "c", Fallback: false},
			// No query synthesized yet.
		},
	}

	if got := r.ModulesAnalyzed(); got != 3 {
		t.Errorf("ModulesAnalyzed() = %d, expected 3", got)
	}
	if got := r.GenuineCount(); got != 2 {
		t.Errorf("GenuineCount() = %d, expected 2", got)
	}
	if got := r.QueriesGenerated(); got != 2 {
		t.Errorf("QueriesGenerated() = %d, expected 2", got)
	}
}

// TestQueryCanonicalFacts tests the single-entry canonical facts mapping.
func TestQueryCanonicalFacts(t *testing.T) {
	t.Parallel()

	q := &Query{CanonicalName: "bios_uuid", CanonicalExpr: ".hw_product_uuid"}

	facts := q.CanonicalFacts()
	if len(facts) != 1 {
		t.Fatalf("expected exactly one canonical fact, got %d", len(facts))
	}
	if facts["bios_uuid"] != ".hw_product_uuid" {
		t.Errorf("unexpected facts: %v", facts)
	}
}
