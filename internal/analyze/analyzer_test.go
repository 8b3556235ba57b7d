package analyze

import (
	"log/slog"
	"testing"

	"github.com/queryscan/queryscan/internal/log"
	"github.com/queryscan/queryscan/internal/model"
)

// moduleSource wraps a documentation fragment in a module source file.
func moduleSource(fragment string) string {
	return "#!/usr/bin/python\n\nRETURN = r\"\"\"\n" + fragment + "\"\"\"\n"
}

// TestAnalyzerAnalyze tests the full per-module analysis.
func TestAnalyzerAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("genuine analysis with container and identifiers", func(t *testing.T) {
		t.Parallel()

		doc := &model.ModuleDocument{
			Name: "cluster_info",
			SourceText: moduleSource(`
clusters:
  type: list
  returned: always
  contains:
    moid:
      type: str
    name:
      type: str
`),
		}

		analysis := NewAnalyzer().Analyze(doc)

		if analysis.Fallback {
			t.Error("expected genuine analysis")
		}
		if len(analysis.Identifiers) != 1 || analysis.Identifiers[0].Name != "moid" {
			t.Fatalf("unexpected identifiers: %+v", analysis.Identifiers)
		}
		if analysis.Container.Name != "clusters" || analysis.Container.Cardinality != model.CardinalityList {
			t.Errorf("unexpected container: %+v", analysis.Container)
		}
	})

	t.Run("sample instance key yields bare identifier", func(t *testing.T) {
		t.Parallel()

		doc := &model.ModuleDocument{
			Name: "cluster_info",
			SourceText: moduleSource(`
clusters:
  type: dict
  returned: always
  sample:
    DC0_C0:
      moid: domain-c9
`),
		}

		analysis := NewAnalyzer().Analyze(doc)

		if analysis.Fallback {
			t.Error("expected genuine analysis")
		}
		if len(analysis.Identifiers) != 1 {
			t.Fatalf("unexpected identifiers: %+v", analysis.Identifiers)
		}
		if analysis.Identifiers[0].Path != "moid" || analysis.Identifiers[0].Name != "moid" {
			t.Errorf("got %+v, expected bare moid untainted by DC0_C0", analysis.Identifiers[0])
		}
	})

	t.Run("missing documentation routes to fallback", func(t *testing.T) {
		t.Parallel()

		doc := &model.ModuleDocument{
			Name:       "broken",
			SourceText: "#!/usr/bin/python\n\nprint('no docs here')\n",
		}

		analysis := NewAnalyzer().Analyze(doc)

		if !analysis.Fallback {
			t.Error("expected fallback analysis")
		}
		if len(analysis.Identifiers) != 1 || analysis.Identifiers[0].Name != "id" {
			t.Errorf("unexpected identifiers: %+v", analysis.Identifiers)
		}
		if analysis.Container.Resolved() {
			t.Errorf("expected unresolved container, got %+v", analysis.Container)
		}
	})

	t.Run("malformed YAML routes to fallback", func(t *testing.T) {
		t.Parallel()

		doc := &model.ModuleDocument{
			Name:       "broken",
			SourceText: moduleSource("clusters:\n  type: [unclosed\n"),
		}

		analysis := NewAnalyzer().Analyze(doc)

		if !analysis.Fallback {
			t.Error("expected fallback analysis")
		}
	})

	t.Run("instance container triggers identifier triple", func(t *testing.T) {
		t.Parallel()

		doc := &model.ModuleDocument{
			Name: "guest_info",
			SourceText: moduleSource(`
instance:
  type: dict
  returned: always
  description: Guest facts.
`),
		}

		analysis := NewAnalyzer().Analyze(doc)

		if analysis.Fallback {
			t.Error("instance triple is not a fallback")
		}
		want := []string{"moid", "instance_uuid", "hw_product_uuid"}
		if len(analysis.Identifiers) != len(want) {
			t.Fatalf("got %+v, expected the identifier triple", analysis.Identifiers)
		}
		for i, name := range want {
			if analysis.Identifiers[i].Name != name {
				t.Errorf("identifier %d: got %q, expected %q", i, analysis.Identifiers[i].Name, name)
			}
		}
		if analysis.Container.Name != "instance" || analysis.Container.Cardinality != model.CardinalityDict {
			t.Errorf("unexpected container: %+v", analysis.Container)
		}
	})

	t.Run("zero identifiers without instance degrades but keeps container", func(t *testing.T) {
		t.Parallel()

		doc := &model.ModuleDocument{
			Name: "datastore_info",
			SourceText: moduleSource(`
datastores:
  type: list
  returned: always
  contains:
    name:
      type: str
`),
		}

		analysis := NewAnalyzer().Analyze(doc)

		if !analysis.Fallback {
			t.Error("expected fallback analysis")
		}
		if len(analysis.Identifiers) != 1 || analysis.Identifiers[0].Name != "id" {
			t.Errorf("unexpected identifiers: %+v", analysis.Identifiers)
		}
		// The resolved container survives the fallback.
		if analysis.Container.Name != "datastores" || analysis.Container.Cardinality != model.CardinalityList {
			t.Errorf("unexpected container: %+v", analysis.Container)
		}
	})

	t.Run("emits trace records through the injected logger", func(t *testing.T) {
		t.Parallel()

		capture := log.NewCaptureHandler(nil)
		analyzer := NewAnalyzer(WithLogger(capture.Logger()))

		analyzer.Analyze(&model.ModuleDocument{
			Name:       "broken",
			SourceText: "nothing",
		})

		records := capture.Records()
		if len(records) == 0 {
			t.Fatal("expected trace records")
		}

		found := false
		for _, r := range records {
			if r.Level == slog.LevelDebug && r.Has("module", "broken") {
				found = true
			}
		}
		if !found {
			t.Error("expected a debug record tagged with the module name")
		}
	})
}
