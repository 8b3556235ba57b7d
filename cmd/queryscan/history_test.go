package main

import (
	"testing"

	"github.com/queryscan/queryscan/internal/model"
)

// comparableReport builds a report whose results carry the given module
// name, canonical identifier, and fallback flag.
func comparableReport(modules ...[3]string) *model.GenerationReport {
	report := model.NewGenerationReport("vmware", "vmware", "src")
	for _, m := range modules {
		res := &model.ModuleResult{
			Analysis: &model.ModuleAnalysis{
				ModuleName: m[0],
				Fallback:   m[2] == "fallback",
			},
		}
		if m[1] != "" {
			res.Query = &model.Query{CanonicalName: m[1]}
		}
		report.Results = append(report.Results, res)
	}
	return report
}

// TestCompareRuns tests drift detection between two runs.
func TestCompareRuns(t *testing.T) {
	t.Parallel()

	t.Run("reports unchanged runs", func(t *testing.T) {
		t.Parallel()

		previous := comparableReport([3]string{"cluster_info", "moid", "genuine"})
		current := comparableReport([3]string{"cluster_info", "moid", "genuine"})

		result := compareRuns(previous, current)

		if result.Direction != driftDirectionUnchanged {
			t.Errorf("Direction = %q", result.Direction)
		}
		if result.UnchangedCount != 1 {
			t.Errorf("UnchangedCount = %d", result.UnchangedCount)
		}
		if result.Collection != "vmware.vmware" {
			t.Errorf("Collection = %q", result.Collection)
		}
	})

	t.Run("detects added and removed modules", func(t *testing.T) {
		t.Parallel()

		previous := comparableReport(
			[3]string{"cluster_info", "moid", "genuine"},
			[3]string{"license_info", "", "fallback"},
		)
		current := comparableReport(
			[3]string{"cluster_info", "moid", "genuine"},
			[3]string{"guest_info", "uuid", "genuine"},
		)

		result := compareRuns(previous, current)

		if len(result.AddedModules) != 1 || result.AddedModules[0] != "guest_info" {
			t.Errorf("AddedModules = %v", result.AddedModules)
		}
		if len(result.RemovedModules) != 1 || result.RemovedModules[0] != "license_info" {
			t.Errorf("RemovedModules = %v", result.RemovedModules)
		}
		if result.Direction != driftDirectionChanged {
			t.Errorf("Direction = %q", result.Direction)
		}
	})

	t.Run("detects identifier changes", func(t *testing.T) {
		t.Parallel()

		previous := comparableReport([3]string{"guest_info", "uuid", "genuine"})
		current := comparableReport([3]string{"guest_info", "moid", "genuine"})

		result := compareRuns(previous, current)

		if len(result.IdentifierChanges) != 1 {
			t.Fatalf("IdentifierChanges = %v", result.IdentifierChanges)
		}
		change := result.IdentifierChanges[0]
		if change.Module != "guest_info" || change.Previous != "uuid" || change.Current != "moid" {
			t.Errorf("unexpected change: %+v", change)
		}
		if result.UnchangedCount != 0 {
			t.Errorf("UnchangedCount = %d", result.UnchangedCount)
		}
	})

	t.Run("detects genuine to fallback transitions", func(t *testing.T) {
		t.Parallel()

		previous := comparableReport([3]string{"host_info", "moid", "genuine"})
		current := comparableReport([3]string{"host_info", "moid", "fallback"})

		result := compareRuns(previous, current)

		if len(result.StatusChanges) != 1 {
			t.Fatalf("StatusChanges = %v", result.StatusChanges)
		}
		change := result.StatusChanges[0]
		if change.Previous != "genuine" || change.Current != "fallback" {
			t.Errorf("unexpected change: %+v", change)
		}
		if result.Direction != driftDirectionChanged {
			t.Errorf("Direction = %q", result.Direction)
		}
	})

	t.Run("summarizes both runs", func(t *testing.T) {
		t.Parallel()

		previous := comparableReport([3]string{"cluster_info", "moid", "genuine"})
		current := comparableReport(
			[3]string{"cluster_info", "moid", "genuine"},
			[3]string{"license_info", "", "fallback"},
		)

		result := compareRuns(previous, current)

		if result.PreviousRun.ModulesAnalyzed != 1 || result.CurrentRun.ModulesAnalyzed != 2 {
			t.Errorf("unexpected summaries: %+v / %+v", result.PreviousRun, result.CurrentRun)
		}
		if result.CurrentRun.GenuineCount != 1 || result.CurrentRun.QueriesGenerated != 1 {
			t.Errorf("unexpected current summary: %+v", result.CurrentRun)
		}
	})
}

// TestStatusText tests fallback flag rendering.
func TestStatusText(t *testing.T) {
	t.Parallel()

	if statusText(true) != "fallback" || statusText(false) != "genuine" {
		t.Error("unexpected status text")
	}
}

// TestFormatDelta tests signed delta formatting.
func TestFormatDelta(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		delta int
		want  string
	}{
		{3, "+3"},
		{-2, "-2"},
		{0, "0"},
	}

	for _, tc := range testCases {
		if got := formatDelta(tc.delta); got != tc.want {
			t.Errorf("formatDelta(%d) = %q, expected %q", tc.delta, got, tc.want)
		}
	}
}
