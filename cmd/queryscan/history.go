package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/queryscan/queryscan/internal/config"
	"github.com/queryscan/queryscan/internal/database"
	"github.com/queryscan/queryscan/internal/model"
)

// Constants for drift direction and summary messages.
const (
	driftDirectionChanged   = "changed"
	driftDirectionUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
// This command compares generation runs stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [namespace.collection]",
		Short: "Compare generation runs with historical data",
		Long: `History displays differences between the current and previous generation
runs for a collection.

This command retrieves historical run data from the database and shows:
- Modules that appeared or disappeared between runs
- Modules whose canonical identifier changed
- Modules that moved between genuine and fallback analysis

The comparison requires at least two runs in the database for the
specified collection. Use 'queryscan generate' to run and save results.

Examples:
  # Compare the latest two runs for a collection
  queryscan history vmware.vmware

  # List all runs for a collection
  queryscan history --list vmware.vmware

  # Compare the latest run with a specific historical run by ID
  queryscan history --with-run-id 5 vmware.vmware

  # Output comparison in JSON format
  queryscan history --json vmware.vmware

  # List all collections in the database
  queryscan history --list-collections`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List run history for the specified collection")
	cmd.Flags().BoolP("list-collections", "L", false,
		"List all collections in the database")

	// Comparison target flags
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare with a specific run by ID (use --list to see available IDs)")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	// Handle --list-collections flag first (requires database but no name)
	listCollections, err := cmd.Flags().GetBool("list-collections")
	if err != nil {
		return err
	}

	// Validate arguments before opening database (unless --list-collections)
	var collection string
	if !listCollections {
		if len(args) == 0 {
			return errors.New("collection name is required (use --list-collections to see available collections)")
		}
		collection = args[0]
	}

	// Use XDG data directory for database
	dbDir := config.XDGDataDir()

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listCollections {
		return listStoredCollections(ctx, db)
	}

	listHistory, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listRunHistory(ctx, db, collection)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}

	return runComparison(ctx, db, collection, withRunID, jsonOutput)
}

// listStoredCollections lists all collections that have run records.
func listStoredCollections(ctx context.Context, db *database.RunDB) error {
	runs, err := db.ListRuns(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	seen := make(map[string]bool)
	collections := make([]string, 0)
	for _, meta := range runs {
		if !seen[meta.Collection] {
			seen[meta.Collection] = true
			collections = append(collections, meta.Collection)
		}
	}

	if len(collections) == 0 {
		fmt.Println("No runs found in the database.")
		fmt.Println("\nUse 'queryscan generate <source>' to analyze a collection.")
		return nil
	}

	fmt.Printf("Collections (%d):\n\n", len(collections))
	for _, c := range collections {
		fmt.Printf("  %s\n", c)
	}
	fmt.Println("\nUse 'queryscan history --list <collection>' to see run history for a collection.")

	return nil
}

// listRunHistory lists all run records for a specific collection.
func listRunHistory(ctx context.Context, db *database.RunDB, collection string) error {
	runs, err := db.ListRuns(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Printf("No run history found for %s\n", collection)
		fmt.Println("\nUse 'queryscan generate' to analyze this collection.")
		return nil
	}

	fmt.Printf("Run history for %s (%d runs):\n\n", collection, len(runs))
	fmt.Printf("  %-6s  %-20s  %-8s  %-8s  %s\n", "ID", "Date", "Modules", "Genuine", "Queries")
	fmt.Println("  " + strings.Repeat("-", 60))

	for _, meta := range runs {
		fmt.Printf("  %-6d  %-20s  %-8d  %-8d  %d\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.ModulesAnalyzed,
			meta.GenuineCount,
			meta.QueriesGenerated,
		)
	}

	fmt.Println("\nUse 'queryscan history <collection>' to compare the latest two runs.")
	fmt.Println("Use 'queryscan history --with-run-id <id> <collection>' to compare with a specific run.")

	return nil
}

// runComparison performs the actual comparison between run reports.
func runComparison(ctx context.Context, db *database.RunDB, collection string, withRunID int64, jsonOutput bool) error {
	reports, err := db.GetLatestRuns(ctx, collection, 2)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(reports) == 0 {
		return fmt.Errorf("no run history found for %s", collection)
	}

	if len(reports) < 2 && withRunID == 0 {
		return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(reports))
	}

	// Latest run is always the current one
	currentReport := reports[0]

	var previousReport *model.GenerationReport
	if withRunID > 0 {
		previousReport, err = db.GetRun(ctx, withRunID)
		if err != nil {
			return fmt.Errorf("failed to get run with ID %d: %w", withRunID, err)
		}
		if previousReport == nil {
			return fmt.Errorf("run with ID %d not found", withRunID)
		}
		// Validate that the run ID belongs to the same collection
		if previousReport.FullCollectionName() != collection {
			return fmt.Errorf("run ID %d belongs to %s, not %s", withRunID, previousReport.FullCollectionName(), collection)
		}
	} else {
		previousReport = reports[1]
	}

	comparison := compareRuns(previousReport, currentReport)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	return outputComparisonText(comparison)
}

// ComparisonResult holds the result of comparing two generation runs.
type ComparisonResult struct {
	// Collection is the analyzed collection name.
	Collection string `json:"collection"`

	// PreviousRun contains metadata about the previous run.
	PreviousRun RunSummary `json:"previous_run"`

	// CurrentRun contains metadata about the current run.
	CurrentRun RunSummary `json:"current_run"`

	// AddedModules are modules present only in the current run.
	AddedModules []string `json:"added_modules,omitempty"`

	// RemovedModules are modules present only in the previous run.
	RemovedModules []string `json:"removed_modules,omitempty"`

	// IdentifierChanges are modules whose canonical identifier changed.
	IdentifierChanges []IdentifierChange `json:"identifier_changes,omitempty"`

	// StatusChanges are modules that moved between genuine and fallback
	// analysis.
	StatusChanges []StatusChange `json:"status_changes,omitempty"`

	// UnchangedCount is the number of modules with identical results.
	UnchangedCount int `json:"unchanged_count"`

	// Direction is "changed" or "unchanged".
	Direction string `json:"direction"`
}

// RunSummary contains metadata about a run for comparison display.
type RunSummary struct {
	// StartedAt is when the run was performed.
	StartedAt time.Time `json:"started_at"`

	// ModulesAnalyzed is the number of modules in the run.
	ModulesAnalyzed int `json:"modules_analyzed"`

	// GenuineCount is the number of genuine (non-fallback) analyses.
	GenuineCount int `json:"genuine_count"`

	// QueriesGenerated is the number of query templates produced.
	QueriesGenerated int `json:"queries_generated"`
}

// IdentifierChange records a module whose canonical identifier moved.
type IdentifierChange struct {
	Module   string `json:"module"`
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// StatusChange records a module that crossed the genuine/fallback line.
type StatusChange struct {
	Module   string `json:"module"`
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// compareRuns compares two generation reports and builds a comparison
// result keyed by module name.
func compareRuns(previous, current *model.GenerationReport) *ComparisonResult {
	result := &ComparisonResult{
		Collection:  current.FullCollectionName(),
		PreviousRun: summarizeRun(previous),
		CurrentRun:  summarizeRun(current),
	}

	previousResults := resultsByModule(previous)
	currentResults := resultsByModule(current)

	for name, cur := range currentResults {
		prev, exists := previousResults[name]
		if !exists {
			result.AddedModules = append(result.AddedModules, name)
			continue
		}

		changed := false
		if canonicalName(prev) != canonicalName(cur) {
			result.IdentifierChanges = append(result.IdentifierChanges, IdentifierChange{
				Module:   name,
				Previous: canonicalName(prev),
				Current:  canonicalName(cur),
			})
			changed = true
		}
		if prev.Analysis.Fallback != cur.Analysis.Fallback {
			result.StatusChanges = append(result.StatusChanges, StatusChange{
				Module:   name,
				Previous: statusText(prev.Analysis.Fallback),
				Current:  statusText(cur.Analysis.Fallback),
			})
			changed = true
		}
		if !changed {
			result.UnchangedCount++
		}
	}

	for name := range previousResults {
		if _, exists := currentResults[name]; !exists {
			result.RemovedModules = append(result.RemovedModules, name)
		}
	}

	result.Direction = driftDirectionUnchanged
	if len(result.AddedModules) > 0 || len(result.RemovedModules) > 0 ||
		len(result.IdentifierChanges) > 0 || len(result.StatusChanges) > 0 {
		result.Direction = driftDirectionChanged
	}

	return result
}

// summarizeRun extracts display metadata from a report.
func summarizeRun(r *model.GenerationReport) RunSummary {
	return RunSummary{
		StartedAt:        r.StartedAt,
		ModulesAnalyzed:  r.ModulesAnalyzed(),
		GenuineCount:     r.GenuineCount(),
		QueriesGenerated: r.QueriesGenerated(),
	}
}

// resultsByModule indexes a report's results by module name.
func resultsByModule(r *model.GenerationReport) map[string]*model.ModuleResult {
	out := make(map[string]*model.ModuleResult, len(r.Results))
	for _, res := range r.Results {
		if res == nil || res.Analysis == nil {
			continue
		}
		out[res.Analysis.ModuleName] = res
	}
	return out
}

// canonicalName returns the result's canonical identifier, or empty when
// no query was synthesized.
func canonicalName(res *model.ModuleResult) string {
	if res.Query == nil {
		return ""
	}
	return res.Query.CanonicalName
}

// statusText renders the fallback flag for display.
func statusText(fallback bool) string {
	if fallback {
		return "fallback"
	}
	return "genuine"
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Run Comparison: %s\n", result.Collection)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nStatus: %s\n", strings.ToUpper(result.Direction))

	fmt.Printf("\nPrevious run: %s\n", result.PreviousRun.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Current run:  %s\n", result.CurrentRun.StartedAt.Format("2006-01-02 15:04:05"))

	fmt.Println("\nRun Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Modules",
		result.PreviousRun.ModulesAnalyzed, result.CurrentRun.ModulesAnalyzed,
		formatDelta(result.CurrentRun.ModulesAnalyzed-result.PreviousRun.ModulesAnalyzed))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Genuine",
		result.PreviousRun.GenuineCount, result.CurrentRun.GenuineCount,
		formatDelta(result.CurrentRun.GenuineCount-result.PreviousRun.GenuineCount))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Queries",
		result.PreviousRun.QueriesGenerated, result.CurrentRun.QueriesGenerated,
		formatDelta(result.CurrentRun.QueriesGenerated-result.PreviousRun.QueriesGenerated))

	if len(result.AddedModules) > 0 {
		fmt.Printf("\nAdded Modules (%d):\n", len(result.AddedModules))
		for _, m := range result.AddedModules {
			fmt.Printf("  [+] %s\n", m)
		}
	}

	if len(result.RemovedModules) > 0 {
		fmt.Printf("\nRemoved Modules (%d):\n", len(result.RemovedModules))
		for _, m := range result.RemovedModules {
			fmt.Printf("  [-] %s\n", m)
		}
	}

	if len(result.IdentifierChanges) > 0 {
		fmt.Printf("\nIdentifier Changes (%d):\n", len(result.IdentifierChanges))
		for _, c := range result.IdentifierChanges {
			fmt.Printf("  [~] %s: %s -> %s\n", c.Module, c.Previous, c.Current)
		}
	}

	if len(result.StatusChanges) > 0 {
		fmt.Printf("\nStatus Changes (%d):\n", len(result.StatusChanges))
		for _, c := range result.StatusChanges {
			fmt.Printf("  [~] %s: %s -> %s\n", c.Module, c.Previous, c.Current)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d modules\n", result.UnchangedCount)
	}

	return nil
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
