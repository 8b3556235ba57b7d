package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/queryscan/queryscan/internal/analyze"
	"github.com/queryscan/queryscan/internal/config"
	"github.com/queryscan/queryscan/internal/database"
	"github.com/queryscan/queryscan/internal/fetch"
	"github.com/queryscan/queryscan/internal/model"
	"github.com/queryscan/queryscan/internal/pipeline"
	"github.com/queryscan/queryscan/internal/report"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <source>",
		Short: "Generate a query file from a collection's module documentation",
		Long: `Generate inspects every module of an Ansible collection, discovers
identifier fields from the RETURN documentation, and writes one jq query
template per module to the query file.

The source is either a GitHub repository URL or a local directory
containing the standard plugins/modules layout.

Examples:
  # Generate from a collection on GitHub
  queryscan generate https://github.com/ansible-collections/vmware.vmware

  # Generate from a local checkout
  queryscan generate ./vmware.vmware

  # Restrict to specific modules
  queryscan generate --modules cluster_info,guest_info ./vmware.vmware

  # Analyze without writing the query file
  queryscan generate --dry-run ./vmware.vmware

  # Emit the run summary as Markdown
  queryscan generate --markdown ./vmware.vmware

Configuration file (.queryscan) example:
  deny_terms:
    - template
  device_rules:
    - keywords: [tag]
      device_type: Tag
      infra_bucket: Management`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerateCmd,
	}

	// Collection naming flags
	cmd.Flags().StringP("collection", "n", "",
		"Collection name as namespace.collection (default: derived from the source)")

	// Output flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputPath,
		"Path of the generated query file (creates directories if needed)")
	cmd.Flags().Bool("dry-run", false,
		"Analyze and report without writing the query file")

	// Analysis behavior flags
	cmd.Flags().StringSliceP("modules", "M", nil,
		"Restrict analysis to the named modules (comma-separated)")
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Number of modules analyzed concurrently")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each fetch request")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .queryscan in current or home directory)")

	// Summary format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON run summary (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown run summary (mutually exclusive with --json)")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runGenerate(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Source = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.CollectionName, err = cmd.Flags().GetString("collection")
	if err != nil {
		return nil, err
	}

	cfg.OutputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.DryRun, err = cmd.Flags().GetBool("dry-run")
	if err != nil {
		return nil, err
	}

	cfg.Modules, err = cmd.Flags().GetStringSlice("modules")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load rule overrides from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty overrides if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Overrides, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Overrides = &config.File{}
	}

	// A module filter on the command line beats the one in the file.
	if len(cfg.Modules) == 0 && len(cfg.Overrides.Modules) > 0 {
		cfg.Modules = cfg.Overrides.Modules
	}

	cfg.JSONSummary, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownSummary, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	// Always save to database using XDG data directory
	cfg.SaveToDB = true
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// runGenerate executes the generation run.
func runGenerate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return err
	}

	namespace, collection := splitCollectionName(fetcher.CollectionName())

	logger.Info("starting generation",
		"collection", fetcher.CollectionName(),
		"source", fetcher.Source(),
		"concurrency", cfg.Concurrency,
		"dryRun", cfg.DryRun,
	)

	// Open database connection if saving is enabled
	var db *database.RunDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Debug("database opened", "dir", cfg.DBDir)
	}

	p := createPipeline(fetcher, cfg, logger)
	genReport := model.NewGenerationReport(namespace, collection, fetcher.Source())

	fmt.Printf("Analyzing %s...\n", fetcher.CollectionName())
	startTime := time.Now()

	if err := p.Execute(ctx, genReport); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Analysis completed in %s\n\n", elapsed.Round(time.Millisecond))

	// Write the query file unless this is a dry run
	if cfg.DryRun {
		fmt.Println("Dry run: query file not written.")
	} else if err := writeQueryFile(cfg, genReport); err != nil {
		return err
	} else {
		fmt.Printf("Query file written: %s\n\n", cfg.OutputPath)
	}

	// Output the run summary
	if err := outputSummary(cfg, genReport); err != nil {
		logger.Error("summary failed", "error", err)
	}

	// Save to database if enabled
	if err := saveRun(ctx, db, genReport, logger); err != nil {
		logger.Error("failed to save run", "error", err)
	}

	return nil
}

// newFetcher selects the fetcher from the source's shape: URLs go through
// the GitHub API, anything else is treated as a local directory.
func newFetcher(cfg *config.Config, logger *slog.Logger) (fetch.Fetcher, error) {
	if strings.HasPrefix(cfg.Source, "http://") || strings.HasPrefix(cfg.Source, "https://") {
		return fetch.NewGitHubFetcher(cfg.Source, cfg.CollectionName,
			fetch.WithGitHubLogger(logger),
		)
	}
	return fetch.NewLocalFetcher(cfg.Source, cfg.CollectionName,
		fetch.WithLocalLogger(logger),
	)
}

// splitCollectionName splits "namespace.collection" at the first dot.
// A name with no dot is used for both halves so the query file keys stay
// well-formed.
func splitCollectionName(full string) (namespace, collection string) {
	namespace, collection, found := strings.Cut(full, ".")
	if !found {
		return full, full
	}
	return namespace, collection
}

// createPipeline assembles the generation pipeline with the configured
// rule overrides.
func createPipeline(fetcher fetch.Fetcher, cfg *config.Config, logger *slog.Logger) *pipeline.Pipeline {
	classifierOpts := make([]analyze.ClassifierOption, 0, 1)
	if cfg.Overrides != nil && len(cfg.Overrides.DenyTerms) > 0 {
		classifierOpts = append(classifierOpts, analyze.WithExtraDenyTerms(cfg.Overrides.DenyTerms...))
	}

	analyzer := analyze.NewAnalyzer(
		analyze.WithLogger(logger),
		analyze.WithClassifier(analyze.NewClassifier(classifierOpts...)),
	)

	synthOpts := []pipeline.SynthesizeStepOption{
		pipeline.WithSynthesizeLogger(logger),
	}
	if cfg.Overrides != nil && len(cfg.Overrides.DeviceRules) > 0 {
		synthOpts = append(synthOpts, pipeline.WithCustomDeviceRules(cfg.Overrides.ClassifyRules()))
	}

	return pipeline.DefaultPipeline(
		pipeline.NewFetchStep(fetcher,
			pipeline.WithOnlyModules(cfg.Modules),
			pipeline.WithFetchLogger(logger),
		),
		pipeline.NewAnalyzeStep(analyzer,
			pipeline.WithConcurrency(cfg.Concurrency),
			pipeline.WithAnalyzeLogger(logger),
		),
		pipeline.NewSynthesizeStep(synthOpts...),
		pipeline.WithLogger(logger),
	)
}

// writeQueryFile renders the query file to the configured output path.
func writeQueryFile(cfg *config.Config, genReport *model.GenerationReport) error {
	// Create directories if they don't exist
	dir := filepath.Dir(cfg.OutputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := report.NewQueryFileWriter(f)
	if _, err := writer.Write(genReport); err != nil {
		return fmt.Errorf("failed to write query file: %w", err)
	}
	return nil
}

// outputSummary outputs the run summary in the requested format.
func outputSummary(cfg *config.Config, genReport *model.GenerationReport) error {
	// JSON output (detailed report with all data)
	if cfg.JSONSummary {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(genReport)
	}

	// Markdown output
	if cfg.MarkdownSummary {
		writer := report.NewMarkdownWriter(os.Stdout)
		_, err := writer.Write(genReport)
		return err
	}

	// Human-readable summary (default)
	writer := report.NewSimpleWriter(os.Stdout, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(genReport)
	return err
}

// saveRun saves the generation report to the database if enabled.
// If db is nil, this function is a no-op.
func saveRun(ctx context.Context, db *database.RunDB, genReport *model.GenerationReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveRun(ctx, genReport)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run saved to database",
		"collection", genReport.FullCollectionName(),
		"id", id,
	)
	return nil
}
