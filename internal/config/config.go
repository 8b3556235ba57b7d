package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultOutputPath is where the generated query file is written
	// when no path is given. Relative to the working directory, matching
	// how the file is typically committed next to playbooks.
	DefaultOutputPath = "./event_query.yml"

	// DefaultTimeout bounds each fetch request. Module files are small;
	// 20 seconds accommodates slow API responses without hanging a run
	// on a dead connection.
	DefaultTimeout = 20 * time.Second

	// DefaultConcurrency is the number of modules analyzed in parallel.
	// Analysis is CPU-light tree walking, so a moderate fan-out keeps
	// large collections fast without much memory pressure.
	DefaultConcurrency = 8

	// AppName is the application name used for XDG directory paths.
	AppName = "queryscan"
)

// Config holds all configuration options for a generation run.
// This struct is populated from CLI flags and passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Source is the collection source: a GitHub URL or a local
	// directory containing a plugins/modules tree.
	Source string

	// CollectionName is the "namespace.collection" name. When empty it
	// is derived from the source (org.repo for GitHub, the directory
	// base name locally).
	CollectionName string

	// OutputPath is where the generated query file is written.
	OutputPath string

	// Modules restricts analysis to the named modules when non-empty.
	Modules []string

	// Concurrency is the number of modules analyzed in parallel.
	Concurrency int

	// Timeout is the per-request timeout for fetching module sources.
	Timeout time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// DryRun analyzes and reports counts without writing the query file.
	DryRun bool

	// MarkdownSummary renders the run summary as Markdown instead of
	// plain text. Mutually exclusive with JSONSummary.
	MarkdownSummary bool

	// JSONSummary renders the run summary as JSON instead of plain
	// text. Mutually exclusive with MarkdownSummary.
	JSONSummary bool

	// ConfigFilePath is the path to the .queryscan override file. If
	// empty, the tool searches the current directory and then the
	// user's home directory.
	ConfigFilePath string

	// Overrides holds rule overrides loaded from the config file.
	Overrides *File

	// DBDir is the directory for the run-history database. Runs are
	// recorded there so the history command can compare them.
	DBDir string

	// SaveToDB indicates whether to record the run in the database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults; users override specific
// values after creation.
func NewConfig() *Config {
	return &Config{
		OutputPath:  DefaultOutputPath,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
	}
}

// XDGDataDir returns the XDG data directory for queryscan.
// On Linux: ~/.local/share/queryscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for queryscan.
// On Linux: ~/.config/queryscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first sentinel error found; fixing one error often makes
// others irrelevant.
func (c *Config) Validate() error {
	if c.Source == "" {
		return ErrNoSource
	}
	if c.OutputPath == "" {
		return ErrNoOutputPath
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MarkdownSummary && c.JSONSummary {
		return ErrConflictingSummaryFormats
	}
	return nil
}
