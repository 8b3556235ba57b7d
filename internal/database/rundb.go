package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/queryscan/queryscan/internal/model"
)

// RunDB provides SQLite-based storage for generation run history.
// It manages connection pooling and provides methods for saving and
// retrieving run records.
//
// Design decision: We use a single database file for all collections
// rather than one file per collection. This simplifies the history
// command, which compares runs across time for a given collection.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, "queryscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; the run recorder never needs more.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Run records store one row per generation run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		source TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		modules_analyzed INTEGER,
		genuine_count INTEGER,
		queries_generated INTEGER,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_collection ON runs(collection);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun saves a complete generation report as JSON along with summary
// counts for efficient listing.
func (rdb *RunDB) SaveRun(ctx context.Context, report *model.GenerationReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO runs (collection, source, modules_analyzed, genuine_count, queries_generated, report_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := rdb.db.ExecContext(ctx, query,
		report.FullCollectionName(),
		report.Source,
		report.ModulesAnalyzed(),
		report.GenuineCount(),
		report.QueriesGenerated(),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	return result.LastInsertId()
}

// RunMetadata contains summary information about a stored run.
// This is used for listing run history without loading full reports.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Collection is the full collection name that was analyzed.
	Collection string

	// Source is where the collection was fetched from.
	Source string

	// Timestamp is when the run was performed.
	Timestamp time.Time

	// ModulesAnalyzed is the number of modules analyzed in the run.
	ModulesAnalyzed int

	// GenuineCount is the number of modules with heuristic-derived
	// identifiers, as opposed to fallback defaults.
	GenuineCount int

	// QueriesGenerated is the number of query templates produced.
	QueriesGenerated int
}

// ListRuns retrieves run metadata, most recent first. If collection is
// non-empty, only runs for that collection are returned.
func (rdb *RunDB) ListRuns(ctx context.Context, collection string) ([]RunMetadata, error) {
	query := `
	SELECT id, collection, source, timestamp, modules_analyzed, genuine_count, queries_generated
	FROM runs
	WHERE 1=1
	`
	args := make([]any, 0)

	if collection != "" {
		query += " AND collection = ?"
		args = append(args, collection)
	}

	query += " ORDER BY timestamp DESC, id DESC"

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var timestamp string

		err := rows.Scan(
			&meta.ID,
			&meta.Collection,
			&meta.Source,
			&timestamp,
			&meta.ModulesAnalyzed,
			&meta.GenuineCount,
			&meta.QueriesGenerated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetRun retrieves a full generation report by its database ID.
// Returns nil without error when no run has that ID.
func (rdb *RunDB) GetRun(ctx context.Context, id int64) (*model.GenerationReport, error) {
	query := `
	SELECT report_json FROM runs
	WHERE id = ?
	`

	var reportJSON string
	err := rdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var report model.GenerationReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// GetLatestRuns retrieves the most recent full reports for a collection,
// newest first, up to limit.
func (rdb *RunDB) GetLatestRuns(ctx context.Context, collection string, limit int) ([]*model.GenerationReport, error) {
	query := `
	SELECT report_json FROM runs
	WHERE collection = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`

	rows, err := rdb.db.QueryContext(ctx, query, collection, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get run history: %w", err)
	}
	defer rows.Close()

	var reports []*model.GenerationReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		var report model.GenerationReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
