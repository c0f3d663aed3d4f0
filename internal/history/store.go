// Package history persists lint run records to a local SQLite database.
//
// Recording is best-effort from the caller's perspective: a history write
// failure is logged as a warning and never changes a run's exit code.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run represents a single recorded lint run.
type Run struct {
	ID           string
	Mode         string
	Engine       string
	Root         string
	TotalFiles   int
	Passed       int
	Failed       int
	Skipped      int
	FailedPaths  []string
	SkippedPaths []string
	Duration     time.Duration
	CreatedAt    time.Time
}

// Store manages the SQLite database holding run history.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath and
// initializes its schema. ":memory:" is supported for tests.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so later statements wait on locks instead of
	// failing immediately
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts one run record, assigning a fresh id and timestamp if
// the caller left them empty.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	failedJSON, err := json.Marshal(run.FailedPaths)
	if err != nil {
		return fmt.Errorf("marshal failed paths: %w", err)
	}
	skippedJSON, err := json.Marshal(run.SkippedPaths)
	if err != nil {
		return fmt.Errorf("marshal skipped paths: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, mode, engine, root, total_files, passed, failed, skipped,
		                  failed_paths, skipped_paths, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.Engine, run.Root,
		run.TotalFiles, run.Passed, run.Failed, run.Skipped,
		string(failedJSON), string(skippedJSON),
		run.Duration.Milliseconds(), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, engine, root, total_files, passed, failed, skipped,
		       failed_paths, skipped_paths, duration_ms, created_at
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var failedJSON, skippedJSON string
		var durationMs int64

		if err := rows.Scan(&run.ID, &run.Mode, &run.Engine, &run.Root,
			&run.TotalFiles, &run.Passed, &run.Failed, &run.Skipped,
			&failedJSON, &skippedJSON, &durationMs, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		if err := json.Unmarshal([]byte(failedJSON), &run.FailedPaths); err != nil {
			return nil, fmt.Errorf("unmarshal failed paths: %w", err)
		}
		if err := json.Unmarshal([]byte(skippedJSON), &run.SkippedPaths); err != nil {
			return nil, fmt.Errorf("unmarshal skipped paths: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Prune deletes all but the newest keepRuns records. keepRuns <= 0 keeps
// everything.
func (s *Store) Prune(ctx context.Context, keepRuns int) error {
	if keepRuns <= 0 {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC, id LIMIT ?
		)`, keepRuns)
	if err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}

	return nil
}
