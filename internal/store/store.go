// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store records batch runs and their per-document outcomes in a
// SQLite database so earlier results can be listed without re-reading the
// CSV file.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/experience-extractor/internal/batch"
	"github.com/pdiddy/experience-extractor/pkg/types"
)

const defaultLimit = 20

// Store manages the run history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one recorded batch invocation.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	Source    string    `json:"source" yaml:"source"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	Found     int       `json:"found" yaml:"found"`
	NotFound  int       `json:"not_found" yaml:"not_found"`
	Failed    int       `json:"failed" yaml:"failed"`
}

// Entry is a stored outcome with the run it belongs to.
type Entry struct {
	types.Outcome `yaml:",inline"`

	RunID      string    `json:"run_id" yaml:"run_id"`
	Source     string    `json:"source" yaml:"source"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// Open opens or creates the database at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			started_at TEXT NOT NULL,
			found INTEGER NOT NULL,
			not_found INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outcomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			experience TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_name ON outcomes(name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun stores one run and its outcomes in a single transaction and
// returns the generated run ID.
func (s *Store) RecordRun(ctx context.Context, source string, outcomes []types.Outcome) (string, error) {
	runID := uuid.NewString()
	summary := batch.Summarize(outcomes)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, started_at, found, not_found, failed) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, source, s.now().UTC().Format(time.RFC3339Nano),
		summary.Found, summary.NotFound, summary.Failed,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO outcomes (run_id, name, experience, status, error) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range outcomes {
		if _, err := stmt.ExecContext(ctx, runID, o.Name, o.Experience, string(o.Status), o.Err); err != nil {
			return "", fmt.Errorf("inserting outcome %s: %w", o.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, started_at, found, not_found, failed
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &r.Source, &started, &r.Found, &r.NotFound, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parsing run time %q: %w", started, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Recent returns the most recent outcomes across runs, newest first. A
// non-empty name restricts the result to that document.
func (s *Store) Recent(ctx context.Context, name string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT o.name, o.experience, o.status, COALESCE(o.error, ''), r.id, r.source, r.started_at
		 FROM outcomes o JOIN runs r ON r.id = o.run_id
		 WHERE ? = '' OR o.name = ?
		 ORDER BY o.id DESC LIMIT ?`, name, name, limit)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status, recorded string
		if err := rows.Scan(&e.Name, &e.Experience, &status, &e.Err, &e.RunID, &e.Source, &recorded); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		e.Status = types.OutcomeStatus(status)
		if e.RecordedAt, err = time.Parse(time.RFC3339Nano, recorded); err != nil {
			return nil, fmt.Errorf("parsing run time %q: %w", recorded, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
