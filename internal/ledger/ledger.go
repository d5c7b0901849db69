// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a local SQLite journal of export runs and their
// per-record outcomes, so archive decisions remain auditable after the
// remote originals are gone.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/plaud-export/pkg/types"
)

// Store manages the run-ledger SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating the schema
// and parent directory when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
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
			started_at TEXT NOT NULL,
			folder TEXT NOT NULL,
			attempted INTEGER NOT NULL,
			persisted INTEGER NOT NULL,
			archived INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS outcomes (
			run_id TEXT NOT NULL REFERENCES runs(id),
			record_id TEXT NOT NULL,
			persisted INTEGER NOT NULL,
			archived INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_record_id ON outcomes(record_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RunInfo is one row of the run history.
type RunInfo struct {
	ID        string
	StartedAt time.Time
	Folder    string
	Attempted int
	Persisted int
	Archived  int
	Failed    int
}

// RecordRun stores one run summary and its outcomes under a fresh run id,
// atomically.
func (s *Store) RecordRun(ctx context.Context, folder string, startedAt time.Time, summary types.RunSummary) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, folder, attempted, persisted, archived, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, startedAt.UTC().Format(time.RFC3339), folder,
		summary.Attempted, summary.Persisted, summary.Archived, summary.Failed)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, o := range summary.Outcomes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, record_id, persisted, archived, error)
			 VALUES (?, ?, ?, ?, ?)`,
			runID, o.RecordID, o.Persisted, o.Archived, o.Err)
		if err != nil {
			return "", fmt.Errorf("inserting outcome for %s: %w", o.RecordID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first, up to limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, folder, attempted, persisted, archived, failed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		var ts string
		if err := rows.Scan(&r.ID, &ts, &r.Folder, &r.Attempted, &r.Persisted, &r.Archived, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunOutcomes returns the per-record outcomes of one run, in stored order.
func (s *Store) RunOutcomes(ctx context.Context, runID string) ([]types.RecordOutcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record_id, persisted, archived, error FROM outcomes WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []types.RecordOutcome
	for rows.Next() {
		var o types.RecordOutcome
		if err := rows.Scan(&o.RecordID, &o.Persisted, &o.Archived, &o.Err); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
