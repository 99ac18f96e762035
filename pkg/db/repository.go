package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Repository handles data access.
type Repository struct {
	db *DB
}

// NewRepository creates a new Repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// RunLog represents a row in the runs table.
type RunLog struct {
	ID           int64
	StartedAt    time.Time
	FinishedAt   time.Time
	NotesScanned int
	EntriesAdded int
	DryRun       bool
	Status       string
	Error        string
}

// RecordRun logs one finished processing run.
func (r *Repository) RecordRun(startedAt time.Time, notesScanned, entriesAdded int, dryRun bool, status, errMsg string) error {
	query := `INSERT INTO runs (started_at, finished_at, notes_scanned, entries_added, dry_run, status, error)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, startedAt, time.Now(), notesScanned, entriesAdded, dryRun, status, errMsg)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (r *Repository) RecentRuns(limit int) ([]RunLog, error) {
	query := `SELECT id, started_at, finished_at, notes_scanned, entries_added, dry_run, status, COALESCE(error, '')
	          FROM runs ORDER BY started_at DESC LIMIT ?`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunLog
	for rows.Next() {
		var run RunLog
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.NotesScanned,
			&run.EntriesAdded, &run.DryRun, &run.Status, &run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LastSuccessfulRun returns the most recent successful run, or nil when none
// exists.
func (r *Repository) LastSuccessfulRun() (*RunLog, error) {
	query := `SELECT id, started_at, finished_at, notes_scanned, entries_added, dry_run, status, COALESCE(error, '')
	          FROM runs WHERE status = 'success' ORDER BY started_at DESC LIMIT 1`
	row := r.db.QueryRow(query)

	var run RunLog
	err := row.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.NotesScanned,
		&run.EntriesAdded, &run.DryRun, &run.Status, &run.Error)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}
	return &run, nil
}
