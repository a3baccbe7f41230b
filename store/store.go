// Package store persists ranked batch results to SQLite.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	photoscore "github.com/oj-kentd/photo-analysis-app"
)

type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run describes one persisted batch run.
type Run struct {
	ID        string
	CreatedAt time.Time
	// Submitted counts the photos handed to the batch; Ranked the ones
	// that survived scoring.
	Submitted int
	Ranked    int
}

// Result is one persisted row of a ranked result set. The simulated score
// distribution is a presentation artifact and is not stored.
type Result struct {
	Rank    int
	PhotoID string

	Blur      float64
	Noise     float64
	Exposure  float64
	Technical float64

	Harmony       float64
	Composition   float64
	Contrast      float64
	AestheticMean float64

	FaceCount  int
	Expression float64

	Overall float64
}

// SaveRun persists a ranked result set under a fresh run id and returns it.
// results must already be in rank order.
func (s *Store) SaveRun(submitted int, results []photoscore.Analysis) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO runs (id, submitted, ranked) VALUES (?, ?, ?)",
		runID, submitted, len(results),
	); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for i, a := range results {
		if _, err := tx.Exec(`INSERT INTO results (
			run_id, rank, photo_id,
			blur, noise, exposure, technical,
			harmony, composition, contrast, aesthetic_mean,
			face_count, expression, overall
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i+1, a.PhotoID,
			a.Technical.Blur, a.Technical.Noise, a.Technical.Exposure, a.Technical.Overall,
			a.Aesthetic.Harmony, a.Aesthetic.Composition, a.Aesthetic.Contrast, a.Aesthetic.Mean,
			a.Faces.FaceCount, a.Faces.Best, a.Overall,
		); err != nil {
			return "", fmt.Errorf("failed to insert result %s: %w", a.PhotoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.db.Query("SELECT id, created_at, submitted, ranked FROM runs ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Submitted, &r.Ranked); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunResults returns the ranked rows of one run, in rank order.
func (s *Store) RunResults(runID string) ([]Result, error) {
	rows, err := s.db.Query(`SELECT
		rank, photo_id,
		blur, noise, exposure, technical,
		harmony, composition, contrast, aesthetic_mean,
		face_count, expression, overall
	FROM results WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.Rank, &r.PhotoID,
			&r.Blur, &r.Noise, &r.Exposure, &r.Technical,
			&r.Harmony, &r.Composition, &r.Contrast, &r.AestheticMean,
			&r.FaceCount, &r.Expression, &r.Overall,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
