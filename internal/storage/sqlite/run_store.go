// Package sqlite persists feature computation runs and their per-operation
// results.
package sqlite

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is one persisted feature computation: the series identity, the
// execution configuration and a creation timestamp.
type Run struct {
	RunID        string `json:"run_id"`
	SeriesName   string `json:"series_name"`
	SeriesID     int64  `json:"series_id"`
	SeriesLength int    `json:"series_length"`
	Parallel     bool   `json:"parallel"`
	Workers      int    `json:"workers"`
	CreatedAt    int64  `json:"created_at"`
}

// FeatureRow is one operation's persisted output within a run. CalcSeconds
// is NaN when the operation's cost could not be attributed; it is stored as
// NULL.
type FeatureRow struct {
	RunID       string  `json:"run_id"`
	OperationID int64   `json:"operation_id"`
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Quality     int     `json:"quality"`
	CalcSeconds float64 `json:"calc_seconds"`
}

// RunStore provides persistence for runs and their feature rows.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a RunStore backed by the given database.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

// Open opens (creating if necessary) a results database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	return db, nil
}

// InsertRun persists a run and its feature rows in one transaction. If
// RunID is empty a UUID is generated; the (possibly generated) ID is
// returned.
func (s *RunStore) InsertRun(run *Run, rows []FeatureRow) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}

	err := retryOnBusy(func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if _, err := tx.Exec(`
			INSERT INTO feature_runs (
				run_id, series_name, series_id, series_length,
				parallel, workers, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, run.SeriesName, run.SeriesID, run.SeriesLength,
			run.Parallel, run.Workers, run.CreatedAt,
		); err != nil {
			return err
		}

		for i := range rows {
			rows[i].RunID = run.RunID
			var calc interface{}
			if !math.IsNaN(rows[i].CalcSeconds) {
				calc = rows[i].CalcSeconds
			}
			if _, err := tx.Exec(`
				INSERT INTO feature_values (
					run_id, operation_id, name, value, quality, calc_seconds
				) VALUES (?, ?, ?, ?, ?, ?)`,
				rows[i].RunID, rows[i].OperationID, rows[i].Name,
				rows[i].Value, rows[i].Quality, calc,
			); err != nil {
				return err
			}
		}

		return tx.Commit()
	})
	if err != nil {
		return "", fmt.Errorf("inserting run %s: %w", run.RunID, err)
	}
	return run.RunID, nil
}

// GetRun returns a single run by ID.
func (s *RunStore) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, series_name, series_id, series_length,
		       parallel, workers, created_at
		FROM feature_runs
		WHERE run_id = ?`, runID)

	var r Run
	err := row.Scan(&r.RunID, &r.SeriesName, &r.SeriesID, &r.SeriesLength,
		&r.Parallel, &r.Workers, &r.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %s not found", runID)
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	return &r, nil
}

// ListRuns returns all runs, newest first.
func (s *RunStore) ListRuns() ([]*Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, series_name, series_id, series_length,
		       parallel, workers, created_at
		FROM feature_runs
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.SeriesName, &r.SeriesID, &r.SeriesLength,
			&r.Parallel, &r.Workers, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// FeaturesByRun returns a run's feature rows in operation order.
func (s *RunStore) FeaturesByRun(runID string) ([]FeatureRow, error) {
	rows, err := s.db.Query(`
		SELECT run_id, operation_id, name, value, quality, calc_seconds
		FROM feature_values
		WHERE run_id = ?
		ORDER BY operation_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	var out []FeatureRow
	for rows.Next() {
		var fr FeatureRow
		var calc sql.NullFloat64
		if err := rows.Scan(&fr.RunID, &fr.OperationID, &fr.Name,
			&fr.Value, &fr.Quality, &calc); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		if calc.Valid {
			fr.CalcSeconds = calc.Float64
		} else {
			fr.CalcSeconds = math.NaN()
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and its feature rows.
func (s *RunStore) DeleteRun(runID string) error {
	return retryOnBusy(func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if _, err := tx.Exec(`DELETE FROM feature_values WHERE run_id = ?`, runID); err != nil {
			return err
		}
		result, err := tx.Exec(`DELETE FROM feature_runs WHERE run_id = ?`, runID)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("run %s not found", runID)
		}
		return tx.Commit()
	})
}
