// Package runstore archives analysis results to a local sqlite database,
// so goal counts and labels from different field days can be compared
// after the raw CSV trees have been rotated away. One archive session
// corresponds to one (robot, task) analysis pass.
package runstore

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/heron-robotics/fieldtest.report/internal/goalmetric"
	"github.com/heron-robotics/fieldtest.report/internal/monitoring"
)

type Store struct {
	*sql.DB
}

// Open opens (creating if needed) the archive database at path and
// brings its schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	store := &Store{db}
	if err := store.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// BeginSession records a new archive session and returns its ID.
func (s *Store) BeginSession(robot, task string, threshold float64) (string, error) {
	id := uuid.NewString()
	_, err := s.Exec(
		`INSERT INTO sessions (id, robot, task, threshold) VALUES (?, ?, ?, ?)`,
		id, robot, task, threshold,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// RecordSummary stores one run's summary under a session.
func (s *Store) RecordSummary(sessionID string, sum goalmetric.Summary) error {
	var reported interface{}
	if sum.HasReported {
		reported = sum.ReportedGoals
	}
	_, err := s.Exec(
		`INSERT INTO run_summaries
		   (session_id, run_id, samples, goals, reported_goals, mean_distance, min_distance, final_distance)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, sum.RunID, sum.Samples, sum.Goals, reported,
		sum.MeanDistance, sum.MinDistance, sum.FinalDistance,
	)
	if err != nil {
		return fmt.Errorf("failed to insert summary for %s: %w", sum.RunID, err)
	}
	return nil
}

// RecordLabel stores one run's category label under a session.
func (s *Store) RecordLabel(sessionID, runID, label string) error {
	_, err := s.Exec(
		`INSERT INTO run_labels (session_id, run_id, label) VALUES (?, ?, ?)`,
		sessionID, runID, label,
	)
	if err != nil {
		return fmt.Errorf("failed to insert label for %s: %w", runID, err)
	}
	return nil
}

// ArchiveReport records a whole analysis pass in one transaction: the
// session row, every run summary and any labels collected for the runs.
func (s *Store) ArchiveReport(robot, task string, threshold float64, summaries []goalmetric.Summary, labels map[string]string) (string, error) {
	id := uuid.NewString()

	tx, err := s.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin archive transaction: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO sessions (id, robot, task, threshold) VALUES (?, ?, ?, ?)`,
		id, robot, task, threshold,
	); err != nil {
		tx.Rollback()
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	for _, sum := range summaries {
		var reported interface{}
		if sum.HasReported {
			reported = sum.ReportedGoals
		}
		if _, err := tx.Exec(
			`INSERT INTO run_summaries
			   (session_id, run_id, samples, goals, reported_goals, mean_distance, min_distance, final_distance)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, sum.RunID, sum.Samples, sum.Goals, reported,
			sum.MeanDistance, sum.MinDistance, sum.FinalDistance,
		); err != nil {
			tx.Rollback()
			return "", fmt.Errorf("failed to insert summary for %s: %w", sum.RunID, err)
		}

		if label, ok := labels[sum.RunID]; ok {
			if _, err := tx.Exec(
				`INSERT INTO run_labels (session_id, run_id, label) VALUES (?, ?, ?)`,
				id, sum.RunID, label,
			); err != nil {
				tx.Rollback()
				return "", fmt.Errorf("failed to insert label for %s: %w", sum.RunID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit archive transaction: %w", err)
	}

	monitoring.Logf("archived %d run summaries for %s/%s (session %s)", len(summaries), robot, task, id)
	return id, nil
}

// SummaryRow is one archived run summary with its optional label.
type SummaryRow struct {
	RunID         string
	Samples       int
	Goals         int
	ReportedGoals *int
	MeanDistance  float64
	MinDistance   float64
	FinalDistance float64
	Label         string
}

// Summaries returns the archived summaries for one session in run ID
// order, joined with any labels.
func (s *Store) Summaries(sessionID string) ([]SummaryRow, error) {
	rows, err := s.Query(
		`SELECT rs.run_id, rs.samples, rs.goals, rs.reported_goals,
		        rs.mean_distance, rs.min_distance, rs.final_distance,
		        COALESCE(rl.label, '')
		   FROM run_summaries rs
		   LEFT JOIN run_labels rl
		     ON rl.session_id = rs.session_id AND rl.run_id = rs.run_id
		  WHERE rs.session_id = ?
		  ORDER BY rs.run_id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var out []SummaryRow
	for rows.Next() {
		var row SummaryRow
		var reported sql.NullInt64
		if err := rows.Scan(&row.RunID, &row.Samples, &row.Goals, &reported,
			&row.MeanDistance, &row.MinDistance, &row.FinalDistance, &row.Label); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		if reported.Valid {
			v := int(reported.Int64)
			row.ReportedGoals = &v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
