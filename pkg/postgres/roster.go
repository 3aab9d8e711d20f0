package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/weekly-roster/pkg/core/services"
	"github.com/jakechorley/weekly-roster/pkg/db"
)

// InsertRoster stores a run and its assignments in one transaction
func (d *DB) InsertRoster(ctx context.Context, run *db.RosterRun, assignments []db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO roster_run (id, week_start, published_at, assigned)
		VALUES ($1, $2, $3, $4)
	`, run.ID, run.WeekStart, run.PublishedAt, run.Assigned)
	if err != nil {
		return fmt.Errorf("failed to insert roster run: %w", err)
	}

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, run_id, shift_date, day, shift, employee_id, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, a.ID, a.RunID, a.ShiftDate, a.Day, a.Shift, a.EmployeeID, a.Position)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRosterRuns retrieves all roster runs, newest week first
func (d *DB) GetRosterRuns(ctx context.Context) ([]db.RosterRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, week_start, published_at, assigned
		FROM roster_run
		ORDER BY week_start DESC, published_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster runs: %w", err)
	}
	defer rows.Close()

	var runs []db.RosterRun
	for rows.Next() {
		var r db.RosterRun
		var weekStart, publishedAt time.Time
		if err := rows.Scan(&r.ID, &weekStart, &publishedAt, &r.Assigned); err != nil {
			return nil, fmt.Errorf("failed to scan roster run: %w", err)
		}
		r.WeekStart = weekStart.Format("2006-01-02")
		r.PublishedAt = publishedAt.UTC().Format(time.RFC3339)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster runs: %w", err)
	}

	return runs, nil
}

// GetAssignments retrieves the assignments of one run in roster order
func (d *DB) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, shift_date, day, shift, employee_id, position
		FROM assignment
		WHERE run_id = $1
		ORDER BY shift_date,
			CASE shift WHEN 'morning' THEN 0 WHEN 'afternoon' THEN 1 ELSE 2 END,
			position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var shiftDate time.Time
		if err := rows.Scan(&a.ID, &a.RunID, &shiftDate, &a.Day, &a.Shift, &a.EmployeeID, &a.Position); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.ShiftDate = shiftDate.Format("2006-01-02")
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// RosterSink publishes rosters into a RosterStore
type RosterSink struct {
	store  db.RosterStore
	now    func() time.Time
	logger *zap.Logger
}

// NewRosterSink creates a sink writing to the given store
func NewRosterSink(store db.RosterStore, logger *zap.Logger) *RosterSink {
	return &RosterSink{
		store:  store,
		now:    time.Now,
		logger: logger,
	}
}

// PublishRoster converts the roster to rows and inserts them
func (s *RosterSink) PublishRoster(ctx context.Context, published *services.PublishedRoster) error {
	run, assignments, err := db.NewRosterRecords(published, s.now())
	if err != nil {
		return fmt.Errorf("failed to build roster records: %w", err)
	}

	if err := s.store.InsertRoster(ctx, run, assignments); err != nil {
		return fmt.Errorf("failed to store roster: %w", err)
	}

	s.logger.Info("Stored roster in database",
		zap.String("run_id", run.ID),
		zap.String("week_start", run.WeekStart),
		zap.Int("assignments", len(assignments)))

	return nil
}
