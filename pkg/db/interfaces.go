package db

import "context"

// RosterStore defines the interface for roster export operations
type RosterStore interface {
	InsertRoster(ctx context.Context, run *RosterRun, assignments []Assignment) error
	GetRosterRuns(ctx context.Context) ([]RosterRun, error)
	GetAssignments(ctx context.Context, runID string) ([]Assignment, error)
}
