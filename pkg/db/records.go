package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jakechorley/weekly-roster/pkg/core/services"
)

// NewRosterRecords converts a published roster into the rows stored for it.
// Empty slots produce no assignment rows.
func NewRosterRecords(published *services.PublishedRoster, publishedAt time.Time) (*RosterRun, []Assignment, error) {
	if published == nil {
		return nil, nil, fmt.Errorf("no roster to store")
	}
	if published.RunID == "" {
		return nil, nil, fmt.Errorf("roster has no run ID")
	}

	assignments := []Assignment{}
	for _, row := range published.Rows {
		for i, employeeID := range row.Employees {
			assignments = append(assignments, Assignment{
				ID:         uuid.NewString(),
				RunID:      published.RunID,
				ShiftDate:  row.Date.Format("2006-01-02"),
				Day:        row.Day.String(),
				Shift:      row.Shift.String(),
				EmployeeID: employeeID,
				Position:   i + 1,
			})
		}
	}

	run := &RosterRun{
		ID:          published.RunID,
		WeekStart:   published.WeekStart.Format("2006-01-02"),
		PublishedAt: publishedAt.UTC().Format(time.RFC3339),
		Assigned:    len(assignments),
	}

	return run, assignments, nil
}
