package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// PublishedRosterRow represents a single slot in the published roster
type PublishedRosterRow struct {
	Date      time.Time
	Day       model.Day
	Shift     model.ShiftPeriod
	Employees []string // In assignment order
}

// PublishedRoster represents the complete published roster data
type PublishedRoster struct {
	RunID     string
	WeekStart time.Time
	Rows      []PublishedRosterRow
}

// RosterSink receives a finished roster (Google Sheets, Postgres, email)
type RosterSink interface {
	PublishRoster(ctx context.Context, roster *PublishedRoster) error
}

// BuildPublishedRoster flattens an allocation result into one row per slot,
// ordered by day then shift
func BuildPublishedRoster(result *AllocateRosterResult) (*PublishedRoster, error) {
	if result == nil || result.Roster == nil {
		return nil, fmt.Errorf("no roster to publish")
	}
	if len(result.WeekDates) != model.NumDays {
		return nil, fmt.Errorf("expected %d week dates, got %d", model.NumDays, len(result.WeekDates))
	}

	rows := make([]PublishedRosterRow, 0, model.NumDays*model.NumShiftPeriods)
	result.Roster.Each(func(day model.Day, shift model.ShiftPeriod, employeeIDs []string) {
		if employeeIDs == nil {
			employeeIDs = []string{}
		}
		rows = append(rows, PublishedRosterRow{
			Date:      result.WeekDates[day],
			Day:       day,
			Shift:     shift,
			Employees: employeeIDs,
		})
	})

	return &PublishedRoster{
		RunID:     result.RunID,
		WeekStart: result.WeekStart,
		Rows:      rows,
	}, nil
}

// PublishRoster hands the roster to each sink in order, stopping at the first failure
func PublishRoster(
	ctx context.Context,
	result *AllocateRosterResult,
	sinks []RosterSink,
	logger *zap.Logger,
) (*PublishedRoster, error) {
	published, err := BuildPublishedRoster(result)
	if err != nil {
		return nil, fmt.Errorf("failed to build published roster: %w", err)
	}

	logger.Debug("Starting publishRoster",
		zap.String("run_id", published.RunID),
		zap.Int("rows", len(published.Rows)),
		zap.Int("sinks", len(sinks)))

	for i, sink := range sinks {
		logger.Debug("Publishing to sink", zap.Int("index", i), zap.String("type", fmt.Sprintf("%T", sink)))
		if err := sink.PublishRoster(ctx, published); err != nil {
			return nil, fmt.Errorf("failed to publish roster to sink %d: %w", i, err)
		}
	}

	logger.Info("Roster published",
		zap.String("run_id", published.RunID),
		zap.String("week_start", published.WeekStart.Format("2006-01-02")),
		zap.Int("sinks", len(sinks)))

	return published, nil
}
