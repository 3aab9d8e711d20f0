package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// EmployeeSummary is an employee with their first choice for each day
type EmployeeSummary struct {
	EmployeeID string
	TopChoices map[model.Day]model.ShiftPeriod
}

// ListEmployees returns the employees from the source in registration order.
// Days with an empty ranking are left out of TopChoices.
func ListEmployees(ctx context.Context, source PreferenceSource, logger *zap.Logger) ([]EmployeeSummary, error) {
	logger.Debug("Fetching employee preferences")
	preferences, err := source.ListPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}

	summaries := make([]EmployeeSummary, 0, len(preferences))
	for _, entry := range preferences {
		summary := EmployeeSummary{
			EmployeeID: entry.EmployeeID,
			TopChoices: make(map[model.Day]model.ShiftPeriod),
		}
		for day, ranking := range entry.Preferences {
			if len(ranking) > 0 {
				summary.TopChoices[day] = ranking[0]
			}
		}
		summaries = append(summaries, summary)
	}

	logger.Debug("Listed employees", zap.Int("count", len(summaries)))

	return summaries, nil
}
