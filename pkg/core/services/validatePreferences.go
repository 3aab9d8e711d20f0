package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/weekly-roster/pkg/core/allocator"
)

// PreferenceProblem describes why one employee's preferences were rejected
type PreferenceProblem struct {
	EmployeeID string
	Problems   []string
}

// ValidatePreferences checks every entry from the source without stopping at
// the first bad one. An empty result means the source can be allocated.
func ValidatePreferences(ctx context.Context, source PreferenceSource, logger *zap.Logger) ([]PreferenceProblem, error) {
	logger.Debug("Fetching employee preferences")
	preferences, err := source.ListPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}
	logger.Debug("Found employee preferences", zap.Int("count", len(preferences)))

	problems := []PreferenceProblem{}
	store := allocator.NewStore()

	for _, entry := range preferences {
		err := store.Register(entry.EmployeeID, entry.Preferences)
		if err == nil {
			continue
		}

		var validationErr *allocator.ValidationError
		if !errors.As(err, &validationErr) {
			return nil, fmt.Errorf("failed to register employee %s: %w", entry.EmployeeID, err)
		}

		logger.Debug("Invalid preferences",
			zap.String("employee_id", validationErr.EmployeeID),
			zap.Strings("problems", validationErr.Problems))

		problems = append(problems, PreferenceProblem{
			EmployeeID: validationErr.EmployeeID,
			Problems:   validationErr.Problems,
		})
	}

	logger.Info("Preferences validated",
		zap.Int("employees", len(preferences)),
		zap.Int("valid", store.Len()),
		zap.Int("invalid", len(problems)))

	return problems, nil
}
