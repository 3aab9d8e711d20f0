package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/weekly-roster/pkg/core/allocator"
	"github.com/jakechorley/weekly-roster/pkg/core/allocator/criteria"
	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// PreferenceSource provides the ordered employee preferences for a run.
// Slice order is registration order.
type PreferenceSource interface {
	ListPreferences(ctx context.Context) ([]model.EmployeePreferences, error)
}

// AllocateRosterOptions configures a single allocation run
type AllocateRosterOptions struct {
	// Config holds the slot capacity and workday cap (zero values use the defaults)
	Config allocator.AllocationConfig

	// WeekStart is the first day of the roster week. When zero, the next
	// occurrence of WeekRule after Now is used.
	WeekStart time.Time

	// WeekRule is the RRULE selecting week start days (defaults to Mondays)
	WeekRule string

	// Now is the reference time for computing the next week (defaults to time.Now)
	Now time.Time
}

// AllocateRosterResult contains the allocation results
type AllocateRosterResult struct {
	RunID             string
	WeekStart         time.Time
	WeekDates         []time.Time
	Success           bool
	Roster            *model.Roster
	Workloads         []allocator.Workload
	Resolution        allocator.Resolution
	UnderstaffedSlots []allocator.SlotRef
	ValidationErrors  []allocator.SlotValidationError
	Satisfaction      []criteria.EmployeeSatisfaction
}

// AllocateRoster fetches preferences from the source and runs the allocation
// pipeline for one week. Degraded outcomes (understaffed slots, dropped
// employees) are logged as warnings and reported in the result rather than
// returned as errors.
func AllocateRoster(
	ctx context.Context,
	source PreferenceSource,
	opts AllocateRosterOptions,
	logger *zap.Logger,
) (*AllocateRosterResult, error) {
	logger.Debug("Starting allocateRoster",
		zap.Int("shift_capacity", opts.Config.ShiftCapacity),
		zap.Int("max_workdays", opts.Config.MaxWorkdays),
		zap.String("week_rule", opts.WeekRule))

	// Step 1: Resolve the target week
	weekStart, err := resolveWeekStart(opts)
	if err != nil {
		return nil, err
	}

	weekDates, err := WeekDates(weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate week dates: %w", err)
	}
	logger.Debug("Target week",
		zap.String("start", weekStart.Format("2006-01-02")),
		zap.String("end", weekDates[len(weekDates)-1].Format("2006-01-02")))

	// Step 2: Fetch preferences
	logger.Debug("Fetching employee preferences")
	preferences, err := source.ListPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}
	logger.Debug("Found employee preferences", zap.Int("count", len(preferences)))

	if len(preferences) == 0 {
		return nil, fmt.Errorf("no employee preferences found")
	}

	// Step 3: Run the allocation pipeline
	logger.Info("Running allocation algorithm", zap.Int("employees", len(preferences)))
	outcome, err := allocator.Schedule(preferences, opts.Config, StandardCriteria())
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	logger.Info("Allocation completed",
		zap.Bool("success", outcome.Success),
		zap.Int("validation_errors", len(outcome.ValidationErrors)),
		zap.Int("understaffed_slots", len(outcome.UnderstaffedSlots)),
		zap.Int("relocations", len(outcome.Resolution.Relocations)),
		zap.Int("unplaceable", len(outcome.Resolution.Unplaceable)))

	logResolution(logger, outcome.Resolution)

	for _, slot := range outcome.UnderstaffedSlots {
		logger.Warn("Understaffed slot",
			zap.String("day", slot.Day.String()),
			zap.String("shift", slot.Shift.String()),
			zap.Int("assigned", outcome.Roster.SlotSize(slot.Day, slot.Shift)),
			zap.Int("capacity", outcome.Config.ShiftCapacity))
	}

	// Log validation errors
	for _, verr := range outcome.ValidationErrors {
		logger.Warn("Validation error",
			zap.String("criterion", verr.CriterionName),
			zap.String("day", verr.Day.String()),
			zap.String("shift", verr.Shift.String()),
			zap.String("employee_id", verr.EmployeeID),
			zap.String("description", verr.Description))
	}

	state := &allocator.RosterState{
		Roster: outcome.Roster,
		Store:  outcome.Store,
		Config: outcome.Config,
	}
	satisfaction := criteria.NewPreferenceSatisfactionCriterion().Score(state)

	result := &AllocateRosterResult{
		RunID:             uuid.New().String(),
		WeekStart:         weekStart,
		WeekDates:         weekDates,
		Success:           outcome.Success,
		Roster:            outcome.Roster,
		Workloads:         outcome.Workloads,
		Resolution:        outcome.Resolution,
		UnderstaffedSlots: outcome.UnderstaffedSlots,
		ValidationErrors:  outcome.ValidationErrors,
		Satisfaction:      satisfaction,
	}

	logger.Debug("Roster run created", zap.String("run_id", result.RunID))

	return result, nil
}

// resolveWeekStart returns the explicit week start, or the next occurrence of
// the week rule after the reference time
func resolveWeekStart(opts AllocateRosterOptions) (time.Time, error) {
	if !opts.WeekStart.IsZero() {
		weekStart := startOfDay(opts.WeekStart)
		if weekStart.Weekday() != time.Monday {
			return time.Time{}, fmt.Errorf("week start %s is a %s, expected a Monday",
				weekStart.Format("2006-01-02"), weekStart.Weekday())
		}
		return weekStart, nil
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	weekStart, err := NextWeekStart(now, opts.WeekRule)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to calculate week start: %w", err)
	}

	if weekStart.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("week rule %q selected %s, expected a Monday", opts.WeekRule, weekStart.Weekday())
	}

	return weekStart, nil
}

// logResolution logs each conflict resolution outcome. Employees who lost the
// day are warnings; an excess assignment dropped from someone still working
// another shift is only logged at Debug.
func logResolution(logger *zap.Logger, resolution allocator.Resolution) {
	for _, relocation := range resolution.Relocations {
		logger.Debug("Relocated employee",
			zap.String("employee_id", relocation.EmployeeID),
			zap.String("day", relocation.Day.String()),
			zap.String("from", relocation.From.String()),
			zap.String("to", relocation.To.String()))
	}

	for _, dropped := range resolution.Unplaceable {
		fields := []zap.Field{
			zap.String("employee_id", dropped.EmployeeID),
			zap.String("day", dropped.Day.String()),
			zap.String("shift", dropped.Shift.String()),
		}

		switch dropped.Reason {
		case allocator.AlreadyAssigned:
			logger.Debug("Removed duplicate assignment, employee keeps another shift that day", fields...)
		default:
			logger.Warn("Employee could not be placed and does not work the day", fields...)
		}
	}
}
