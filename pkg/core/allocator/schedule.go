package allocator

import (
	"fmt"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// ScheduleOutcome represents the result of a full scheduling run
type ScheduleOutcome struct {
	// Roster is the final roster after conflict resolution
	Roster *model.Roster

	// Store holds the employees with their final counters
	Store *Store

	// Config is the effective allocation config (defaults applied)
	Config AllocationConfig

	// Resolution lists relocated and unplaceable employees from the conflict pass
	Resolution Resolution

	// UnderstaffedSlots are slots holding fewer employees than the shift capacity.
	// Understaffing is an accepted outcome, not a validation error.
	UnderstaffedSlots []SlotRef

	// Workloads contains each employee's final counters in registration order
	Workloads []Workload

	// ValidationErrors contains any criterion violations found in the final roster
	ValidationErrors []SlotValidationError

	// Success indicates the roster passed validation and no employee was dropped
	Success bool
}

// Schedule runs the whole pipeline: register preferences, allocate every slot,
// resolve over-filled slots, then validate the result against the criteria.
// A validation error is returned if any employee's preferences are malformed.
func Schedule(input []model.EmployeePreferences, config AllocationConfig, criteria []Criterion) (*ScheduleOutcome, error) {
	config = config.withDefaults()

	store := NewStore()
	if err := store.RegisterAll(input); err != nil {
		return nil, fmt.Errorf("failed to register preferences: %w", err)
	}

	roster := Allocate(store, config)

	resolution := ResolveConflicts(roster, config.ShiftCapacity)
	releaseUnplaceable(roster, store, resolution)

	return buildOutcome(roster, store, config, resolution, criteria), nil
}

// releaseUnplaceable gives the day back for every dropped employee who no
// longer holds any shift that day, so counters match the roster. Employees
// still working another shift keep their counters.
func releaseUnplaceable(roster *model.Roster, store *Store, resolution Resolution) {
	for _, dropped := range resolution.Unplaceable {
		if !roster.AssignedOn(dropped.Day, dropped.EmployeeID) {
			store.release(dropped.EmployeeID)
		}
	}
}

// buildOutcome creates the final outcome report
func buildOutcome(roster *model.Roster, store *Store, config AllocationConfig, resolution Resolution, criteria []Criterion) *ScheduleOutcome {
	// Initialize with empty slices (not nil) for easier consumption
	outcome := &ScheduleOutcome{
		Roster:            roster,
		Store:             store,
		Config:            config,
		Resolution:        resolution,
		UnderstaffedSlots: []SlotRef{},
		Workloads:         store.Workloads(),
	}

	roster.Each(func(day model.Day, shift model.ShiftPeriod, employeeIDs []string) {
		if len(employeeIDs) < config.ShiftCapacity {
			outcome.UnderstaffedSlots = append(outcome.UnderstaffedSlots, SlotRef{Day: day, Shift: shift})
		}
	})

	state := &RosterState{
		Roster: roster,
		Store:  store,
		Config: config,
	}
	outcome.ValidationErrors = ValidateRoster(state, criteria)

	outcome.Success = len(outcome.ValidationErrors) == 0 && !resolution.HasUnplaceable()

	return outcome
}
