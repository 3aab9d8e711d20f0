package allocator

import (
	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

const (
	// DefaultShiftCapacity is the staffing target for every slot
	DefaultShiftCapacity = 2

	// DefaultMaxWorkdays is the default weekly workday cap per employee
	DefaultMaxWorkdays = 5
)

// AllocationConfig contains the tunable limits for an allocation run
type AllocationConfig struct {
	// ShiftCapacity is the number of employees each slot is filled to (and capped at)
	ShiftCapacity int

	// MaxWorkdays is the number of days an employee may work in the week.
	// Employees with DaysWorked >= MaxWorkdays are never assigned again.
	MaxWorkdays int
}

// DefaultAllocationConfig returns the standard limits: 2 per slot, 5 days per employee
func DefaultAllocationConfig() AllocationConfig {
	return AllocationConfig{
		ShiftCapacity: DefaultShiftCapacity,
		MaxWorkdays:   DefaultMaxWorkdays,
	}
}

// withDefaults fills zero or negative limits with the defaults
func (c AllocationConfig) withDefaults() AllocationConfig {
	if c.ShiftCapacity <= 0 {
		c.ShiftCapacity = DefaultShiftCapacity
	}
	if c.MaxWorkdays <= 0 {
		c.MaxWorkdays = DefaultMaxWorkdays
	}
	return c
}

// Employee holds an employee's ranked preferences and running counters.
// Counters are only changed by the allocator's assignment operation.
type Employee struct {
	id          string
	preferences model.Preferences

	daysWorked     int
	shiftsAssigned int
}

// ID returns the employee identifier
func (e *Employee) ID() string {
	return e.id
}

// Ranking returns the employee's ranking for the given day
func (e *Employee) Ranking(day model.Day) model.Ranking {
	return e.preferences[day]
}

// TopChoice returns the employee's first-ranked shift for the given day
func (e *Employee) TopChoice(day model.Day) model.ShiftPeriod {
	return e.preferences[day][0]
}

// DaysWorked returns the number of days the employee has been assigned this week
func (e *Employee) DaysWorked() int {
	return e.daysWorked
}

// ShiftsAssigned returns the number of shifts the employee has been assigned this week
func (e *Employee) ShiftsAssigned() int {
	return e.shiftsAssigned
}

// hasCapacity returns true if the employee is below the workday cap
func (e *Employee) hasCapacity(maxWorkdays int) bool {
	return e.daysWorked < maxWorkdays
}

// SlotRef identifies a single (day, shift) slot in the roster
type SlotRef struct {
	Day   model.Day
	Shift model.ShiftPeriod
}

// Workload summarises an employee's final counters
type Workload struct {
	EmployeeID     string
	DaysWorked     int
	ShiftsAssigned int
}

// SlotValidationError represents a constraint violation found in the final roster
type SlotValidationError struct {
	Day           model.Day
	Shift         model.ShiftPeriod
	EmployeeID    string // empty when the error concerns the slot as a whole
	CriterionName string
	Description   string
}

// RosterState is the read-only view handed to criteria after allocation
type RosterState struct {
	Roster *model.Roster
	Store  *Store
	Config AllocationConfig
}
