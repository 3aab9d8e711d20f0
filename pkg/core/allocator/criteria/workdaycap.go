package criteria

import (
	"fmt"

	"github.com/jakechorley/weekly-roster/pkg/core/allocator"
	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// WorkdayCapCriterion checks each employee's weekly workload.
//
// Validation:
//   - Error if the employee appears on more days than the workday cap
//   - Error if the employee's DaysWorked counter doesn't match the roster
//     (counters are expected to track roster contents exactly)
type WorkdayCapCriterion struct{}

// NewWorkdayCapCriterion creates a new WorkdayCapCriterion
func NewWorkdayCapCriterion() *WorkdayCapCriterion {
	return &WorkdayCapCriterion{}
}

func (c *WorkdayCapCriterion) Name() string {
	return "WorkdayCap"
}

func (c *WorkdayCapCriterion) ValidateRoster(state *allocator.RosterState) []allocator.SlotValidationError {
	var errors []allocator.SlotValidationError

	maxWorkdays := state.Config.MaxWorkdays

	for _, employee := range state.Store.Employees() {
		daysOnRoster := state.Roster.DaysWorked(employee.ID())

		if daysOnRoster > maxWorkdays {
			day, shift := lastAssignment(state.Roster, employee.ID())
			errors = append(errors, allocator.SlotValidationError{
				Day:           day,
				Shift:         shift,
				EmployeeID:    employee.ID(),
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("Employee %s works %d days but the cap is %d", employee.ID(), daysOnRoster, maxWorkdays),
			})
		}

		if daysOnRoster != employee.DaysWorked() {
			day, shift := lastAssignment(state.Roster, employee.ID())
			errors = append(errors, allocator.SlotValidationError{
				Day:           day,
				Shift:         shift,
				EmployeeID:    employee.ID(),
				CriterionName: c.Name(),
				Description: fmt.Sprintf("Employee %s is on the roster %d days but DaysWorked is %d",
					employee.ID(), daysOnRoster, employee.DaysWorked()),
			})
		}
	}

	return errors
}

// lastAssignment finds the latest slot holding the employee, used to anchor
// workload errors to a position in the roster. Returns Monday morning if the
// employee isn't on the roster at all.
func lastAssignment(roster *model.Roster, employeeID string) (model.Day, model.ShiftPeriod) {
	var lastDay model.Day
	var lastShift model.ShiftPeriod

	for _, day := range model.Days() {
		if shift, ok := roster.ShiftOf(day, employeeID); ok {
			lastDay = day
			lastShift = shift
		}
	}

	return lastDay, lastShift
}
