package criteria

import (
	"fmt"

	"github.com/jakechorley/weekly-roster/pkg/core/allocator"
	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// NoDoubleBookingCriterion ensures no employee holds more than one slot on the same day.
//
// Validation:
//   - An employee listed twice in the same slot is an error on that slot
//   - An employee listed in two shifts on the same day is an error on the later shift
type NoDoubleBookingCriterion struct{}

// NewNoDoubleBookingCriterion creates a new NoDoubleBookingCriterion
func NewNoDoubleBookingCriterion() *NoDoubleBookingCriterion {
	return &NoDoubleBookingCriterion{}
}

func (c *NoDoubleBookingCriterion) Name() string {
	return "NoDoubleBooking"
}

func (c *NoDoubleBookingCriterion) ValidateRoster(state *allocator.RosterState) []allocator.SlotValidationError {
	var errors []allocator.SlotValidationError

	for _, day := range model.Days() {
		// Shift each employee was first seen in today
		firstSeen := make(map[string]model.ShiftPeriod)

		for _, shift := range model.ShiftPeriods() {
			for _, employeeID := range state.Roster.Slot(day, shift) {
				previous, seen := firstSeen[employeeID]
				if !seen {
					firstSeen[employeeID] = shift
					continue
				}

				description := fmt.Sprintf("Employee %s is assigned to %s more than once", employeeID, shift)
				if previous != shift {
					description = fmt.Sprintf("Employee %s is assigned to both %s and %s", employeeID, previous, shift)
				}

				errors = append(errors, allocator.SlotValidationError{
					Day:           day,
					Shift:         shift,
					EmployeeID:    employeeID,
					CriterionName: c.Name(),
					Description:   description,
				})
			}
		}
	}

	return errors
}
