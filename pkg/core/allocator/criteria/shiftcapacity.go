package criteria

import (
	"fmt"

	"github.com/jakechorley/weekly-roster/pkg/core/allocator"
	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// ShiftCapacityCriterion reports slots holding more employees than the shift capacity.
// Slots below capacity are understaffed, which is reported separately by the
// scheduler and is not a violation.
type ShiftCapacityCriterion struct{}

// NewShiftCapacityCriterion creates a new ShiftCapacityCriterion
func NewShiftCapacityCriterion() *ShiftCapacityCriterion {
	return &ShiftCapacityCriterion{}
}

func (c *ShiftCapacityCriterion) Name() string {
	return "ShiftCapacity"
}

func (c *ShiftCapacityCriterion) ValidateRoster(state *allocator.RosterState) []allocator.SlotValidationError {
	var errors []allocator.SlotValidationError

	capacity := state.Config.ShiftCapacity

	state.Roster.Each(func(day model.Day, shift model.ShiftPeriod, employeeIDs []string) {
		if len(employeeIDs) > capacity {
			errors = append(errors, allocator.SlotValidationError{
				Day:           day,
				Shift:         shift,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("Slot is overfilled: has %d employees but capacity is %d", len(employeeIDs), capacity),
			})
		}
	})

	return errors
}
