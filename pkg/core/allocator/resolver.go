package allocator

import (
	"fmt"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// Relocation records an excess employee moved to another shift on the same day
type Relocation struct {
	Day        model.Day
	From       model.ShiftPeriod
	To         model.ShiftPeriod
	EmployeeID string
}

// UnplaceableReason explains why an excess employee could not be relocated
type UnplaceableReason int

const (
	// NoRoom means every shift that day was full. The employee no longer
	// works the day.
	NoRoom UnplaceableReason = iota

	// AlreadyAssigned means the employee holds another shift that day and
	// keeps it. Only the excess assignment was removed.
	AlreadyAssigned
)

func (r UnplaceableReason) String() string {
	switch r {
	case NoRoom:
		return "no room"
	case AlreadyAssigned:
		return "already assigned"
	default:
		return fmt.Sprintf("UnplaceableReason(%d)", int(r))
	}
}

// Unplaceable records an excess employee removed from an over-filled slot
// without being moved to another shift
type Unplaceable struct {
	Day        model.Day
	Shift      model.ShiftPeriod
	EmployeeID string
	Reason     UnplaceableReason
}

// Resolution is the outcome of a conflict resolution pass
type Resolution struct {
	Relocations []Relocation
	Unplaceable []Unplaceable
}

// HasUnplaceable returns true if any employee could not be placed
func (r Resolution) HasUnplaceable() bool {
	return len(r.Unplaceable) > 0
}

// ResolveConflicts caps every over-filled slot at capacity. The first
// `capacity` employees of a slot keep their place; each excess employee is
// moved to the first shift that day (morning, afternoon, evening) with room.
// Employees that fit nowhere, or already hold another shift that day, lose the
// excess assignment and are reported as Unplaceable with the reason.
func ResolveConflicts(roster *model.Roster, capacity int) Resolution {
	if capacity <= 0 {
		capacity = DefaultShiftCapacity
	}

	resolution := Resolution{
		Relocations: []Relocation{},
		Unplaceable: []Unplaceable{},
	}

	for _, day := range model.Days() {
		for _, shift := range model.ShiftPeriods() {
			slot := roster.Slot(day, shift)
			if len(slot) <= capacity {
				continue
			}

			excess := slot[capacity:]
			roster.SetSlot(day, shift, slot[:capacity])

			for _, employeeID := range excess {
				target, reason, ok := findAlternateShift(roster, day, employeeID, capacity)
				if !ok {
					resolution.Unplaceable = append(resolution.Unplaceable, Unplaceable{
						Day:        day,
						Shift:      shift,
						EmployeeID: employeeID,
						Reason:     reason,
					})
					continue
				}

				roster.Append(day, target, employeeID)
				resolution.Relocations = append(resolution.Relocations, Relocation{
					Day:        day,
					From:       shift,
					To:         target,
					EmployeeID: employeeID,
				})
			}
		}
	}

	return resolution
}

// findAlternateShift returns the first shift on the day with spare capacity.
// An employee who already holds another shift that day has no alternate.
func findAlternateShift(roster *model.Roster, day model.Day, employeeID string, capacity int) (model.ShiftPeriod, UnplaceableReason, bool) {
	if roster.AssignedOn(day, employeeID) {
		return 0, AlreadyAssigned, false
	}

	for _, shift := range model.ShiftPeriods() {
		if roster.SlotSize(day, shift) < capacity {
			return shift, 0, true
		}
	}
	return 0, NoRoom, false
}
