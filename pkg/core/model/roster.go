package model

import "slices"

// Roster is the weekly schedule: for every day and shift, the ordered list of
// employee IDs assigned to it. The zero value is an empty roster.
type Roster struct {
	slots [NumDays][NumShiftPeriods][]string
}

// NewRoster returns an empty roster
func NewRoster() *Roster {
	return &Roster{}
}

// Slot returns a copy of the employees assigned to the given day and shift
func (r *Roster) Slot(day Day, shift ShiftPeriod) []string {
	return slices.Clone(r.slots[day][shift])
}

// SlotSize returns the number of employees assigned to the given day and shift
func (r *Roster) SlotSize(day Day, shift ShiftPeriod) int {
	return len(r.slots[day][shift])
}

// Append adds an employee to the end of the given slot
func (r *Roster) Append(day Day, shift ShiftPeriod, employeeID string) {
	r.slots[day][shift] = append(r.slots[day][shift], employeeID)
}

// SetSlot replaces the employees assigned to the given slot
func (r *Roster) SetSlot(day Day, shift ShiftPeriod, employeeIDs []string) {
	r.slots[day][shift] = slices.Clone(employeeIDs)
}

// AssignedOn returns true if the employee appears in any shift on the given day
func (r *Roster) AssignedOn(day Day, employeeID string) bool {
	_, ok := r.ShiftOf(day, employeeID)
	return ok
}

// ShiftOf returns the first shift on the given day holding the employee
func (r *Roster) ShiftOf(day Day, employeeID string) (ShiftPeriod, bool) {
	for _, shift := range ShiftPeriods() {
		if slices.Contains(r.slots[day][shift], employeeID) {
			return shift, true
		}
	}
	return 0, false
}

// DaysWorked counts the distinct days on which the employee appears
func (r *Roster) DaysWorked(employeeID string) int {
	count := 0
	for _, day := range Days() {
		if r.AssignedOn(day, employeeID) {
			count++
		}
	}
	return count
}

// Each calls fn for every slot in fixed day and shift order.
// fn receives a copy of the slot contents.
func (r *Roster) Each(fn func(day Day, shift ShiftPeriod, employeeIDs []string)) {
	for _, day := range Days() {
		for _, shift := range ShiftPeriods() {
			fn(day, shift, r.Slot(day, shift))
		}
	}
}

// Clone returns a deep copy of the roster
func (r *Roster) Clone() *Roster {
	clone := &Roster{}
	for _, day := range Days() {
		for _, shift := range ShiftPeriods() {
			if r.slots[day][shift] != nil {
				clone.slots[day][shift] = slices.Clone(r.slots[day][shift])
			}
		}
	}
	return clone
}

// Equal returns true if both rosters hold the same employees in the same order
func (r *Roster) Equal(other *Roster) bool {
	for _, day := range Days() {
		for _, shift := range ShiftPeriods() {
			if !slices.Equal(r.slots[day][shift], other.slots[day][shift]) {
				return false
			}
		}
	}
	return true
}
