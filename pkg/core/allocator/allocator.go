package allocator

import (
	"slices"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// Allocator fills the weekly roster one slot at a time
type Allocator struct {
	store  *Store
	config AllocationConfig
	roster *model.Roster
}

// Allocate builds the initial roster from the store's registered preferences.
// Days are processed Monday to Sunday and shifts morning to evening. Employee
// counters in the store are updated as assignments are made.
func Allocate(store *Store, config AllocationConfig) *model.Roster {
	allocator := &Allocator{
		store:  store,
		config: config.withDefaults(),
		roster: model.NewRoster(),
	}

	for _, day := range model.Days() {
		allocator.allocateDay(day)
	}

	return allocator.roster
}

// allocateDay runs the per-day pass. Every employee starts the day unassigned;
// each shift consumes from the set and hands the remainder to the next shift.
// Returns the employees left without a shift that day.
func (a *Allocator) allocateDay(day model.Day) *unassignedSet {
	unassigned := newUnassignedSet(a.store.Employees())

	for _, shift := range model.ShiftPeriods() {
		unassigned = a.fillSlot(day, shift, unassigned)
	}

	return unassigned
}

// fillSlot selects and assigns employees for a single (day, shift) slot and
// returns the employees still unassigned today
func (a *Allocator) fillSlot(day model.Day, shift model.ShiftPeriod, unassigned *unassignedSet) *unassignedSet {
	capacity := a.config.ShiftCapacity

	preferred := a.preferredCandidates(day, shift, unassigned)

	if len(preferred) >= capacity {
		// Fewest shifts so far wins, preference rank breaks ties
		slices.SortStableFunc(preferred, func(x, y *Employee) int {
			if x.shiftsAssigned != y.shiftsAssigned {
				return x.shiftsAssigned - y.shiftsAssigned
			}
			return x.Ranking(day).Rank(shift) - y.Ranking(day).Rank(shift)
		})

		unassigned = a.assignToShift(day, shift, preferred[:capacity], unassigned)
	} else {
		// Not enough employees want this shift, pad with anyone still free today
		fallback := a.fallbackCandidates(unassigned, preferred)
		sortByWorkload(fallback)

		needed := min(capacity-len(preferred), len(fallback))
		candidates := append(slices.Clone(preferred), fallback[:needed]...)

		unassigned = a.assignToShift(day, shift, candidates, unassigned)
	}

	// Top-up from the whole pool to reach the staffing floor
	if size := a.roster.SlotSize(day, shift); size < capacity {
		additional := a.topUpCandidates(day)
		sortByWorkload(additional)

		needed := min(capacity-size, len(additional))
		unassigned = a.assignToShift(day, shift, additional[:needed], unassigned)
	}

	return unassigned
}

// preferredCandidates returns unassigned employees below the workday cap whose
// ranking for the day includes the shift at any position
func (a *Allocator) preferredCandidates(day model.Day, shift model.ShiftPeriod, unassigned *unassignedSet) []*Employee {
	var candidates []*Employee
	for _, e := range unassigned.list() {
		if e.Ranking(day).Contains(shift) && e.hasCapacity(a.config.MaxWorkdays) {
			candidates = append(candidates, e)
		}
	}
	return candidates
}

// fallbackCandidates returns unassigned employees below the workday cap that
// are not already preferred candidates
func (a *Allocator) fallbackCandidates(unassigned *unassignedSet, preferred []*Employee) []*Employee {
	var candidates []*Employee
	for _, e := range unassigned.list() {
		if e.hasCapacity(a.config.MaxWorkdays) && !slices.Contains(preferred, e) {
			candidates = append(candidates, e)
		}
	}
	return candidates
}

// topUpCandidates scans every registered employee, not just those unassigned
// today, for anyone below the cap who holds no shift on the day
func (a *Allocator) topUpCandidates(day model.Day) []*Employee {
	var candidates []*Employee
	for _, e := range a.store.Employees() {
		if e.hasCapacity(a.config.MaxWorkdays) && !a.roster.AssignedOn(day, e.id) {
			candidates = append(candidates, e)
		}
	}
	return candidates
}

// assignToShift is the only place counters are incremented. Candidates no
// longer unassigned today are skipped.
func (a *Allocator) assignToShift(day model.Day, shift model.ShiftPeriod, candidates []*Employee, unassigned *unassignedSet) *unassignedSet {
	for _, e := range candidates {
		if !unassigned.contains(e.id) {
			continue
		}

		a.roster.Append(day, shift, e.id)
		a.store.record(e)
		unassigned = unassigned.without(e.id)
	}
	return unassigned
}

// sortByWorkload orders employees by shifts assigned so far, keeping
// registration order for ties
func sortByWorkload(employees []*Employee) {
	slices.SortStableFunc(employees, func(x, y *Employee) int {
		return x.shiftsAssigned - y.shiftsAssigned
	})
}

// unassignedSet is the set of employees not yet placed on the current day,
// kept in registration order
type unassignedSet struct {
	order   []*Employee
	members map[string]bool
}

func newUnassignedSet(employees []*Employee) *unassignedSet {
	members := make(map[string]bool, len(employees))
	for _, e := range employees {
		members[e.id] = true
	}
	return &unassignedSet{
		order:   employees,
		members: members,
	}
}

func (u *unassignedSet) contains(employeeID string) bool {
	return u.members[employeeID]
}

// without removes the employee from the set and returns it
func (u *unassignedSet) without(employeeID string) *unassignedSet {
	delete(u.members, employeeID)
	return u
}

// list returns the members in registration order
func (u *unassignedSet) list() []*Employee {
	remaining := make([]*Employee, 0, len(u.members))
	for _, e := range u.order {
		if u.members[e.id] {
			remaining = append(remaining, e)
		}
	}
	return remaining
}

func (u *unassignedSet) size() int {
	return len(u.members)
}
