package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

func TestAllocate_SampleEmployees(t *testing.T) {
	store := newTestStore(t, sampleEmployees())

	roster := Allocate(store, DefaultAllocationConfig())

	requireDay(t, roster, model.Monday, slotRow{{"A", "D"}, {"B", "E"}, {"C", "H"}})
	requireDay(t, roster, model.Tuesday, slotRow{{"F", "I"}, {"G", "J"}, {"C", "H"}})
	requireDay(t, roster, model.Wednesday, slotRow{{"A", "D"}, {"B", "E"}, {"I", "J"}})
	requireDay(t, roster, model.Thursday, slotRow{{"F", "G"}, {"B", "E"}, {"C", "H"}})
	requireDay(t, roster, model.Friday, slotRow{{"A", "D"}, {"G", "J"}, {"I", "F"}})
	requireDay(t, roster, model.Saturday, slotRow{{"A", "D"}, {"B", "E"}, {"C", "H"}})
	requireDay(t, roster, model.Sunday, slotRow{{"F", "I"}, {"G", "J"}, {"C", "H"}})

	expectedDays := map[string]int{
		"A": 4, "B": 4, "C": 5, "D": 4, "E": 4,
		"F": 4, "G": 4, "H": 5, "I": 4, "J": 4,
	}
	for _, e := range store.Employees() {
		assert.Equal(t, expectedDays[e.ID()], e.DaysWorked(), e.ID())
		assert.Equal(t, e.DaysWorked(), e.ShiftsAssigned(), e.ID())
		assert.Equal(t, roster.DaysWorked(e.ID()), e.DaysWorked(), e.ID())
	}
}

func TestAllocate_EveryoneWantsMorning(t *testing.T) {
	ranking := []model.ShiftPeriod{model.Morning, model.Afternoon, model.Evening}
	store := newTestStore(t, uniformEmployees(ranking, "A", "B", "C"))

	roster := Allocate(store, DefaultAllocationConfig())

	// Morning takes two, the third employee falls through to the afternoon
	for _, day := range []model.Day{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday} {
		requireDay(t, roster, day, slotRow{{"A", "B"}, {"C"}, nil})
	}

	// Everyone hit the cap on Friday
	requireDay(t, roster, model.Saturday, slotRow{})
	requireDay(t, roster, model.Sunday, slotRow{})

	for _, e := range store.Employees() {
		assert.Equal(t, DefaultMaxWorkdays, e.DaysWorked(), e.ID())
	}
}

func TestAllocate_EmployeeAtCapIsNeverAssigned(t *testing.T) {
	store := newTestStore(t, sampleEmployees())

	capped, ok := store.Get("A")
	require.True(t, ok)
	capped.daysWorked = DefaultMaxWorkdays

	roster := Allocate(store, DefaultAllocationConfig())

	roster.Each(func(day model.Day, shift model.ShiftPeriod, employeeIDs []string) {
		assert.NotContains(t, employeeIDs, "A", "%s %s", day, shift)
	})
	assert.Equal(t, DefaultMaxWorkdays, capped.DaysWorked())
	assert.Equal(t, 0, capped.ShiftsAssigned())

	// Monday morning goes to the next morning people instead
	requireDay(t, roster, model.Monday, slotRow{{"D", "F"}, {"B", "E"}, {"C", "H"}})
}

func TestAllocate_Deterministic(t *testing.T) {
	first := Allocate(newTestStore(t, sampleEmployees()), DefaultAllocationConfig())
	second := Allocate(newTestStore(t, sampleEmployees()), DefaultAllocationConfig())

	assert.True(t, first.Equal(second))
}

func TestAllocate_Invariants(t *testing.T) {
	m, a, e := model.Morning, model.Afternoon, model.Evening

	tests := []struct {
		name    string
		entries []model.EmployeePreferences
		config  AllocationConfig
	}{
		{
			name:    "sample employees",
			entries: sampleEmployees(),
			config:  DefaultAllocationConfig(),
		},
		{
			name:    "everyone prefers evening",
			entries: uniformEmployees([]model.ShiftPeriod{e, a, m}, "A", "B", "C", "D", "E"),
			config:  DefaultAllocationConfig(),
		},
		{
			name:    "single employee",
			entries: uniformEmployees([]model.ShiftPeriod{a, m, e}, "solo"),
			config:  DefaultAllocationConfig(),
		},
		{
			name:    "larger capacity and lower cap",
			entries: sampleEmployees(),
			config:  AllocationConfig{ShiftCapacity: 3, MaxWorkdays: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, tt.entries)
			roster := Allocate(store, tt.config)

			roster.Each(func(day model.Day, shift model.ShiftPeriod, employeeIDs []string) {
				assert.LessOrEqual(t, len(employeeIDs), tt.config.ShiftCapacity, "%s %s", day, shift)
			})

			for _, day := range model.Days() {
				seen := map[string]bool{}
				for _, shift := range model.ShiftPeriods() {
					for _, id := range roster.Slot(day, shift) {
						assert.False(t, seen[id], "%s double booked on %s", id, day)
						seen[id] = true
					}
				}
			}

			for _, employee := range store.Employees() {
				assert.LessOrEqual(t, employee.DaysWorked(), tt.config.MaxWorkdays, employee.ID())
				assert.Equal(t, roster.DaysWorked(employee.ID()), employee.DaysWorked(), employee.ID())
			}
		})
	}
}

func TestAllocate_Fairness(t *testing.T) {
	store := newTestStore(t, sampleEmployees())
	Allocate(store, DefaultAllocationConfig())

	lowest, highest := DefaultMaxWorkdays, 0
	for _, e := range store.Employees() {
		lowest = min(lowest, e.ShiftsAssigned())
		highest = max(highest, e.ShiftsAssigned())
	}

	assert.LessOrEqual(t, highest-lowest, 1)
}

func TestAllocate_ZeroConfigUsesDefaults(t *testing.T) {
	withDefaults := Allocate(newTestStore(t, sampleEmployees()), DefaultAllocationConfig())
	withZero := Allocate(newTestStore(t, sampleEmployees()), AllocationConfig{})

	assert.True(t, withDefaults.Equal(withZero))
}

func TestAllocate_EmptyStore(t *testing.T) {
	roster := Allocate(NewStore(), DefaultAllocationConfig())

	roster.Each(func(day model.Day, shift model.ShiftPeriod, employeeIDs []string) {
		assert.Empty(t, employeeIDs)
	})
}

func TestAllocator_AllocateDay_ReturnsUnassigned(t *testing.T) {
	store := newTestStore(t, sampleEmployees())
	allocator := &Allocator{
		store:  store,
		config: DefaultAllocationConfig(),
		roster: model.NewRoster(),
	}

	unassigned := allocator.allocateDay(model.Monday)

	assert.Equal(t, 4, unassigned.size())
	ids := []string{}
	for _, e := range unassigned.list() {
		ids = append(ids, e.ID())
	}
	assert.Equal(t, []string{"F", "G", "I", "J"}, ids)
}

func TestAllocator_FillSlot_SortsByWorkloadThenRank(t *testing.T) {
	m, a, e := model.Morning, model.Afternoon, model.Evening
	entries := append(
		uniformEmployees([]model.ShiftPeriod{a, m, e}, "busy", "second-choice"),
		uniformEmployees([]model.ShiftPeriod{m, a, e}, "first-choice")...,
	)
	store := newTestStore(t, entries)

	busy, _ := store.Get("busy")
	busy.shiftsAssigned = 3

	allocator := &Allocator{
		store:  store,
		config: DefaultAllocationConfig(),
		roster: model.NewRoster(),
	}

	unassigned := allocator.fillSlot(model.Monday, model.Morning, newUnassignedSet(store.Employees()))

	// Lowest workload first, then the employee who ranks morning higher
	assert.Equal(t, []string{"first-choice", "second-choice"}, allocator.roster.Slot(model.Monday, model.Morning))
	assert.Equal(t, 1, unassigned.size())
	assert.True(t, unassigned.contains("busy"))
}

func TestAllocator_AssignToShift_SkipsAssignedCandidates(t *testing.T) {
	store := newTestStore(t, sampleEmployees()[:2])
	allocator := &Allocator{
		store:  store,
		config: DefaultAllocationConfig(),
		roster: model.NewRoster(),
	}

	unassigned := newUnassignedSet(store.Employees())
	employeeA, _ := store.Get("A")

	unassigned = allocator.assignToShift(model.Monday, model.Morning, []*Employee{employeeA}, unassigned)
	unassigned = allocator.assignToShift(model.Monday, model.Evening, []*Employee{employeeA}, unassigned)

	assert.Equal(t, []string{"A"}, allocator.roster.Slot(model.Monday, model.Morning))
	assert.Empty(t, allocator.roster.Slot(model.Monday, model.Evening))
	assert.Equal(t, 1, employeeA.DaysWorked())
	assert.False(t, unassigned.contains("A"))
	assert.True(t, unassigned.contains("B"))
}
