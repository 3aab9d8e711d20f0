package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// sampleEmployees returns ten employees A-J whose ranking is the same every day
func sampleEmployees() []model.EmployeePreferences {
	m, a, e := model.Morning, model.Afternoon, model.Evening
	rankings := []struct {
		id      string
		ranking []model.ShiftPeriod
	}{
		{"A", []model.ShiftPeriod{m, a, e}},
		{"B", []model.ShiftPeriod{a, m, e}},
		{"C", []model.ShiftPeriod{e, m, a}},
		{"D", []model.ShiftPeriod{m, e, a}},
		{"E", []model.ShiftPeriod{a, e, m}},
		{"F", []model.ShiftPeriod{m, a, e}},
		{"G", []model.ShiftPeriod{a, m, e}},
		{"H", []model.ShiftPeriod{e, m, a}},
		{"I", []model.ShiftPeriod{m, e, a}},
		{"J", []model.ShiftPeriod{a, e, m}},
	}

	entries := make([]model.EmployeePreferences, 0, len(rankings))
	for _, r := range rankings {
		entries = append(entries, model.EmployeePreferences{
			EmployeeID:  r.id,
			Preferences: model.UniformPreferences(r.ranking...),
		})
	}
	return entries
}

// newTestStore registers every entry or fails the test
func newTestStore(t *testing.T, entries []model.EmployeePreferences) *Store {
	t.Helper()

	store := NewStore()
	require.NoError(t, store.RegisterAll(entries))
	return store
}

// uniformEmployees registers the given IDs with one shared ranking
func uniformEmployees(ranking []model.ShiftPeriod, ids ...string) []model.EmployeePreferences {
	entries := make([]model.EmployeePreferences, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, model.EmployeePreferences{
			EmployeeID:  id,
			Preferences: model.UniformPreferences(ranking...),
		})
	}
	return entries
}

type slotRow [model.NumShiftPeriods][]string

// requireDay asserts the morning, afternoon and evening slots of a day
func requireDay(t *testing.T, roster *model.Roster, day model.Day, expected slotRow) {
	t.Helper()

	for _, shift := range model.ShiftPeriods() {
		if len(expected[shift]) == 0 {
			require.Empty(t, roster.Slot(day, shift), "%s %s", day, shift)
			continue
		}
		require.Equal(t, expected[shift], roster.Slot(day, shift), "%s %s", day, shift)
	}
}
