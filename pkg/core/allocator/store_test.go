package allocator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

func TestStore_Register(t *testing.T) {
	store := NewStore()

	err := store.Register("alice", model.UniformPreferences(model.Evening, model.Morning, model.Afternoon))
	require.NoError(t, err)

	employee, ok := store.Get("alice")
	require.True(t, ok)
	assert.Equal(t, "alice", employee.ID())
	assert.Equal(t, 0, employee.DaysWorked())
	assert.Equal(t, 0, employee.ShiftsAssigned())
	assert.Equal(t, model.Evening, employee.TopChoice(model.Saturday))
	assert.Equal(t, model.Ranking{model.Evening, model.Morning, model.Afternoon}, employee.Ranking(model.Monday))
}

func TestStore_Register_CopiesPreferences(t *testing.T) {
	store := NewStore()

	prefs := model.UniformPreferences(model.Morning, model.Afternoon, model.Evening)
	require.NoError(t, store.Register("alice", prefs))

	// Mutating the caller's table must not affect the stored copy
	prefs[model.Monday][0] = model.Evening
	delete(prefs, model.Tuesday)

	employee, _ := store.Get("alice")
	assert.Equal(t, model.Morning, employee.TopChoice(model.Monday))
	assert.Len(t, employee.Ranking(model.Tuesday), 3)
}

func TestStore_Register_PreservesOrder(t *testing.T) {
	store := newTestStore(t, sampleEmployees())

	ids := []string{}
	for _, e := range store.Employees() {
		ids = append(ids, e.ID())
	}

	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}, ids)
	assert.Equal(t, 10, store.Len())
}

func TestStore_Register_Invalid(t *testing.T) {
	valid := func() model.Preferences {
		return model.UniformPreferences(model.Morning, model.Afternoon, model.Evening)
	}

	tests := []struct {
		name       string
		employeeID string
		prefs      func() model.Preferences
		problem    string
	}{
		{
			name:       "empty employee ID",
			employeeID: "",
			prefs:      valid,
			problem:    "employee ID is empty",
		},
		{
			name:       "missing day",
			employeeID: "alice",
			prefs: func() model.Preferences {
				p := valid()
				delete(p, model.Thursday)
				return p
			},
			problem: "Thursday: no ranking",
		},
		{
			name:       "short ranking",
			employeeID: "alice",
			prefs: func() model.Preferences {
				p := valid()
				p[model.Monday] = model.Ranking{model.Morning, model.Evening}
				return p
			},
			problem: "Monday: ranking has 2 shifts, expected 3",
		},
		{
			name:       "duplicate shift",
			employeeID: "alice",
			prefs: func() model.Preferences {
				p := valid()
				p[model.Friday] = model.Ranking{model.Morning, model.Morning, model.Evening}
				return p
			},
			problem: "Friday: morning ranked more than once",
		},
		{
			name:       "unknown shift",
			employeeID: "alice",
			prefs: func() model.Preferences {
				p := valid()
				p[model.Sunday] = model.Ranking{model.Morning, model.Afternoon, model.ShiftPeriod(9)}
				return p
			},
			problem: "Sunday: unknown shift",
		},
		{
			name:       "unknown day",
			employeeID: "alice",
			prefs: func() model.Preferences {
				p := valid()
				p[model.Day(7)] = model.Ranking{model.Morning, model.Afternoon, model.Evening}
				return p
			},
			problem: "unknown day Day(7)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()

			err := store.Register(tt.employeeID, tt.prefs())
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.employeeID, validationErr.EmployeeID)
			assert.Contains(t, err.Error(), tt.problem)

			// Nothing is stored on failure
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestStore_Register_Duplicate(t *testing.T) {
	store := NewStore()
	prefs := model.UniformPreferences(model.Morning, model.Afternoon, model.Evening)

	require.NoError(t, store.Register("alice", prefs))

	err := store.Register("alice", prefs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	assert.Equal(t, 1, store.Len())
}

func TestStore_RegisterAll_StopsAtFirstError(t *testing.T) {
	entries := sampleEmployees()
	entries[3].Preferences = model.Preferences{}

	store := NewStore()
	err := store.RegisterAll(entries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `employee "D"`)

	// Entries before the bad one stay registered
	assert.Equal(t, 3, store.Len())
}

func TestStore_ReleaseFloorsAtZero(t *testing.T) {
	store := newTestStore(t, sampleEmployees()[:1])
	employee, _ := store.Get("A")

	store.record(employee)
	store.release("A")
	store.release("A")
	store.release("unknown")

	assert.Equal(t, 0, employee.DaysWorked())
	assert.Equal(t, 0, employee.ShiftsAssigned())
}
