package criteria

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/weekly-roster/pkg/core/allocator"
	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// Type aliases for test readability - shared across all criterion tests
type (
	RosterState      = allocator.RosterState
	AllocationConfig = allocator.AllocationConfig
)

// newTestState registers each employee with the same daily ranking and wraps
// the given roster in a RosterState using the default limits
func newTestState(t *testing.T, roster *model.Roster, employeeIDs ...string) *RosterState {
	t.Helper()

	store := allocator.NewStore()
	for _, id := range employeeIDs {
		err := store.Register(id, model.UniformPreferences(model.Morning, model.Afternoon, model.Evening))
		require.NoError(t, err)
	}

	return &RosterState{
		Roster: roster,
		Store:  store,
		Config: allocator.DefaultAllocationConfig(),
	}
}
