package criteria

import (
	"github.com/jakechorley/weekly-roster/pkg/core/allocator"
	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// PreferenceSatisfactionCriterion measures how often employees got their first
// choice. It is report-only: preference misses are expected whenever fairness
// or coverage wins, so it never produces validation errors.
type PreferenceSatisfactionCriterion struct{}

// EmployeeSatisfaction is one employee's preference hit rate for the week
type EmployeeSatisfaction struct {
	EmployeeID     string
	Assignments    int
	TopChoiceHits  int
	AverageRank    float64 // 0 is top choice; only meaningful if Assignments > 0
	TopChoiceShare float64 // TopChoiceHits / Assignments, 0 when unassigned
}

// NewPreferenceSatisfactionCriterion creates a new PreferenceSatisfactionCriterion
func NewPreferenceSatisfactionCriterion() *PreferenceSatisfactionCriterion {
	return &PreferenceSatisfactionCriterion{}
}

func (c *PreferenceSatisfactionCriterion) Name() string {
	return "PreferenceSatisfaction"
}

func (c *PreferenceSatisfactionCriterion) ValidateRoster(state *allocator.RosterState) []allocator.SlotValidationError {
	return nil
}

// Score returns satisfaction figures for every employee in registration order
func (c *PreferenceSatisfactionCriterion) Score(state *allocator.RosterState) []EmployeeSatisfaction {
	scores := make([]EmployeeSatisfaction, 0, state.Store.Len())

	for _, employee := range state.Store.Employees() {
		score := EmployeeSatisfaction{EmployeeID: employee.ID()}
		rankTotal := 0

		for _, day := range model.Days() {
			shift, ok := state.Roster.ShiftOf(day, employee.ID())
			if !ok {
				continue
			}

			score.Assignments++
			rank := employee.Ranking(day).Rank(shift)
			rankTotal += rank
			if rank == 0 {
				score.TopChoiceHits++
			}
		}

		if score.Assignments > 0 {
			score.AverageRank = float64(rankTotal) / float64(score.Assignments)
			score.TopChoiceShare = float64(score.TopChoiceHits) / float64(score.Assignments)
		}

		scores = append(scores, score)
	}

	return scores
}
