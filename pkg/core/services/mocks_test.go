package services

import (
	"context"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// mockPreferenceSource implements PreferenceSource for testing
type mockPreferenceSource struct {
	preferences []model.EmployeePreferences
	err         error
	calls       int
}

func (m *mockPreferenceSource) ListPreferences(ctx context.Context) ([]model.EmployeePreferences, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.preferences, nil
}

// mockRosterSink records every roster it receives
type mockRosterSink struct {
	published []*PublishedRoster
	err       error
}

func (m *mockRosterSink) PublishRoster(ctx context.Context, roster *PublishedRoster) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, roster)
	return nil
}

// sampleEmployees returns ten employees A-J whose ranking is the same every day
func sampleEmployees() []model.EmployeePreferences {
	m, a, e := model.Morning, model.Afternoon, model.Evening
	rankings := map[string][]model.ShiftPeriod{
		"A": {m, a, e}, "B": {a, m, e}, "C": {e, m, a}, "D": {m, e, a}, "E": {a, e, m},
		"F": {m, a, e}, "G": {a, m, e}, "H": {e, m, a}, "I": {m, e, a}, "J": {a, e, m},
	}

	entries := []model.EmployeePreferences{}
	for _, id := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"} {
		entries = append(entries, model.EmployeePreferences{
			EmployeeID:  id,
			Preferences: model.UniformPreferences(rankings[id]...),
		})
	}
	return entries
}
