package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/weekly-roster/pkg/core/allocator"
	"github.com/jakechorley/weekly-roster/pkg/core/allocator/criteria"
	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// DefaultWeekRule selects Mondays as the first day of a roster week
const DefaultWeekRule = "FREQ=WEEKLY;BYDAY=MO"

// StandardCriteria returns the criteria every allocation run is validated against
func StandardCriteria() []allocator.Criterion {
	return []allocator.Criterion{
		criteria.NewShiftCapacityCriterion(),
		criteria.NewNoDoubleBookingCriterion(),
		criteria.NewWorkdayCapCriterion(),
		criteria.NewPreferenceSatisfactionCriterion(),
	}
}

// NextWeekStart returns the first occurrence of weekRule strictly after the
// day containing now. An empty rule uses DefaultWeekRule.
func NextWeekStart(now time.Time, weekRule string) (time.Time, error) {
	if weekRule == "" {
		weekRule = DefaultWeekRule
	}

	rule, err := rrule.StrToRRule(weekRule)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse week rule %q: %w", weekRule, err)
	}

	// Normalize to start of day to avoid time-of-day issues
	today := startOfDay(now)
	rule.DTStart(today)

	next := rule.After(today, false)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("week rule %q has no occurrence after %s", weekRule, today.Format("2006-01-02"))
	}

	return next, nil
}

// WeekDates returns the seven consecutive dates of the week starting at start
func WeekDates(start time.Time) ([]time.Time, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Count:   model.NumDays,
		Dtstart: startOfDay(start),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build week dates rule: %w", err)
	}

	return rule.All(), nil
}

// startOfDay truncates t to midnight UTC on the same calendar date
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
