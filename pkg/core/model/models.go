package model

import (
	"fmt"
	"slices"
)

// Day is a day of the scheduling week. Days are ordered Monday to Sunday.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// NumDays is the number of days in a scheduling week
const NumDays = 7

var dayNames = [NumDays]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// Days returns every day of the week in weekday order
func Days() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

func (d Day) IsValid() bool {
	return d >= Monday && d <= Sunday
}

func (d Day) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay converts an English weekday name to a Day.
// Matching is exact: "Monday" is valid, "monday" is not.
func ParseDay(name string) (Day, error) {
	for i, dayName := range dayNames {
		if dayName == name {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", name)
}

// ShiftPeriod is one of the three shifts worked each day
type ShiftPeriod int

const (
	Morning ShiftPeriod = iota
	Afternoon
	Evening
)

// NumShiftPeriods is the number of shifts in a day
const NumShiftPeriods = 3

var shiftPeriodNames = [NumShiftPeriods]string{
	"morning",
	"afternoon",
	"evening",
}

// ShiftPeriods returns every shift period in the order they are filled
func ShiftPeriods() []ShiftPeriod {
	return []ShiftPeriod{Morning, Afternoon, Evening}
}

func (s ShiftPeriod) IsValid() bool {
	return s >= Morning && s <= Evening
}

func (s ShiftPeriod) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("ShiftPeriod(%d)", int(s))
	}
	return shiftPeriodNames[s]
}

// Title returns the capitalised shift name used in printed rosters
func (s ShiftPeriod) Title() string {
	switch s {
	case Morning:
		return "Morning"
	case Afternoon:
		return "Afternoon"
	case Evening:
		return "Evening"
	}
	return s.String()
}

// ParseShiftPeriod converts a lower-case shift name to a ShiftPeriod
func ParseShiftPeriod(name string) (ShiftPeriod, error) {
	for i, periodName := range shiftPeriodNames {
		if periodName == name {
			return ShiftPeriod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shift period %q", name)
}

// Ranking is an employee's shift preference for one day, best first
type Ranking []ShiftPeriod

// Rank returns the position of the shift in the ranking, or -1 if absent
func (r Ranking) Rank(shift ShiftPeriod) int {
	return slices.Index(r, shift)
}

// Contains returns true if the shift appears anywhere in the ranking
func (r Ranking) Contains(shift ShiftPeriod) bool {
	return slices.Contains(r, shift)
}

// Preferences maps each day of the week to the employee's ranking for that day
type Preferences map[Day]Ranking

// EmployeePreferences is a single entry supplied by an input provider.
// Providers return these in a slice; slice order is registration order.
type EmployeePreferences struct {
	EmployeeID  string
	Preferences Preferences
}

// UniformPreferences builds Preferences that use the same ranking every day
func UniformPreferences(ranking ...ShiftPeriod) Preferences {
	prefs := make(Preferences, NumDays)
	for _, day := range Days() {
		prefs[day] = slices.Clone(Ranking(ranking))
	}
	return prefs
}
