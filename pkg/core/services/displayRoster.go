package services

import (
	"fmt"
	"strings"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// NoEmployeesAssigned is shown in place of an empty slot
const NoEmployeesAssigned = "No employees assigned"

// FormatRoster renders the roster as plain text, one block per day:
//
//	Monday:
//	  Morning: A, B
//	  Afternoon: No employees assigned
//	  Evening: C
//	------------------------------
func FormatRoster(roster *model.Roster) string {
	return formatSlots(roster.Slot)
}

// FormatPublishedRoster renders published rows in the same layout as FormatRoster
func FormatPublishedRoster(published *PublishedRoster) string {
	var slots [model.NumDays][model.NumShiftPeriods][]string
	for _, row := range published.Rows {
		if row.Day.IsValid() && row.Shift.IsValid() {
			slots[row.Day][row.Shift] = row.Employees
		}
	}

	return formatSlots(func(day model.Day, shift model.ShiftPeriod) []string {
		return slots[day][shift]
	})
}

func formatSlots(slot func(day model.Day, shift model.ShiftPeriod) []string) string {
	var b strings.Builder

	for _, day := range model.Days() {
		fmt.Fprintf(&b, "%s:\n", day)
		for _, shift := range model.ShiftPeriods() {
			employees := NoEmployeesAssigned
			if ids := slot(day, shift); len(ids) > 0 {
				employees = strings.Join(ids, ", ")
			}
			fmt.Fprintf(&b, "  %s: %s\n", shift.Title(), employees)
		}
		b.WriteString(strings.Repeat("-", 30))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatWorkloads renders each employee's final counters, one per line
func FormatWorkloads(result *AllocateRosterResult) string {
	var b strings.Builder

	satisfaction := make(map[string]float64, len(result.Satisfaction))
	for _, s := range result.Satisfaction {
		satisfaction[s.EmployeeID] = s.TopChoiceShare
	}

	for _, w := range result.Workloads {
		fmt.Fprintf(&b, "%s: %d days, %d shifts, %.0f%% top choice\n",
			w.EmployeeID, w.DaysWorked, w.ShiftsAssigned, satisfaction[w.EmployeeID]*100)
	}

	return b.String()
}
