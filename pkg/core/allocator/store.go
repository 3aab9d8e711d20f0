package allocator

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// ValidationError is returned when an employee's preferences cannot be registered
type ValidationError struct {
	EmployeeID string
	Problems   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid preferences for employee %q: %s", e.EmployeeID, strings.Join(e.Problems, "; "))
}

// Store holds every registered employee in registration order
type Store struct {
	employees []*Employee
	byID      map[string]*Employee
}

// NewStore creates an empty preference store
func NewStore() *Store {
	return &Store{
		byID: make(map[string]*Employee),
	}
}

// Register stores an employee's preference table with both counters at zero.
// The preferences are rejected if any day is missing or any ranking is not a
// permutation of the three shift periods.
func (s *Store) Register(employeeID string, prefs model.Preferences) error {
	problems := validatePreferences(prefs)
	if employeeID == "" {
		problems = append([]string{"employee ID is empty"}, problems...)
	}
	if len(problems) > 0 {
		return &ValidationError{EmployeeID: employeeID, Problems: problems}
	}

	if _, exists := s.byID[employeeID]; exists {
		return &ValidationError{EmployeeID: employeeID, Problems: []string{"employee is already registered"}}
	}

	// Copy the table so later changes by the caller don't leak into allocation
	copied := make(model.Preferences, len(prefs))
	for day, ranking := range prefs {
		copied[day] = slices.Clone(ranking)
	}

	employee := &Employee{
		id:          employeeID,
		preferences: copied,
	}
	s.employees = append(s.employees, employee)
	s.byID[employeeID] = employee

	return nil
}

// RegisterAll registers each entry in order, stopping at the first error
func (s *Store) RegisterAll(entries []model.EmployeePreferences) error {
	for _, entry := range entries {
		if err := s.Register(entry.EmployeeID, entry.Preferences); err != nil {
			return err
		}
	}
	return nil
}

// Employees returns all employees in registration order
func (s *Store) Employees() []*Employee {
	return slices.Clone(s.employees)
}

// Get returns the employee with the given ID
func (s *Store) Get(employeeID string) (*Employee, bool) {
	employee, ok := s.byID[employeeID]
	return employee, ok
}

// Len returns the number of registered employees
func (s *Store) Len() int {
	return len(s.employees)
}

// Workloads returns each employee's counters in registration order
func (s *Store) Workloads() []Workload {
	workloads := make([]Workload, 0, len(s.employees))
	for _, e := range s.employees {
		workloads = append(workloads, Workload{
			EmployeeID:     e.id,
			DaysWorked:     e.daysWorked,
			ShiftsAssigned: e.shiftsAssigned,
		})
	}
	return workloads
}

// record applies one assignment to the employee's counters
func (s *Store) record(e *Employee) {
	e.daysWorked++
	e.shiftsAssigned++
}

// release undoes one assignment for an employee removed from the roster
func (s *Store) release(employeeID string) {
	e, ok := s.byID[employeeID]
	if !ok {
		return
	}
	if e.daysWorked > 0 {
		e.daysWorked--
	}
	if e.shiftsAssigned > 0 {
		e.shiftsAssigned--
	}
}

// validatePreferences lists every problem with a preference table
func validatePreferences(prefs model.Preferences) []string {
	var problems []string

	for _, day := range model.Days() {
		ranking, ok := prefs[day]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: no ranking", day))
			continue
		}

		if len(ranking) != model.NumShiftPeriods {
			problems = append(problems, fmt.Sprintf("%s: ranking has %d shifts, expected %d", day, len(ranking), model.NumShiftPeriods))
		}

		seen := make(map[model.ShiftPeriod]bool)
		for _, shift := range ranking {
			if !shift.IsValid() {
				problems = append(problems, fmt.Sprintf("%s: unknown shift %s", day, shift))
				continue
			}
			if seen[shift] {
				problems = append(problems, fmt.Sprintf("%s: %s ranked more than once", day, shift))
			}
			seen[shift] = true
		}
	}

	// Keys outside Monday..Sunday, sorted for a stable message
	for _, day := range slices.Sorted(maps.Keys(prefs)) {
		if !day.IsValid() {
			problems = append(problems, fmt.Sprintf("unknown day %s", day))
		}
	}

	return problems
}
