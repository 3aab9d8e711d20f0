package db

// RosterRun represents a database roster_run record, one per published roster
type RosterRun struct {
	ID          string // Run ID from allocation
	WeekStart   string // Date format
	PublishedAt string // RFC3339
	Assigned    int    // Number of assignment rows in the run
}

// Assignment represents a database assignment record
type Assignment struct {
	ID         string
	RunID      string
	ShiftDate  string // Date format
	Day        string
	Shift      string
	EmployeeID string
	Position   int // Order within the slot, starting at 1
}
