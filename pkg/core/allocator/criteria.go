package allocator

// Criterion defines a check run against the finished roster.
// Criteria don't influence allocation; they report constraint violations so
// the caller can decide whether the roster is usable.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// ValidateRoster checks the final roster against this criterion's requirements
	// Returns a slice of validation errors (empty if all valid)
	ValidateRoster(state *RosterState) []SlotValidationError
}

// ValidateRoster runs every criterion against the roster.
// An empty slice indicates the roster is valid.
func ValidateRoster(state *RosterState, criteria []Criterion) []SlotValidationError {
	errors := []SlotValidationError{}

	for _, criterion := range criteria {
		errors = append(errors, criterion.ValidateRoster(state)...)
	}

	return errors
}
