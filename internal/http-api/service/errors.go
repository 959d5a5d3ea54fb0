package service

import "errors"

// Error taxonomy surfaced to handlers. Services wrap these with context via
// fmt.Errorf("...: %w", ...); handlers match with errors.Is and map them to
// HTTP statuses. No error here implies partial state: a mutation either
// fully applies or fully fails.
var (
	// ErrValidation is raised synchronously before any mutation is applied.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers missing entries, tags, features and comments.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the signed-in user may not mutate the record.
	ErrForbidden = errors.New("forbidden")

	// ErrNotAssociated means a feature-link operation required an existing
	// association and none exists.
	ErrNotAssociated = errors.New("feature not associated with entry")
)
