package services

import "errors"

// Sentinel errors distinguishing the failure categories handlers care
// about. Services wrap them with context via fmt.Errorf("%w: ...").
var (
	// ErrNotFound: the referenced trade/offer/transaction/user does not exist
	ErrNotFound = errors.New("not found")

	// ErrForbidden: the actor lacks the required relationship
	// (not the owner, not a participant)
	ErrForbidden = errors.New("forbidden")

	// ErrConflict: the operation is invalid for the current status, a
	// uniqueness rule would be violated, or a concurrent write won
	ErrConflict = errors.New("conflict")

	// ErrValidation: a field constraint was violated
	ErrValidation = errors.New("validation failed")
)
