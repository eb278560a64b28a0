package services

import "errors"

// Error taxonomy surfaced by the service layer. Controllers translate
// these into HTTP statuses; nothing is retried here.
var (
	// ErrNotFound means a referenced user, counselor, session or content
	// row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPreconditionFailed means the request is well-formed but cannot
	// proceed: counselor unavailable, slot already booked, illegal status
	// transition.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrInvalidArgument means malformed input such as a bad date or time.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInternal means a storage write failed unexpectedly.
	ErrInternal = errors.New("internal error")
)
