package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by service functions when no destination matches
// the requested city. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is the umbrella sentinel for input that fails business rule
// validation. Every fine-grained validation error below wraps it, so callers
// that only care about "was the input bad" can test against this one.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// Fine-grained validation sentinels. Each wraps ErrValidation, so
// errors.Is(err, ErrValidation) holds for all of them.
var (
	// ErrInvalidDate means a date string does not parse as YYYY-MM-DD.
	ErrInvalidDate = fmt.Errorf("%w: invalid date", ErrValidation)

	// ErrInvalidBudget means a budget is non-numeric or not strictly positive.
	ErrInvalidBudget = fmt.Errorf("%w: invalid budget", ErrValidation)

	// ErrInvalidDateRange means the start date falls after the end date.
	ErrInvalidDateRange = fmt.Errorf("%w: start date after end date", ErrValidation)

	// ErrEmptyActivities means the activities list is empty after trimming blanks.
	ErrEmptyActivities = fmt.Errorf("%w: at least one activity is required", ErrValidation)
)

// ErrPersistence is returned (wrapped) by the store when the itinerary file
// exists but cannot be read or decoded. The service converts it into an
// empty-collection reset plus a returned diagnostic; it never panics.
var ErrPersistence = errors.New("persistence error")
