package itinerary

import "errors"

var (
	// ErrInconsistentRange reports a segment range that breaks catalog
	// ordering for the requested direction, or references unknown ids.
	ErrInconsistentRange = errors.New("inconsistent segment range")
	ErrInvalidDays       = errors.New("travel days must be positive")
	ErrInvalidBudget     = errors.New("daily hour budget must be positive")
	ErrEmptyCatalog      = errors.New("catalog has no segments")
	ErrInvalidDuration   = errors.New("duration is not a valid hours.minutes value")
)
