package services

import (
	"errors"
	"fmt"

	"FRANCIGENA_BACK-END/internal/repository"
)

var (
	// ErrNotFound is the repository sentinel, so store errors match it directly.
	ErrNotFound         = repository.ErrNotFound
	ErrForbidden        = errors.New("forbidden")
	ErrActiveTripExists = repository.ErrActiveTrip
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
