package store

import (
	"errors"
	"strings"
)

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrCorrupt is returned by a Persister when the stored payload
	// cannot be decoded.
	ErrCorrupt = errors.New("persisted tasks are corrupt")

	// ErrDisposed is returned by mutations on a disposed TaskStore.
	ErrDisposed = errors.New("task store disposed")
)

// ValidationError reports the required fields that were empty on AddTask.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
