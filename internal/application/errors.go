package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrNotAttached      = errors.New("subject not attached")
	ErrSourceBusy       = errors.New("catalog source is still loading")
	ErrUnknownSource    = errors.New("unknown catalog source")
	ErrInvalidDirection = errors.New("invalid direction")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SubjectError reports an operation on a subject that is not attached
type SubjectError struct {
	SubjectID string
}

func (e *SubjectError) Error() string {
	return fmt.Sprintf("subject %q is not attached", e.SubjectID)
}

func (e *SubjectError) Is(target error) bool {
	return target == ErrNotAttached
}

// LookupError represents a failed preset lookup, optionally with the closest match
type LookupError struct {
	Query      string
	Suggestion string
}

func (e *LookupError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("no preset matches %q (did you mean %q?)", e.Query, e.Suggestion)
	}
	return fmt.Sprintf("no preset matches %q", e.Query)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}
