package service

import (
	"errors"
	"fmt"
)

// ValidationError rejects an input value; nothing is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError rejects a deletion because dependent records still
// reference the entity. The caller can retry after resolving it.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError reports an identifier that resolves to nothing.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d no existe", e.Entity, e.ID)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func conflictErr(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func notFoundErr(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
