package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists indicates a uniqueness constraint was violated
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")

	// ErrCreationFailed indicates the storage layer rejected an insert
	ErrCreationFailed = errors.New("creation failed")

	// ErrUpdateFailed indicates the storage layer rejected an update
	ErrUpdateFailed = errors.New("update failed")

	// ErrDeletionFailed indicates the storage layer rejected a delete
	ErrDeletionFailed = errors.New("deletion failed")

	// ErrStorageUnavailable indicates the storage backend could not be reached
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
