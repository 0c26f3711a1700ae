package domain

import (
	"errors"
	"fmt"
)

// Validation reasons. They are wrapped by ValidationError and matched with errors.Is.
var (
	// ErrEmptyName indicates a submitted name that is empty after trimming.
	ErrEmptyName = errors.New("empty name")

	// ErrDuplicateName indicates a name already held by another item of the same list.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrInvalidID indicates an identifier that is not a well-formed item id.
	ErrInvalidID = errors.New("invalid id")

	// ErrMalformedBatch indicates a request body that does not decode into a batch.
	ErrMalformedBatch = errors.New("malformed batch")
)

var (
	// ErrItemNotFound is returned by repositories when no item matches a filter.
	ErrItemNotFound = errors.New("item not found")

	// ErrStorage marks failures of the repository call itself.
	ErrStorage = errors.New("storage failure")

	// ErrUnknownList indicates a list key that does not name a reference list.
	ErrUnknownList = errors.New("unknown list")
)

// ValidationError rejects one item of a batch. Processing stops at that item.
type ValidationError struct {
	Reason error
	Phase  string
	Value  string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// NewValidationError builds a ValidationError for the given phase and offending value.
func NewValidationError(reason error, phase, value string) *ValidationError {
	return &ValidationError{Reason: reason, Phase: phase, Value: value}
}

// NotFoundError reports an edit against an identifier no item holds.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrItemNotFound
}

// StorageError wraps a failed repository call. It is never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// NewStorageError wraps err unless it is nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
