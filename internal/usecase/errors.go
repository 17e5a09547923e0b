package usecase

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the quote use cases matches exactly one
// of them through errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrReferenceIntegrity = errors.New("reference integrity violation")
	ErrCollaborator       = errors.New("collaborator failure")
)

// Specific validation causes, matched with errors.Is as well.
var (
	ErrStatusTransitionNotAllowed = errors.New("status transition not allowed")
	ErrTooManyItems               = errors.New("too many items for a single transaction")
)

type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ReferenceIntegrityError reports a reference to a catalog record that does not
// exist or does not belong to the quote's client.
type ReferenceIntegrityError struct {
	Field  string
	ID     string
	Reason string
}

func (e *ReferenceIntegrityError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.ID, e.Reason)
}

func (e *ReferenceIntegrityError) Is(target error) bool { return target == ErrReferenceIntegrity }

// CollaboratorError wraps a failure of the catalog, persistence, payment or
// event collaborators. The original error stays reachable through Unwrap.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Is(target error) bool { return target == ErrCollaborator }

func (e *CollaboratorError) Unwrap() error { return e.Err }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func invalidCause(field string, cause error) error {
	return &ValidationError{Field: field, Reason: cause.Error(), Err: cause}
}

// atItem prefixes a validation error with the position of the item it came
// from; other errors pass through.
func atItem(i int, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &ValidationError{Field: fmt.Sprintf("items[%d].%s", i, ve.Field), Reason: ve.Reason, Err: ve.Err}
	}
	return err
}

func notFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func collaborator(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CollaboratorError{Op: op, Err: err}
}
