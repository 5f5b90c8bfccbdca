package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error for transport mapping.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindInvalidState ErrorKind = "invalid_state"
	KindCollaborator ErrorKind = "collaborator"
)

// DomainError is the common error type raised by domain and application code.
type DomainError struct {
	Kind    ErrorKind
	Field   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewFieldValidationError reports a problem with a named input field.
func NewFieldValidationError(field, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Field: field, Message: message}
}

// NewNotFoundError reports that an entity with the given identifier does not exist.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("%s with id %s not found", entity, id)}
}

func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Message: message}
}

// NewInvalidStateError reports a disallowed state transition.
func NewInvalidStateError(from, to string) *DomainError {
	return &DomainError{Kind: KindInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewCollaboratorError wraps a failure of an external system (store, upload, identity).
func NewCollaboratorError(collaborator string, err error) *DomainError {
	return &DomainError{Kind: KindCollaborator, Message: collaborator + " call failed", Err: err}
}

// KindOf returns the kind of the first DomainError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsCollaborator reports whether err is a CollaboratorError.
func IsCollaborator(err error) bool { return KindOf(err) == KindCollaborator }
