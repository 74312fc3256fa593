package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for each error kind. Callers classify failures with
// errors.Is against these sentinels; the HTTP layer maps them to status codes.
var (
	ErrValidation          = errors.New("validation failed")
	ErrObjectNotFound      = errors.New("object not found")
	ErrConflict            = errors.New("conflict")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNoCapacity          = errors.New("no capacity")
	ErrUpstreamTimeout     = errors.New("upstream call timed out")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
	Cause   error
}

// NewValidationError creates a ValidationError without an underlying cause.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewValidationErrorWithCause creates a ValidationError wrapping a cause.
func NewValidationErrorWithCause(message string, cause error) *ValidationError {
	return &ValidationError{Message: message, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValidation, sanitize(e.Message), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, sanitize(e.Message))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ObjectNotFoundError reports that a referenced entity does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the named entity.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ConflictError reports a state conflict, such as insufficient stock or a
// uniqueness violation.
type ConflictError struct {
	Message string
	Cause   error
}

// NewConflictError creates a ConflictError without an underlying cause.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// NewConflictErrorWithCause creates a ConflictError wrapping a cause.
func NewConflictErrorWithCause(message string, cause error) *ConflictError {
	return &ConflictError{Message: message, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, sanitize(e.Message), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrConflict, sanitize(e.Message))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// InvalidTransitionError reports a status change that the state machine
// does not allow.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

// NewInvalidTransitionError creates an InvalidTransitionError describing the
// rejected transition.
func NewInvalidTransitionError(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s",
		ErrInvalidTransition, e.Entity, sanitize(e.From), sanitize(e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NoCapacityError reports that no rider could be claimed for an assignment.
type NoCapacityError struct {
	Message string
}

// NewNoCapacityError creates a NoCapacityError.
func NewNoCapacityError(message string) *NoCapacityError {
	return &NoCapacityError{Message: message}
}

func (e *NoCapacityError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNoCapacity, sanitize(e.Message))
}

func (e *NoCapacityError) Unwrap() error {
	return ErrNoCapacity
}

// UpstreamError reports a failed call to a collaborating service. Timeout
// distinguishes deadline expiry from plain unreachability.
type UpstreamError struct {
	Service string
	Timeout bool
	Cause   error
}

// NewUpstreamTimeoutError creates an UpstreamError for a deadline expiry.
func NewUpstreamTimeoutError(service string, cause error) *UpstreamError {
	return &UpstreamError{Service: service, Timeout: true, Cause: cause}
}

// NewUpstreamUnavailableError creates an UpstreamError for an unreachable
// or erroring collaborator.
func NewUpstreamUnavailableError(service string, cause error) *UpstreamError {
	return &UpstreamError{Service: service, Cause: cause}
}

func (e *UpstreamError) Error() string {
	sentinel := ErrUpstreamUnavailable
	if e.Timeout {
		sentinel = ErrUpstreamTimeout
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", sentinel, e.Service, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", sentinel, e.Service)
}

func (e *UpstreamError) Unwrap() error {
	if e.Timeout {
		return ErrUpstreamTimeout
	}
	return ErrUpstreamUnavailable
}

// ValueIsRequiredError reports a missing required value. It unwraps to
// ErrValidation so the HTTP layer treats it as malformed input.
type ValueIsRequiredError struct {
	ParamName string
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func (e *ValueIsRequiredError) Error() string {
	return fmt.Sprintf("value is required: %s", sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValidation
}

// ValueIsInvalidError reports a present but invalid value. It unwraps to
// ErrValidation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("value is invalid: %s (cause: %s)", sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("value is invalid: %s", sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValidation
}
