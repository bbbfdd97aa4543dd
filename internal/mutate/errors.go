package mutate

import (
	"errors"
	"fmt"

	"auralis-cli/internal/model"
)

const (
	CodeValidation        = "validation_error"
	CodeNotFound          = "not_found"
	CodeInvalidReference  = "invalid_reference"
	CodeInvalidTransition = "invalid_transition"
	CodeGuardViolation    = "guard_violation"
	CodeStoreFailure      = "store_failure"
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e ValidationError) Code() string { return CodeValidation }

type NotFoundError struct {
	Kind model.Kind
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e NotFoundError) Code() string { return CodeNotFound }

// InvalidReferenceError reports a foreign reference that is missing or breaks area inheritance.
type InvalidReferenceError struct {
	Kind   model.Kind
	ID     string
	Reason string
}

func (e InvalidReferenceError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s reference: %s does not exist", e.Kind, e.ID)
	}
	return fmt.Sprintf("invalid %s reference %s: %s", e.Kind, e.ID, e.Reason)
}

func (e InvalidReferenceError) Code() string { return CodeInvalidReference }

type InvalidTransitionError struct {
	Kind model.Kind
	ID   string
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s %s: cannot transition from %q to %q", e.Kind, e.ID, e.From, e.To)
}

func (e InvalidTransitionError) Code() string { return CodeInvalidTransition }

// GuardViolationError is a legal edge whose business precondition does not hold.
type GuardViolationError struct {
	Kind  model.Kind
	ID    string
	To    string
	Guard string
}

func (e GuardViolationError) Error() string {
	return fmt.Sprintf("%s %s: cannot become %q: %s", e.Kind, e.ID, e.To, e.Guard)
}

func (e GuardViolationError) Code() string { return CodeGuardViolation }

// StoreFailure wraps an underlying persistence error.
type StoreFailure struct {
	Op  string
	Err error
}

func (e StoreFailure) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e StoreFailure) Code() string { return CodeStoreFailure }

func (e StoreFailure) Unwrap() error { return e.Err }

type coded interface {
	error
	Code() string
}

// Code classifies err into the error taxonomy. Unknown errors are store failures.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var c coded
	if errors.As(err, &c) {
		return c.Code()
	}
	return CodeStoreFailure
}
