package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError keeps backward compatibility for generic codes.
type DomainError struct {
	Code string
	Err  error
}

func (e DomainError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	if e.Code == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e DomainError) Unwrap() error {
	return e.Err
}

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// ResourceUnavailableError reports a failed assignment stage (bus, driver,
// conductor or farePolicy) together with the candidate ids that were
// inspected, so callers can offer alternatives instead of a generic failure.
type ResourceUnavailableError struct {
	Stage      string
	Candidates []int64
	Msg        string
}

func (e ResourceUnavailableError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "no available candidate"
	}
	if e.Stage == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Stage, msg)
}

// SeatUnavailableError reports the first requested seat already held by
// another booking.
type SeatUnavailableError struct {
	Seat string
}

func (e SeatUnavailableError) Error() string {
	if e.Seat == "" {
		return "seat unavailable"
	}
	return fmt.Sprintf("seat %s is not available", e.Seat)
}

// InvalidTransitionError rejects an illegal lifecycle status change.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e InvalidTransitionError) Error() string {
	entity := e.Entity
	if entity == "" {
		entity = "entity"
	}
	return fmt.Sprintf("%s cannot transition from %s to %s", entity, e.From, e.To)
}

// PolicyMissingError means no active fare policy resolves for the pair.
// The resolver never substitutes a default; any fallback is the caller's call.
type PolicyMissingError struct {
	BusType   string
	RouteType string
}

func (e PolicyMissingError) Error() string {
	pair := strings.TrimSpace(e.BusType + " / " + e.RouteType)
	return fmt.Sprintf("no active fare policy for %s", pair)
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsResourceUnavailable(err error) bool {
	var target ResourceUnavailableError
	return errors.As(err, &target)
}

func IsSeatUnavailable(err error) bool {
	var target SeatUnavailableError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target InvalidTransitionError
	return errors.As(err, &target)
}

func IsPolicyMissing(err error) bool {
	var target PolicyMissingError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
