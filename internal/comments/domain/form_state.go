package domain

import (
	"errors"
	"fmt"
)

// FormState is the state of the comment form shown under a post.
type FormState string

const (
	FormIdle       FormState = "idle"
	FormSubmitting FormState = "submitting"
	FormSubmitted  FormState = "submitted"
	FormFailed     FormState = "failed"
)

// ErrInvalidTransition is returned for a transition the form does not allow.
var ErrInvalidTransition = errors.New("invalid form state transition")

// IsValid checks if the state is a known value
func (s FormState) IsValid() bool {
	switch s {
	case FormIdle, FormSubmitting, FormSubmitted, FormFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a transition is allowed. There is no automatic
// retry: leaving Failed requires the reader to submit again.
func (s FormState) CanTransitionTo(target FormState) bool {
	switch s {
	case FormIdle:
		return target == FormSubmitting
	case FormSubmitting:
		return target == FormSubmitted || target == FormFailed
	case FormFailed:
		return target == FormSubmitting
	default:
		return false
	}
}

// Next returns target if the transition is allowed.
func (s FormState) Next(target FormState) (FormState, error) {
	if !s.CanTransitionTo(target) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return target, nil
}

// ShowsForm reports whether the form inputs are rendered in this state.
func (s FormState) ShowsForm() bool {
	return s != FormSubmitted
}
