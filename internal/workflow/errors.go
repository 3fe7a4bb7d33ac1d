// Package workflow holds the state machines of the platform. Functions here
// mutate entities in memory only; persistence and side effects belong to the
// services layer.
package workflow

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrCancelWindowClosed = errors.New("application can no longer be cancelled")
	ErrReasonRequired     = errors.New("a reason is required")
	ErrRequestNotFound    = errors.New("validation request not found")
	ErrNoRequests         = errors.New("at least one validation request is required")
)

// Machine names the state machine a TransitionError comes from.
type Machine string

const (
	MachineApplication Machine = "application"
	MachineOffer       Machine = "offer"
	MachineRecruiter   Machine = "recruiter"
	MachineInterview   Machine = "interview"
	MachineRequest     Machine = "validation_request"
)

// TransitionError reports a rejected state change. It matches
// ErrInvalidTransition with errors.Is.
type TransitionError struct {
	Machine   Machine
	Current   string
	Requested string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move %s from %q to %q", ErrInvalidTransition, e.Machine, e.Current, e.Requested)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func invalid[S ~string](m Machine, from, to S) error {
	return &TransitionError{Machine: m, Current: string(from), Requested: string(to)}
}
