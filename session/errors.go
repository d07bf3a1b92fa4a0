package session

import "errors"

var (
	// ErrNotConnected is returned when an operation requires a bound
	// session and none exists.
	ErrNotConnected = errors.New("not connected: no wallet session bound")

	// ErrOperationInFlight is returned when an operation of the same class
	// is already running. The UI is expected to disable the corresponding
	// trigger while the class's pending flag is set.
	ErrOperationInFlight = errors.New("operation already in progress")

	// ErrNotConfirmed is returned when a deletion is attempted without the
	// explicit user confirmation gate.
	ErrNotConfirmed = errors.New("deletion not confirmed")

	// ErrSubmissionRejected wraps register-report transaction failures.
	// The usual cause is a missing submission authorization, but the
	// contract's own rejection reason is attached when available.
	ErrSubmissionRejected = errors.New("report submission failed, you may lack authorization")

	// ErrAuthorizationRejected wraps grant/revoke transaction failures,
	// carrying the contract-side rejection reason when available
	// (typically "already authorized" or "not authorized").
	ErrAuthorizationRejected = errors.New("authorization change rejected")
)
