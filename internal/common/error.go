package common

import "errors"

var (
	// Precondition errors, reported before any API call is made.
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidEmail  = errors.New("invalid email")

	// Flow errors.
	ErrAlreadyStarted = errors.New("flow already started")
	ErrClosed         = errors.New("view closed")
	ErrWrongState     = errors.New("action not available in current state")

	// Session errors.
	ErrNoSession = errors.New("no active session")
)
