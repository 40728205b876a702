package domain

import "errors"

// Domain sentinel errors. The usecase layer translates these into the
// service error taxonomy before they reach a caller.
var (
	// ErrUnknownMethod marks a method string outside the closed set.
	ErrUnknownMethod = errors.New("unknown identification method")

	// ErrNoContact marks a user violating the email-or-phone invariant.
	ErrNoContact = errors.New("user must have an email or phone")
)
