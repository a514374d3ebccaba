package models

import "errors"

var (
	// ErrCredentialsMissing is returned when the credentials file does not exist.
	ErrCredentialsMissing = errors.New("credentials not found")

	// ErrLoginRequired is returned when the platform rejects the current session.
	ErrLoginRequired = errors.New("login required")

	// ErrChallengeRequired is returned when the platform wants out-of-band verification.
	ErrChallengeRequired = errors.New("challenge required")

	// ErrTwoFactorRequired is returned when the account has two-factor login enabled.
	ErrTwoFactorRequired = errors.New("two-factor authentication required")

	// ErrBadPassword is returned when the platform rejects the credentials.
	ErrBadPassword = errors.New("bad password")

	// ErrSessionStateInvalid is returned when persisted session state cannot be restored.
	ErrSessionStateInvalid = errors.New("session state invalid")
)
