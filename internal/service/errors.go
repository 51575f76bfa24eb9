package service

import "errors"

var (
	// ErrNotFound covers unknown usernames, group slugs and post ids.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when an authenticated actor is not the
	// owning author; callers redirect to the read-only view.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized means the operation needs an authenticated actor.
	ErrUnauthorized = errors.New("authentication required")
	// ErrValidation wraps field-level form failures; no write happened.
	ErrValidation = errors.New("invalid input")

	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
