package domain

import "errors"

var (
	// ErrServerOffline indicates the server could not be reached at all.
	ErrServerOffline = errors.New("server is offline or unreachable")

	// ErrAuthFailed indicates authentication failed (invalid or expired token).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
)
