// Package service provides application-level services for managing users,
// tasks, focus sessions, analytics, and schedule optimization.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrTaskNotFound indicates that the task does not exist or is not
	// visible to the requesting user.
	ErrTaskNotFound = errors.New("task not found")

	// ErrSessionNotFound indicates that the focus session does not exist or
	// is not visible to the requesting user.
	ErrSessionNotFound = errors.New("focus session not found")

	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists indicates that registration was attempted with an email
	// that is already taken.
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login attempt. It deliberately
	// does not distinguish between an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionAlreadyCompleted indicates a second completion attempt on a
	// focus session.
	ErrSessionAlreadyCompleted = errors.New("focus session already completed")
)
