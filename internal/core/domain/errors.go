package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Auth errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserInactive     = errors.New("user account is inactive")
	ErrVoterMismatch    = errors.New("voter id not linked to this phone number")
	ErrVoterIneligible  = errors.New("voter id not found or inactive")
	ErrNoActiveSession  = errors.New("no active session")
	ErrAdminNotFound    = errors.New("admin not found")
	ErrSelfDelete       = errors.New("cannot delete own account")
)

// StoreError wraps a failed record-store or SMS-carrier call. The upstream
// status and body are kept for logs only; clients get a generic message.
type StoreError struct {
	Op      string // e.g. "User.findMany"
	Status  int    // upstream HTTP status, 0 for transport failures
	Message string // upstream body or transport error text
}

func (e *StoreError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("store %s failed: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("store %s failed: status %d: %s", e.Op, e.Status, e.Message)
}

// NewStoreError wraps an upstream failure
func NewStoreError(op string, status int, message string) *StoreError {
	return &StoreError{Op: op, Status: status, Message: message}
}

// IsStoreError reports whether err is (or wraps) a StoreError
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
