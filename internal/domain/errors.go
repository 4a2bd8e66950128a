package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Navigation errors
	ErrEmptyFolderID = errors.New("folder id cannot be empty")
	ErrBadPathIndex  = errors.New("breadcrumb index out of range")

	// Transfer errors
	ErrNotAnArchive   = errors.New("file is not a zip archive")
	ErrUploadInFlight = errors.New("an upload is already in progress")
)

// ValidationError is raised before any network call when user input is
// unusable (empty name, wrong file type). No state changes when one is
// returned.
type ValidationError struct {
	Field  string
	Reason error
}

// Error returns the error message
func (e *ValidationError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason.Error())
	}
	return fmt.Sprintf("invalid %s", e.Field)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// NewValidationError creates a new validation error
func NewValidationError(field string, reason error) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation returns true if the error is a validation error
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GatewayError is a non-success HTTP response from the remote content
// gateway. Previous state is preserved; the session surfaces it as a
// user-visible notification and nothing else changes.
type GatewayError struct {
	Status int
	Op     string
	Detail string
}

// Error returns the error message
func (e *GatewayError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: gateway returned %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: gateway returned %d", e.Op, e.Status)
}

// NewGatewayError creates a new gateway error
func NewGatewayError(op string, status int, detail string) *GatewayError {
	return &GatewayError{Op: op, Status: status, Detail: detail}
}

// IsGateway returns true if the error is a gateway error
func IsGateway(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}

// StatusCode returns the HTTP status if the error is a gateway error
func StatusCode(err error) (int, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.Status, true
	}
	return 0, false
}

// NetworkError is a request that could not complete at all. Treated
// identically to GatewayError for user visibility.
type NetworkError struct {
	Op  string
	Err error
}

// Error returns the error message
func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: request failed: %s", e.Op, e.Err.Error())
	}
	return fmt.Sprintf("%s: request failed", e.Op)
}

// Unwrap returns the underlying error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new network error
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err}
}

// IsNetwork returns true if the error is a network error
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsRemote returns true if the error came from the gateway boundary,
// whether the request completed with a failure status or not at all.
func IsRemote(err error) bool {
	return IsGateway(err) || IsNetwork(err)
}
