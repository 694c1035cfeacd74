// Package errors defines the application error taxonomy. Every failure a
// handler can surface is one of these types; the HTTP boundary maps each
// type to a fixed status code and a {name, message} envelope.
package errors

import (
	"net/http"

	"agrimap/internal/errors"
)

// AppError is the interface implemented by all application-specific errors.
type AppError interface {
	error
	HTTPCode() int   // HTTP status code the boundary layer responds with
	Name() string    // Stable error name exposed in the response envelope
	Message() string // Human-readable error message
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode int
	name     string
	message  string
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// Name returns the stable error name used in the response envelope.
func (e *BaseError) Name() string {
	return e.name
}

// Message returns the human-readable error message.
func (e *BaseError) Message() string {
	return e.message
}

// WrapMessage wraps the error with additional context message while keeping
// the error's identity for errors.As at the boundary.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func newError(httpCode int, name, message string) *BaseError {
	return &BaseError{httpCode: httpCode, name: name, message: message}
}

// NewBadRequest creates a 400 error for malformed or invalid input.
func NewBadRequest(message string) *BaseError {
	return newError(http.StatusBadRequest, "BadRequestError", message)
}

// NewUnauthorized creates a 401 error for missing or invalid credentials.
func NewUnauthorized(message string) *BaseError {
	return newError(http.StatusUnauthorized, "UnauthorizedError", message)
}

// NewForbidden creates a 403 error for authenticated but unentitled access.
func NewForbidden(message string) *BaseError {
	return newError(http.StatusForbidden, "ForbiddenError", message)
}

// NewNotFound creates a 404 error for absent entities or empty listings.
func NewNotFound(message string) *BaseError {
	return newError(http.StatusNotFound, "NotFoundError", message)
}

// NewUnprocessableEntity creates a 422 error for semantically invalid domain
// input, such as an unresolvable address or a duplicate farm.
func NewUnprocessableEntity(message string) *BaseError {
	return newError(http.StatusUnprocessableEntity, "UnprocessableEntityError", message)
}

// NewUpstreamFailure creates a 500 error for an unreachable or malformed
// upstream gateway response. The boundary hides the detail behind a generic
// server error; the wrapped cause stays in the logs.
func NewUpstreamFailure(message string) *BaseError {
	return newError(http.StatusInternalServerError, "UpstreamFailureError", message)
}

// Predefined errors with contract-fixed messages.
var (
	// ErrFarmsNotFound is returned when no farms exist system-wide.
	ErrFarmsNotFound = NewNotFound("Farms not found.")

	// ErrFarmNotFound is returned when a farm id does not resolve.
	ErrFarmNotFound = NewNotFound("Farm not found.")

	// ErrFarmAlreadyExists is returned when the (address, name) pair is taken.
	ErrFarmAlreadyExists = NewUnprocessableEntity("Farm with this address and name already exists.")

	// ErrFarmNotOwned is returned when a requester acts on a farm they do not own.
	ErrFarmNotOwned = NewForbidden("Farm belongs to another user.")

	// ErrGeocodeNotFound is returned when an address resolves to no location.
	ErrGeocodeNotFound = NewUnprocessableEntity("Invalid address. Geo location not found.")

	// ErrInvalidCredentials is returned on unknown email or wrong password.
	ErrInvalidCredentials = NewUnprocessableEntity("Invalid user email or password")

	// ErrEmailAlreadyExists is returned when the registration email is taken.
	ErrEmailAlreadyExists = NewUnprocessableEntity("A user for the email already exists")

	// ErrUnauthorized is returned on missing, malformed or expired credentials.
	ErrUnauthorized = NewUnauthorized("Unauthorized user.")
)
