// Package response defines the JSON shapes the HTTP layer writes.
package response

import (
	"github.com/labstack/echo/v4"
)

// ErrorBody is the envelope every failed request serializes to. The name
// field is a stable, machine-readable error class; message is human-readable.
// Generic server errors carry no name.
type ErrorBody struct {
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// JSON writes a successful response with the given payload as-is.
func JSON(c echo.Context, statusCode int, payload any) error {
	return c.JSON(statusCode, payload)
}

// Error writes the error envelope with the given status code.
func Error(c echo.Context, statusCode int, name, message string) error {
	return c.JSON(statusCode, ErrorBody{Name: name, Message: message})
}
