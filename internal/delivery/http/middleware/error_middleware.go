package middleware

import (
	"log/slog"
	"net/http"

	"agrimap/internal/delivery/http/response"
	domainerrors "agrimap/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. Application
// errors keep their status code and {name, message} envelope; everything
// else collapses to a generic 500 with the cause only in the logs.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Try to parse as AppError
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		// Server-side failures (upstream gateways included) collapse to the
		// generic 500; the cause stays in the logs only.
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logger.Error("Upstream failure",
				"error", err.Error(),
				"path", c.Request().URL.Path,
				"method", c.Request().Method,
			)
			_ = response.Error(c, http.StatusInternalServerError, "", "Internal Server Error")

			return
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.Name(), appErr.Message())

		return
	}

	// Check if it's Echo's HTTPError (unknown routes, body too large, ...)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		_ = response.Error(c, httpErr.Code, "HttpError", message)

		return
	}

	// Default to internal error, log error and return generic error
	m.logger.Error("Unhandled error",
		"error", err.Error(),
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
	)

	_ = response.Error(c, http.StatusInternalServerError, "", "Internal Server Error")
}
