package errors

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"sentimentform/internal/logging"
	"sentimentform/internal/metrics"
)

// Middleware converts errors returned by handlers into JSON responses.
// echo.HTTPError values are left for echo's own error handler.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				metrics.HTTPErrorsTotal.WithLabelValues(string(typeForStatus(httpErr.Code))).Inc()
				return err
			}

			structuredErr := AsStructuredError(err)
			metrics.HTTPErrorsTotal.WithLabelValues(string(structuredErr.Type)).Inc()
			logError(c, structuredErr)

			if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}

func logError(c echo.Context, err *Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}
	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}
	if err.Cause != nil {
		attrs = append(attrs, "cause", err.Cause.Error())
	}

	if err.HTTPStatus() >= 500 {
		logging.Logger.Error("request failed", attrs...)
	} else {
		logging.Logger.Debug("request rejected", attrs...)
	}
}

func typeForStatus(code int) ErrorType {
	switch {
	case code == 404:
		return TypeNotFound
	case code == 422:
		return TypeUnprocessable
	case code >= 400 && code < 500:
		return TypeValidation
	case code == 502 || code == 503:
		return TypeExternal
	default:
		return TypeInternal
	}
}
