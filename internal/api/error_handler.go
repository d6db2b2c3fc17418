package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shipsy/shipsy-api/internal/api/handler"
	"github.com/shipsy/shipsy-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Renders every error inside the standard response envelope.
//   - Logs unexpected errors internally; in production the client only sees
//     a generic internal-error message.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c, production)
		_ = c.JSON(status, handler.Envelope{
			Success: false,
			Message: body.Message,
			Error:   &body,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) (int, handler.ErrorBody) {
	// Structured validation failures carry field-level details.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, handler.ErrorBody{
			Code:    handler.CodeValidation,
			Message: "validation failed",
			Details: ve.Fields,
		}
	}

	// Echo's own errors (bind failures, 404 from router, middleware 401s).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorBody{
			Code:    codeForStatus(he.Code),
			Message: fmt.Sprintf("%v", he.Message),
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, handler.ErrorBody{Code: handler.CodeValidation, Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, handler.ErrorBody{Code: handler.CodeUnauthorized, Message: "invalid email or password"}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, handler.ErrorBody{Code: handler.CodeUnauthorized, Message: "unauthenticated"}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, handler.ErrorBody{Code: handler.CodeNotFound, Message: "record not found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, handler.ErrorBody{Code: handler.CodeConflict, Message: "an account with this email already exists"}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, handler.ErrorBody{Code: handler.CodeConflict, Message: "duplicate value for unique field"}
	case errors.Is(err, domain.ErrCustomerHasShipments):
		return http.StatusConflict, handler.ErrorBody{Code: handler.CodeConflict, Message: "customer has associated shipments"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	msg := "internal server error"
	if !production {
		msg = err.Error()
	}
	return http.StatusInternalServerError, handler.ErrorBody{Code: handler.CodeInternal, Message: msg}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return handler.CodeValidation
	case http.StatusUnauthorized:
		return handler.CodeUnauthorized
	case http.StatusNotFound:
		return handler.CodeNotFound
	case http.StatusConflict:
		return handler.CodeConflict
	default:
		return handler.CodeInternal
	}
}
