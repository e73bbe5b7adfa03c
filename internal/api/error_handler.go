package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes, logs unexpected errors without leaking them and
// renders {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, errorResponse{Error: ve.Error(), Fields: ve.FieldMap()}
	}

	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, errorResponse{Error: domain.ErrCustomerNotFound.Error()}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: domain.ErrUserNotFound.Error()}
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, errorResponse{Error: domain.ErrDuplicateEmail.Error()}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: domain.ErrUserExists.Error()}
	case errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusUnprocessableEntity, errorResponse{
			Error:  domain.ErrPasswordMismatch.Error(),
			Fields: map[string]string{"password2": domain.ErrPasswordMismatch.Error()},
		}
	case errors.Is(err, domain.ErrInvalidSpreadsheet), errors.Is(err, domain.ErrInvalidImage):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInactiveUser),
		errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized, errorResponse{Error: err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
