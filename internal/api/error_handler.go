package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/paydesk/payment-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// statusFor lists the domain errors that reach HTTP with a fixed status and
// message. Order matters only if an error wraps several of them.
var statusFor = []struct {
	target error
	code   int
	msg    string
}{
	{domain.ErrInvalidUsername, http.StatusBadRequest, "username is required"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "authentication required"},
	{domain.ErrTokenExpired, http.StatusUnauthorized, "authentication required"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
	{domain.ErrLedgerDisabled, http.StatusNotFound, "payment ledger is not configured"},
}

// NewHTTPErrorHandler renders every handler error as {"error": "<message>"}.
// Known domain errors get their own status; anything else is logged and
// reported as a 500 without details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}
	for _, m := range statusFor {
		if errors.Is(err, m.target) {
			return m.code, m.msg
		}
	}
	return http.StatusInternalServerError, "internal server error"
}
