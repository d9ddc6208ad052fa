package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/paydesk/payment-service/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "userName is required"), 400, `{"error":"userName is required"}`},
		{"ledger disabled", fmt.Errorf("stats: %w", domain.ErrLedgerDisabled), 404, `{"error":"payment ledger is not configured"}`},
		{"invalid token", domain.ErrInvalidToken, 401, `{"error":"authentication required"}`},
		{"blank username", domain.ErrInvalidUsername, 400, `{"error":"username is required"}`},
		{"user exists", domain.ErrUserExists, 409, `{"error":"user already exists"}`},
		{"storage failure", fmt.Errorf("save transaction: %w", errors.New("disk I/O error")), 500, `{"error":"internal server error"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/v1/payment/pay", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if rec.Body.String() != tc.wantBody+"\n" {
				t.Fatalf("body = %q, want %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response modified: %d %q", rec.Code, rec.Body.String())
	}
}
