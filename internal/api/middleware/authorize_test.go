package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/paydesk/payment-service/internal/core/domain"
	"github.com/paydesk/payment-service/internal/pkg/reqctx"
)

var testPolicy = Policy{
	Public:    []string{"/auth/login", "/health"},
	Protected: []string{"/v1/payment"},
}

func TestPolicy_Decide(t *testing.T) {
	authed := domain.AuthenticatedAs(&domain.Principal{Username: "alice"})
	tests := []struct {
		name string
		path string
		res  domain.AuthResult
		want bool
	}{
		{"public path without credential", "/auth/login", domain.NotAuthenticated(), true},
		{"public path with invalid credential", "/health", domain.InvalidCredential(domain.ErrInvalidToken), true},
		{"protected without credential", "/v1/payment/pay", domain.NotAuthenticated(), false},
		{"protected with invalid token", "/v1/payment/transactions", domain.InvalidCredential(domain.ErrInvalidToken), false},
		{"protected with expired token", "/v1/payment/pay", domain.InvalidCredential(domain.ErrTokenExpired), false},
		{"protected with principal", "/v1/payment/pay", authed, true},
		{"protected prefix itself", "/v1/payment", domain.NotAuthenticated(), false},
		{"prefix match respects segments", "/v1/payments", domain.NotAuthenticated(), true},
		{"authenticated without principal", "/v1/payment/pay", domain.AuthResult{Status: domain.Authenticated}, false},
		{"unmatched path", "/swagger/index.html", domain.NotAuthenticated(), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := testPolicy.Decide(tc.path, tc.res); got != tc.want {
				t.Fatalf("Decide(%q, %v) = %v, want %v", tc.path, tc.res.Status, got, tc.want)
			}
		})
	}
}

func TestAuthorize_RejectsWith401(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/payment/pay", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authorize(testPolicy)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if want := `{"error":"authentication required"}`; rec.Body.String() != want+"\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestAuthorize_AllowsPrincipal(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/payment/pay", nil)
	req = req.WithContext(reqctx.WithAuthResult(req.Context(),
		domain.AuthenticatedAs(&domain.Principal{Username: "alice"})))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authorize(testPolicy)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next with 200, called=%v code=%d", called, rec.Code)
	}
}
