package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/paydesk/payment-service/internal/core/domain"
)

var errBoom = errors.New("boom")

type stubAuthService struct {
	loginFn func(ctx context.Context, username string) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, username string) (string, error) {
	return s.loginFn(ctx, username)
}

type stubPaymentService struct {
	executeFn func(ctx context.Context, method string, amount float64) (*domain.PaymentTransaction, error)
	txs       []domain.PaymentTransaction
	listErr   error
	methods   []string
	stats     []domain.MethodStats
	statsErr  error
}

func (s *stubPaymentService) ExecutePayment(ctx context.Context, method string, amount float64) (*domain.PaymentTransaction, error) {
	return s.executeFn(ctx, method, amount)
}

func (s *stubPaymentService) ListTransactions(context.Context) ([]domain.PaymentTransaction, error) {
	return s.txs, s.listErr
}

func (s *stubPaymentService) Methods() []string { return s.methods }

func (s *stubPaymentService) LedgerStats(context.Context) ([]domain.MethodStats, error) {
	return s.stats, s.statsErr
}

func newTestContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}
