// Package reqctx carries request-scoped identity through context.Context.
package reqctx

import (
	"context"

	"github.com/paydesk/payment-service/internal/core/domain"
)

type contextKey string

const authResultKey = contextKey("auth_result")

// WithAuthResult returns a copy of ctx holding the authentication outcome.
func WithAuthResult(ctx context.Context, res domain.AuthResult) context.Context {
	return context.WithValue(ctx, authResultKey, res)
}

// AuthResultFrom returns the authentication outcome stored in ctx, if any.
func AuthResultFrom(ctx context.Context) (domain.AuthResult, bool) {
	res, ok := ctx.Value(authResultKey).(domain.AuthResult)
	return res, ok
}

// PrincipalFrom returns the authenticated principal, or false when the
// request did not authenticate.
func PrincipalFrom(ctx context.Context) (*domain.Principal, bool) {
	res, ok := AuthResultFrom(ctx)
	if !ok || res.Status != domain.Authenticated || res.Principal == nil {
		return nil, false
	}
	return res.Principal, true
}
