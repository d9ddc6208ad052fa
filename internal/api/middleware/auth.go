package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/paydesk/payment-service/internal/api/metrics"
	"github.com/paydesk/payment-service/internal/core/ports"
	"github.com/paydesk/payment-service/internal/pkg/reqctx"
)

// Authenticate resolves the bearer credential once per request and stores the
// result in the request context. It never rejects: rejection is Authorize's
// job. Exempt paths pass through with nothing stored.
func Authenticate(authenticator ports.Authenticator, exemptPaths ...string) echo.MiddlewareFunc {
	exempt := make(map[string]struct{}, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if _, ok := exempt[req.URL.Path]; ok {
				return next(c)
			}
			if _, done := reqctx.AuthResultFrom(req.Context()); done {
				return next(c)
			}

			res := authenticator.Authenticate(req.Context(), req.Header.Get(echo.HeaderAuthorization))
			metrics.AuthResultsTotal.WithLabelValues(res.Status.String()).Inc()

			c.SetRequest(req.WithContext(reqctx.WithAuthResult(req.Context(), res)))
			return next(c)
		}
	}
}
