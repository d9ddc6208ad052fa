package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/paydesk/payment-service/internal/core/domain"
	"github.com/paydesk/payment-service/internal/pkg/reqctx"
)

// Policy decides which paths need an authenticated principal.
type Policy struct {
	// Public paths are matched exactly and always allowed.
	Public []string
	// Protected entries are path prefixes, matched on segment boundaries.
	Protected []string
}

// Decide reports whether a request for path with the given authentication
// outcome may proceed. Paths matching neither list are allowed.
func (p Policy) Decide(path string, res domain.AuthResult) bool {
	for _, pub := range p.Public {
		if path == pub {
			return true
		}
	}
	for _, prefix := range p.Protected {
		if underPrefix(path, prefix) {
			return res.Status == domain.Authenticated && res.Principal != nil
		}
	}
	return true
}

func underPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// Authorize rejects requests the policy denies with 401.
func Authorize(policy Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res, _ := reqctx.AuthResultFrom(c.Request().Context())
			if !policy.Decide(c.Request().URL.Path, res) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			return next(c)
		}
	}
}
