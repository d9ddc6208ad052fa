package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paydesk/payment-service/internal/pkg/reqctx"
)

// RequireAuthority enforces that the authenticated principal holds at least
// one of the given authorities.
func RequireAuthority(authorities ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(authorities))
	for _, a := range authorities {
		allowed[a] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := reqctx.PrincipalFrom(c.Request().Context())
			if ok {
				for _, a := range principal.Authorities {
					if _, hit := allowed[a]; hit {
						return next(c)
					}
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
