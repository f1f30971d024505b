package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/partsquote/gateway/internal/core/ports"
)

// Auth verifies the request credential for API routes and injects the
// claims into the context. Unlike Gate it answers 401 instead of redirecting.
func Auth(verifier ports.CredentialVerifier, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := verifier.Verify(c.Request().Context(), ExtractCredential(c, cookieName))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			setClaims(c, claims)
			return next(c)
		}
	}
}
