package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/partsquote/gateway/internal/core/domain"
)

// Context keys set by Gate and Auth.
const (
	ContextKeyClaims  = "claims"
	ContextKeySubject = "subject"
	ContextKeyRole    = "role"
)

// ExtractCredential returns the bearer credential of the request: the named
// cookie when present, otherwise an "Authorization: Bearer" header.
func ExtractCredential(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// ClaimsFromContext returns the verified claims stored by Gate or Auth.
func ClaimsFromContext(c echo.Context) (*domain.Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*domain.Claims)
	return claims, ok && claims != nil
}

func setClaims(c echo.Context, claims *domain.Claims) {
	c.Set(ContextKeyClaims, claims)
	c.Set(ContextKeySubject, claims.Subject)
	if role, ok := domain.ResolveRole(claims); ok {
		c.Set(ContextKeyRole, role)
	}
}
