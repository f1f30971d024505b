package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/partsquote/gateway/internal/api/metrics"
	"github.com/partsquote/gateway/internal/core/domain"
	"github.com/partsquote/gateway/internal/core/ports"
)

// GateConfig configures the route-authorization middleware.
type GateConfig struct {
	// CookieName is the cookie carrying the credential.
	CookieName string
	// LoginPath is where denied requests are redirected.
	LoginPath string
	// Events receives an access event for every denial. Optional.
	Events ports.AccessEventPublisher
	Log    zerolog.Logger
}

// Gate runs the route-authorization decision for every request. Allowed
// requests continue unmodified; denied ones are redirected to the login
// path with the original path and the required role as query parameters.
func Gate(gate ports.Gate, cfg GateConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			start := time.Now()
			decision := gate.Decide(req.Context(), path, ExtractCredential(c, cfg.CookieName))
			observeDecision(decision, time.Since(start))

			if decision.Allowed() {
				if decision.Claims != nil {
					setClaims(c, decision.Claims)
				}
				return next(c)
			}

			reason := domain.ReasonCode(decision.Reason)
			cfg.Log.Debug().
				Str("path", path).
				Str("required_role", decision.RequiredRole.String()).
				Str("reason", reason).
				Err(decision.Reason).
				Msg("gate denied request")

			if cfg.Events != nil {
				cfg.Events.Publish(domain.AccessEvent{
					Kind:         domain.AccessDenied,
					Path:         path,
					RequiredRole: decision.RequiredRole,
					Reason:       reason,
					RemoteIP:     c.RealIP(),
					RequestID:    c.Response().Header().Get(echo.HeaderXRequestID),
					OccurredAt:   start.UTC(),
				})
			}

			return c.Redirect(http.StatusTemporaryRedirect, LoginURL(cfg.LoginPath, decision))
		}
	}
}

// LoginURL builds the login redirect target for a denial.
func LoginURL(loginPath string, d domain.Decision) string {
	q := url.Values{}
	q.Set("redirect", d.ReturnPath)
	if d.RequiredRole != "" {
		q.Set("role", d.RequiredRole.String())
	}
	return loginPath + "?" + q.Encode()
}

func observeDecision(d domain.Decision, elapsed time.Duration) {
	outcome := string(d.Outcome)
	metrics.GateDecisionsTotal.WithLabelValues(outcome, d.Route.String(), domain.ReasonCode(d.Reason)).Inc()
	metrics.GateDecisionDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
