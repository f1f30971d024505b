package api

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/partsquote/gateway/docs"
	"github.com/partsquote/gateway/internal/api/handler"
	"github.com/partsquote/gateway/internal/api/middleware"
	"github.com/partsquote/gateway/internal/core/domain"
	"github.com/partsquote/gateway/internal/core/ports"
)

// RouterConfig carries the HTTP-facing settings of the gateway.
type RouterConfig struct {
	CookieName   string
	CookieSecure bool
	LoginPath    string
	TokenTTL     time.Duration
	// UpstreamURL is the frontend that allowed requests are proxied to.
	// Unmatched requests answer 404 when it is empty.
	UpstreamURL string
}

// Deps groups the services the router wires into handlers and middleware.
type Deps struct {
	Gate      ports.Gate
	Verifier  ports.CredentialVerifier
	Auth      ports.AuthService
	Sessions  ports.SessionService
	AccessLog ports.AccessLogService
	Events    ports.AccessEventPublisher // optional
	Readiness map[string]handler.Pinger

	// Metrics default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, deps Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "partsquote",
		Subsystem:  "http",
		Registerer: registerer,
	}))
	e.Use(middleware.Gate(deps.Gate, middleware.GateConfig{
		CookieName: cfg.CookieName,
		LoginPath:  cfg.LoginPath,
		Events:     deps.Events,
		Log:        deps.Log,
	}))

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	authHandler := handler.NewAuthHandler(deps.Auth, handler.CookieConfig{
		Name:   cfg.CookieName,
		Secure: cfg.CookieSecure,
		TTL:    cfg.TokenTTL,
	})
	sessionHandler := handler.NewSessionHandler(deps.Sessions, cfg.CookieName)
	accessEventHandler := handler.NewAccessEventHandler(deps.AccessLog)
	requireAuth := middleware.Auth(deps.Verifier, cfg.CookieName)

	limiter := loginRateLimiter()

	apiGroup := e.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", authHandler.Register, limiter)
	authGroup.POST("/login", authHandler.Login, limiter)
	authGroup.POST("/logout", authHandler.Logout, requireAuth)

	apiGroup.GET("/session", sessionHandler.Current)

	adminGroup := apiGroup.Group("/admin", requireAuth, middleware.RBAC(domain.RoleAdmin))
	adminGroup.GET("/access-events", accessEventHandler.List)

	// --- Frontend ---
	if cfg.UpstreamURL != "" {
		proxy, err := upstreamProxy(cfg.UpstreamURL)
		if err != nil {
			return nil, err
		}
		e.Any("/*", echo.NotFoundHandler, proxy)
	}

	return e, nil
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// loginRateLimiter throttles credential issuance per client IP.
func loginRateLimiter() echo.MiddlewareFunc {
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Skipper: echomiddleware.DefaultSkipper,
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(
			echomiddleware.RateLimiterMemoryStoreConfig{
				Rate:      5,
				Burst:     10,
				ExpiresIn: 3 * time.Minute,
			},
		),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		},
		ErrorHandler: rateLimitError,
	})
}

// rateLimitError answers when the client identifier cannot be extracted.
func rateLimitError(c echo.Context, err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
}

// upstreamProxy forwards allowed requests to the frontend unchanged.
func upstreamProxy(raw string) (echo.MiddlewareFunc, error) {
	target, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse upstream url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("upstream url %q must be absolute", raw)
	}

	return echomiddleware.ProxyWithConfig(echomiddleware.ProxyConfig{
		Balancer: echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{
			{Name: "frontend", URL: target},
		}),
	}), nil
}
