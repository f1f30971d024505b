package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	minSecretLength = 32
)

// placeholderSecrets are values that show up in sample .env files and must
// never sign production credentials.
var placeholderSecrets = map[string]struct{}{
	"secret":                {},
	"changeme":              {},
	"change-me":             {},
	"your-secret-key":       {},
	"your-jwt-secret":       {},
	"supersecret":           {},
	"development-secret":    {},
	"replace-in-production": {},
}

var (
	ErrMissingSecret     = errors.New("JWT_SECRET is required")
	ErrPlaceholderSecret = errors.New("JWT_SECRET is a placeholder value")
	ErrWeakSecret        = fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretLength)
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// UpstreamURL is the frontend allowed requests are proxied to. When empty
	// only the gateway's own routes are served.
	UpstreamURL string `env:"UPSTREAM_URL"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Audit AuditConfig
}

type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET"`
	CookieName   string        `env:"AUTH_COOKIE_NAME,   default=access_token"`
	CookieSecure bool          `env:"AUTH_COOKIE_SECURE, default=true"`
	LoginPath    string        `env:"AUTH_LOGIN_PATH,    default=/login"`
	TokenTTL     time.Duration `env:"AUTH_TOKEN_TTL,     default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=partsquote"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs with production hardening.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Validate checks settings that envconfig cannot express. It returns
// warnings for weaknesses tolerated outside production and an error for
// anything that must stop the process.
func (c *Config) Validate() (warnings []string, err error) {
	var errs []error

	if secretErr := c.Auth.checkSecret(); secretErr != nil {
		if c.IsProduction() || errors.Is(secretErr, ErrMissingSecret) {
			errs = append(errs, secretErr)
		} else {
			warnings = append(warnings, secretErr.Error()+"; override before deploying")
		}
	}

	if c.Auth.CookieName == "" {
		errs = append(errs, errors.New("AUTH_COOKIE_NAME must not be empty"))
	}
	if !strings.HasPrefix(c.Auth.LoginPath, "/") {
		errs = append(errs, fmt.Errorf("AUTH_LOGIN_PATH %q must be an absolute path", c.Auth.LoginPath))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_TOKEN_TTL must be positive"))
	}
	if c.IsProduction() && !c.Auth.CookieSecure {
		errs = append(errs, errors.New("AUTH_COOKIE_SECURE must be true in production"))
	}
	if c.UpstreamURL != "" {
		u, parseErr := url.Parse(c.UpstreamURL)
		if parseErr != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("UPSTREAM_URL %q must be an absolute URL", c.UpstreamURL))
		}
	}

	return warnings, errors.Join(errs...)
}

func (a AuthConfig) checkSecret() error {
	if a.JWTSecret == "" {
		return ErrMissingSecret
	}
	if _, ok := placeholderSecrets[strings.ToLower(a.JWTSecret)]; ok {
		return ErrPlaceholderSecret
	}
	if len(a.JWTSecret) < minSecretLength {
		return ErrWeakSecret
	}
	return nil
}
