// Package token verifies and signs HS256 bearer credentials.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/partsquote/gateway/internal/core/domain"
	"github.com/partsquote/gateway/internal/core/ports"
)

// ErrEmptySecret is returned by NewCodec when no signing secret is configured.
var ErrEmptySecret = errors.New("token: signing secret is empty")

// tokenClaims is the wire shape of a credential payload. Role is decoded
// loosely so that a non-string role yields "no role" instead of a decode
// failure.
type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Role  any    `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Codec verifies and signs credentials with a shared HS256 secret.
// It is immutable after construction and safe for concurrent use.
type Codec struct {
	secret  []byte
	now     func() time.Time
	revoked ports.RevocationStore
	parser  *jwt.Parser
}

type Option func(*Codec)

// WithClock overrides the wall clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// WithRevocationStore makes Verify reject credentials whose id was revoked.
func WithRevocationStore(s ports.RevocationStore) Option {
	return func(c *Codec) { c.revoked = s }
}

func NewCodec(secret string, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	c := &Codec{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	return c, nil
}

var _ ports.CredentialCodec = (*Codec)(nil)

// Verify decodes token and checks its signature, expiry and revocation.
// Expiry is enforced here: a credential is valid only while now < exp.
func (c *Codec) Verify(ctx context.Context, token string) (*domain.Claims, error) {
	if token == "" {
		return nil, domain.ErrCredentialMissing
	}

	var tc tokenClaims
	tkn, err := c.parser.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	switch {
	case err == nil && tkn.Valid:
	case err != nil && errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, fmt.Errorf("%w: %v", domain.ErrCredentialInvalid, err)
	case err != nil && errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %v", domain.ErrCredentialExpired, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", domain.ErrCredentialInvalid, err)
	default:
		return nil, domain.ErrCredentialInvalid
	}

	claims := toDomain(&tc)
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrCredentialInvalid)
	}

	if c.revoked != nil && claims.ID != "" {
		revoked, err := c.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: revocation check: %v", domain.ErrCredentialInvalid, err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: revoked", domain.ErrCredentialInvalid)
		}
	}

	return claims, nil
}

// Sign mints an HS256 credential carrying claims.
func (c *Codec) Sign(claims domain.Claims) (string, error) {
	tc := tokenClaims{
		Email: claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:      claims.ID,
			Subject: claims.Subject,
		},
	}
	if claims.RawRole != "" {
		tc.Role = claims.RawRole
	}
	if !claims.IssuedAt.IsZero() {
		tc.IssuedAt = jwt.NewNumericDate(claims.IssuedAt)
	}
	if !claims.ExpiresAt.IsZero() {
		tc.ExpiresAt = jwt.NewNumericDate(claims.ExpiresAt)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign credential: %w", err)
	}
	return signed, nil
}

func toDomain(tc *tokenClaims) *domain.Claims {
	claims := &domain.Claims{
		ID:      tc.ID,
		Subject: tc.Subject,
		Email:   tc.Email,
	}
	if role, ok := tc.Role.(string); ok {
		claims.RawRole = role
	}
	if tc.IssuedAt != nil {
		claims.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	return claims
}
