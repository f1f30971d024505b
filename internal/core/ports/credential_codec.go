package ports

import (
	"context"

	"github.com/partsquote/gateway/internal/core/domain"
)

// CredentialVerifier decodes and validates a bearer credential.
//
// Verify returns domain.ErrCredentialMissing, domain.ErrCredentialInvalid or
// domain.ErrCredentialExpired on failure and never any other error.
type CredentialVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Claims, error)
}

// CredentialSigner mints credentials for the built-in issuer.
type CredentialSigner interface {
	Sign(claims domain.Claims) (string, error)
}

// CredentialCodec both verifies and signs.
type CredentialCodec interface {
	CredentialVerifier
	CredentialSigner
}
