package ports

import (
	"context"
	"time"
)

// RevocationStore tracks credentials discarded before their natural expiry.
type RevocationStore interface {
	// Revoke marks the credential id as revoked until expiresAt.
	Revoke(ctx context.Context, id string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}
