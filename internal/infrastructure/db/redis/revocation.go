package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/partsquote/gateway/internal/core/ports"
)

const revocationPrefix = "revoked:"

// RevocationStore keeps revoked credential ids until the credential would
// have expired anyway.
// Key format: revoked:<credential id>
type RevocationStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRevocationStore creates a RevocationStore wrapping the given Redis client.
func NewRevocationStore(client redis.UniversalClient) *RevocationStore {
	return &RevocationStore{client: client, now: time.Now}
}

var _ ports.RevocationStore = (*RevocationStore)(nil)

// Revoke records id as revoked. Credentials that are already expired are
// skipped since the codec rejects them regardless.
func (s *RevocationStore) Revoke(ctx context.Context, id string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(id), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke credential: %w", err)
	}
	return nil
}

// IsRevoked reports whether id has been revoked.
func (s *RevocationStore) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *RevocationStore) key(id string) string {
	return revocationPrefix + id
}
