package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRevocationStore_SkipsExpiredCredentials(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	// A nil client would panic if touched; expired credentials must not reach Redis.
	s := &RevocationStore{now: func() time.Time { return now }}

	if err := s.Revoke(context.Background(), "jti", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Revoke(context.Background(), "jti", now.Add(-time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRevocationStore_Key(t *testing.T) {
	s := NewRevocationStore(nil)
	if got := s.key("abc"); got != "revoked:abc" {
		t.Fatalf("key = %q", got)
	}
}

func TestRevocationStore_UnreachableRedisReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	s := NewRevocationStore(client)

	if _, err := s.IsRevoked(context.Background(), "jti"); err == nil {
		t.Fatal("expected error from unreachable redis")
	}
	if err := s.Revoke(context.Background(), "jti", time.Now().Add(time.Hour)); err == nil {
		t.Fatal("expected error from unreachable redis")
	}
}
