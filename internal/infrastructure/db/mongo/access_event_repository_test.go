package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/partsquote/gateway/internal/core/domain"
	"github.com/partsquote/gateway/internal/core/ports"
)

func TestAccessEventQuery(t *testing.T) {
	if q := accessEventQuery(ports.AccessEventFilter{}); len(q) != 0 {
		t.Fatalf("expected empty query, got %v", q)
	}

	q := accessEventQuery(ports.AccessEventFilter{Kind: domain.AccessDenied, Reason: "expired"})
	want := bson.M{"kind": "denied", "reason": "expired"}
	if len(q) != len(want) || q["kind"] != want["kind"] || q["reason"] != want["reason"] {
		t.Fatalf("query = %v, want %v", q, want)
	}
}

func TestMongoUser_ToDomain(t *testing.T) {
	mu := mongoUser{Email: "a@example.com", Role: "supplier", CreatedAt: 1_700_000_000}
	u := mu.toDomain()
	if u.Role != domain.RoleSupplier || u.Email != "a@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.CreatedAt.Unix() != 1_700_000_000 || !u.UpdatedAt.IsZero() {
		t.Fatalf("unexpected timestamps: %v %v", u.CreatedAt, u.UpdatedAt)
	}
}
