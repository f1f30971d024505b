package domain

import "time"

// Claims is the verified payload of a credential.
//
// RawRole holds the role claim exactly as issued when it was a JSON string
// and is empty otherwise; use ResolveRole to obtain a Role.
type Claims struct {
	ID        string
	Subject   string
	Email     string
	RawRole   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ExpiredAt reports whether the claims are expired at now.
// A credential is valid only while now is strictly before ExpiresAt.
func (c *Claims) ExpiredAt(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
