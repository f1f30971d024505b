package domain

import "time"

// SessionState is the client-observable view of a credential. It is derived
// on every request and never stored.
type SessionState struct {
	IsAuthenticated bool       `json:"isAuthenticated"`
	Role            *Role      `json:"role"`
	UserID          string     `json:"userId,omitempty"`
	Email           string     `json:"email,omitempty"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	Error           string     `json:"error,omitempty"`
}
