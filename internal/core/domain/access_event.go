package domain

import "time"

// AccessEventKind labels entries in the access audit trail.
type AccessEventKind string

const (
	AccessDenied    AccessEventKind = "denied"
	AccessSignedIn  AccessEventKind = "signed_in"
	AccessSignedOut AccessEventKind = "signed_out"
)

// AccessEvent records a gate denial or a sign-in/sign-out.
type AccessEvent struct {
	ID           string          `json:"id,omitempty"`
	Kind         AccessEventKind `json:"kind"`
	Path         string          `json:"path,omitempty"`
	Subject      string          `json:"subject,omitempty"`
	Role         Role            `json:"role,omitempty"`
	RequiredRole Role            `json:"required_role,omitempty"`
	Reason       string          `json:"reason,omitempty"`
	RemoteIP     string          `json:"remote_ip,omitempty"`
	RequestID    string          `json:"request_id,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// ShardKey groups events that must be processed in order.
func (e AccessEvent) ShardKey() string {
	if e.Subject != "" {
		return e.Subject
	}
	return e.Path
}
