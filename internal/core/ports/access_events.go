package ports

import (
	"context"

	"github.com/partsquote/gateway/internal/core/domain"
)

// AccessEventPublisher accepts audit events without blocking the caller.
type AccessEventPublisher interface {
	Publish(event domain.AccessEvent)
}

// AccessEventFilter narrows access-event listings.
type AccessEventFilter struct {
	Kind   domain.AccessEventKind // optional
	Reason string                 // optional
	Limit  int                    // capped by the service
}

// AccessEventRepository persists the access audit trail.
type AccessEventRepository interface {
	Insert(ctx context.Context, event *domain.AccessEvent) error
	ListRecent(ctx context.Context, filter AccessEventFilter) ([]*domain.AccessEvent, error)
}

// AccessLogService records and lists access events.
type AccessLogService interface {
	Record(ctx context.Context, event domain.AccessEvent) error
	Recent(ctx context.Context, filter AccessEventFilter) ([]*domain.AccessEvent, error)
}

// SessionService derives the client-visible session state from a credential.
type SessionService interface {
	State(ctx context.Context, credential string) domain.SessionState
}
