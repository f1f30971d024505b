package service

import (
	"context"
	"time"

	"github.com/partsquote/gateway/internal/core/domain"
	"github.com/partsquote/gateway/internal/core/ports"
)

const (
	defaultAccessEventLimit = 50
	maxAccessEventLimit     = 200
)

// AccessLogService persists and lists the access audit trail.
type AccessLogService struct {
	repo ports.AccessEventRepository
	now  func() time.Time
}

func NewAccessLogService(repo ports.AccessEventRepository) *AccessLogService {
	return &AccessLogService{repo: repo, now: time.Now}
}

var _ ports.AccessLogService = (*AccessLogService)(nil)

func (s *AccessLogService) Record(ctx context.Context, event domain.AccessEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	return s.repo.Insert(ctx, &event)
}

// Recent returns the newest events first. Limit defaults to 50 and is
// capped at 200.
func (s *AccessLogService) Recent(ctx context.Context, filter ports.AccessEventFilter) ([]*domain.AccessEvent, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultAccessEventLimit
	case filter.Limit > maxAccessEventLimit:
		filter.Limit = maxAccessEventLimit
	}
	return s.repo.ListRecent(ctx, filter)
}
