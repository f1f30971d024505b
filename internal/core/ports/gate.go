package ports

import (
	"context"

	"github.com/partsquote/gateway/internal/core/domain"
)

// RouteClassifier maps a request path to its access requirement.
type RouteClassifier interface {
	Classify(path string) domain.RouteRequirement
}

// Gate decides whether a request for path may proceed given credential.
// Implementations must be safe for concurrent use and hold no per-request state.
type Gate interface {
	Decide(ctx context.Context, path, credential string) domain.Decision
}
