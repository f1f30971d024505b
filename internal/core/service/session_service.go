package service

import (
	"context"

	"github.com/partsquote/gateway/internal/core/domain"
	"github.com/partsquote/gateway/internal/core/ports"
)

// SessionService recomputes the client-visible session state from a
// credential on every call.
type SessionService struct {
	verifier ports.CredentialVerifier
}

func NewSessionService(verifier ports.CredentialVerifier) *SessionService {
	return &SessionService{verifier: verifier}
}

func (s *SessionService) State(ctx context.Context, credential string) domain.SessionState {
	claims, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return domain.SessionState{Error: domain.ReasonCode(err)}
	}

	state := domain.SessionState{
		IsAuthenticated: true,
		UserID:          claims.Subject,
		Email:           claims.Email,
	}
	if !claims.ExpiresAt.IsZero() {
		exp := claims.ExpiresAt
		state.ExpiresAt = &exp
	}
	if role, ok := domain.ResolveRole(claims); ok {
		state.Role = &role
	} else {
		state.Error = domain.ReasonCode(domain.ErrRoleUnrecognized)
	}
	return state
}
