package service

import (
	"context"

	"github.com/partsquote/gateway/internal/core/domain"
	"github.com/partsquote/gateway/internal/core/ports"
)

// GateService combines route classification, credential verification and
// role resolution into a single allow/redirect decision. It keeps no
// per-request state.
type GateService struct {
	classifier ports.RouteClassifier
	verifier   ports.CredentialVerifier
}

func NewGateService(classifier ports.RouteClassifier, verifier ports.CredentialVerifier) *GateService {
	return &GateService{classifier: classifier, verifier: verifier}
}

var _ ports.Gate = (*GateService)(nil)

// Decide evaluates credential against the requirement of path. Public and
// bypassed paths are allowed without looking at the credential.
func (g *GateService) Decide(ctx context.Context, path, credential string) domain.Decision {
	req := g.classifier.Classify(path)
	if !req.Protected() {
		d := domain.Allow(nil)
		d.Route = req.Kind
		return d
	}

	claims, err := g.verifier.Verify(ctx, credential)
	if err != nil {
		return domain.RedirectToLogin(path, req.Role, err)
	}

	role, ok := domain.ResolveRole(claims)
	if !ok {
		return domain.RedirectToLogin(path, req.Role, domain.ErrRoleUnrecognized)
	}
	if role != req.Role {
		return domain.RedirectToLogin(path, req.Role, domain.ErrRoleMismatch)
	}
	return domain.Allow(claims)
}
