package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/partsquote/gateway/internal/core/domain"
	"github.com/partsquote/gateway/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// AuthService implements registration, login and logout for the built-in
// credential issuer.
type AuthService struct {
	repo     ports.UserRepository
	signer   ports.CredentialSigner
	revoker  ports.RevocationStore
	events   ports.AccessEventPublisher
	tokenTTL time.Duration
	now      func() time.Time
	newID    func() string
	hashCost int

	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
	compare   func(hash, password []byte) error
}

type AuthOption func(*AuthService)

// WithRevocations enables Logout to revoke credentials.
func WithRevocations(s ports.RevocationStore) AuthOption {
	return func(a *AuthService) { a.revoker = s }
}

// WithAccessEvents publishes sign-in and sign-out events.
func WithAccessEvents(p ports.AccessEventPublisher) AuthOption {
	return func(a *AuthService) { a.events = p }
}

// WithAuthClock overrides the clock used for issued-at and expiry.
func WithAuthClock(now func() time.Time) AuthOption {
	return func(a *AuthService) { a.now = now }
}

// WithHashCost sets the bcrypt cost; tests use bcrypt.MinCost.
func WithHashCost(cost int) AuthOption {
	return func(a *AuthService) { a.hashCost = cost }
}

func NewAuthService(repo ports.UserRepository, signer ports.CredentialSigner, tokenTTL time.Duration, opts ...AuthOption) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	s := &AuthService{
		repo:     repo,
		signer:   signer,
		tokenTTL: tokenTTL,
		now:      time.Now,
		newID:    uuid.NewString,
		hashCost: bcrypt.DefaultCost,
		compare:  bcrypt.CompareHashAndPassword,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.hashCost)
	return s
}

var _ ports.AuthService = (*AuthService)(nil)

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !in.Role.SelfRegistrable() {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = s.compare(s.dummyHash, []byte(password))
		}
		return "", nil, err
	}
	if s.compare([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	token, err := s.signer.Sign(domain.Claims{
		ID:        s.newID(),
		Subject:   user.ID,
		Email:     user.Email,
		RawRole:   string(user.Role),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokenTTL),
	})
	if err != nil {
		return "", nil, err
	}

	s.publish(domain.AccessEvent{
		Kind:       domain.AccessSignedIn,
		Subject:    user.ID,
		Role:       user.Role,
		OccurredAt: now.UTC(),
	})
	return token, user, nil
}

// Logout revokes the credential until its natural expiry. Credentials
// without an id cannot be revoked and simply age out.
func (s *AuthService) Logout(ctx context.Context, claims *domain.Claims) error {
	if claims == nil {
		return domain.ErrCredentialMissing
	}
	if s.revoker != nil && claims.ID != "" && claims.ExpiresAt.After(s.now()) {
		if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
			return err
		}
	}

	role, _ := domain.ResolveRole(claims)
	s.publish(domain.AccessEvent{
		Kind:       domain.AccessSignedOut,
		Subject:    claims.Subject,
		Role:       role,
		OccurredAt: s.now().UTC(),
	})
	return nil
}

func (s *AuthService) publish(e domain.AccessEvent) {
	if s.events != nil {
		s.events.Publish(e)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
