package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/partsquote/gateway/internal/core/domain"
	"github.com/partsquote/gateway/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + user.Email
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

type stubRevocationStore struct {
	revoked map[string]time.Time
	err     error
}

func (s *stubRevocationStore) Revoke(_ context.Context, id string, exp time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[id] = exp
	return nil
}

func (s *stubRevocationStore) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := s.revoked[id]
	return ok, s.err
}

type recordingPublisher struct {
	events []domain.AccessEvent
}

func (p *recordingPublisher) Publish(e domain.AccessEvent) { p.events = append(p.events, e) }

func newTestAuthService(t *testing.T, opts ...AuthOption) (*AuthService, gateFixture) {
	t.Helper()
	f := newGateFixture(t)
	opts = append([]AuthOption{
		WithHashCost(bcrypt.MinCost),
		WithAuthClock(func() time.Time { return gateNow }),
	}, opts...)
	return NewAuthService(newStubUserRepo(), f.codec, time.Hour, opts...), f
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "  Alice@Example.co.uk ", Password: "pass123", Name: "Alice", Role: domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.co.uk" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	bad := []ports.RegisterInput{
		{Email: "", Password: "pass", Role: domain.RoleUser},
		{Email: "bob@example.com", Password: "", Role: domain.RoleUser},
		{Email: "not-an-email", Password: "pass", Role: domain.RoleUser},
		{Email: "bob@example.com", Password: "pass", Role: domain.RoleAdmin},
		{Email: "bob@example.com", Password: "pass", Role: domain.Role("mechanic")},
	}
	for i, in := range bad {
		if _, err := svc.Register(ctx, in); err != domain.ErrInvalidCredentials {
			t.Fatalf("case %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	in := ports.RegisterInput{Email: "bob@example.com", Password: "pass", Role: domain.RoleSupplier}

	_, _ = svc.Register(context.Background(), in)
	if _, err := svc.Register(context.Background(), in); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_IssuesVerifiableCredential(t *testing.T) {
	events := &recordingPublisher{}
	svc, f := newTestAuthService(t, WithAccessEvents(events))
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Email: "carol@example.com", Password: "s3cret", Role: domain.RoleSupplier}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(ctx, "Carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := f.codec.Verify(ctx, token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != user.ID || claims.Email != "carol@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if role, ok := domain.ResolveRole(claims); !ok || role != domain.RoleSupplier {
		t.Fatalf("expected supplier role, got %q", claims.RawRole)
	}
	if claims.ID == "" {
		t.Fatalf("expected credential id")
	}
	if !claims.ExpiresAt.Equal(gateNow.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %v", claims.ExpiresAt)
	}

	if len(events.events) != 1 || events.events[0].Kind != domain.AccessSignedIn {
		t.Fatalf("expected one sign-in event, got %+v", events.events)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "dave@example.com", Password: "goodpass", Role: domain.RoleUser})
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailStillComparesHash(t *testing.T) {
	svc, _ := newTestAuthService(t)
	var compared [][]byte
	svc.compare = func(hash, password []byte) error {
		compared = append(compared, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(compared) != 1 {
		t.Fatalf("expected one hash comparison for unknown email, got %d", len(compared))
	}
	if _, err := bcrypt.Cost(compared[0]); err != nil {
		t.Fatalf("dummy hash is not a bcrypt hash: %v", err)
	}

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Email: "erin@example.com", Password: "goodpass", Role: domain.RoleUser})
	compared = nil
	if _, _, err := svc.Login(context.Background(), "erin@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(compared) != 1 {
		t.Fatalf("expected one hash comparison for wrong password, got %d", len(compared))
	}
}

func TestAuthService_Logout_Revokes(t *testing.T) {
	store := &stubRevocationStore{revoked: map[string]time.Time{}}
	events := &recordingPublisher{}
	svc, _ := newTestAuthService(t, WithRevocations(store), WithAccessEvents(events))

	claims := &domain.Claims{ID: "jti-9", Subject: "u-9", RawRole: "user", ExpiresAt: gateNow.Add(time.Hour)}
	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if exp, ok := store.revoked["jti-9"]; !ok || !exp.Equal(claims.ExpiresAt) {
		t.Fatalf("expected jti-9 revoked until expiry, got %v", store.revoked)
	}
	if len(events.events) != 1 || events.events[0].Kind != domain.AccessSignedOut || events.events[0].Role != domain.RoleUser {
		t.Fatalf("unexpected events: %+v", events.events)
	}

	store.err = errors.New("redis down")
	if err := svc.Logout(context.Background(), &domain.Claims{ID: "jti-10", ExpiresAt: gateNow.Add(time.Hour)}); err == nil {
		t.Fatalf("expected revocation failure to surface")
	}

	if err := svc.Logout(context.Background(), nil); err != domain.ErrCredentialMissing {
		t.Fatalf("expected ErrCredentialMissing, got %v", err)
	}
}
