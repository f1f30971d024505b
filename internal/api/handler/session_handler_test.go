package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/partsquote/gateway/internal/core/domain"
)

type stubSessionService struct {
	got   string
	state domain.SessionState
}

func (s *stubSessionService) State(ctx context.Context, credential string) domain.SessionState {
	s.got = credential
	return s.state
}

func TestSessionHandler_Current_ReadsCookie(t *testing.T) {
	e := newTestEcho()
	role := domain.RoleSupplier
	stub := &stubSessionService{state: domain.SessionState{IsAuthenticated: true, Role: &role, UserID: "u7"}}
	h := NewSessionHandler(stub, "access_token")

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")
	rec := httptest.NewRecorder()

	if err := h.Current(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.got != "cookie-token" {
		t.Fatalf("expected cookie credential to win, got %q", stub.got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("session state must not be cached")
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["isAuthenticated"] != true || resp["role"] != "supplier" || resp["userId"] != "u7" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestSessionHandler_Current_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	stub := &stubSessionService{state: domain.SessionState{Error: "missing"}}
	h := NewSessionHandler(stub, "access_token")

	rec := httptest.NewRecorder()
	if err := h.Current(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/session", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.got != "" {
		t.Fatalf("expected empty credential, got %q", stub.got)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["isAuthenticated"] != false || resp["role"] != nil || resp["error"] != "missing" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
