package service

import (
	"testing"

	"github.com/partsquote/gateway/internal/core/domain"
)

func newDefaultClassifier(t *testing.T) *PathClassifier {
	t.Helper()
	c, err := NewPathClassifier(DefaultRouteTable())
	if err != nil {
		t.Fatalf("NewPathClassifier: %v", err)
	}
	return c
}

func TestPathClassifier_Classify(t *testing.T) {
	c := newDefaultClassifier(t)

	tests := []struct {
		path string
		want domain.RouteRequirement
	}{
		{"/", domain.PublicRoute()},
		{"", domain.PublicRoute()},
		{"/services/brakes", domain.PublicRoute()},
		{"/login", domain.PublicRoute()},

		{"/admin", domain.RequiresRole(domain.RoleAdmin)},
		{"/admin/", domain.RequiresRole(domain.RoleAdmin)},
		{"/admin/dashboard", domain.RequiresRole(domain.RoleAdmin)},
		{"/admin/users/42", domain.RequiresRole(domain.RoleAdmin)},
		{"/administrator", domain.PublicRoute()},

		{"/supplier", domain.RequiresRole(domain.RoleSupplier)},
		{"/supplier/quotes", domain.RequiresRole(domain.RoleSupplier)},
		{"/supplier/onboarding", domain.PublicRoute()},
		{"/supplier/onboarding/step-2", domain.PublicRoute()},
		{"/supplier/onboardingx", domain.RequiresRole(domain.RoleSupplier)},
		{"/suppliers", domain.PublicRoute()},

		{"/customer", domain.RequiresRole(domain.RoleUser)},
		{"/customer/quotes", domain.RequiresRole(domain.RoleUser)},
		{"/user/profile", domain.RequiresRole(domain.RoleUser)},
		{"/users", domain.PublicRoute()},

		{"/_next/static/chunk.js", domain.BypassRoute()},
		{"/_next", domain.BypassRoute()},
		{"/api", domain.BypassRoute()},
		{"/api/session", domain.BypassRoute()},
		{"/apiary", domain.PublicRoute()},
		{"/favicon.ico", domain.BypassRoute()},
		{"/admin/logo.png", domain.BypassRoute()},
		{"/admin/v1.2/users", domain.RequiresRole(domain.RoleAdmin)},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %+v, want %+v", tt.path, got, tt.want)
		}
	}
}

func TestPathClassifier_NormalisesPath(t *testing.T) {
	c := newDefaultClassifier(t)

	for _, p := range []string{"//admin/dashboard", "/public/../admin/dashboard", "admin/dashboard", "/./admin"} {
		got := c.Classify(p)
		if got != domain.RequiresRole(domain.RoleAdmin) {
			t.Errorf("Classify(%q) = %+v, want admin requirement", p, got)
		}
	}
}

// A dot only marks a static file in the final segment; dots in earlier
// segments must not lift a protected group into bypass.
func TestPathClassifier_StaticFileHeuristicUsesLastSegment(t *testing.T) {
	c := newDefaultClassifier(t)

	tests := []struct {
		path string
		want domain.RouteRequirement
	}{
		{"/admin/v1.2/users", domain.RequiresRole(domain.RoleAdmin)},
		{"/supplier/catalog.v2/items", domain.RequiresRole(domain.RoleSupplier)},
		{"/customer/.well-known/orders", domain.RequiresRole(domain.RoleUser)},
		{"/admin/v1.2/report.csv", domain.BypassRoute()},
		{"/customer/orders/invoice.pdf", domain.BypassRoute()},
	}
	for _, tt := range tests {
		if got := c.Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %+v, want %+v", tt.path, got, tt.want)
		}
	}
}

func TestRouteTable_Validate(t *testing.T) {
	if err := DefaultRouteTable().Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}

	bad := []RouteTable{
		{Bypass: []string{""}},
		{Public: []string{"supplier/onboarding"}},
		{Protected: []RouteRule{{Prefix: "/", Role: domain.RoleAdmin}}},
		{Protected: []RouteRule{{Prefix: "/ops", Role: domain.Role("operator")}}},
	}
	for i, table := range bad {
		if _, err := NewPathClassifier(table); err == nil {
			t.Errorf("table %d: expected validation error", i)
		}
	}
}
