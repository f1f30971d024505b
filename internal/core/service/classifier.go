package service

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/partsquote/gateway/internal/core/domain"
)

// RouteRule binds a path prefix to the role it requires.
type RouteRule struct {
	Prefix string
	Role   domain.Role
}

// RouteTable is the static route classification configuration.
//
// Bypass prefixes are checked first, then public exceptions, then protected
// groups. Groups are disjoint by top-level segment so their order does not
// matter.
type RouteTable struct {
	Bypass    []string
	Public    []string
	Protected []RouteRule
}

// DefaultRouteTable returns the PartsQuote route groups.
func DefaultRouteTable() RouteTable {
	return RouteTable{
		Bypass: []string{"/_next", "/api"},
		Public: []string{"/supplier/onboarding"},
		Protected: []RouteRule{
			{Prefix: "/admin", Role: domain.RoleAdmin},
			{Prefix: "/supplier", Role: domain.RoleSupplier},
			{Prefix: "/customer", Role: domain.RoleUser},
			{Prefix: "/user", Role: domain.RoleUser},
		},
	}
}

// Validate rejects tables with empty or relative prefixes and unknown roles.
func (t RouteTable) Validate() error {
	var errs []error
	check := func(kind, prefix string) {
		if prefix == "" || !strings.HasPrefix(prefix, "/") {
			errs = append(errs, fmt.Errorf("%s prefix %q must start with /", kind, prefix))
		}
		if prefix == "/" {
			errs = append(errs, fmt.Errorf("%s prefix must not be the root path", kind))
		}
	}
	for _, p := range t.Bypass {
		check("bypass", p)
	}
	for _, p := range t.Public {
		check("public", p)
	}
	for _, r := range t.Protected {
		check("protected", r.Prefix)
		if !r.Role.Valid() {
			errs = append(errs, fmt.Errorf("protected prefix %q has unknown role %q", r.Prefix, r.Role))
		}
	}
	return errors.Join(errs...)
}

// PathClassifier maps request paths to route requirements using a RouteTable.
type PathClassifier struct {
	table RouteTable
}

func NewPathClassifier(table RouteTable) (*PathClassifier, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("route table: %w", err)
	}
	return &PathClassifier{table: table}, nil
}

// Classify returns the requirement for p. The path is cleaned first so that
// "//admin" or "/x/../admin" cannot sidestep a protected group.
func (c *PathClassifier) Classify(p string) domain.RouteRequirement {
	p = normalizePath(p)

	for _, prefix := range c.table.Bypass {
		if matchPrefix(p, prefix) {
			return domain.BypassRoute()
		}
	}
	if looksLikeStaticFile(p) {
		return domain.BypassRoute()
	}
	for _, prefix := range c.table.Public {
		if matchPrefix(p, prefix) {
			return domain.PublicRoute()
		}
	}
	for _, rule := range c.table.Protected {
		if matchPrefix(p, rule.Prefix) {
			return domain.RequiresRole(rule.Role)
		}
	}
	return domain.PublicRoute()
}

func normalizePath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// matchPrefix reports whether p equals prefix or lies beneath it.
func matchPrefix(p, prefix string) bool {
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// looksLikeStaticFile treats a dot in the final segment as a file request.
func looksLikeStaticFile(p string) bool {
	return strings.Contains(path.Base(p), ".")
}
