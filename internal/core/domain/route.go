package domain

// RouteKind classifies how the gate treats a request path.
type RouteKind int

const (
	// RoutePublic requires no role.
	RoutePublic RouteKind = iota
	// RouteBypass is excluded from classification entirely (framework
	// assets, API paths, static files).
	RouteBypass
	// RouteProtected requires a specific role.
	RouteProtected
)

func (k RouteKind) String() string {
	switch k {
	case RouteBypass:
		return "bypass"
	case RouteProtected:
		return "protected"
	default:
		return "public"
	}
}

// RouteRequirement is the result of classifying a path. Role is set only
// when Kind is RouteProtected.
type RouteRequirement struct {
	Kind RouteKind
	Role Role
}

func PublicRoute() RouteRequirement { return RouteRequirement{Kind: RoutePublic} }

func BypassRoute() RouteRequirement { return RouteRequirement{Kind: RouteBypass} }

func RequiresRole(r Role) RouteRequirement {
	return RouteRequirement{Kind: RouteProtected, Role: r}
}

func (r RouteRequirement) Protected() bool { return r.Kind == RouteProtected }
