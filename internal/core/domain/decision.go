package domain

// Outcome is the outward action chosen by the gate.
type Outcome string

const (
	OutcomeAllow           Outcome = "allow"
	OutcomeRedirectToLogin Outcome = "redirect_to_login"
)

// Decision is the result of evaluating one request against the gate.
//
// Reason is one of the credential taxonomy errors for redirects and nil for
// allows. It is for logging and metrics only and is never shown to clients.
// Claims is set when an allow was based on a verified credential. Route
// records how the path was classified.
type Decision struct {
	Outcome      Outcome
	Route        RouteKind
	ReturnPath   string
	RequiredRole Role
	Reason       error
	Claims       *Claims
}

func Allow(claims *Claims) Decision {
	return Decision{Outcome: OutcomeAllow, Route: RouteProtected, Claims: claims}
}

func RedirectToLogin(returnPath string, required Role, reason error) Decision {
	return Decision{
		Outcome:      OutcomeRedirectToLogin,
		Route:        RouteProtected,
		ReturnPath:   returnPath,
		RequiredRole: required,
		Reason:       reason,
	}
}

func (d Decision) Allowed() bool { return d.Outcome == OutcomeAllow }
