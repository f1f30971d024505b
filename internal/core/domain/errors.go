package domain

import "errors"

// Credential failure taxonomy. Every kind collapses to a login redirect at
// the gate boundary.
var (
	ErrCredentialMissing = errors.New("credential missing")
	ErrCredentialInvalid = errors.New("credential invalid")
	ErrCredentialExpired = errors.New("credential expired")
	ErrRoleMismatch      = errors.New("role does not satisfy route requirement")
	ErrRoleUnrecognized  = errors.New("role unrecognized")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")
)

// ReasonCode returns a short stable label for a taxonomy error, suitable for
// metric labels and client-facing session state. It returns "" for nil and
// "unknown" for errors outside the taxonomy.
func ReasonCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCredentialMissing):
		return "missing"
	case errors.Is(err, ErrCredentialExpired):
		return "expired"
	case errors.Is(err, ErrCredentialInvalid):
		return "invalid"
	case errors.Is(err, ErrRoleMismatch):
		return "role_mismatch"
	case errors.Is(err, ErrRoleUnrecognized):
		return "unrecognized_role"
	default:
		return "unknown"
	}
}
