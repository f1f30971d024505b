package domain

// Role is one of the closed set of roles a credential can carry.
// The zero value means anonymous.
type Role string

const (
	RoleUser     Role = "user"
	RoleSupplier Role = "supplier"
	RoleAdmin    Role = "admin"
)

var knownRoles = map[Role]struct{}{
	RoleUser:     {},
	RoleSupplier: {},
	RoleAdmin:    {},
}

// ParseRole accepts only exact members of the closed set. Unknown strings,
// including case variants, are reported as absent.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if _, ok := knownRoles[r]; !ok {
		return "", false
	}
	return r, true
}

// Valid reports whether r belongs to the closed set.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

func (r Role) String() string { return string(r) }

// ResolveRole extracts the normalised role from decoded claims.
func ResolveRole(c *Claims) (Role, bool) {
	if c == nil {
		return "", false
	}
	return ParseRole(c.RawRole)
}
