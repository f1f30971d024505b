package domain

import "time"

// User is an account able to obtain a credential from the built-in issuer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SelfRegistrable reports whether an account with role r may be created
// through public sign-up. Admin accounts are provisioned out of band.
func (r Role) SelfRegistrable() bool {
	return r == RoleUser || r == RoleSupplier
}
