package models

import "fmt"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleClient UserRole = "client"
)

// ParseRole accepts only the two known roles.
func ParseRole(s string) (UserRole, error) {
	switch r := UserRole(s); r {
	case RoleAdmin, RoleClient:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r UserRole) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Identity is the caller resolved from a session token.
type Identity struct {
	UserID   uint
	Email    string
	Role     UserRole
	TenantID *uint
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// TenantScope reports the tenant the caller is confined to. Admins are not
// confined. Anything that is not an admin is confined, and a client without a
// tenant link is confined to tenant 0, which matches no rows.
func (i Identity) TenantScope() (uint, bool) {
	switch i.Role {
	case RoleAdmin:
		return 0, false
	case RoleClient:
		if i.TenantID != nil {
			return *i.TenantID, true
		}
	}
	return 0, true
}
