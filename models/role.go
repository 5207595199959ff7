package models

import "strings"

// Role is one of the three account tiers
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleManager    Role = "Manager"
	RoleTechnician Role = "Technician"

	// RoleNone marks a caller that presented no role; it is unrestricted
	RoleNone Role = ""
)

// ParseRole matches a role name case-insensitively. Unknown values map to RoleNone.
func ParseRole(value string) Role {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	case "technician":
		return RoleTechnician
	default:
		return RoleNone
	}
}

// RegistrationRole returns the role stored for a new account.
// Only the exact names are accepted; anything else becomes Technician.
func RegistrationRole(value string) Role {
	switch Role(value) {
	case RoleAdmin, RoleManager, RoleTechnician:
		return Role(value)
	default:
		return RoleTechnician
	}
}

func (r Role) IsTechnician() bool {
	return r == RoleTechnician
}

func (r Role) String() string {
	return string(r)
}
