// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "strings"

// RoleName is the closed set of classifications a user can hold.
type RoleName string

const (
	// RoleClient is the default classification for registered customers.
	RoleClient RoleName = "CLIENT"
	// RoleMechanic indicates a registered mechanic.
	RoleMechanic RoleName = "MECHANIC"
	// RoleAdmin indicates a system administrator.
	RoleAdmin RoleName = "ADMIN"
)

// String returns the string representation of the RoleName.
func (r RoleName) String() string {
	return string(r)
}

// IsValid checks if the RoleName is a valid value.
func (r RoleName) IsValid() bool {
	switch r {
	case RoleClient, RoleMechanic, RoleAdmin:
		return true
	default:
		return false
	}
}

// Description returns the display text persisted alongside a role record.
func (r RoleName) Description() string {
	switch r {
	case RoleMechanic:
		return "Registered mechanic"
	case RoleAdmin:
		return "System administrator"
	default:
		return "System client"
	}
}

// ParseRoleName normalizes a free-form role string against the closed set.
// Unrecognized names fall back to RoleClient; bad input never fails the caller.
func ParseRoleName(name string) RoleName {
	role := RoleName(strings.ToUpper(strings.TrimSpace(name)))
	if role.IsValid() {
		return role
	}

	return RoleClient
}

// Role is the persisted classification record referenced by users.
// At most one record exists per RoleName; records are created lazily the
// first time a name is requested and are never deleted by this service.
type Role struct {
	ID          int64
	Name        RoleName
	Description string
}
