// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core identity record. PasswordHash holds the salted bcrypt
// digest of the user's password; the plaintext is never persisted.
// ResetToken and ResetTokenExpiry are either both set or both nil: a pending
// password-reset carries a token with its deadline, and a consumed or
// invalidated reset clears both.
type User struct {
	ID               int64
	Email            string
	PasswordHash     string
	Name             string
	Phone            string
	RoleID           int64
	Role             *Role // Loaded explicitly by the repository; nil when not fetched.
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RoleName returns the name of the user's role, or empty when the role
// reference has not been loaded.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}

	return u.Role.Name.String()
}
