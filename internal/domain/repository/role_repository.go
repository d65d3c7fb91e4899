package repository

import (
	"context"
	"errors"

	"usersvc/internal/domain/entity"
)

// ErrRoleNotFound is returned when no role row exists for a name.
var ErrRoleNotFound = errors.New("role not found")

// ErrRoleExists is returned by Create when the unique constraint on the role
// name rejects the insert. Callers racing on first use of a role name fall
// back to re-reading the now-existing row.
var ErrRoleExists = errors.New("role already exists")

// RoleRepository defines the operations for role persistence.
type RoleRepository interface {
	// FindByName retrieves the role row for a name.
	FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error)

	// Create persists a new role row.
	Create(ctx context.Context, role *entity.Role) error
}
