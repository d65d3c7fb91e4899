package service

import (
	"context"

	"usersvc/internal/domain/entity"
)

// RoleResolver maps a free-form role name onto a persisted Role record,
// creating the record the first time the name is requested. Unrecognized
// names resolve to the default client role instead of failing.
type RoleResolver interface {
	Resolve(ctx context.Context, roleName string) (*entity.Role, error)
}
