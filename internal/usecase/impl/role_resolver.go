// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"usersvc/internal/domain/entity"
	"usersvc/internal/domain/repository"
	"usersvc/internal/domain/service"

	"github.com/pkg/errors"
)

// roleResolver implements service.RoleResolver with lookup-or-create
// semantics over the role table.
type roleResolver struct {
	roleRepo repository.RoleRepository
	logger   *slog.Logger
}

// NewRoleResolver is the constructor for roleResolver.
func NewRoleResolver(roleRepo repository.RoleRepository, logger *slog.Logger) service.RoleResolver {
	return &roleResolver{
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// Resolve maps a free-form role name onto its persisted row. The name is
// case-normalized against the closed set and unrecognized values fall back to
// the client role rather than failing. When two callers race on the first use
// of a name, the unique constraint lets only one insert through; the loser
// re-reads the winning row.
func (r *roleResolver) Resolve(ctx context.Context, roleName string) (*entity.Role, error) {
	name := entity.ParseRoleName(roleName)

	role, err := r.roleRepo.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, repository.ErrRoleNotFound) {
		return nil, errors.Wrap(err, "failed to find role")
	}

	newRole := &entity.Role{
		Name:        name,
		Description: name.Description(),
	}

	if createErr := r.roleRepo.Create(ctx, newRole); createErr != nil {
		if errors.Is(createErr, repository.ErrRoleExists) {
			r.logger.Debug("Lost role creation race, re-reading", "role", name.String())

			existing, findErr := r.roleRepo.FindByName(ctx, name)
			if findErr != nil {
				return nil, errors.Wrap(findErr, "failed to re-read role after creation race")
			}

			return existing, nil
		}

		return nil, errors.Wrap(createErr, "failed to create role")
	}
	r.logger.Info("Created role on first use", "role", name.String())

	return newRole, nil
}
