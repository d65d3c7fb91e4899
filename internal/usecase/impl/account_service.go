// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"usersvc/config"
	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	"usersvc/internal/domain/service"
	"usersvc/internal/usecase"

	"github.com/pkg/errors"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	roleResolver service.RoleResolver
	minPassword  int
	logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	roleResolver service.RoleResolver,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager:    txManager,
		hasher:       hasher,
		roleResolver: roleResolver,
		minPassword:  cfg.Auth.MinPasswordLength,
		logger:       logger,
	}
}

// Register orchestrates the complete user registration process.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.UserView, error) {
	srv.logger.Info("Starting user registration", "email", input.Email)

	if err := srv.validateRegistration(input); err != nil {
		return nil, err
	}

	// Role resolution runs outside the user transaction: a failed role insert
	// aborts its own statement only, and roles are never deleted, so the
	// reference stays valid.
	role, err := srv.roleResolver.Resolve(ctx, input.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve role during registration")
	}

	// Hash outside the transaction; bcrypt is CPU-bound.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", "error", err)

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	now := time.Now()
	newUser := &entity.User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		Phone:        input.Phone,
		RoleID:       role.ID,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// Advisory check first for a friendly failure; the unique index on
		// email re-validates at insert time and closes the check-then-act gap.
		exists, err := userRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return errors.Wrap(err, "failed to check email existence")
		}
		if exists {
			return domainerrors.ErrEmailConflict.WrapMessage("registration failed")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		srv.logger.Warn("User registration failed", "email", input.Email, "error", err)

		return nil, err
	}
	srv.logger.Debug("User registered successfully", "userID", newUser.ID)

	return usecase.NewUserView(newUser), nil
}

// UpdateUser updates profile fields and, when requested with proof of the
// current password, the password itself. The write is committed before the
// call returns, so the caller can immediately authenticate with the new
// password.
func (srv *accountService) UpdateUser(ctx context.Context, userID int64, input *usecase.UpdateUserInput) (*usecase.UserView, error) {
	srv.logger.Info("Updating user", "userID", userID)

	var view *usecase.UserView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// Lock the row for the whole read-modify-write. Without the lock a
		// concurrent reset-token consume could land between this read and the
		// full-row save, and the save would resurrect the consumed token.
		user, err := userRepo.FindByIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("update failed")
			}

			return errors.Wrap(err, "failed to find user")
		}

		user.Name = input.Name
		user.Phone = input.Phone

		if input.Email != user.Email {
			// The stored email differs, so any row holding the candidate
			// email belongs to another user.
			exists, err := userRepo.ExistsByEmail(ctx, input.Email)
			if err != nil {
				return errors.Wrap(err, "failed to check email existence")
			}
			if exists {
				return domainerrors.ErrEmailConflict.WrapMessage("email in use by another user")
			}
			user.Email = input.Email
		}

		if err := srv.applyPasswordChange(user, input); err != nil {
			return err
		}

		if strings.TrimSpace(input.Role) != "" {
			role, err := srv.roleResolver.Resolve(ctx, input.Role)
			if err != nil {
				return errors.Wrap(err, "failed to resolve role during update")
			}
			user.RoleID = role.ID
			user.Role = role
		}

		user.UpdatedAt = time.Now()

		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}
		view = usecase.NewUserView(user)

		return nil
	})
	if err != nil {
		srv.logger.Warn("User update failed", "userID", userID, "error", err)

		return nil, err
	}

	return view, nil
}

// applyPasswordChange runs the password-change sub-protocol. A new password
// that is empty or below the minimum length is ignored, preserving the
// existing password. When a change is triggered, the current password must be
// supplied and must verify against the stored hash.
func (srv *accountService) applyPasswordChange(user *entity.User, input *usecase.UpdateUserInput) error {
	if input.Password == "" || len(input.Password) < srv.minPassword {
		return nil
	}

	if input.CurrentPassword == "" {
		return domainerrors.ErrCurrentPasswordRequired.WrapMessage("password change rejected")
	}

	matched, err := srv.hasher.Check(input.CurrentPassword, user.PasswordHash)
	if err != nil {
		// A malformed stored hash is a defect, not a caller mistake.
		return err
	}
	if !matched {
		return domainerrors.ErrCurrentPasswordIncorrect.WrapMessage("password change rejected")
	}

	newHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}
	user.PasswordHash = newHash

	return nil
}

// GetUser retrieves a single user by id.
func (srv *accountService) GetUser(ctx context.Context, userID int64) (*usecase.UserView, error) {
	var view *usecase.UserView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("lookup failed")
			}

			return errors.Wrap(err, "failed to find user")
		}
		view = usecase.NewUserView(user)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// GetUserByEmail retrieves a single user by email.
func (srv *accountService) GetUserByEmail(ctx context.Context, email string) (*usecase.UserView, error) {
	var view *usecase.UserView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.UserRepo().FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("lookup failed")
			}

			return errors.Wrap(err, "failed to find user by email")
		}
		view = usecase.NewUserView(user)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// ListUsers retrieves every registered user.
func (srv *accountService) ListUsers(ctx context.Context) ([]*usecase.UserView, error) {
	var views []*usecase.UserView

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		users, err := repoFactory.UserRepo().FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}

		views = make([]*usecase.UserView, 0, len(users))
		for _, user := range users {
			views = append(views, usecase.NewUserView(user))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return views, nil
}

// DeleteUser removes the user row.
func (srv *accountService) DeleteUser(ctx context.Context, userID int64) error {
	srv.logger.Info("Deleting user", "userID", userID)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Delete(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("delete failed")
			}

			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
}

func (srv *accountService) validateRegistration(input *usecase.RegisterUserInput) error {
	switch {
	case strings.TrimSpace(input.Email) == "":
		return domainerrors.ErrValidationFailed.WithDetails("email is required")
	case !emailPattern.MatchString(input.Email):
		return domainerrors.ErrValidationFailed.WithDetails("email format is invalid")
	case strings.TrimSpace(input.Name) == "":
		return domainerrors.ErrValidationFailed.WithDetails("name is required")
	case strings.TrimSpace(input.Phone) == "":
		return domainerrors.ErrValidationFailed.WithDetails("phone is required")
	case len(input.Password) < srv.minPassword:
		return domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("password must be at least %d characters", srv.minPassword))
	default:
		return nil
	}
}
