// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	"usersvc/internal/domain/service"
	"usersvc/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager: txManager,
		hasher:    hasher,
		logger:    logger,
	}
}

// VerifyCredentials checks an email and password pair for login. An unknown
// email and a wrong password both fail with the same invalid-credentials
// error so the response never reveals whether an account exists.
func (srv *authService) VerifyCredentials(ctx context.Context, input *usecase.VerifyCredentialsInput) (*usecase.UserView, error) {
	srv.logger.Debug("Starting credential verification", "email", input.Email)

	var user *entity.User

	// Short read transaction against the primary to avoid stale replicas.
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
			}

			return errors.Wrap(err, "failed to find user by email")
		}
		user = found

		return nil
	})
	if err != nil {
		srv.logger.Warn("Login failed", "email", input.Email, "error", err)

		return nil, err
	}

	// Check password outside the transaction; bcrypt is CPU-bound.
	matched, err := srv.hasher.Check(input.Password, user.PasswordHash)
	if err != nil {
		// A corrupt stored hash can never match. Log the defect for
		// diagnostics but answer with the same error as a mismatch.
		srv.logger.Error("Stored credential is malformed", "userID", user.ID, "error", err)

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}
	if !matched {
		srv.logger.Warn("Login failed", "email", input.Email)

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}
	srv.logger.Debug("Credentials verified", "userID", user.ID)

	return usecase.NewUserView(user), nil
}
