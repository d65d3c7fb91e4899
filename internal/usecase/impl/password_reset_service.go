// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"usersvc/config"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	"usersvc/internal/domain/service"
	"usersvc/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// passwordResetService implements the PasswordResetUsecase interface.
type passwordResetService struct {
	txManager   repository.TransactionManager
	hasher      service.PasswordHasher
	tokenTTL    time.Duration
	minPassword int
	logger      *slog.Logger
	now         func() time.Time
}

// NewPasswordResetService is the constructor for passwordResetService.
func NewPasswordResetService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.PasswordResetUsecase {
	return &passwordResetService{
		txManager:   txManager,
		hasher:      hasher,
		tokenTTL:    cfg.Auth.ResetTokenTTL,
		minPassword: cfg.Auth.MinPasswordLength,
		logger:      logger,
		now:         time.Now,
	}
}

// GenerateResetToken issues a fresh reset token for the email. The token is a
// random UUID, not derivable from any user-visible data, and carries an
// expiry of now plus the configured validity window. A pending token is
// silently replaced.
func (srv *passwordResetService) GenerateResetToken(ctx context.Context, email string) (string, error) {
	srv.logger.Info("Issuing password reset token", "email", email)

	token := uuid.NewString()
	expiry := srv.now().Add(srv.tokenTTL)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("reset token issuance failed")
			}

			return errors.Wrap(err, "failed to find user by email")
		}

		// Targeted write: only the token columns change, so issuance can run
		// concurrently with a profile update without clobbering it.
		return userRepo.SetResetToken(ctx, user.ID, token, expiry)
	})
	if err != nil {
		srv.logger.Warn("Reset token issuance failed", "email", email, "error", err)

		return "", err
	}
	srv.logger.Debug("Reset token issued", "email", email, "expiry", expiry)

	return token, nil
}

// ResetPassword consumes a reset token. A missing, mismatched or expired
// token produces one generic invalid-token error; the causes are not
// distinguished to avoid an oracle. The consume is conditional on the stored
// token value, so a concurrent double-submission of the same token lets only
// one caller through.
func (srv *passwordResetService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	srv.logger.Info("Resetting password", "email", input.Email)

	if len(input.NewPassword) < srv.minPassword {
		return domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("new password must be at least %d characters", srv.minPassword))
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("password reset failed")
			}

			return errors.Wrap(err, "failed to find user by email")
		}

		if user.ResetToken == nil || *user.ResetToken != input.Token {
			return domainerrors.ErrInvalidResetToken.WrapMessage("password reset failed")
		}
		// Expiry is checked lazily here; at or before now counts as expired.
		if user.ResetTokenExpiry == nil || !user.ResetTokenExpiry.After(srv.now()) {
			return domainerrors.ErrInvalidResetToken.WrapMessage("password reset failed")
		}

		newHash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash new password")
		}

		consumed, err := userRepo.ConsumeResetToken(ctx, user.ID, input.Token, newHash)
		if err != nil {
			return errors.Wrap(err, "failed to consume reset token")
		}
		if !consumed {
			// A concurrent consumer won the race between our read and the
			// conditional update.
			return domainerrors.ErrInvalidResetToken.WrapMessage("password reset failed")
		}

		return nil
	})
	if err != nil {
		srv.logger.Warn("Password reset failed", "email", input.Email, "error", err)

		return err
	}
	srv.logger.Debug("Password reset completed", "email", input.Email)

	return nil
}
