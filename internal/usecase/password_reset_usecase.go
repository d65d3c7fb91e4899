// Package usecase contains the application-specific business rules.
package usecase

import "context"

// ResetPasswordInput defines the data required to consume a reset token.
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}

// PasswordResetUsecase defines the self-service password-reset flow built on
// single-use, time-bounded tokens.
type PasswordResetUsecase interface {
	// GenerateResetToken issues a fresh reset token for the email and returns
	// the plaintext token to the caller. Re-issuing before consumption
	// silently replaces the previous token.
	GenerateResetToken(ctx context.Context, email string) (string, error)

	// ResetPassword stores a new password for the email when the supplied
	// token matches the pending one and has not expired, then invalidates
	// the token. A token is never usable twice.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}
