// Package usecase contains the application-specific business rules.
package usecase

import "context"

// VerifyCredentialsInput defines the data required for a login check.
type VerifyCredentialsInput struct {
	Email    string
	Password string
}

// AuthUsecase defines the interface for credential verification.
type AuthUsecase interface {
	// VerifyCredentials checks an email and password pair. Unknown email and
	// wrong password produce the same invalid-credentials failure so callers
	// cannot probe which accounts exist.
	VerifyCredentials(ctx context.Context, input *VerifyCredentialsInput) (*UserView, error)
}
