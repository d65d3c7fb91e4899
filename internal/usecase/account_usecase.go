// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"usersvc/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     string // Optional; unrecognized names resolve to the client role.
}

// UpdateUserInput defines the data accepted by a profile update.
// Password is optional: when set (and long enough), CurrentPassword must
// prove knowledge of the existing password before the change is applied.
type UpdateUserInput struct {
	Email           string
	Name            string
	Phone           string
	Role            string // Optional; blank leaves the role untouched.
	Password        string // Optional new password.
	CurrentPassword string
}

// --- Output DTOs ---

// UserView is the outward representation of a user. It never carries the
// password hash or the reset token.
type UserView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// NewUserView maps a user entity onto its outward representation.
func NewUserView(user *entity.User) *UserView {
	return &UserView{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Phone: user.Phone,
		Role:  user.RoleName(),
	}
}

// AccountUsecase defines the interface for account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterUserInput) (*UserView, error)
	UpdateUser(ctx context.Context, userID int64, input *UpdateUserInput) (*UserView, error)
	GetUser(ctx context.Context, userID int64) (*UserView, error)
	GetUserByEmail(ctx context.Context, email string) (*UserView, error)
	ListUsers(ctx context.Context) ([]*UserView, error)
	DeleteUser(ctx context.Context, userID int64) error
}
