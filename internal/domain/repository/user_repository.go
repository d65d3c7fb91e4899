// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"usersvc/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
// The storage-level unique constraint on email is the authoritative uniqueness
// guarantee; ExistsByEmail is advisory only.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByIDForUpdate retrieves a single user by ID and locks the row for
	// the remainder of the surrounding transaction. Read-modify-write flows
	// must use this so a concurrent writer (another profile update, or a
	// reset-token consume) cannot slip between the read and the save.
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindAll retrieves every persisted user.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// ExistsByEmail reports whether a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// SetResetToken stores a pending reset token and its expiry on the user
	// row, touching only those columns so the profile fields are never
	// written back from a possibly stale read.
	SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error

	// ConsumeResetToken atomically stores the new password hash and clears
	// both reset-token fields, matching on the currently stored token value.
	// It reports false when no row matched, meaning the token was already
	// consumed or replaced by a concurrent request.
	ConsumeResetToken(ctx context.Context, userID int64, token string, passwordHash string) (bool, error)

	// Delete removes the user row.
	Delete(ctx context.Context, id int64) error
}
