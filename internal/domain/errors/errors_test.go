package errors

import (
	"testing"

	"usersvc/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetailsKeepsIdentity(t *testing.T) {
	err := ErrValidationFailed.WithDetails("email is required")

	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "email is required", err.Details())
	assert.Equal(t, ErrValidationFailed.ErrorCode(), err.ErrorCode())
}

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	err := ErrEmailConflict.WrapMessage("registration failed")

	require.ErrorIs(t, err, ErrEmailConflict)

	var appErr AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "EMAIL_CONFLICT", appErr.ErrorCode())
}

func TestBaseError_WrappedWithDetailsKeepsIdentity(t *testing.T) {
	err := errors.Wrap(ErrInvalidResetToken.WithDetails("token expired"), "password reset failed")

	require.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestBaseError_DistinctCodesDoNotMatch(t *testing.T) {
	err := ErrValidationFailed.WithDetails("phone is required")

	assert.NotErrorIs(t, err, ErrEmailConflict)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
