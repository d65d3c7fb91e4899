package impl

import (
	"context"
	"testing"

	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	mockRepo "usersvc/internal/mocks/repository"
	mockSvc "usersvc/internal/mocks/service"
	"usersvc/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authServiceFixtures struct {
	service  usecase.AuthUsecase
	userRepo *mockRepo.MockUserRepository
	hasher   *mockSvc.MockPasswordHasher
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	txManager := &mockRepo.StubTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{UserRepository: userRepo},
	}

	return authServiceFixtures{
		service:  NewAuthService(txManager, hasher, newDiscardLogger()),
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func TestAuthService_VerifyCredentials_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "a@x.com").Return(storedUser(), nil)
	fx.hasher.On("Check", "password1", "stored_hash").Return(true, nil)

	view, err := fx.service.VerifyCredentials(ctx, &usecase.VerifyCredentialsInput{
		Email:    "a@x.com",
		Password: "password1",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), view.ID)
	assert.Equal(t, "CLIENT", view.Role)
}

func TestAuthService_VerifyCredentials_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "ghost@x.com").Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.VerifyCredentials(ctx, &usecase.VerifyCredentialsInput{
		Email:    "ghost@x.com",
		Password: "password1",
	})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_VerifyCredentials_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "a@x.com").Return(storedUser(), nil)
	fx.hasher.On("Check", "wrong", "stored_hash").Return(false, nil)

	_, err := fx.service.VerifyCredentials(ctx, &usecase.VerifyCredentialsInput{
		Email:    "a@x.com",
		Password: "wrong",
	})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_VerifyCredentials_CorruptStoredHash(t *testing.T) {
	// A malformed stored hash answers exactly like a wrong password so the
	// caller learns nothing about the account state.
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "a@x.com").Return(storedUser(), nil)
	fx.hasher.On("Check", "password1", "stored_hash").
		Return(false, domainerrors.ErrCorruptCredential.WithDetails("not a bcrypt hash"))

	_, err := fx.service.VerifyCredentials(ctx, &usecase.VerifyCredentialsInput{
		Email:    "a@x.com",
		Password: "password1",
	})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, domainerrors.ErrCorruptCredential)
}
