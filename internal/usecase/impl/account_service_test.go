package impl

import (
	"context"
	"testing"
	"time"

	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	mockRepo "usersvc/internal/mocks/repository"
	mockSvc "usersvc/internal/mocks/service"
	"usersvc/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service      usecase.AccountUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	roleResolver *mockSvc.MockRoleResolver
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	roleResolver := mockSvc.NewMockRoleResolver(t)

	txManager := &mockRepo.StubTransactionManager{
		Factory: &mockRepo.StubRepositoryFactory{UserRepository: userRepo},
	}

	service := NewAccountService(txManager, hasher, roleResolver, newTestConfig(), newDiscardLogger())

	return accountServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		roleResolver: roleResolver,
	}
}

func clientRole() *entity.Role {
	return &entity.Role{ID: 1, Name: entity.RoleClient, Description: entity.RoleClient.Description()}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.roleResolver.On("Resolve", ctx, "").Return(clientRole(), nil)
	fx.hasher.On("Hash", "password1").Return("hashed_password", nil)
	fx.userRepo.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = 7
		}).
		Return(nil)

	view, err := fx.service.Register(ctx, &usecase.RegisterUserInput{
		Email:    "a@x.com",
		Password: "password1",
		Name:     "A",
		Phone:    "555",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), view.ID)
	assert.Equal(t, "a@x.com", view.Email)
	assert.Equal(t, "CLIENT", view.Role)
}

func TestAccountService_Register_Validation(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input *usecase.RegisterUserInput
	}{
		{name: "blank email", input: &usecase.RegisterUserInput{Password: "password1", Name: "A", Phone: "555"}},
		{name: "malformed email", input: &usecase.RegisterUserInput{Email: "not-an-email", Password: "password1", Name: "A", Phone: "555"}},
		{name: "blank name", input: &usecase.RegisterUserInput{Email: "a@x.com", Password: "password1", Phone: "555"}},
		{name: "blank phone", input: &usecase.RegisterUserInput{Email: "a@x.com", Password: "password1", Name: "A"}},
		{name: "short password", input: &usecase.RegisterUserInput{Email: "a@x.com", Password: "short", Name: "A", Phone: "555"}},
		{name: "missing password", input: &usecase.RegisterUserInput{Email: "a@x.com", Name: "A", Phone: "555"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.Register(ctx, tt.input)
			require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestAccountService_Register_EmailConflict(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.roleResolver.On("Resolve", ctx, "").Return(clientRole(), nil)
	fx.hasher.On("Hash", "password1").Return("hashed_password", nil)
	fx.userRepo.On("ExistsByEmail", ctx, "a@x.com").Return(true, nil)

	_, err := fx.service.Register(ctx, &usecase.RegisterUserInput{
		Email:    "a@x.com",
		Password: "password1",
		Name:     "A",
		Phone:    "555",
	})

	require.ErrorIs(t, err, domainerrors.ErrEmailConflict)
}

func TestAccountService_Register_ConflictAtSaveTime(t *testing.T) {
	// The advisory check passes but the unique index rejects the insert, as
	// happens when two registrations race.
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.roleResolver.On("Resolve", ctx, "").Return(clientRole(), nil)
	fx.hasher.On("Hash", "password1").Return("hashed_password", nil)
	fx.userRepo.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrEmailConflict.WrapMessage("email already registered"))

	_, err := fx.service.Register(ctx, &usecase.RegisterUserInput{
		Email:    "a@x.com",
		Password: "password1",
		Name:     "A",
		Phone:    "555",
	})

	require.ErrorIs(t, err, domainerrors.ErrEmailConflict)
}

func storedUser() *entity.User {
	return &entity.User{
		ID:           7,
		Email:        "a@x.com",
		PasswordHash: "stored_hash",
		Name:         "A",
		Phone:        "555",
		RoleID:       1,
		Role:         clientRole(),
		CreatedAt:    time.Now().Add(-time.Hour),
		UpdatedAt:    time.Now().Add(-time.Hour),
	}
}

func TestAccountService_UpdateUser_NotFound(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByIDForUpdate", ctx, int64(99)).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.UpdateUser(ctx, 99, &usecase.UpdateUserInput{
		Email: "a@x.com", Name: "A", Phone: "555",
	})

	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_UpdateUser_BasicFields(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByIDForUpdate", ctx, int64(7)).Return(storedUser(), nil)
	fx.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			assert.Equal(t, "B", user.Name)
			assert.Equal(t, "666", user.Phone)
			assert.Equal(t, "stored_hash", user.PasswordHash)
		}).
		Return(nil)

	view, err := fx.service.UpdateUser(ctx, 7, &usecase.UpdateUserInput{
		Email: "a@x.com", Name: "B", Phone: "666",
	})

	require.NoError(t, err)
	assert.Equal(t, "B", view.Name)
	assert.Equal(t, "CLIENT", view.Role)
}

func TestAccountService_UpdateUser_EmailConflict(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByIDForUpdate", ctx, int64(7)).Return(storedUser(), nil)
	fx.userRepo.On("ExistsByEmail", ctx, "taken@x.com").Return(true, nil)

	_, err := fx.service.UpdateUser(ctx, 7, &usecase.UpdateUserInput{
		Email: "taken@x.com", Name: "A", Phone: "555",
	})

	require.ErrorIs(t, err, domainerrors.ErrEmailConflict)
}

func TestAccountService_UpdateUser_RoleReplacement(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	adminRole := &entity.Role{ID: 3, Name: entity.RoleAdmin, Description: entity.RoleAdmin.Description()}

	fx.userRepo.On("FindByIDForUpdate", ctx, int64(7)).Return(storedUser(), nil)
	fx.roleResolver.On("Resolve", ctx, "admin").Return(adminRole, nil)
	fx.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	view, err := fx.service.UpdateUser(ctx, 7, &usecase.UpdateUserInput{
		Email: "a@x.com", Name: "A", Phone: "555", Role: "admin",
	})

	require.NoError(t, err)
	assert.Equal(t, "ADMIN", view.Role)
}

func TestAccountService_UpdateUser_PasswordChangeRequiresCurrent(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByIDForUpdate", ctx, int64(7)).Return(storedUser(), nil)

	_, err := fx.service.UpdateUser(ctx, 7, &usecase.UpdateUserInput{
		Email: "a@x.com", Name: "A", Phone: "555",
		Password: "newpassword1",
	})

	require.ErrorIs(t, err, domainerrors.ErrCurrentPasswordRequired)
}

func TestAccountService_UpdateUser_PasswordChangeWrongCurrent(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByIDForUpdate", ctx, int64(7)).Return(storedUser(), nil)
	fx.hasher.On("Check", "wrong_current", "stored_hash").Return(false, nil)

	_, err := fx.service.UpdateUser(ctx, 7, &usecase.UpdateUserInput{
		Email: "a@x.com", Name: "A", Phone: "555",
		Password: "newpassword1", CurrentPassword: "wrong_current",
	})

	require.ErrorIs(t, err, domainerrors.ErrCurrentPasswordIncorrect)
}

func TestAccountService_UpdateUser_PasswordChangeSuccess(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByIDForUpdate", ctx, int64(7)).Return(storedUser(), nil)
	fx.hasher.On("Check", "old_password1", "stored_hash").Return(true, nil)
	fx.hasher.On("Hash", "newpassword1").Return("new_hash", nil)
	fx.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			assert.Equal(t, "new_hash", user.PasswordHash)
		}).
		Return(nil)

	_, err := fx.service.UpdateUser(ctx, 7, &usecase.UpdateUserInput{
		Email: "a@x.com", Name: "A", Phone: "555",
		Password: "newpassword1", CurrentPassword: "old_password1",
	})

	require.NoError(t, err)
}

func TestAccountService_UpdateUser_ShortNewPasswordIgnored(t *testing.T) {
	// A new password below the minimum length is ignored rather than
	// rejected; the stored hash stays untouched and no proof is demanded.
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByIDForUpdate", ctx, int64(7)).Return(storedUser(), nil)
	fx.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			assert.Equal(t, "stored_hash", user.PasswordHash)
		}).
		Return(nil)

	_, err := fx.service.UpdateUser(ctx, 7, &usecase.UpdateUserInput{
		Email: "a@x.com", Name: "A", Phone: "555",
		Password: "short",
	})

	require.NoError(t, err)
}

func TestAccountService_UpdateUser_DoesNotRestoreConsumedToken(t *testing.T) {
	// The update path reads through the row lock, so it observes the state a
	// concurrent reset-consume committed: token columns cleared. The full-row
	// save must carry those cleared columns forward, never a token remembered
	// from an earlier read.
	fx := createTestAccountService(t)
	ctx := context.Background()

	postConsume := storedUser()
	postConsume.ResetToken = nil
	postConsume.ResetTokenExpiry = nil

	fx.userRepo.On("FindByIDForUpdate", ctx, int64(7)).Return(postConsume, nil)
	fx.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			assert.Nil(t, user.ResetToken)
			assert.Nil(t, user.ResetTokenExpiry)
		}).
		Return(nil)

	_, err := fx.service.UpdateUser(ctx, 7, &usecase.UpdateUserInput{
		Email: "a@x.com", Name: "B", Phone: "666",
	})

	require.NoError(t, err)
	fx.userRepo.AssertNotCalled(t, "FindByID", ctx, int64(7))
}

func TestAccountService_DeleteUser_NotFound(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.On("Delete", ctx, int64(99)).Return(repository.ErrUserNotFound)

	err := fx.service.DeleteUser(ctx, 99)
	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_GetUser(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByID", ctx, int64(7)).Return(storedUser(), nil)

	view, err := fx.service.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", view.Email)

	fx.userRepo.On("FindByID", ctx, int64(99)).Return(nil, repository.ErrUserNotFound)

	_, err = fx.service.GetUser(ctx, 99)
	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_ListUsers(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.userRepo.On("FindAll", ctx).Return([]*entity.User{storedUser()}, nil)

	views, err := fx.service.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "a@x.com", views[0].Email)
}
