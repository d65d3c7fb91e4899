package mocks

import (
	"context"
	"testing"

	"usersvc/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockRoleRepository mocks repository.RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

// NewMockRoleRepository creates a mock bound to the test lifecycle.
func NewMockRoleRepository(t *testing.T) *MockRoleRepository {
	m := &MockRoleRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Role), args.Error(1)
}

func (m *MockRoleRepository) Create(ctx context.Context, role *entity.Role) error {
	args := m.Called(ctx, role)

	return args.Error(0)
}
