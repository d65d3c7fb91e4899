package mocks

import (
	"context"
	"testing"

	"usersvc/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockRoleResolver mocks service.RoleResolver.
type MockRoleResolver struct {
	mock.Mock
}

// NewMockRoleResolver creates a mock bound to the test lifecycle.
func NewMockRoleResolver(t *testing.T) *MockRoleResolver {
	m := &MockRoleResolver{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRoleResolver) Resolve(ctx context.Context, roleName string) (*entity.Role, error) {
	args := m.Called(ctx, roleName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Role), args.Error(1)
}
