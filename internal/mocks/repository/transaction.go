package mocks

import (
	"context"
	"testing"

	"usersvc/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager mocks repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock bound to the test lifecycle.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	return args.Error(0)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a mock bound to the test lifecycle.
func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) UserRepo() repository.UserRepository {
	args := m.Called()

	return args.Get(0).(repository.UserRepository)
}

func (m *MockRepositoryFactory) RoleRepo() repository.RoleRepository {
	args := m.Called()

	return args.Get(0).(repository.RoleRepository)
}

// StubTransactionManager runs the callback against a fixed factory. Most
// service tests want the transactional closure executed inline rather than
// stubbed away, so this small helper stands in for a real manager.
type StubTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (s *StubTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s.Factory)
}

// StubRepositoryFactory hands out fixed repositories.
type StubRepositoryFactory struct {
	UserRepository repository.UserRepository
	RoleRepository repository.RoleRepository
}

func (s *StubRepositoryFactory) UserRepo() repository.UserRepository {
	return s.UserRepository
}

func (s *StubRepositoryFactory) RoleRepo() repository.RoleRepository {
	return s.RoleRepository
}
