package mocks

import (
	"context"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockUserService is a testify mock of service.UserService.
type MockUserService struct {
	mock.Mock
}

var _ service.UserService = (*MockUserService)(nil)

func userResult(args mock.Arguments) (*domain.User, error) {
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetUser is a mock implementation of service.UserService.GetUser
func (m *MockUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return userResult(m.Called(ctx, id))
}

// ListUsers is a mock implementation of service.UserService.ListUsers
func (m *MockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// CreateUser is a mock implementation of service.UserService.CreateUser
func (m *MockUserService) CreateUser(ctx context.Context, params service.UserParams) (*domain.User, error) {
	return userResult(m.Called(ctx, params))
}

// UpdateUser is a mock implementation of service.UserService.UpdateUser
func (m *MockUserService) UpdateUser(ctx context.Context, id int64, params service.UserParams) (*domain.User, error) {
	return userResult(m.Called(ctx, id, params))
}

// DeleteUser is a mock implementation of service.UserService.DeleteUser
func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// EnsureAdmin is a mock implementation of service.UserService.EnsureAdmin
func (m *MockUserService) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, bool, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Bool(1), args.Error(2)
}
