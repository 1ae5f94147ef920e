package mocks

import (
	"context"

	"github.com/phrazzld/todolist-api/internal/domain"
	"github.com/phrazzld/todolist-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockTaskService is a testify mock of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

var _ service.TaskService = (*MockTaskService)(nil)

// GetTask is a mock implementation of service.TaskService.GetTask
func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListTasks is a mock implementation of service.TaskService.ListTasks
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListTasksByOwner is a mock implementation of service.TaskService.ListTasksByOwner
func (m *MockTaskService) ListTasksByOwner(ctx context.Context, ownerUserID int64) ([]*domain.Task, error) {
	args := m.Called(ctx, ownerUserID)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// CreateTask is a mock implementation of service.TaskService.CreateTask
func (m *MockTaskService) CreateTask(ctx context.Context, params service.TaskParams) (*domain.Task, error) {
	args := m.Called(ctx, params)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateTask is a mock implementation of service.TaskService.UpdateTask
func (m *MockTaskService) UpdateTask(ctx context.Context, id int64, params service.TaskParams) (*domain.Task, error) {
	args := m.Called(ctx, id, params)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// DeleteTask is a mock implementation of service.TaskService.DeleteTask
func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FinishTask is a mock implementation of service.TaskService.FinishTask
func (m *MockTaskService) FinishTask(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
