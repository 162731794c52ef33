package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/service"
)

// MockTaskService implements service.TaskService for testing.
type MockTaskService struct {
	// Custom behavior functions
	CreateFn func(ctx context.Context, userID uuid.UUID, input service.CreateTaskInput) (*domain.Task, error)
	GetFn    func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	ListFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	UpdateFn func(ctx context.Context, userID, taskID uuid.UUID, input service.UpdateTaskInput) (*domain.Task, error)
	DeleteFn func(ctx context.Context, userID, taskID uuid.UUID) error

	// Default response values
	Task  *domain.Task
	Tasks []*domain.Task
	Err   error
}

// Create implements the service.TaskService interface.
func (m *MockTaskService) Create(
	ctx context.Context,
	userID uuid.UUID,
	input service.CreateTaskInput,
) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, userID, input)
	}
	return m.Task, m.Err
}

// Get implements the service.TaskService interface.
func (m *MockTaskService) Get(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, taskID)
	}
	return m.Task, m.Err
}

// List implements the service.TaskService interface.
func (m *MockTaskService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID)
	}
	return m.Tasks, m.Err
}

// Update implements the service.TaskService interface.
func (m *MockTaskService) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	input service.UpdateTaskInput,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, taskID, input)
	}
	return m.Task, m.Err
}

// Delete implements the service.TaskService interface.
func (m *MockTaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, taskID)
	}
	return m.Err
}
