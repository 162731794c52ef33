package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
)

// MockUserService implements service.UserService for testing.
type MockUserService struct {
	// Custom behavior functions
	RegisterFn                func(ctx context.Context, email, name, password string) (*domain.User, error)
	AuthenticateFn            func(ctx context.Context, email, password string) (*domain.User, error)
	GetByIDFn                 func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ExchangeProviderSessionFn func(ctx context.Context, sessionID string) (*domain.User, error)

	// Default response values
	User *domain.User
	Err  error
}

// Register implements the service.UserService interface.
func (m *MockUserService) Register(
	ctx context.Context,
	email, name, password string,
) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, email, name, password)
	}
	return m.User, m.Err
}

// Authenticate implements the service.UserService interface.
func (m *MockUserService) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, email, password)
	}
	return m.User, m.Err
}

// GetByID implements the service.UserService interface.
func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.User, m.Err
}

// ExchangeProviderSession implements the service.UserService interface.
func (m *MockUserService) ExchangeProviderSession(
	ctx context.Context,
	sessionID string,
) (*domain.User, error) {
	if m.ExchangeProviderSessionFn != nil {
		return m.ExchangeProviderSessionFn(ctx, sessionID)
	}
	return m.User, m.Err
}
