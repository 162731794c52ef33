package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
)

// MockSessionService implements service.SessionService for testing.
type MockSessionService struct {
	// Custom behavior functions
	StartFn    func(ctx context.Context, userID uuid.UUID, taskID *uuid.UUID) (*domain.FocusSession, error)
	GetFn      func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.FocusSession, error)
	CompleteFn func(ctx context.Context, userID, sessionID uuid.UUID, durationMinutes int, productivityScore float64) (*domain.FocusSession, error)

	// Default response values
	Session *domain.FocusSession
	Err     error
}

// Start implements the service.SessionService interface.
func (m *MockSessionService) Start(
	ctx context.Context,
	userID uuid.UUID,
	taskID *uuid.UUID,
) (*domain.FocusSession, error) {
	if m.StartFn != nil {
		return m.StartFn(ctx, userID, taskID)
	}
	return m.Session, m.Err
}

// Get implements the service.SessionService interface.
func (m *MockSessionService) Get(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.FocusSession, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, sessionID)
	}
	return m.Session, m.Err
}

// Complete implements the service.SessionService interface.
func (m *MockSessionService) Complete(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	durationMinutes int,
	productivityScore float64,
) (*domain.FocusSession, error) {
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, userID, sessionID, durationMinutes, productivityScore)
	}
	return m.Session, m.Err
}
