package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain/focus"
	"github.com/focusflow/focusflow-api/internal/service"
)

// MockAnalyticsService implements service.AnalyticsService for testing.
type MockAnalyticsService struct {
	// Custom behavior functions
	FocusPatternsFn func(ctx context.Context, userID uuid.UUID) (focus.PatternVector, error)
	ProductivityFn  func(ctx context.Context, userID uuid.UUID) (*service.ProductivityStats, error)

	// Default response values
	Patterns focus.PatternVector
	Stats    *service.ProductivityStats
	Err      error
}

// FocusPatterns implements the service.AnalyticsService interface.
func (m *MockAnalyticsService) FocusPatterns(
	ctx context.Context,
	userID uuid.UUID,
) (focus.PatternVector, error) {
	if m.FocusPatternsFn != nil {
		return m.FocusPatternsFn(ctx, userID)
	}
	return m.Patterns, m.Err
}

// Productivity implements the service.AnalyticsService interface.
func (m *MockAnalyticsService) Productivity(
	ctx context.Context,
	userID uuid.UUID,
) (*service.ProductivityStats, error) {
	if m.ProductivityFn != nil {
		return m.ProductivityFn(ctx, userID)
	}
	return m.Stats, m.Err
}

// MockScheduleService implements service.ScheduleService for testing.
type MockScheduleService struct {
	OptimizeFn func(ctx context.Context, userID uuid.UUID) (*service.OptimizedSchedule, error)

	Schedule *service.OptimizedSchedule
	Err      error
}

// Optimize implements the service.ScheduleService interface.
func (m *MockScheduleService) Optimize(
	ctx context.Context,
	userID uuid.UUID,
) (*service.OptimizedSchedule, error) {
	if m.OptimizeFn != nil {
		return m.OptimizeFn(ctx, userID)
	}
	return m.Schedule, m.Err
}
