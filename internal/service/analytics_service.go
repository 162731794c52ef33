package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain/focus"
	"github.com/focusflow/focusflow-api/internal/store"
)

// productivityWindow is the rolling window for productivity statistics.
const productivityWindow = 7 * 24 * time.Hour

// ProductivityStats summarizes the user's last seven days of focus work.
type ProductivityStats struct {
	TotalFocusMinutes        int     `json:"total_focus_minutes_7d"`
	AverageProductivityScore float64 `json:"average_productivity_score"`
	CompletedTasks           int     `json:"completed_tasks_7d"`
	FocusSessionsCount       int     `json:"focus_sessions_count"`
}

// AnalyticsService exposes read-only aggregations over the user's history.
type AnalyticsService interface {
	// FocusPatterns returns the user's estimated per-day-part productivity.
	FocusPatterns(ctx context.Context, userID uuid.UUID) (focus.PatternVector, error)

	// Productivity returns rolling seven-day totals: focus minutes, average
	// productivity score, completed tasks, and session count.
	Productivity(ctx context.Context, userID uuid.UUID) (*ProductivityStats, error)
}

// analyticsServiceImpl implements the AnalyticsService interface
type analyticsServiceImpl struct {
	focus        focus.Service
	sessionStore store.SessionStore
	taskStore    store.TaskStore
	logger       *slog.Logger
	now          func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService.
// It returns an error if any of the required dependencies are nil.
func NewAnalyticsService(
	focusService focus.Service,
	sessionStore store.SessionStore,
	taskStore store.TaskStore,
	logger *slog.Logger,
) (AnalyticsService, error) {
	if focusService == nil {
		return nil, fmt.Errorf("analytics service: focusService cannot be nil")
	}
	if sessionStore == nil {
		return nil, fmt.Errorf("analytics service: sessionStore cannot be nil")
	}
	if taskStore == nil {
		return nil, fmt.Errorf("analytics service: taskStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &analyticsServiceImpl{
		focus:        focusService,
		sessionStore: sessionStore,
		taskStore:    taskStore,
		logger:       logger.With("component", "analytics_service"),
		now:          time.Now,
	}, nil
}

// FocusPatterns implements AnalyticsService.FocusPatterns.
func (s *analyticsServiceImpl) FocusPatterns(
	ctx context.Context,
	userID uuid.UUID,
) (focus.PatternVector, error) {
	return s.focus.Patterns(ctx, userID)
}

// Productivity implements AnalyticsService.Productivity.
func (s *analyticsServiceImpl) Productivity(
	ctx context.Context,
	userID uuid.UUID,
) (*ProductivityStats, error) {
	since := s.now().UTC().Add(-productivityWindow)

	sessions, err := s.sessionStore.ListCompletedSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}

	totalMinutes := 0
	scoreSum := 0.0
	for _, session := range sessions {
		if session.DurationMinutes != nil {
			totalMinutes += *session.DurationMinutes
		}
		scoreSum += session.ProductivityScore
	}

	avgScore := 0.0
	if len(sessions) > 0 {
		// Round to two decimals for a stable API shape
		avgScore = math.Round(scoreSum/float64(len(sessions))*100) / 100
	}

	completedTasks, err := s.taskStore.CountCompletedSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	return &ProductivityStats{
		TotalFocusMinutes:        totalMinutes,
		AverageProductivityScore: avgScore,
		CompletedTasks:           completedTasks,
		FocusSessionsCount:       len(sessions),
	}, nil
}
