package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/domain/focus"
	"github.com/focusflow/focusflow-api/internal/store"
)

// scheduleTaskLimit caps the optimized schedule at the top-ranked tasks.
const scheduleTaskLimit = 10

// OptimizedSchedule is the result of a schedule optimization run: the
// top-ranked pending tasks plus the pattern vector and human-readable
// recommendations derived from it.
type OptimizedSchedule struct {
	ScheduledTasks  []*domain.Task       `json:"scheduled_tasks"`
	FocusPatterns   *focus.PatternVector `json:"focus_patterns,omitempty"`
	Recommendations []string             `json:"recommendations"`
}

// ScheduleService produces focus-aware schedules from pending tasks.
type ScheduleService interface {
	// Optimize ranks the user's pending tasks against their focus patterns
	// and returns the top ten with scheduling recommendations. No pending
	// tasks yields an empty schedule with no recommendations.
	Optimize(ctx context.Context, userID uuid.UUID) (*OptimizedSchedule, error)
}

// scheduleServiceImpl implements the ScheduleService interface
type scheduleServiceImpl struct {
	taskStore store.TaskStore
	focus     focus.Service
	logger    *slog.Logger
	now       func() time.Time
}

// NewScheduleService creates a new ScheduleService.
// It returns an error if any of the required dependencies are nil.
func NewScheduleService(
	taskStore store.TaskStore,
	focusService focus.Service,
	logger *slog.Logger,
) (ScheduleService, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("schedule service: taskStore cannot be nil")
	}
	if focusService == nil {
		return nil, fmt.Errorf("schedule service: focusService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &scheduleServiceImpl{
		taskStore: taskStore,
		focus:     focusService,
		logger:    logger.With("component", "schedule_service"),
		now:       time.Now,
	}, nil
}

// Optimize implements ScheduleService.Optimize.
func (s *scheduleServiceImpl) Optimize(
	ctx context.Context,
	userID uuid.UUID,
) (*OptimizedSchedule, error) {
	pending, err := s.taskStore.ListByUser(ctx, userID, domain.TaskStatusPending, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending tasks: %w", err)
	}

	if len(pending) == 0 {
		return &OptimizedSchedule{
			ScheduledTasks:  []*domain.Task{},
			Recommendations: []string{},
		}, nil
	}

	ranked, err := s.focus.Rank(ctx, userID, pending, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to rank tasks: %w", err)
	}

	if len(ranked) > scheduleTaskLimit {
		ranked = ranked[:scheduleTaskLimit]
	}

	patterns, err := s.focus.Patterns(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate focus patterns: %w", err)
	}

	s.logger.Debug("schedule optimized",
		"user_id", userID,
		"task_count", len(ranked))

	return &OptimizedSchedule{
		ScheduledTasks:  ranked,
		FocusPatterns:   &patterns,
		Recommendations: buildRecommendations(patterns),
	}, nil
}

// buildRecommendations renders the fixed advice templates with the user's
// estimated scores.
func buildRecommendations(patterns focus.PatternVector) []string {
	return []string{
		fmt.Sprintf("Your peak focus time appears to be in the morning (score: %.1f)", patterns.Morning),
		"Schedule deep work tasks between 9-11 AM for best results",
		fmt.Sprintf("Afternoon focus: %.1f - good for moderate complexity tasks", patterns.Afternoon),
		fmt.Sprintf("Evening focus: %.1f - ideal for shallow work and planning", patterns.Evening),
	}
}
