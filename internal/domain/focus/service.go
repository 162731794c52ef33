package focus

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
)

// SessionReader supplies the completed session history the estimator
// aggregates. Implementations must only return sessions that have a
// recorded end time, most recent first, capped at the given limit.
type SessionReader interface {
	ListCompleted(ctx context.Context, userID uuid.UUID, limit int) ([]SessionSample, error)
}

// Service exposes the focus-pattern estimator and the task ranker. Both
// operations are recomputed from stored history on every call; nothing is
// cached between requests.
type Service interface {
	// Patterns estimates the user's per-day-part productivity scores from
	// their completed session history. An empty history is not an error:
	// it yields the configured priors.
	Patterns(ctx context.Context, userID uuid.UUID) (PatternVector, error)

	// Rank orders the given task snapshots by priority and focus match
	// against the user's patterns at the given time. The input slice is
	// not mutated; the returned slice is a permutation of the input.
	Rank(ctx context.Context, userID uuid.UUID, tasks []*domain.Task, now time.Time) ([]*domain.Task, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	sessions SessionReader
	params   *Params
}

// NewService creates a focus Service with default parameters.
func NewService(sessions SessionReader) (Service, error) {
	return NewServiceWithParams(sessions, NewDefaultParams())
}

// NewServiceWithParams creates a focus Service with custom parameters.
func NewServiceWithParams(sessions SessionReader, params *Params) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session reader cannot be nil")
	}
	if params == nil {
		params = NewDefaultParams()
	}

	return &defaultService{
		sessions: sessions,
		params:   params,
	}, nil
}

// Patterns implements the Service interface.
func (s *defaultService) Patterns(ctx context.Context, userID uuid.UUID) (PatternVector, error) {
	samples, err := s.sessions.ListCompleted(ctx, userID, s.params.SessionHistoryLimit)
	if err != nil {
		return PatternVector{}, fmt.Errorf("failed to load session history: %w", err)
	}

	return estimatePatterns(samples, s.params), nil
}

// Rank implements the Service interface.
func (s *defaultService) Rank(
	ctx context.Context,
	userID uuid.UUID,
	tasks []*domain.Task,
	now time.Time,
) ([]*domain.Task, error) {
	if len(tasks) == 0 {
		return []*domain.Task{}, nil
	}

	patterns, err := s.Patterns(ctx, userID)
	if err != nil {
		return nil, err
	}

	return rankTasks(tasks, patterns, now, s.params), nil
}
