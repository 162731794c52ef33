package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/domain/focus"
	"github.com/focusflow/focusflow-api/internal/service"
)

func TestOptimize_EmptyBacklog(t *testing.T) {
	t.Parallel()

	svc, err := service.NewScheduleService(&fakeTaskStore{}, &fakeFocusService{}, nil)
	require.NoError(t, err)

	schedule, err := svc.Optimize(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, schedule.ScheduledTasks)
	assert.Empty(t, schedule.Recommendations, "no tasks means no advice")
	assert.Nil(t, schedule.FocusPatterns)
}

func TestOptimize_RanksAndTruncates(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	backlog := make([]*domain.Task, 15)
	for i := range backlog {
		backlog[i] = &domain.Task{
			ID:     uuid.New(),
			UserID: userID,
			Title:  fmt.Sprintf("task %d", i),
			Status: domain.TaskStatusPending,
		}
	}
	tasks := &fakeTaskStore{
		listByUserFn: func(_ context.Context, _ uuid.UUID, status domain.TaskStatus, _ int) ([]*domain.Task, error) {
			assert.Equal(t, domain.TaskStatusPending, status,
				"only pending tasks are schedulable")
			return backlog, nil
		},
	}
	ranker := &fakeFocusService{
		rankFn: func(_ context.Context, _ uuid.UUID, in []*domain.Task, _ time.Time) ([]*domain.Task, error) {
			out := make([]*domain.Task, 0, len(in))
			for i := len(in) - 1; i >= 0; i-- {
				out = append(out, in[i])
			}
			return out, nil
		},
	}
	svc, err := service.NewScheduleService(tasks, ranker, nil)
	require.NoError(t, err)

	schedule, err := svc.Optimize(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, schedule.ScheduledTasks, 10, "schedule is capped at ten tasks")
	assert.Equal(t, backlog[14].ID, schedule.ScheduledTasks[0].ID,
		"ranker order must be preserved")
	require.NotNil(t, schedule.FocusPatterns)
}

func TestOptimize_Recommendations(t *testing.T) {
	t.Parallel()

	tasks := &fakeTaskStore{
		listByUserFn: func(_ context.Context, userID uuid.UUID, _ domain.TaskStatus, _ int) ([]*domain.Task, error) {
			return []*domain.Task{
				{ID: uuid.New(), UserID: userID, Title: "one", Status: domain.TaskStatusPending},
			}, nil
		},
	}
	estimator := &fakeFocusService{
		patternsFn: func(_ context.Context, _ uuid.UUID) (focus.PatternVector, error) {
			return focus.PatternVector{Morning: 0.9, Afternoon: 0.5, Evening: 0.2}, nil
		},
	}
	svc, err := service.NewScheduleService(tasks, estimator, nil)
	require.NoError(t, err)

	schedule, err := svc.Optimize(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, schedule.Recommendations, 4)
	assert.Equal(t,
		"Your peak focus time appears to be in the morning (score: 0.9)",
		schedule.Recommendations[0])
	assert.Equal(t,
		"Schedule deep work tasks between 9-11 AM for best results",
		schedule.Recommendations[1])
	assert.Equal(t,
		"Afternoon focus: 0.5 - good for moderate complexity tasks",
		schedule.Recommendations[2])
	assert.Equal(t,
		"Evening focus: 0.2 - ideal for shallow work and planning",
		schedule.Recommendations[3])
}
