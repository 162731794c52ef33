package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/normalize"
	"github.com/focusflow/focusflow-api/internal/service"
	"github.com/focusflow/focusflow-api/internal/store"
)

func newTaskService(
	t *testing.T,
	tasks store.TaskStore,
	normalizer normalize.Normalizer,
) service.TaskService {
	t.Helper()

	svc, err := service.NewTaskService(tasks, normalizer, &fakeFocusService{}, nil)
	require.NoError(t, err)
	return svc
}

func TestNewTaskService_NilDependencies(t *testing.T) {
	t.Parallel()

	_, err := service.NewTaskService(nil, &fakeNormalizer{}, &fakeFocusService{}, nil)
	assert.Error(t, err, "nil task store should be rejected")

	_, err = service.NewTaskService(&fakeTaskStore{}, nil, &fakeFocusService{}, nil)
	assert.Error(t, err, "nil normalizer should be rejected")

	_, err = service.NewTaskService(&fakeTaskStore{}, &fakeNormalizer{}, nil, nil)
	assert.Error(t, err, "nil focus service should be rejected")
}

func TestCreateTask_PlainTitleSkipsNormalizer(t *testing.T) {
	t.Parallel()

	normalizer := &fakeNormalizer{}
	var saved *domain.Task
	tasks := &fakeTaskStore{
		createFn: func(_ context.Context, task *domain.Task) error {
			saved = task
			return nil
		},
	}
	svc := newTaskService(t, tasks, normalizer)
	userID := uuid.New()

	task, err := svc.Create(context.Background(), userID, service.CreateTaskInput{
		Title: "Buy groceries",
	})

	require.NoError(t, err)
	assert.False(t, normalizer.called,
		"short title without scheduling keywords should not hit the normalizer")
	require.NotNil(t, saved)
	assert.Equal(t, "Buy groceries", task.Title)
	assert.Equal(t, userID, task.UserID)
	assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.Equal(t, domain.DefaultEstimatedDuration, task.EstimatedDuration)
	assert.InDelta(t, domain.DefaultFocusScore, task.FocusScore, 1e-9)
}

func TestCreateTask_NaturalLanguageTriggersNormalizer(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		title string
	}{
		{name: "more_than_five_words", title: "Go through all the meeting notes again"},
		{name: "keyword_by", title: "Submit report by Friday"},
		{name: "keyword_tomorrow", title: "Call dentist tomorrow"},
		{name: "keyword_urgent", title: "Urgent fix needed"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			normalizer := &fakeNormalizer{}
			svc := newTaskService(t, &fakeTaskStore{}, normalizer)

			_, err := svc.Create(context.Background(), uuid.New(), service.CreateTaskInput{
				Title: tc.title,
			})

			require.NoError(t, err)
			assert.True(t, normalizer.called, "title %q should trigger normalization", tc.title)
		})
	}
}

func TestCreateTask_AppliesNormalizedFields(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	normalizer := &fakeNormalizer{
		fields: &normalize.TaskFields{
			Title:             "Write quarterly report",
			Description:       "Covers Q3 metrics",
			Priority:          domain.TaskPriorityHigh,
			Type:              domain.TaskTypeDeep,
			EstimatedDuration: 90,
			FocusScore:        0.8,
			DueDate:           &due,
		},
	}
	svc := newTaskService(t, &fakeTaskStore{}, normalizer)

	task, err := svc.Create(context.Background(), uuid.New(), service.CreateTaskInput{
		Title: "Write the quarterly report by next Monday",
	})

	require.NoError(t, err)
	assert.Equal(t, "Write quarterly report", task.Title)
	assert.Equal(t, "Covers Q3 metrics", task.Description)
	assert.Equal(t, domain.TaskPriorityHigh, task.Priority)
	assert.Equal(t, domain.TaskTypeDeep, task.Type)
	assert.Equal(t, 90, task.EstimatedDuration)
	assert.InDelta(t, 0.8, task.FocusScore, 1e-9)
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Equal(*task.DueDate))
}

func TestCreateTask_NormalizerFailureKeepsRawInput(t *testing.T) {
	t.Parallel()

	normalizer := &fakeNormalizer{err: errors.New("model unavailable")}
	svc := newTaskService(t, &fakeTaskStore{}, normalizer)

	task, err := svc.Create(context.Background(), uuid.New(), service.CreateTaskInput{
		Title: "Finish the migration guide by tomorrow",
	})

	require.NoError(t, err, "a normalizer failure must not block creation")
	assert.Equal(t, "Finish the migration guide by tomorrow", task.Title)
	assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
}

func TestCreateTask_EmptyTitleRejected(t *testing.T) {
	t.Parallel()

	svc := newTaskService(t, &fakeTaskStore{}, &fakeNormalizer{})

	_, err := svc.Create(context.Background(), uuid.New(), service.CreateTaskInput{
		Title: "   ",
	})
	assert.Error(t, err)
}

func TestCreateTask_StoreErrorWrapped(t *testing.T) {
	t.Parallel()

	tasks := &fakeTaskStore{
		createFn: func(_ context.Context, _ *domain.Task) error {
			return errors.New("connection reset")
		},
	}
	svc := newTaskService(t, tasks, &fakeNormalizer{})

	_, err := svc.Create(context.Background(), uuid.New(), service.CreateTaskInput{
		Title: "Buy groceries",
	})

	require.Error(t, err)
	var svcErr *service.TaskServiceError
	assert.ErrorAs(t, err, &svcErr)
}

func TestGetTask_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()
	task := &domain.Task{ID: uuid.New(), UserID: owner, Title: "Private task"}
	tasks := &fakeTaskStore{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Task, error) {
			if id == task.ID {
				return task, nil
			}
			return nil, store.ErrTaskNotFound
		},
	}
	svc := newTaskService(t, tasks, &fakeNormalizer{})

	got, err := svc.Get(context.Background(), owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	_, err = svc.Get(context.Background(), stranger, task.ID)
	assert.ErrorIs(t, err, service.ErrTaskNotFound,
		"another user's task must look like a missing task")

	_, err = svc.Get(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}

func TestListTasks_ReturnsRankedOrder(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	first := &domain.Task{ID: uuid.New(), UserID: userID, Title: "first"}
	second := &domain.Task{ID: uuid.New(), UserID: userID, Title: "second"}
	tasks := &fakeTaskStore{
		listByUserFn: func(_ context.Context, _ uuid.UUID, status domain.TaskStatus, _ int) ([]*domain.Task, error) {
			assert.Equal(t, domain.TaskStatus(""), status, "list should not filter by status")
			return []*domain.Task{first, second}, nil
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
	svc, err := service.NewTaskService(tasks, &fakeNormalizer{}, ranker, nil)
	require.NoError(t, err)

	got, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID, "ranker order must be preserved")
	assert.Equal(t, first.ID, got[1].ID)
}

func TestUpdateTask_PartialUpdate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	existing := &domain.Task{
		ID:                uuid.New(),
		UserID:            userID,
		Title:             "Old title",
		Priority:          domain.TaskPriorityMedium,
		Type:              domain.TaskTypeShallow,
		Status:            domain.TaskStatusPending,
		EstimatedDuration: 30,
		FocusScore:        0.5,
	}
	var saved *domain.Task
	tasks := &fakeTaskStore{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.Task, error) {
			return existing, nil
		},
		updateFn: func(_ context.Context, task *domain.Task) error {
			saved = task
			return nil
		},
	}
	svc := newTaskService(t, tasks, &fakeNormalizer{})

	newTitle := "New title"
	newStatus := domain.TaskStatusInProgress
	got, err := svc.Update(context.Background(), userID, existing.ID, service.UpdateTaskInput{
		Title:  &newTitle,
		Status: &newStatus,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, domain.TaskStatusInProgress, got.Status)
	assert.Equal(t, domain.TaskPriorityMedium, got.Priority, "unset fields stay unchanged")
	assert.Equal(t, 30, got.EstimatedDuration)
}

func TestUpdateTask_RefreshesUpdatedAt(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	stale := time.Now().UTC().Add(-30 * 24 * time.Hour)
	existing := &domain.Task{
		ID:                uuid.New(),
		UserID:            userID,
		Title:             "Long-running task",
		Priority:          domain.TaskPriorityMedium,
		Type:              domain.TaskTypeShallow,
		Status:            domain.TaskStatusPending,
		EstimatedDuration: 30,
		FocusScore:        0.5,
		CreatedAt:         stale,
		UpdatedAt:         stale,
	}
	var saved *domain.Task
	tasks := &fakeTaskStore{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.Task, error) {
			return existing, nil
		},
		updateFn: func(_ context.Context, task *domain.Task) error {
			saved = task
			return nil
		},
	}
	svc := newTaskService(t, tasks, &fakeNormalizer{})

	// Completing an old task must carry a fresh timestamp, otherwise it
	// falls outside the 7-day completed-task analytics window.
	completed := domain.TaskStatusCompleted
	_, err := svc.Update(context.Background(), userID, existing.ID, service.UpdateTaskInput{
		Status: &completed,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.WithinDuration(t, time.Now().UTC(), saved.UpdatedAt, time.Minute,
		"update should refresh UpdatedAt")
}

func TestDeleteTask_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTaskService(t, &fakeTaskStore{}, &fakeNormalizer{})

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}
