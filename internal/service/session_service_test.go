package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/service"
	"github.com/focusflow/focusflow-api/internal/store"
)

// testDB returns a lazily-opened handle. Tests that never begin a
// transaction can use it without a running database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", "postgres://localhost:5432/unused")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newSessionService(
	t *testing.T,
	sessions store.SessionStore,
	tasks store.TaskStore,
) service.SessionService {
	t.Helper()

	svc, err := service.NewSessionService(testDB(t), sessions, tasks, nil)
	require.NoError(t, err)
	return svc
}

func TestNewSessionService_NilDependencies(t *testing.T) {
	t.Parallel()

	_, err := service.NewSessionService(nil, &fakeSessionStore{}, &fakeTaskStore{}, nil)
	assert.Error(t, err, "nil db should be rejected")

	_, err = service.NewSessionService(testDB(t), nil, &fakeTaskStore{}, nil)
	assert.Error(t, err, "nil session store should be rejected")

	_, err = service.NewSessionService(testDB(t), &fakeSessionStore{}, nil, nil)
	assert.Error(t, err, "nil task store should be rejected")
}

func TestStartSession_WithoutTask(t *testing.T) {
	t.Parallel()

	var saved *domain.FocusSession
	sessions := &fakeSessionStore{
		createFn: func(_ context.Context, session *domain.FocusSession) error {
			saved = session
			return nil
		},
	}
	svc := newSessionService(t, sessions, &fakeTaskStore{})
	userID := uuid.New()

	session, err := svc.Start(context.Background(), userID, nil)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, userID, session.UserID)
	assert.Nil(t, session.TaskID)
	assert.Nil(t, session.EndTime, "a new session starts open")
	assert.InDelta(t, domain.NeutralProductivityScore, session.ProductivityScore, 1e-9)
}

func TestStartSession_TaskOwnership(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	task := &domain.Task{ID: uuid.New(), UserID: owner, Title: "Write docs"}
	tasks := &fakeTaskStore{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Task, error) {
			if id == task.ID {
				return task, nil
			}
			return nil, store.ErrTaskNotFound
		},
	}
	svc := newSessionService(t, &fakeSessionStore{}, tasks)

	t.Run("own_task", func(t *testing.T) {
		session, err := svc.Start(context.Background(), owner, &task.ID)
		require.NoError(t, err)
		require.NotNil(t, session.TaskID)
		assert.Equal(t, task.ID, *session.TaskID)
	})

	t.Run("foreign_task", func(t *testing.T) {
		_, err := svc.Start(context.Background(), uuid.New(), &task.ID)
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})

	t.Run("missing_task", func(t *testing.T) {
		missing := uuid.New()
		_, err := svc.Start(context.Background(), owner, &missing)
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})
}

func TestGetSession_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	session := &domain.FocusSession{ID: uuid.New(), UserID: owner, StartTime: time.Now().UTC()}
	sessions := &fakeSessionStore{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*domain.FocusSession, error) {
			if id == session.ID {
				return session, nil
			}
			return nil, store.ErrSessionNotFound
		},
	}
	svc := newSessionService(t, sessions, &fakeTaskStore{})

	got, err := svc.Get(context.Background(), owner, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)

	_, err = svc.Get(context.Background(), uuid.New(), session.ID)
	assert.ErrorIs(t, err, service.ErrSessionNotFound,
		"another user's session must look like a missing session")
}

func TestCompleteSession_AlreadyCompleted(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	ended := time.Now().UTC()
	completed := &domain.FocusSession{
		ID:        uuid.New(),
		UserID:    owner,
		StartTime: ended.Add(-30 * time.Minute),
		EndTime:   &ended,
	}
	sessions := &fakeSessionStore{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.FocusSession, error) {
			return completed, nil
		},
	}
	svc := newSessionService(t, sessions, &fakeTaskStore{})

	_, err := svc.Complete(context.Background(), owner, completed.ID, 30, 0.8)
	assert.ErrorIs(t, err, service.ErrSessionAlreadyCompleted)
}

func TestCompleteSession_InvalidInput(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	open := &domain.FocusSession{ID: uuid.New(), UserID: owner, StartTime: time.Now().UTC()}
	sessions := &fakeSessionStore{
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.FocusSession, error) {
			// Copy so a failed attempt does not mutate the fixture.
			copied := *open
			return &copied, nil
		},
	}
	svc := newSessionService(t, sessions, &fakeTaskStore{})

	_, err := svc.Complete(context.Background(), owner, open.ID, 0, 0.8)
	assert.ErrorIs(t, err, domain.ErrInvalidSessionDuration)

	_, err = svc.Complete(context.Background(), owner, open.ID, 30, 1.5)
	assert.ErrorIs(t, err, domain.ErrInvalidProductivity)
}
