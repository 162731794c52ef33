package service_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/domain/focus"
	"github.com/focusflow/focusflow-api/internal/normalize"
	"github.com/focusflow/focusflow-api/internal/store"
)

// fakeTaskStore implements store.TaskStore with configurable behavior.
type fakeTaskStore struct {
	createFn              func(ctx context.Context, task *domain.Task) error
	getByIDFn             func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	listByUserFn          func(ctx context.Context, userID uuid.UUID, status domain.TaskStatus, limit int) ([]*domain.Task, error)
	updateFn              func(ctx context.Context, task *domain.Task) error
	deleteFn              func(ctx context.Context, id uuid.UUID) error
	countCompletedSinceFn func(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

func (f *fakeTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if f.createFn != nil {
		return f.createFn(ctx, task)
	}
	return nil
}

func (f *fakeTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

func (f *fakeTaskStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	status domain.TaskStatus,
	limit int,
) ([]*domain.Task, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID, status, limit)
	}
	return []*domain.Task{}, nil
}

func (f *fakeTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, task)
	}
	return nil
}

func (f *fakeTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeTaskStore) CountCompletedSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (int, error) {
	if f.countCompletedSinceFn != nil {
		return f.countCompletedSinceFn(ctx, userID, since)
	}
	return 0, nil
}

func (f *fakeTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return f }

// fakeSessionStore implements store.SessionStore with configurable behavior.
type fakeSessionStore struct {
	createFn             func(ctx context.Context, session *domain.FocusSession) error
	getByIDFn            func(ctx context.Context, id uuid.UUID) (*domain.FocusSession, error)
	updateFn             func(ctx context.Context, session *domain.FocusSession) error
	listCompletedFn      func(ctx context.Context, userID uuid.UUID, limit int) ([]focus.SessionSample, error)
	listCompletedSinceFn func(ctx context.Context, userID uuid.UUID, since time.Time) ([]*domain.FocusSession, error)
}

func (f *fakeSessionStore) Create(ctx context.Context, session *domain.FocusSession) error {
	if f.createFn != nil {
		return f.createFn(ctx, session)
	}
	return nil
}

func (f *fakeSessionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.FocusSession, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, store.ErrSessionNotFound
}

func (f *fakeSessionStore) Update(ctx context.Context, session *domain.FocusSession) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, session)
	}
	return nil
}

func (f *fakeSessionStore) ListCompleted(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]focus.SessionSample, error) {
	if f.listCompletedFn != nil {
		return f.listCompletedFn(ctx, userID, limit)
	}
	return []focus.SessionSample{}, nil
}

func (f *fakeSessionStore) ListCompletedSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]*domain.FocusSession, error) {
	if f.listCompletedSinceFn != nil {
		return f.listCompletedSinceFn(ctx, userID, since)
	}
	return []*domain.FocusSession{}, nil
}

func (f *fakeSessionStore) WithTx(tx *sql.Tx) store.SessionStore { return f }

// fakeUserStore implements store.UserStore with configurable behavior.
type fakeUserStore struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	updateFn     func(ctx context.Context, user *domain.User) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, user)
	}
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return f }

// fakeFocusService implements focus.Service.
type fakeFocusService struct {
	patternsFn func(ctx context.Context, userID uuid.UUID) (focus.PatternVector, error)
	rankFn     func(ctx context.Context, userID uuid.UUID, tasks []*domain.Task, now time.Time) ([]*domain.Task, error)
}

func (f *fakeFocusService) Patterns(
	ctx context.Context,
	userID uuid.UUID,
) (focus.PatternVector, error) {
	if f.patternsFn != nil {
		return f.patternsFn(ctx, userID)
	}
	return focus.PatternVector{Morning: 0.7, Afternoon: 0.5, Evening: 0.3}, nil
}

func (f *fakeFocusService) Rank(
	ctx context.Context,
	userID uuid.UUID,
	tasks []*domain.Task,
	now time.Time,
) ([]*domain.Task, error) {
	if f.rankFn != nil {
		return f.rankFn(ctx, userID, tasks, now)
	}
	return tasks, nil
}

// fakeNormalizer implements normalize.Normalizer, recording calls.
type fakeNormalizer struct {
	called bool
	fields *normalize.TaskFields
	err    error
}

func (f *fakeNormalizer) Normalize(
	ctx context.Context,
	text string,
) (*normalize.TaskFields, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	if f.fields != nil {
		return f.fields, nil
	}
	return normalize.KeywordFields(text), nil
}
