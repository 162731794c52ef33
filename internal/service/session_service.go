package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/store"
)

// highProductivityThreshold is the productivity score above which completing
// a focus session also completes its referenced task.
const highProductivityThreshold = 0.7

// SessionService manages focus sessions: starting them and completing them
// exactly once, with the task side effect applied atomically.
type SessionService interface {
	// Start opens a new focus session for the user, optionally tied to one
	// of their tasks. A task reference belonging to another user is
	// rejected with ErrTaskNotFound.
	Start(ctx context.Context, userID uuid.UUID, taskID *uuid.UUID) (*domain.FocusSession, error)

	// Get retrieves one of the user's sessions.
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.FocusSession, error)

	// Complete records the end of a session with the reported duration and
	// productivity score. When the score exceeds 0.7 and the session
	// references a task, the task transitions to completed in the same
	// transaction. Returns ErrSessionAlreadyCompleted on a second attempt.
	Complete(
		ctx context.Context,
		userID, sessionID uuid.UUID,
		durationMinutes int,
		productivityScore float64,
	) (*domain.FocusSession, error)
}

// SessionServiceError wraps errors from the session service with context.
type SessionServiceError struct {
	// Operation is the operation that failed (e.g., "start_session", "complete_session")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for SessionServiceError.
func (e *SessionServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("session service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SessionServiceError) Unwrap() error {
	return e.Err
}

// newSessionServiceError wraps an error, passing known sentinels through directly.
func newSessionServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, store.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, ErrSessionAlreadyCompleted),
		errors.Is(err, domain.ErrSessionAlreadyCompleted):
		return ErrSessionAlreadyCompleted
	}

	return &SessionServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// sessionServiceImpl implements the SessionService interface
type sessionServiceImpl struct {
	db           *sql.DB
	sessionStore store.SessionStore
	taskStore    store.TaskStore
	logger       *slog.Logger
}

// NewSessionService creates a new SessionService.
// It returns an error if any of the required dependencies are nil.
func NewSessionService(
	db *sql.DB,
	sessionStore store.SessionStore,
	taskStore store.TaskStore,
	logger *slog.Logger,
) (SessionService, error) {
	if db == nil {
		return nil, &SessionServiceError{
			Operation: "create_service",
			Message:   "db cannot be nil",
		}
	}
	if sessionStore == nil {
		return nil, &SessionServiceError{
			Operation: "create_service",
			Message:   "sessionStore cannot be nil",
		}
	}
	if taskStore == nil {
		return nil, &SessionServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &sessionServiceImpl{
		db:           db,
		sessionStore: sessionStore,
		taskStore:    taskStore,
		logger:       logger.With("component", "session_service"),
	}, nil
}

// Start implements SessionService.Start.
func (s *sessionServiceImpl) Start(
	ctx context.Context,
	userID uuid.UUID,
	taskID *uuid.UUID,
) (*domain.FocusSession, error) {
	if taskID != nil {
		task, err := s.taskStore.GetByID(ctx, *taskID)
		if err != nil {
			return nil, newSessionServiceError("start_session", "failed to verify task", err)
		}
		if task.UserID != userID {
			return nil, ErrTaskNotFound
		}
	}

	session, err := domain.NewFocusSession(userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		s.logger.Error("failed to create session",
			"error", err,
			"user_id", userID)
		return nil, newSessionServiceError("start_session", "failed to save session", err)
	}

	s.logger.Info("focus session started",
		"session_id", session.ID,
		"user_id", userID)
	return session, nil
}

// Get implements SessionService.Get.
func (s *sessionServiceImpl) Get(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.FocusSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, newSessionServiceError("get_session", "failed to get session", err)
	}
	return session, nil
}

// Complete implements SessionService.Complete. The session update and the
// high-productivity task side effect commit or roll back together.
func (s *sessionServiceImpl) Complete(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	durationMinutes int,
	productivityScore float64,
) (*domain.FocusSession, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, newSessionServiceError("complete_session", "failed to get session", err)
	}

	if err := session.Complete(durationMinutes, productivityScore); err != nil {
		return nil, newSessionServiceError("complete_session", "invalid completion", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txSessions := s.sessionStore.WithTx(tx)
		if err := txSessions.Update(ctx, session); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		if session.TaskID == nil || productivityScore <= highProductivityThreshold {
			return nil
		}

		txTasks := s.taskStore.WithTx(tx)
		task, err := txTasks.GetByID(ctx, *session.TaskID)
		if err != nil {
			// A deleted task does not invalidate the session completion
			if errors.Is(err, store.ErrTaskNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load referenced task: %w", err)
		}

		if task.Status == domain.TaskStatusCompleted {
			return nil
		}

		task.Complete(durationMinutes)
		if err := txTasks.Update(ctx, task); err != nil {
			return fmt.Errorf("failed to complete referenced task: %w", err)
		}

		s.logger.Info("task auto-completed from productive session",
			"task_id", task.ID,
			"session_id", session.ID,
			"productivity_score", productivityScore)
		return nil
	})
	if err != nil {
		return nil, newSessionServiceError("complete_session", "transaction failed", err)
	}

	s.logger.Info("focus session completed",
		"session_id", session.ID,
		"user_id", userID,
		"duration_minutes", durationMinutes)
	return session, nil
}

// ownedSession fetches a session and verifies ownership.
func (s *sessionServiceImpl) ownedSession(
	ctx context.Context,
	userID, sessionID uuid.UUID,
) (*domain.FocusSession, error) {
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}

	return session, nil
}
