package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/domain/focus"
)

// SessionStore defines the interface for focus session data persistence.
type SessionStore interface {
	// Create saves a new focus session to the store.
	// It handles domain validation internally.
	Create(ctx context.Context, session *domain.FocusSession) error

	// GetByID retrieves a focus session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FocusSession, error)

	// Update saves changes to an existing focus session.
	// Returns ErrSessionNotFound if the session does not exist.
	Update(ctx context.Context, session *domain.FocusSession) error

	// ListCompleted retrieves up to limit of the user's most recently
	// started completed sessions as estimator samples, newest first.
	// Returns an empty slice when the user has no completed sessions.
	ListCompleted(ctx context.Context, userID uuid.UUID, limit int) ([]focus.SessionSample, error)

	// ListCompletedSince retrieves the user's completed sessions that
	// started at or after the given instant, newest first.
	ListCompletedSince(
		ctx context.Context,
		userID uuid.UUID,
		since time.Time,
	) ([]*domain.FocusSession, error)

	// WithTx returns a new SessionStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) SessionStore
}
