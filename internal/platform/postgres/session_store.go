package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/domain/focus"
	"github.com/focusflow/focusflow-api/internal/platform/logger"
	"github.com/focusflow/focusflow-api/internal/store"
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend. It also satisfies
// focus.SessionReader, feeding completed sessions to the pattern estimator.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore
// interface. It accepts a database connection or transaction that should be initialized
// and managed by the caller. If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements the store and estimator interfaces
var (
	_ store.SessionStore  = (*PostgresSessionStore)(nil)
	_ focus.SessionReader = (*PostgresSessionStore)(nil)
)

// Create implements store.SessionStore.Create
// Returns store.ErrInvalidEntity if the user or task ID doesn't exist
// (foreign key violation).
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.FocusSession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		INSERT INTO focus_sessions (
			id, user_id, task_id, start_time, end_time, duration_minutes,
			focus_level, productivity_score, energy_level, session_type, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.TaskID,
		session.StartTime,
		session.EndTime,
		session.DurationMinutes,
		session.FocusLevel,
		session.ProductivityScore,
		session.EnergyLevel,
		session.Type,
		session.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during session creation",
				slog.String("session_id", session.ID.String()),
				slog.String("user_id", session.UserID.String()))
			return fmt.Errorf("%w: referenced user or task not found",
				store.ErrInvalidEntity)
		}

		log.Error("failed to create session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()),
			slog.String("user_id", session.UserID.String()))
		return MapError(err)
	}

	log.Info("focus session created successfully",
		slog.String("session_id", session.ID.String()),
		slog.String("user_id", session.UserID.String()))
	return nil
}

// GetByID implements store.SessionStore.GetByID
// Returns store.ErrSessionNotFound if the session does not exist.
func (s *PostgresSessionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.FocusSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, task_id, start_time, end_time, duration_minutes,
		       focus_level, productivity_score, energy_level, session_type, created_at
		FROM focus_sessions
		WHERE id = $1
	`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found", slog.String("session_id", id.String()))
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get session by ID",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, MapError(err)
	}

	return session, nil
}

// Update implements store.SessionStore.Update
// Returns store.ErrSessionNotFound if the session does not exist.
func (s *PostgresSessionStore) Update(ctx context.Context, session *domain.FocusSession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during update",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		UPDATE focus_sessions
		SET end_time = $1, duration_minutes = $2, focus_level = $3,
		    productivity_score = $4, energy_level = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		session.EndTime,
		session.DurationMinutes,
		session.FocusLevel,
		session.ProductivityScore,
		session.EnergyLevel,
		session.ID,
	)

	if err != nil {
		log.Error("failed to update session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "focus session"); err != nil {
		log.Debug("session not found for update",
			slog.String("session_id", session.ID.String()))
		return store.ErrSessionNotFound
	}

	log.Info("focus session updated successfully",
		slog.String("session_id", session.ID.String()))
	return nil
}

// ListCompleted implements store.SessionStore.ListCompleted and
// focus.SessionReader.ListCompleted. Only sessions with an end time
// recorded are returned, newest first, capped at limit.
func (s *PostgresSessionStore) ListCompleted(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]focus.SessionSample, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		return []focus.SessionSample{}, nil
	}

	query := `
		SELECT start_time, productivity_score
		FROM focus_sessions
		WHERE user_id = $1
		  AND end_time IS NOT NULL
		ORDER BY start_time DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		log.Error("failed to list completed sessions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	samples := make([]focus.SessionSample, 0)
	for rows.Next() {
		var sample focus.SessionSample
		if err := rows.Scan(&sample.StartTime, &sample.ProductivityScore); err != nil {
			log.Error("failed to scan session sample",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, MapError(err)
		}
		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating session samples",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	log.Debug("completed sessions listed",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(samples)))
	return samples, nil
}

// ListCompletedSince implements store.SessionStore.ListCompletedSince
func (s *PostgresSessionStore) ListCompletedSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]*domain.FocusSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, task_id, start_time, end_time, duration_minutes,
		       focus_level, productivity_score, energy_level, session_type, created_at
		FROM focus_sessions
		WHERE user_id = $1
		  AND end_time IS NOT NULL
		  AND start_time >= $2
		ORDER BY start_time DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		log.Error("failed to list sessions since",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	sessions := make([]*domain.FocusSession, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			log.Error("failed to scan session row",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, MapError(err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating session rows",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return sessions, nil
}

// WithTx implements store.SessionStore.WithTx
// It returns a new store bound to the provided transaction.
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &PostgresSessionStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanSession(row rowScanner) (*domain.FocusSession, error) {
	var session domain.FocusSession
	var energyLevel, sessionType string

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.TaskID,
		&session.StartTime,
		&session.EndTime,
		&session.DurationMinutes,
		&session.FocusLevel,
		&session.ProductivityScore,
		&energyLevel,
		&sessionType,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	session.EnergyLevel = domain.EnergyLevel(energyLevel)
	session.Type = domain.SessionType(sessionType)

	return &session, nil
}
