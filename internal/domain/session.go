package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SessionType distinguishes kinds of focus sessions.
type SessionType string

const (
	SessionTypeWork     SessionType = "work"
	SessionTypeBreak    SessionType = "break"
	SessionTypeDeepWork SessionType = "deep_work"
)

// EnergyLevel is the user's self-reported energy during a session.
type EnergyLevel string

const (
	EnergyLevelLow    EnergyLevel = "low"
	EnergyLevelMedium EnergyLevel = "medium"
	EnergyLevelHigh   EnergyLevel = "high"
)

// Common validation errors for FocusSession
var (
	ErrEmptySessionID          = errors.New("session ID cannot be empty")
	ErrEmptySessionUserID      = errors.New("session user ID cannot be empty")
	ErrZeroSessionStart        = errors.New("session start time cannot be zero")
	ErrInvalidProductivity     = errors.New("productivity score must be between 0 and 1")
	ErrInvalidSessionDuration  = errors.New("session duration must be positive")
	ErrSessionAlreadyCompleted = errors.New("session has already been completed")
)

// NeutralProductivityScore is recorded at session start, before the user
// reports an actual score at completion.
const NeutralProductivityScore = 0.5

// FocusSession is one timed work period for a user, optionally tied to a
// task. It is created open (no end time) and mutated exactly once at
// completion; only completed sessions feed the pattern estimator.
type FocusSession struct {
	ID                uuid.UUID   `json:"id"`
	UserID            uuid.UUID   `json:"user_id"`
	TaskID            *uuid.UUID  `json:"task_id,omitempty"`
	StartTime         time.Time   `json:"start_time"`
	EndTime           *time.Time  `json:"end_time,omitempty"`
	DurationMinutes   *int        `json:"duration_minutes,omitempty"`
	FocusLevel        float64     `json:"focus_level"`
	ProductivityScore float64     `json:"productivity_score"`
	EnergyLevel       EnergyLevel `json:"energy_level"`
	Type              SessionType `json:"session_type"`
	CreatedAt         time.Time   `json:"created_at"`
}

// NewFocusSession starts a new work session for the given user, optionally
// referencing a task. The productivity score defaults to neutral until the
// session is completed. Returns an error if validation fails.
func NewFocusSession(userID uuid.UUID, taskID *uuid.UUID) (*FocusSession, error) {
	session := &FocusSession{
		ID:                uuid.New(),
		UserID:            userID,
		TaskID:            taskID,
		StartTime:         time.Now().UTC(),
		FocusLevel:        NeutralProductivityScore,
		ProductivityScore: NeutralProductivityScore,
		EnergyLevel:       EnergyLevelMedium,
		Type:              SessionTypeWork,
		CreatedAt:         time.Now().UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the FocusSession has valid data.
// Returns an error if any field fails validation.
func (s *FocusSession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySessionID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptySessionUserID
	}

	if s.StartTime.IsZero() {
		return ErrZeroSessionStart
	}

	if s.ProductivityScore < 0 || s.ProductivityScore > 1 {
		return ErrInvalidProductivity
	}

	if s.DurationMinutes != nil && *s.DurationMinutes <= 0 {
		return ErrInvalidSessionDuration
	}

	return nil
}

// Completed reports whether the session has an end time recorded.
func (s *FocusSession) Completed() bool {
	return s.EndTime != nil
}

// Complete records the end of the session with the reported duration and
// productivity score. The focus level mirrors the productivity score.
// Returns an error if the session was already completed or the inputs are
// out of range. A session is completed at most once.
func (s *FocusSession) Complete(durationMinutes int, productivityScore float64) error {
	if s.Completed() {
		return ErrSessionAlreadyCompleted
	}

	if durationMinutes <= 0 {
		return ErrInvalidSessionDuration
	}

	if productivityScore < 0 || productivityScore > 1 {
		return ErrInvalidProductivity
	}

	now := time.Now().UTC()
	s.EndTime = &now
	s.DurationMinutes = &durationMinutes
	s.ProductivityScore = productivityScore
	s.FocusLevel = productivityScore
	return nil
}
