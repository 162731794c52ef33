package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskPriority represents the stated urgency of a task.
type TaskPriority string

// Priority levels, ordered low < medium < high < urgent.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// TaskType distinguishes deep-focus work from shallow work.
type TaskType string

const (
	TaskTypeDeep    TaskType = "deep"
	TaskTypeShallow TaskType = "shallow"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Common validation errors for Task
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID     = errors.New("task user ID cannot be empty")
	ErrEmptyTaskTitle      = errors.New("task title cannot be empty")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrInvalidTaskType     = errors.New("invalid task type")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidFocusScore   = errors.New("focus score must be between 0 and 1")
)

// DefaultFocusScore is the neutral concentration requirement assumed when
// no better estimate is available.
const DefaultFocusScore = 0.5

// DefaultEstimatedDuration is the assumed task length in minutes when the
// caller does not provide one.
const DefaultEstimatedDuration = 30

// Task represents a unit of work belonging to one user. FocusScore in [0,1]
// encodes how much concentration the task is believed to require and drives
// the focus-match term of the ranking score.
type Task struct {
	ID                uuid.UUID    `json:"id"`
	UserID            uuid.UUID    `json:"user_id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Priority          TaskPriority `json:"priority"`
	Type              TaskType     `json:"task_type"`
	EstimatedDuration int          `json:"estimated_duration"`
	ActualDuration    *int         `json:"actual_duration,omitempty"`
	Status            TaskStatus   `json:"status"`
	DueDate           *time.Time   `json:"due_date,omitempty"`
	ScheduledStart    *time.Time   `json:"scheduled_start,omitempty"`
	FocusScore        float64      `json:"focus_score"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// NewTask creates a pending Task for the given user with neutral defaults
// (medium priority, shallow type, focus score 0.5, 30 minutes). Callers
// overwrite fields from normalized input before persisting.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title string) (*Task, error) {
	task := &Task{
		ID:                uuid.New(),
		UserID:            userID,
		Title:             title,
		Priority:          TaskPriorityMedium,
		Type:              TaskTypeShallow,
		EstimatedDuration: DefaultEstimatedDuration,
		Status:            TaskStatusPending,
		FocusScore:        DefaultFocusScore,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if !IsValidTaskPriority(t.Priority) {
		return ErrInvalidTaskPriority
	}

	if !isValidTaskType(t.Type) {
		return ErrInvalidTaskType
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	if t.FocusScore < 0 || t.FocusScore > 1 {
		return ErrInvalidFocusScore
	}

	return nil
}

// Complete transitions the task to the completed state, recording the
// actual duration in minutes, and updates the UpdatedAt timestamp.
func (t *Task) Complete(actualDuration int) {
	t.Status = TaskStatusCompleted
	t.ActualDuration = &actualDuration
	t.UpdatedAt = time.Now().UTC()
}

// IsValidTaskPriority reports whether the given priority is one of the
// four defined levels.
func IsValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	default:
		return false
	}
}

func isValidTaskType(t TaskType) bool {
	switch t {
	case TaskTypeDeep, TaskTypeShallow:
		return true
	default:
		return false
	}
}

func isValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}
