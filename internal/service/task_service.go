package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/domain/focus"
	"github.com/focusflow/focusflow-api/internal/normalize"
	"github.com/focusflow/focusflow-api/internal/store"
)

// naturalLanguageKeywords trigger AI normalization even for short titles.
// They mark scheduling or urgency phrasing that the normalizer can turn
// into structured fields.
var naturalLanguageKeywords = []string{"by", "tomorrow", "today", "next", "urgent", "asap"}

// naturalLanguageWordThreshold is the title word count above which the
// input is treated as natural language and sent through the normalizer.
const naturalLanguageWordThreshold = 5

// CreateTaskInput carries the caller-supplied fields for task creation.
// Zero values fall back to the neutral defaults.
type CreateTaskInput struct {
	Title             string
	Description       string
	Priority          domain.TaskPriority
	Type              domain.TaskType
	EstimatedDuration int
	DueDate           *time.Time
	FocusScore        *float64
}

// UpdateTaskInput carries a partial task update. Nil fields are left
// unchanged.
type UpdateTaskInput struct {
	Title             *string
	Description       *string
	Priority          *domain.TaskPriority
	Type              *domain.TaskType
	Status            *domain.TaskStatus
	EstimatedDuration *int
	ActualDuration    *int
	DueDate           *time.Time
	ScheduledStart    *time.Time
	FocusScore        *float64
}

// TaskService provides task management operations. All operations are scoped
// to the requesting user; a task belonging to someone else behaves as if it
// does not exist.
type TaskService interface {
	// Create stores a new task for the user. Titles that read like natural
	// language are run through the normalizer first; its structured fields
	// override the caller's defaults.
	Create(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*domain.Task, error)

	// Get retrieves one of the user's tasks. Returns ErrTaskNotFound if it
	// does not exist or belongs to another user.
	Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// List returns the user's tasks ordered by the focus-aware ranking
	// (highest scoring first).
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update applies a partial update to one of the user's tasks.
	Update(ctx context.Context, userID, taskID uuid.UUID, input UpdateTaskInput) (*domain.Task, error)

	// Delete removes one of the user's tasks.
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "list_tasks")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// newTaskServiceError wraps an error, passing known sentinels through directly.
func newTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore  store.TaskStore
	normalizer normalize.Normalizer
	focus      focus.Service
	logger     *slog.Logger
	now        func() time.Time
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskStore store.TaskStore,
	normalizer normalize.Normalizer,
	focusService focus.Service,
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}
	if normalizer == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "normalizer cannot be nil",
		}
	}
	if focusService == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "focusService cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:  taskStore,
		normalizer: normalizer,
		focus:      focusService,
		logger:     logger.With("component", "task_service"),
		now:        time.Now,
	}, nil
}

// looksLikeNaturalLanguage reports whether the title should go through AI
// normalization: more than five words, or scheduling/urgency keywords.
func looksLikeNaturalLanguage(title string) bool {
	if len(strings.Fields(title)) > naturalLanguageWordThreshold {
		return true
	}

	lowered := strings.ToLower(title)
	for _, kw := range naturalLanguageKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	input CreateTaskInput,
) (*domain.Task, error) {
	task, err := domain.NewTask(userID, strings.TrimSpace(input.Title))
	if err != nil {
		return nil, err
	}

	s.applyCreateInput(task, input)

	if looksLikeNaturalLanguage(input.Title) {
		fields, err := s.normalizer.Normalize(ctx, input.Title)
		if err != nil {
			// The fallback decorator makes this unreachable for non-empty
			// titles, but a failure here must not block task creation.
			s.logger.Warn("task normalization failed, keeping raw input",
				"error", err.Error(),
				"user_id", userID)
		} else {
			s.applyNormalizedFields(task, input, fields)
		}
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"user_id", userID,
			"task_id", task.ID)
		return nil, newTaskServiceError("create_task", "failed to save task", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"user_id", userID,
		"priority", task.Priority)
	return task, nil
}

// applyCreateInput overlays the caller's explicit fields on the neutral
// defaults from domain.NewTask.
func (s *taskServiceImpl) applyCreateInput(task *domain.Task, input CreateTaskInput) {
	task.Description = input.Description
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	if input.Type != "" {
		task.Type = input.Type
	}
	if input.EstimatedDuration > 0 {
		task.EstimatedDuration = input.EstimatedDuration
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.FocusScore != nil {
		task.FocusScore = *input.FocusScore
	}
}

// applyNormalizedFields overlays the normalizer's structured output, keeping
// the caller's values where the normalizer produced nothing.
func (s *taskServiceImpl) applyNormalizedFields(
	task *domain.Task,
	input CreateTaskInput,
	fields *normalize.TaskFields,
) {
	if fields.Title != "" {
		task.Title = fields.Title
	}
	if fields.Description != "" {
		task.Description = fields.Description
	}
	task.Priority = fields.Priority
	task.Type = fields.Type
	if fields.EstimatedDuration > 0 {
		task.EstimatedDuration = fields.EstimatedDuration
	}
	task.FocusScore = fields.FocusScore
	if fields.DueDate != nil {
		task.DueDate = fields.DueDate
	}
}

// Get implements TaskService.Get.
func (s *taskServiceImpl) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, newTaskServiceError("get_task", "failed to get task", err)
	}
	return task, nil
}

// List implements TaskService.List. Tasks come back ordered by the ranking
// score so clients can render them top to bottom.
func (s *taskServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListByUser(ctx, userID, "", 100)
	if err != nil {
		return nil, newTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	ranked, err := s.focus.Rank(ctx, userID, tasks, s.now())
	if err != nil {
		return nil, newTaskServiceError("list_tasks", "failed to rank tasks", err)
	}

	return ranked, nil
}

// Update implements TaskService.Update.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, newTaskServiceError("update_task", "failed to get task", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Type != nil {
		task.Type = *input.Type
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.EstimatedDuration != nil {
		task.EstimatedDuration = *input.EstimatedDuration
	}
	if input.ActualDuration != nil {
		task.ActualDuration = input.ActualDuration
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ScheduledStart != nil {
		task.ScheduledStart = input.ScheduledStart
	}
	if input.FocusScore != nil {
		task.FocusScore = *input.FocusScore
	}

	// The analytics rollup counts completed tasks by updated_at, so every
	// update must carry a fresh timestamp.
	task.UpdatedAt = s.now().UTC()

	if err := s.taskStore.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task",
			"error", err,
			"task_id", taskID,
			"user_id", userID)
		return nil, newTaskServiceError("update_task", "failed to save task", err)
	}

	return task, nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.ownedTask(ctx, userID, taskID); err != nil {
		return newTaskServiceError("delete_task", "failed to get task", err)
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		return newTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.logger.Info("task deleted",
		"task_id", taskID,
		"user_id", userID)
	return nil
}

// ownedTask fetches a task and verifies ownership. A task owned by another
// user is reported as not found so task IDs cannot be probed.
func (s *taskServiceImpl) ownedTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.UserID != userID {
		return nil, ErrTaskNotFound
	}

	return task, nil
}
