package normalize

import (
	"context"
	"time"

	"github.com/focusflow/focusflow-api/internal/domain"
)

// TaskFields is the structured, schedulable slice of a task derived from
// free-text input. Every field is guaranteed valid by the time it leaves
// this package: the ranker's correctness depends on priority and focus
// score always being present and in range.
type TaskFields struct {
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Priority          domain.TaskPriority `json:"priority"`
	Type              domain.TaskType     `json:"task_type"`
	EstimatedDuration int                 `json:"estimated_duration"`
	FocusScore        float64             `json:"focus_score"`
	DueDate           *time.Time          `json:"due_date,omitempty"`
}

// Normalizer defines the interface for turning free-text task input into
// structured task fields. This interface is the boundary between the
// application core and external AI/LLM services.
type Normalizer interface {
	// Normalize parses the given free-text task input into structured
	// fields. It returns an error if the text cannot be parsed or the
	// external service fails; callers that need guaranteed output wrap
	// the normalizer with WithFallback.
	Normalize(ctx context.Context, text string) (*TaskFields, error)
}
