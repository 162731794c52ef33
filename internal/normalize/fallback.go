package normalize

import (
	"context"
	"log/slog"
	"strings"

	"github.com/focusflow/focusflow-api/internal/domain"
)

// Keyword sets driving the deterministic fallback. Matching is
// case-insensitive on whole-word boundaries implied by simple substring
// checks, mirroring how users actually phrase task titles.
var (
	urgencyKeywords = []string{"urgent", "asap", "critical", "emergency"}
	deepKeywords    = []string{"code", "develop", "write", "analyze", "design"}
)

// Deep-work defaults applied when the fallback detects deep-focus
// keywords.
const (
	deepFocusScore = 0.8
	deepDuration   = 60
)

// fallbackNormalizer wraps another Normalizer and replaces any failure
// with deterministic keyword-derived fields. The wrapped normalizer's
// output passes through untouched on success (after field sanitation);
// this decorator is what guarantees the ranker always receives valid
// priority and focus score values, even with the LLM unavailable.
type fallbackNormalizer struct {
	inner  Normalizer
	logger *slog.Logger
}

// WithFallback decorates the given normalizer with the deterministic
// keyword fallback. If inner is nil, the fallback alone serves all
// requests. If logger is nil, the default logger is used.
func WithFallback(inner Normalizer, logger *slog.Logger) Normalizer {
	if logger == nil {
		logger = slog.Default()
	}

	return &fallbackNormalizer{
		inner:  inner,
		logger: logger.With(slog.String("component", "normalizer_fallback")),
	}
}

// Normalize implements the Normalizer interface. It never returns an
// error for non-empty input.
func (n *fallbackNormalizer) Normalize(ctx context.Context, text string) (*TaskFields, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	if n.inner != nil {
		fields, err := n.inner.Normalize(ctx, text)
		if err == nil {
			sanitize(fields, text)
			return fields, nil
		}

		n.logger.Warn("normalizer failed, using keyword fallback",
			slog.String("error", err.Error()),
			slog.Int("input_length", len(text)))
	}

	return KeywordFields(text), nil
}

// KeywordFields derives task fields from free text by keyword matching
// alone. Urgency keywords force urgent priority; deep-work verbs force the
// deep task type with an elevated focus score and duration. Everything
// else gets neutral defaults.
func KeywordFields(text string) *TaskFields {
	lowered := strings.ToLower(text)

	fields := &TaskFields{
		Title:             strings.TrimSpace(text),
		Priority:          domain.TaskPriorityMedium,
		Type:              domain.TaskTypeShallow,
		EstimatedDuration: domain.DefaultEstimatedDuration,
		FocusScore:        domain.DefaultFocusScore,
	}

	if containsAny(lowered, urgencyKeywords) {
		fields.Priority = domain.TaskPriorityUrgent
	}

	if containsAny(lowered, deepKeywords) {
		fields.Type = domain.TaskTypeDeep
		fields.FocusScore = deepFocusScore
		fields.EstimatedDuration = deepDuration
	}

	return fields
}

// sanitize enforces the output invariants on fields produced by the
// wrapped normalizer, substituting defaults for anything missing or out
// of range rather than rejecting the response.
func sanitize(fields *TaskFields, originalText string) {
	if strings.TrimSpace(fields.Title) == "" {
		fields.Title = strings.TrimSpace(originalText)
	}

	if !domain.IsValidTaskPriority(fields.Priority) {
		fields.Priority = domain.TaskPriorityMedium
	}

	if fields.Type != domain.TaskTypeDeep && fields.Type != domain.TaskTypeShallow {
		fields.Type = domain.TaskTypeShallow
	}

	if fields.EstimatedDuration <= 0 {
		fields.EstimatedDuration = domain.DefaultEstimatedDuration
	}

	if fields.FocusScore < 0 || fields.FocusScore > 1 {
		fields.FocusScore = domain.DefaultFocusScore
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
