package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/focusflow/focusflow-api/internal/config"
	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/normalize"
)

// promptTemplateText instructs the model to emit exactly one JSON object
// matching responseSchema. Keeping it in code rather than a file means the
// binary has no runtime asset dependencies.
const promptTemplateText = `You are a task normalization assistant for a productivity app.
Given a user's free-form task description, extract structured fields.

Respond with a single JSON object and nothing else, using this shape:
{
  "title": "cleaned up task title",
  "description": "any extra detail, or empty string",
  "priority": "low|medium|high|urgent",
  "task_type": "deep|shallow",
  "estimated_duration": 30,
  "focus_score": 0.5,
  "due_date": "RFC 3339 timestamp or omit if none"
}

Rules:
- priority reflects urgency words in the text (default medium).
- task_type is "deep" for work needing sustained concentration such as
  coding, writing, analysis or design, otherwise "shallow".
- estimated_duration is in minutes.
- focus_score is between 0 and 1.
- due_date resolves relative phrases ("tomorrow", "next friday") against
  today's date: {{.Today}}.

Task text: {{.TaskText}}`

// Normalizer implements the normalize.Normalizer interface using
// Google's Gemini API to extract structured task fields from text.
type Normalizer struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// promptTemplate is the parsed template for creating prompts
	promptTemplate *template.Template

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string

	// now returns the current time; injectable for tests
	now func() time.Time
}

// Ensure Normalizer implements normalize.Normalizer
var _ normalize.Normalizer = (*Normalizer)(nil)

// NewNormalizer creates a new Gemini-backed normalizer with the provided
// dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and retry settings
//
// Returns:
//   - A properly initialized Normalizer or an error if initialization fails
func NewNormalizer(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Normalizer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", normalize.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", normalize.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("normalize").Parse(promptTemplateText)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			normalize.ErrInvalidConfig, err)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			normalize.ErrInvalidConfig, err)
	}

	return &Normalizer{
		logger:         logger.With(slog.String("component", "gemini_normalizer")),
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
		now:            time.Now,
	}, nil
}

// Normalize implements normalize.Normalizer. It sends the task text to the
// Gemini API and maps the structured response onto task fields. Transient
// API failures are retried with exponential backoff; permanent failures
// (blocked content, malformed responses) are returned immediately.
func (n *Normalizer) Normalize(ctx context.Context, text string) (*normalize.TaskFields, error) {
	if text == "" {
		return nil, normalize.ErrEmptyInput
	}

	prompt, err := n.createPrompt(ctx, text)
	if err != nil {
		return nil, err
	}

	response, err := n.callGeminiWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return n.parseResponse(response)
}

// createPrompt generates a prompt string from the template with the provided
// task text and today's date for relative due date resolution.
func (n *Normalizer) createPrompt(ctx context.Context, taskText string) (string, error) {
	data := promptData{
		TaskText: taskText,
		Today:    n.now().UTC().Format("2006-01-02"),
	}

	n.logger.DebugContext(ctx, "generating prompt from template",
		"task_length", len(taskText))

	var promptBuffer bytes.Buffer
	if err := n.promptTemplate.Execute(&promptBuffer, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return promptBuffer.String(), nil
}

// callGeminiWithRetry makes a call to the Gemini API with exponential backoff
// retry logic.
//
// It attempts to call the API up to config.MaxRetries times, using exponential
// backoff with jitter between retries for transient errors. Permanent errors
// (like content being blocked by safety filters) are returned immediately
// without retrying.
func (n *Normalizer) callGeminiWithRetry(ctx context.Context, prompt string) (*responseSchema, error) {
	maxRetries := n.config.MaxRetries
	baseDelaySeconds := n.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(n.now().UnixNano()))

	if maxRetries < 0 {
		n.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}

	if baseDelaySeconds < 1 {
		n.logger.WarnContext(ctx, "invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	generateConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		attemptNum := attempt + 1 // For logging (1-based)
		n.logger.InfoContext(ctx, "making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		response, transient, err := n.generateOnce(ctx, prompt, generateConfig)
		if err == nil {
			n.logger.InfoContext(ctx, "Gemini API call successful",
				"attempt", attemptNum)
			return response, nil
		}

		n.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if !transient {
			return nil, err
		}

		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				normalize.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		n.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attemptNum,
			"delay", delay.String())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			n.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return nil, fmt.Errorf("%w: %v", normalize.ErrTransientFailure, ctx.Err())
		}
	}

	return nil, fmt.Errorf("%w: failed after %d attempts",
		normalize.ErrTransientFailure, maxRetries+1)
}

// generateOnce performs a single Gemini API call. The second return value
// reports whether a failure is transient and worth retrying.
func (n *Normalizer) generateOnce(
	ctx context.Context,
	prompt string,
	generateConfig *genai.GenerateContentConfig,
) (*responseSchema, bool, error) {
	resp, err := n.client.Models.GenerateContent(ctx, n.model, genai.Text(prompt), generateConfig)
	if err != nil {
		// Network and server-side errors may clear up on retry
		return nil, true, fmt.Errorf("%w: %v", normalize.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, false, fmt.Errorf("%w: no content generated", normalize.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, false, fmt.Errorf("%w: content blocked by safety filters",
			normalize.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return nil, false, fmt.Errorf("%w: empty content in response", normalize.ErrInvalidResponse)
	}

	text := resp.Text()
	if text == "" {
		return nil, false, fmt.Errorf("%w: empty text in response", normalize.ErrInvalidResponse)
	}

	var parsed responseSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, false, fmt.Errorf("%w: failed to parse JSON response: %v",
			normalize.ErrInvalidResponse, err)
	}

	return &parsed, false, nil
}

// parseResponse converts a responseSchema from the Gemini API into task
// fields, validating the enumerated values along the way. A response with an
// unusable priority or type is an invalid response rather than something to
// silently patch; the fallback decorator owns defaulting decisions.
func (n *Normalizer) parseResponse(response *responseSchema) (*normalize.TaskFields, error) {
	if response == nil {
		return nil, fmt.Errorf("%w: response is nil", normalize.ErrInvalidResponse)
	}

	if response.Title == "" {
		return nil, fmt.Errorf("%w: missing title", normalize.ErrInvalidResponse)
	}

	fields := &normalize.TaskFields{
		Title:             response.Title,
		Description:       response.Description,
		Priority:          domain.TaskPriority(response.Priority),
		Type:              domain.TaskType(response.TaskType),
		EstimatedDuration: response.EstimatedDuration,
		FocusScore:        response.FocusScore,
	}

	if response.DueDate != "" {
		dueDate, err := time.Parse(time.RFC3339, response.DueDate)
		if err != nil {
			// Try a bare date before giving up on the field
			dueDate, err = time.Parse("2006-01-02", response.DueDate)
		}
		if err == nil {
			fields.DueDate = &dueDate
		} else {
			n.logger.Warn("discarding unparseable due date from model response",
				"due_date", response.DueDate)
		}
	}

	return fields, nil
}
