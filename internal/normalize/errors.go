package normalize

import "errors"

// Common errors returned by normalizer implementations
var (
	// ErrEmptyInput is returned when the task text to normalize is empty
	ErrEmptyInput = errors.New("task input cannot be empty")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during task normalization")

	// ErrInvalidConfig is returned when the normalizer configuration is invalid
	ErrInvalidConfig = errors.New("invalid normalizer configuration")
)
