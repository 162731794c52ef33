package gemini

// promptData represents the data passed to the prompt template
type promptData struct {
	TaskText string
	Today    string
}

// responseSchema represents the expected structure of the normalization
// response from the Gemini API.
type responseSchema struct {
	// Title is the cleaned-up task title
	Title string `json:"title"`

	// Description carries any detail extracted from the input text
	Description string `json:"description,omitempty"`

	// Priority is one of low, medium, high, urgent
	Priority string `json:"priority"`

	// TaskType is one of deep, shallow
	TaskType string `json:"task_type"`

	// EstimatedDuration is the estimated effort in minutes
	EstimatedDuration int `json:"estimated_duration"`

	// FocusScore is the required concentration level in [0,1]
	FocusScore float64 `json:"focus_score"`

	// DueDate is an optional RFC 3339 timestamp parsed from the text
	DueDate string `json:"due_date,omitempty"`
}
