package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/focusflow/focusflow-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// User carries the authenticated user's public profile
	User UserResponse `json:"user"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse builds the public view of the given user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// CreateTaskRequest defines the payload for task creation. Only the title is
// required; free-text titles are normalized into the structured fields.
type CreateTaskRequest struct {
	Title             string     `json:"title"              validate:"required,min=1,max=500"`
	Description       string     `json:"description"        validate:"max=2000"`
	Priority          string     `json:"priority"           validate:"omitempty,oneof=low medium high urgent"`
	Type              string     `json:"task_type"          validate:"omitempty,oneof=deep shallow"`
	EstimatedDuration int        `json:"estimated_duration" validate:"omitempty,gte=1,lte=1440"`
	DueDate           *time.Time `json:"due_date"`
	FocusScore        *float64   `json:"focus_score"        validate:"omitempty,gte=0,lte=1"`
}

// UpdateTaskRequest defines a partial task update. Absent fields are left
// unchanged.
type UpdateTaskRequest struct {
	Title             *string    `json:"title"              validate:"omitempty,min=1,max=500"`
	Description       *string    `json:"description"        validate:"omitempty,max=2000"`
	Priority          *string    `json:"priority"           validate:"omitempty,oneof=low medium high urgent"`
	Type              *string    `json:"task_type"          validate:"omitempty,oneof=deep shallow"`
	Status            *string    `json:"status"             validate:"omitempty,oneof=pending in_progress completed"`
	EstimatedDuration *int       `json:"estimated_duration" validate:"omitempty,gte=1,lte=1440"`
	ActualDuration    *int       `json:"actual_duration"    validate:"omitempty,gte=0,lte=1440"`
	DueDate           *time.Time `json:"due_date"`
	ScheduledStart    *time.Time `json:"scheduled_start"`
	FocusScore        *float64   `json:"focus_score"        validate:"omitempty,gte=0,lte=1"`
}

// TaskListResponse wraps the ranked task list.
type TaskListResponse struct {
	Tasks []*domain.Task `json:"tasks"`
	Count int            `json:"count"`
}

// StartSessionRequest defines the payload for starting a focus session.
type StartSessionRequest struct {
	TaskID *uuid.UUID `json:"task_id"`
}

// CompleteSessionRequest defines the payload for completing a focus session.
type CompleteSessionRequest struct {
	DurationMinutes   int     `json:"duration_minutes"   validate:"required,gte=1,lte=1440"`
	ProductivityScore float64 `json:"productivity_score" validate:"gte=0,lte=1"`
}
