package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusflow/focusflow-api/internal/domain"
	"github.com/focusflow/focusflow-api/internal/domain/focus"
	"github.com/focusflow/focusflow-api/internal/mocks"
	"github.com/focusflow/focusflow-api/internal/service"
)

func TestFocusPatterns(t *testing.T) {
	t.Parallel()

	handler := NewAnalyticsHandler(&mocks.MockAnalyticsService{
		Patterns: focus.PatternVector{Morning: 0.8, Afternoon: 0.5, Evening: 0.3},
	})

	req := authedRequest(http.MethodGet, "/api/analytics/focus-patterns", nil, uuid.New())
	w := httptest.NewRecorder()
	handler.FocusPatterns(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp focus.PatternVector
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.InDelta(t, 0.8, resp.Morning, 1e-9)
	assert.InDelta(t, 0.3, resp.Evening, 1e-9)
}

func TestProductivity(t *testing.T) {
	t.Parallel()

	handler := NewAnalyticsHandler(&mocks.MockAnalyticsService{
		Stats: &service.ProductivityStats{
			TotalFocusMinutes:        120,
			AverageProductivityScore: 0.75,
			CompletedTasks:           3,
			FocusSessionsCount:       4,
		},
	})

	req := authedRequest(http.MethodGet, "/api/analytics/productivity", nil, uuid.New())
	w := httptest.NewRecorder()
	handler.Productivity(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.EqualValues(t, 120, resp["total_focus_minutes_7d"])
	assert.EqualValues(t, 0.75, resp["average_productivity_score"])
	assert.EqualValues(t, 3, resp["completed_tasks_7d"])
	assert.EqualValues(t, 4, resp["focus_sessions_count"])
}

func TestAnalytics_Unauthenticated(t *testing.T) {
	t.Parallel()

	handler := NewAnalyticsHandler(&mocks.MockAnalyticsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/productivity", nil)
	w := httptest.NewRecorder()
	handler.Productivity(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptimizeSchedule(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	task := testTask(userID)
	handler := NewScheduleHandler(&mocks.MockScheduleService{
		Schedule: &service.OptimizedSchedule{
			ScheduledTasks: []*domain.Task{task},
			FocusPatterns:  &focus.PatternVector{Morning: 0.7, Afternoon: 0.5, Evening: 0.3},
			Recommendations: []string{
				"Your peak focus time appears to be in the morning (score: 0.7)",
				"Schedule deep work tasks between 9-11 AM for best results",
				"Afternoon focus: 0.5 - good for moderate complexity tasks",
				"Evening focus: 0.3 - ideal for shallow work and planning",
			},
		},
	})

	req := authedRequest(http.MethodPost, "/api/schedule/optimize", nil, userID)
	w := httptest.NewRecorder()
	handler.Optimize(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp["scheduled_tasks"], 1)
	assert.Len(t, resp["recommendations"], 4)
	assert.NotNil(t, resp["focus_patterns"])
}
