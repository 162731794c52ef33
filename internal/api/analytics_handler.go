package api

import (
	"net/http"

	"github.com/focusflow/focusflow-api/internal/service"
)

// AnalyticsHandler handles read-only analytics API requests.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler with the given dependencies.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// FocusPatterns handles GET /analytics/focus-patterns.
func (h *AnalyticsHandler) FocusPatterns(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	patterns, err := h.analyticsService.FocusPatterns(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, patterns)
}

// Productivity handles GET /analytics/productivity.
func (h *AnalyticsHandler) Productivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.analyticsService.Productivity(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, stats)
}
