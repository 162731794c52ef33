package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/focusflow/focusflow-api/internal/api"
	apiMiddleware "github.com/focusflow/focusflow-api/internal/api/middleware"
	"github.com/focusflow/focusflow-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	corsOptions := cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Session-ID"},
		AllowCredentials: true,
	}
	if len(corsOptions.AllowedOrigins) == 0 {
		corsOptions.AllowedOrigins = []string{"*"}
		corsOptions.AllowCredentials = false
	}
	r.Use(cors.New(corsOptions).Handler)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	taskHandler := api.NewTaskHandler(app.taskService)
	sessionHandler := api.NewSessionHandler(app.sessionService)
	analyticsHandler := api.NewAnalyticsHandler(app.analyticsService)
	scheduleHandler := api.NewScheduleHandler(app.scheduleService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)
		r.Post("/auth/google/session", authHandler.ProviderSession)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)
			r.Post("/auth/logout", authHandler.Logout)

			// Task endpoints
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks", taskHandler.ListTasks)
			r.Get("/tasks/{taskID}", taskHandler.GetTask)
			r.Put("/tasks/{taskID}", taskHandler.UpdateTask)
			r.Delete("/tasks/{taskID}", taskHandler.DeleteTask)

			// Focus session endpoints
			r.Post("/focus-sessions", sessionHandler.StartSession)
			r.Get("/focus-sessions/{sessionID}", sessionHandler.GetSession)
			r.Put("/focus-sessions/{sessionID}/complete", sessionHandler.CompleteSession)

			// Analytics endpoints
			r.Get("/analytics/focus-patterns", analyticsHandler.FocusPatterns)
			r.Get("/analytics/productivity", analyticsHandler.Productivity)

			// Schedule optimization
			r.Post("/schedule/optimize", scheduleHandler.Optimize)
		})
	})

	// Health check endpoint; clients parse the JSON body, not just the status
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	return r
}
