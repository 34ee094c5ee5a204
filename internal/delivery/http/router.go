package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "demoday/docs"
	"demoday/internal/delivery/http/controllers"
	"demoday/internal/delivery/http/middleware"
	"demoday/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	liveController *controllers.LiveController,
	submissionController *controllers.SubmissionController,
	authController *controllers.AuthController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)

	// Public
	mux.HandleFunc("GET /events", eventController.All)
	mux.HandleFunc("GET /events/{eventID}", eventController.Get)
	mux.HandleFunc("GET /event/current", liveController.GetCurrent)
	mux.HandleFunc("GET /events/{eventID}/submission", submissionController.Status)
	mux.HandleFunc("POST /events/{eventID}/demos", submissionController.Submit)

	// Admin
	mux.HandleFunc("GET /admin/events", requireAuth(eventController.AllAdmin))
	mux.HandleFunc("PUT /admin/events", requireAuth(eventController.Upsert))
	mux.HandleFunc("GET /admin/events/{eventID}", requireAuth(eventController.GetAdmin))
	mux.HandleFunc("DELETE /admin/events/{eventID}", requireAuth(eventController.Delete))
	mux.HandleFunc("PUT /admin/event/current", requireAuth(liveController.UpdateCurrent))
	mux.HandleFunc("PATCH /admin/event/current/state", requireAuth(liveController.UpdateCurrentState))

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Observability
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
