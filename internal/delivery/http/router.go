package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"citybeat/internal/delivery/http/controllers"
	"citybeat/internal/metrics"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(events *controllers.EventsController, users *controllers.UserController, contact *controllers.ContactController) *http.ServeMux {
	mux := http.NewServeMux()

	// Catalog (read-only, lock-free)
	mux.HandleFunc("GET /api/events", events.List)
	mux.HandleFunc("GET /api/events/categories", events.Categories)
	mux.HandleFunc("GET /api/events/cities", events.Cities)

	// User interaction store
	mux.HandleFunc("GET /api/user/{user}", users.Summary)
	mux.HandleFunc("GET /api/user/{user}/actions", users.Actions)
	mux.HandleFunc("GET /api/user/{user}/notifications", users.Notifications)
	mux.HandleFunc("POST /api/user/{user}/favorite", users.ToggleFavorite)
	mux.HandleFunc("POST /api/user/{user}/save", users.ToggleSave)
	mux.HandleFunc("POST /api/user/{user}/reserve", users.Reserve)
	mux.HandleFunc("POST /api/user/{user}/notifications/markread", users.MarkNotificationRead)
	mux.HandleFunc("GET /api/user/{user}/profile", users.GetProfile)
	mux.HandleFunc("POST /api/user/{user}/profile", users.SetProfile)
	mux.HandleFunc("POST /api/user/{user}/settings/notifications", users.SetNotificationsEnabled)
	mux.HandleFunc("POST /api/user/{user}/change-password", users.ChangePassword)

	// Contact
	mux.HandleFunc("POST /api/contact", contact.Submit)

	// Observability and docs
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/events", http.StatusFound)
	})

	return mux
}
