// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/myturn82/dragonj/internal/api/handlers"
	"github.com/myturn82/dragonj/internal/api/middleware"
	"github.com/myturn82/dragonj/internal/auth"
	"github.com/myturn82/dragonj/internal/config"
	"github.com/myturn82/dragonj/internal/holiday"
	"github.com/myturn82/dragonj/internal/storage"
	"github.com/myturn82/dragonj/internal/websocket"
)

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(
	cfg *config.Config,
	db *storage.DB,
	hub *websocket.Hub,
	authSvc *auth.Service,
	schedules *storage.ScheduleRepository,
	holidays *holiday.Cache,
) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	// API subrouter
	api := r.PathPrefix("/api").Subrouter()

	// Health and status endpoints
	api.HandleFunc("/health", handlers.HealthCheck(db)).Methods("GET")
	api.HandleFunc("/status", handlers.Status(db, hub)).Methods("GET")

	// Auth endpoints
	api.HandleFunc("/auth/signup", handlers.SignUp(authSvc)).Methods("POST")
	api.HandleFunc("/auth/signin", handlers.SignIn(authSvc)).Methods("POST")
	api.HandleFunc("/auth/signout", handlers.SignOut(authSvc)).Methods("POST")

	// Everything below requires a valid session token.
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.RequireAuth(authSvc))

	authed.HandleFunc("/auth/me", handlers.Me()).Methods("GET")

	// Schedule endpoints
	authed.HandleFunc("/schedules", handlers.ListSchedules(schedules)).Methods("GET")
	authed.HandleFunc("/schedules", handlers.CreateSchedules(schedules, hub)).Methods("POST")
	authed.HandleFunc("/schedules/import", handlers.ImportSchedules(schedules, hub)).Methods("POST")
	authed.HandleFunc("/schedules/{id}", handlers.UpdateSchedule(schedules, hub)).Methods("PUT")
	authed.HandleFunc("/schedules/{id}/move", handlers.MoveSchedule(schedules, hub)).Methods("PATCH")
	authed.HandleFunc("/schedules/{id}", handlers.DeleteSchedule(schedules, hub)).Methods("DELETE")

	// Month grid and holiday overlay. Holidays are public overlay data.
	authed.HandleFunc("/grid", handlers.Grid(schedules, holidays, cfg.HolidayRegion, cfg.GridRows)).Methods("GET")
	api.HandleFunc("/holidays", handlers.Holidays(holidays, cfg.HolidayRegion)).Methods("GET")

	// WebSocket change feed
	authed.HandleFunc("/ws", handlers.WebSocketUpgrade(hub)).Methods("GET")

	// Serve static frontend files
	if cfg.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
