// Package handlers provides HTTP request handlers for the API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/myturn82/dragonj/internal/storage"
	"github.com/myturn82/dragonj/internal/websocket"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	DBConnected bool   `json:"db_connected"`
}

// HealthCheck returns a handler that performs a health check.
func HealthCheck(db *storage.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbConnected := db.Ping() == nil

		status := "healthy"
		if !dbConnected {
			status = "degraded"
		}

		response := HealthResponse{
			Status:      status,
			DBConnected: dbConnected,
		}

		w.Header().Set("Content-Type", "application/json")
		if status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(response)
	}
}

// StatusResponse represents the system status response.
type StatusResponse struct {
	DBConnected      bool `json:"db_connected"`
	UsersCount       int  `json:"users_count"`
	SchedulesCount   int  `json:"schedules_count"`
	ActiveSessions   int  `json:"active_sessions"`
	ConnectedClients int  `json:"connected_clients"`
}

// Status returns a handler that provides system status information.
func Status(db *storage.DB, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var usersCount int
		db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&usersCount)

		var schedulesCount int
		db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schedule_records").Scan(&schedulesCount)

		var activeSessions int
		db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE expires_at > datetime('now')").Scan(&activeSessions)

		response := StatusResponse{
			DBConnected:      db.Ping() == nil,
			UsersCount:       usersCount,
			SchedulesCount:   schedulesCount,
			ActiveSessions:   activeSessions,
			ConnectedClients: hub.ClientCount(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
