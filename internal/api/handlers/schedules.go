package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/myturn82/dragonj/internal/api/middleware"
	"github.com/myturn82/dragonj/internal/calendar"
	"github.com/myturn82/dragonj/internal/ics"
	"github.com/myturn82/dragonj/internal/storage"
	"github.com/myturn82/dragonj/internal/storage/models"
	"github.com/myturn82/dragonj/internal/websocket"
)

// ListSchedules returns every record owned by the current user, in the
// record store's natural order. Clients rebuild their event index from
// this full snapshot after every mutation.
func ListSchedules(repo *storage.ScheduleRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		records, err := repo.ListByOwner(r.Context(), user.ID)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query schedules")
			return
		}
		if records == nil {
			records = []models.ScheduleRecord{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}
}

// CreateSchedules expands a template into concrete records and persists
// them in one batch. Validation failures reject the whole request
// before anything is written.
func CreateSchedules(repo *storage.ScheduleRepository, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		var tpl calendar.Template
		if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		expanded, err := calendar.Expand(tpl)
		if err != nil {
			var verr *calendar.ValidationError
			if errors.As(err, &verr) {
				middleware.WriteErrorWithDetails(w, http.StatusBadRequest, middleware.ErrValidation, "Schedule rejected", verr.Error())
				return
			}
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to expand schedule")
			return
		}

		created, err := repo.InsertMany(r.Context(), user.ID, expanded)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to save schedules")
			return
		}

		if hub != nil {
			websocket.NewEventBroadcaster(hub).BroadcastSchedulesChanged(user.ID, "created", len(created))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

// UpdateScheduleRequest overwrites the mutable fields of one record.
type UpdateScheduleRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Color     string `json:"color"`
}

// UpdateSchedule overwrites a record's fields by id and owner.
func UpdateSchedule(repo *storage.ScheduleRepository, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		id := mux.Vars(r)["id"]

		var req UpdateScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		// Reuse template validation: the same rules gate updates.
		tpl := calendar.Template{
			Title:     req.Title,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Color:     req.Color,
		}
		if err := tpl.Validate(); err != nil {
			middleware.WriteErrorWithDetails(w, http.StatusBadRequest, middleware.ErrValidation, "Schedule rejected", err.Error())
			return
		}

		existing, err := repo.GetByID(r.Context(), id, user.ID)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query schedule")
			return
		}
		if existing == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Schedule not found")
			return
		}

		existing.Title = strings.TrimSpace(req.Title)
		existing.StartDate = req.StartDate
		existing.EndDate = req.EndDate
		existing.StartTime = req.StartTime
		existing.EndTime = req.EndTime
		if req.Color != "" {
			existing.Color = req.Color
		}

		if err := repo.Update(r.Context(), existing); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to update schedule")
			return
		}

		if hub != nil {
			websocket.NewEventBroadcaster(hub).BroadcastSchedulesChanged(user.ID, "updated", 1)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(existing)
	}
}

// MoveScheduleRequest is the drag-to-reschedule input: the new start
// date for the record. The span in days is preserved.
type MoveScheduleRequest struct {
	StartDate string `json:"start_date"`
}

// MoveSchedule shifts a record to a new start date, keeping its length.
func MoveSchedule(repo *storage.ScheduleRepository, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		id := mux.Vars(r)["id"]

		var req MoveScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		newStart, err := time.Parse(models.ISODate, req.StartDate)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "start_date must be a YYYY-MM-DD date")
			return
		}

		existing, err := repo.GetByID(r.Context(), id, user.ID)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query schedule")
			return
		}
		if existing == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Schedule not found")
			return
		}

		span := existing.SpanDays() - 1
		existing.StartDate = calendar.DateKey(newStart)
		existing.EndDate = calendar.DateKey(newStart.AddDate(0, 0, span))

		if err := repo.Update(r.Context(), existing); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to move schedule")
			return
		}

		if hub != nil {
			websocket.NewEventBroadcaster(hub).BroadcastSchedulesChanged(user.ID, "updated", 1)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(existing)
	}
}

// DeleteSchedule removes a record by id and owner.
func DeleteSchedule(repo *storage.ScheduleRepository, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		id := mux.Vars(r)["id"]

		existing, err := repo.GetByID(r.Context(), id, user.ID)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query schedule")
			return
		}
		if existing == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Schedule not found")
			return
		}

		if err := repo.Delete(r.Context(), id, user.ID); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to delete schedule")
			return
		}

		if hub != nil {
			websocket.NewEventBroadcaster(hub).BroadcastSchedulesChanged(user.ID, "deleted", 1)
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ImportResponse reports how many entries an uploaded calendar file
// produced. A malformed file imports zero entries; it is not an error.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ImportSchedules parses an uploaded .ics payload and persists one
// record per extracted entry.
func ImportSchedules(repo *storage.ScheduleRepository, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)

		entries, err := ics.Parse(r.Body)
		if err != nil {
			// Degrade to zero imports rather than failing the request.
			entries = nil
		}

		var records []models.ScheduleRecord
		for _, e := range entries {
			expanded, err := calendar.Expand(calendar.Template{
				Title:     e.Title,
				StartDate: e.StartDate,
				EndDate:   e.EndDate,
				Repeat:    calendar.RepeatNone,
			})
			if err != nil {
				continue
			}
			records = append(records, expanded...)
		}

		if len(records) > 0 {
			if _, err := repo.InsertMany(r.Context(), user.ID, records); err != nil {
				middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to save imported schedules")
				return
			}
			if hub != nil {
				websocket.NewEventBroadcaster(hub).BroadcastSchedulesChanged(user.ID, "imported", len(records))
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ImportResponse{Imported: len(records)})
	}
}
