package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/myturn82/dragonj/internal/api/middleware"
	"github.com/myturn82/dragonj/internal/calendar"
	"github.com/myturn82/dragonj/internal/holiday"
	"github.com/myturn82/dragonj/internal/storage"
	"github.com/myturn82/dragonj/internal/storage/models"
)

// GridResponse is the fully annotated month view. Year and Month echo
// the request so clients can discard responses that no longer match the
// month they are displaying.
type GridResponse struct {
	Year     int                 `json:"year"`
	Month    int                 `json:"month"` // 0-indexed
	Rows     int                 `json:"rows"`
	Cells    [][]calendar.Cell   `json:"cells"`
	Bars     [][]calendar.Bar    `json:"bars"`
	Holidays map[string]string   `json:"holidays"`
}

// Grid builds the month view for the current user: date matrix, event
// index, per-week bars, and holiday overlay. Records and holidays are
// fetched concurrently; the response is only assembled once both are
// in, so the grid is never half-annotated.
func Grid(repo *storage.ScheduleRepository, holidays *holiday.Cache, region string, rows int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.CurrentUser(r)
		ctx := r.Context()

		now := time.Now()
		year := now.Year()
		month0 := int(now.Month()) - 1

		if v := r.URL.Query().Get("year"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				year = parsed
			}
		}
		if v := r.URL.Query().Get("month"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 0 || parsed > 11 {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "month must be 0..11")
				return
			}
			month0 = parsed
		}
		selected := r.URL.Query().Get("selected")
		keyword := r.URL.Query().Get("q")

		// Fetch the record snapshot and the holiday overlay in parallel.
		// The overlay degrades to an empty map on feed failure, so only
		// the record fetch can fail the request.
		type recordsResult struct {
			records []models.ScheduleRecord
			err     error
		}
		recordsCh := make(chan recordsResult, 1)
		holidaysCh := make(chan map[string]string, 1)

		go func() {
			records, err := repo.ListByOwner(ctx, user.ID)
			recordsCh <- recordsResult{records: records, err: err}
		}()
		go func() {
			holidaysCh <- holidays.Load(ctx, year, region)
		}()

		recs := <-recordsCh
		overlay := <-holidaysCh
		if recs.err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query schedules")
			return
		}

		// Bars are laid out from the filtered record set so the keyword
		// filter applies to pills as well as cell lists. Filtering keeps
		// the snapshot's slice order; bars must render in natural order.
		visible := recs.records
		if keyword != "" {
			needle := strings.ToLower(keyword)
			visible = make([]models.ScheduleRecord, 0, len(recs.records))
			for _, rec := range recs.records {
				if strings.Contains(strings.ToLower(rec.Title), needle) {
					visible = append(visible, rec)
				}
			}
		}

		idx := calendar.BuildIndex(visible)

		grid := calendar.BuildMonthGrid(year, month0, rows)
		cells := calendar.BuildCells(grid, month0, idx, overlay, now, selected)
		bars := calendar.GridBars(grid, visible)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(GridResponse{
			Year:     year,
			Month:    month0,
			Rows:     len(grid),
			Cells:    cells,
			Bars:     bars,
			Holidays: overlay,
		})
	}
}
