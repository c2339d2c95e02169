package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/myturn82/dragonj/internal/api/middleware"
	"github.com/myturn82/dragonj/internal/holiday"
)

// HolidaysResponse maps ISO dates to holiday labels for one year.
type HolidaysResponse struct {
	Year     int               `json:"year"`
	Region   string            `json:"region"`
	Holidays map[string]string `json:"holidays"`
}

// Holidays returns the holiday overlay for a year. The year defaults to
// the current year; the region defaults to the server's configured one.
func Holidays(cache *holiday.Cache, defaultRegion string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year := time.Now().Year()
		if v := r.URL.Query().Get("year"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "year must be an integer")
				return
			}
			year = parsed
		}

		region := r.URL.Query().Get("region")
		if region == "" {
			region = defaultRegion
		}

		overlay := cache.Load(r.Context(), year, region)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(HolidaysResponse{
			Year:     year,
			Region:   region,
			Holidays: overlay,
		})
	}
}
