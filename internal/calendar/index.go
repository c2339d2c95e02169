package calendar

import (
	"strings"

	"github.com/myturn82/dragonj/internal/storage/models"
)

// Index maps ISO dates (YYYY-MM-DD) to the schedule records active on
// that date. A record spanning multiple days appears in every bucket of
// its inclusive range. The index carries no state of its own: it is
// rebuilt in full from the current record snapshot after every mutation,
// never patched incrementally.
type Index map[string][]models.ScheduleRecord

// BuildIndex constructs the event index from a record snapshot. Bucket
// order follows the input order, which is the record store's natural
// return order; no additional sort is imposed.
func BuildIndex(records []models.ScheduleRecord) Index {
	idx := make(Index)

	for _, rec := range records {
		start := rec.Start()
		end := rec.End()
		if start.IsZero() || end.IsZero() || end.Before(start) {
			continue
		}

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			key := DateKey(day)
			idx[key] = append(idx[key], rec)
		}
	}

	return idx
}

// Filter returns a derived index where every bucket keeps only records
// whose title contains keyword, case-insensitively. An empty keyword
// returns the receiver unchanged.
func (idx Index) Filter(keyword string) Index {
	if keyword == "" {
		return idx
	}

	needle := strings.ToLower(keyword)
	filtered := make(Index)

	for key, bucket := range idx {
		var kept []models.ScheduleRecord
		for _, rec := range bucket {
			if strings.Contains(strings.ToLower(rec.Title), needle) {
				kept = append(kept, rec)
			}
		}
		if len(kept) > 0 {
			filtered[key] = kept
		}
	}

	return filtered
}

// On returns the bucket for one date, or nil when nothing is scheduled.
func (idx Index) On(key string) []models.ScheduleRecord {
	return idx[key]
}
