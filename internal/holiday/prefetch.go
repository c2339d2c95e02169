package holiday

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/myturn82/dragonj/internal/websocket"
)

// Prefetcher keeps the holiday cache warm for the years users are most
// likely to view: the current year and the next. It runs on a cron
// schedule so grid renders rarely pay the feed round-trip.
type Prefetcher struct {
	cron   *cron.Cron
	cache  *Cache
	region string
	hub    *websocket.Hub
}

// NewPrefetcher creates a prefetcher for the given region. hub may be
// nil; when set, connected clients are told about refreshed overlays.
func NewPrefetcher(cache *Cache, region string, hub *websocket.Hub) *Prefetcher {
	return &Prefetcher{
		cron:   cron.New(),
		cache:  cache,
		region: region,
		hub:    hub,
	}
}

// Start warms the cache once immediately, then refreshes twice a day.
func (p *Prefetcher) Start() {
	p.refresh()

	if _, err := p.cron.AddFunc("@every 12h", p.refresh); err != nil {
		log.Printf("Failed to schedule holiday prefetch: %v", err)
		return
	}
	p.cron.Start()
	log.Printf("Holiday prefetcher started for region %s", p.region)
}

// Stop gracefully shuts down the prefetcher.
func (p *Prefetcher) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	log.Println("Holiday prefetcher stopped")
}

func (p *Prefetcher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	year := time.Now().Year()
	for _, y := range []int{year, year + 1} {
		if err := p.cache.Refresh(ctx, y, p.region); err != nil {
			log.Printf("Holiday prefetch failed for %d/%s: %v", y, p.region, err)
			continue
		}
		if p.hub != nil {
			websocket.NewEventBroadcaster(p.hub).BroadcastHolidaysUpdated(y, p.region)
		}
	}
}
