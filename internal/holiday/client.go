// Package holiday loads public-holiday annotations from external feeds
// and caches them per (year, region). Holidays are read-only overlay
// data: a feed failure degrades to an empty map and the grid simply
// renders without annotations.
package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client fetches holidays from a Nager.Date-style public holiday API
// and, optionally, a market-calendar feed that reports closed days.
type Client struct {
	httpClient *http.Client

	// baseURL is the public-holiday API root, e.g. "https://date.nager.at".
	baseURL string

	// marketURL, when set, points at a feed returning {date, open, name}
	// entries where open == false marks a holiday.
	marketURL string
}

// NewClient creates a holiday feed client.
func NewClient(baseURL, marketURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:   baseURL,
		marketURL: marketURL,
	}
}

// feedEntry is one item of the public-holiday response.
type feedEntry struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// marketEntry is one item of the market-calendar response.
type marketEntry struct {
	Date string `json:"date"`
	Open bool   `json:"open"`
	Name string `json:"name"`
}

// Load fetches the public holidays for one year and region and returns
// them keyed by ISO date for O(1) lookup during grid rendering.
func (c *Client) Load(ctx context.Context, year int, region string) (map[string]string, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, region)

	var entries []feedEntry
	if err := c.getJSON(ctx, url, &entries); err != nil {
		return nil, err
	}

	holidays := make(map[string]string, len(entries))
	for _, e := range entries {
		name := e.LocalName
		if name == "" {
			name = e.Name
		}
		if key, ok := isoDateKey(e.Date); ok {
			holidays[key] = name
		}
	}

	return holidays, nil
}

// LoadMarket fetches the market-calendar feed for one year. Entries with
// open == false are holidays. Returns an empty map when no market feed
// is configured.
func (c *Client) LoadMarket(ctx context.Context, year int) (map[string]string, error) {
	if c.marketURL == "" {
		return map[string]string{}, nil
	}

	url := fmt.Sprintf("%s?year=%d", c.marketURL, year)

	var entries []marketEntry
	if err := c.getJSON(ctx, url, &entries); err != nil {
		return nil, err
	}

	holidays := make(map[string]string)
	for _, e := range entries {
		if e.Open {
			continue
		}
		if key, ok := isoDateKey(e.Date); ok {
			holidays[key] = e.Name
		}
	}

	return holidays, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building holiday request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("holiday feed returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding holiday feed: %w", err)
	}

	return nil
}

// isoDateKey reduces a feed date to YYYY-MM-DD. Some feeds append a time
// component ("2024-01-01T00:00:00.000Z"); only the date part is kept.
func isoDateKey(value string) (string, bool) {
	if len(value) < 10 {
		return "", false
	}
	key := value[:10]
	if _, err := time.Parse("2006-01-02", key); err != nil {
		return "", false
	}
	return key, true
}
