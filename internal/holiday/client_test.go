package holiday

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/PublicHolidays/2024/US", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"date":"2024-07-04","localName":"Independence Day","name":"Independence Day"},
			{"date":"2024-12-25","localName":"","name":"Christmas Day"}
		]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	holidays, err := client.Load(context.Background(), 2024, "US")
	require.NoError(t, err)

	assert.Equal(t, "Independence Day", holidays["2024-07-04"])
	assert.Equal(t, "Christmas Day", holidays["2024-12-25"], "falls back to name when localName is empty")
}

func TestClientLoadFeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.Load(context.Background(), 2024, "US")
	assert.Error(t, err)
}

func TestClientLoadMarket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"date":"2024-01-01T00:00:00.000Z","open":false,"name":"New Year's Day"},
			{"date":"2024-01-02T00:00:00.000Z","open":true,"name":"Trading day"}
		]`)
	}))
	defer srv.Close()

	client := NewClient("", srv.URL+"/market")
	holidays, err := client.LoadMarket(context.Background(), 2024)
	require.NoError(t, err)

	assert.Equal(t, "New Year's Day", holidays["2024-01-01"])
	_, tradingDay := holidays["2024-01-02"]
	assert.False(t, tradingDay, "open days are not holidays")
}

func TestClientLoadMarketUnconfigured(t *testing.T) {
	client := NewClient("", "")
	holidays, err := client.LoadMarket(context.Background(), 2024)
	require.NoError(t, err)
	assert.Empty(t, holidays)
}

func TestCacheMemoizesPerYearRegion(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `[{"date":"2024-07-04","localName":"Independence Day"}]`)
	}))
	defer srv.Close()

	cache := NewCache(NewClient(srv.URL, ""), 4)

	first := cache.Load(context.Background(), 2024, "US")
	second := cache.Load(context.Background(), 2024, "US")

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	cache.Load(context.Background(), 2024, "KR")
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestCacheDegradesToEmptyOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cache := NewCache(NewClient(srv.URL, ""), 4)
	holidays := cache.Load(context.Background(), 2024, "US")

	assert.NotNil(t, holidays)
	assert.Empty(t, holidays)
	assert.Zero(t, cache.Len(), "failures are not cached")
}

func TestCacheEvictsOldestBeyondCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	cache := NewCache(NewClient(srv.URL, ""), 2)

	for year := 2020; year <= 2025; year++ {
		cache.Load(context.Background(), year, "US")
	}

	assert.Equal(t, 2, cache.Len())
}
