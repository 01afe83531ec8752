package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scoreboardJSON = `{
  "events": [
    {"id": "1", "name": "Dallas Cowboys at Philadelphia Eagles", "competitions": [{
      "status": {"type": {"completed": true}},
      "competitors": [
        {"homeAway": "home", "score": "24", "team": {"abbreviation": "PHI"}},
        {"homeAway": "away", "score": "20", "team": {"abbreviation": "DAL"}}
      ]
    }]},
    {"id": "2", "name": "Kansas City Chiefs at Denver Broncos", "competitions": [{
      "status": {"type": {"completed": false}},
      "competitors": [
        {"homeAway": "home", "score": "7", "team": {"abbreviation": "DEN"}},
        {"homeAway": "away", "score": "3", "team": {"abbreviation": "KC"}}
      ]
    }]}
  ]
}`

func scoreboardServer(t *testing.T, status int, hits *int32, lastQuery *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if lastQuery != nil {
			*lastQuery = r.URL.RawQuery
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(scoreboardJSON))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTeamScores(t *testing.T) {
	var hits int32
	var query string
	srv := scoreboardServer(t, http.StatusOK, &hits, &query)

	c := NewClient(Config{BaseURL: srv.URL}, nil, nil)
	scores, err := c.TeamScores(context.Background(), 2024, 5)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"PHI": 24, "DAL": 20}, scores)
	assert.Equal(t, "week=5", query)
}

func TestTeamScoresCached(t *testing.T) {
	var hits int32
	srv := scoreboardServer(t, http.StatusOK, &hits, nil)

	c := NewClient(Config{BaseURL: srv.URL}, NewMemoryCache(), nil)
	for i := 0; i < 3; i++ {
		_, err := c.TeamScores(context.Background(), 2024, 5)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	_, err := c.TeamScores(context.Background(), 2024, 6)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestTeamScoresSeasonParams(t *testing.T) {
	var hits int32
	var query string
	srv := scoreboardServer(t, http.StatusOK, &hits, &query)

	c := NewClient(Config{BaseURL: srv.URL, Season: true}, nil, nil)
	_, err := c.TeamScores(context.Background(), 2023, 12)
	require.NoError(t, err)
	assert.Equal(t, "dates=2023&seasontype=2&week=12", query)
}

func TestTeamScoresUnavailable(t *testing.T) {
	var hits int32
	srv := scoreboardServer(t, http.StatusInternalServerError, &hits, nil)

	c := NewClient(Config{BaseURL: srv.URL, TripAfter: 2}, nil, nil)
	for i := 0; i < 4; i++ {
		_, err := c.TeamScores(context.Background(), 2024, 5)
		assert.ErrorIs(t, err, ErrScoreFeedUnavailable)
	}
	// The breaker opens after two failures and stops calling the feed.
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestTeamScoresUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Config{BaseURL: url, Timeout: time.Second}, nil, nil)
	_, err := c.TeamScores(context.Background(), 2024, 5)
	assert.ErrorIs(t, err, ErrScoreFeedUnavailable)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	now := time.Date(2024, 10, 6, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", map[string]int{"DAL": 20}, time.Hour))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 20, got["DAL"])

	got["DAL"] = 0
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, 20, again["DAL"])

	now = now.Add(2 * time.Hour)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCacheFailureFallsThrough(t *testing.T) {
	var hits int32
	srv := scoreboardServer(t, http.StatusOK, &hits, nil)

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewClient(Config{BaseURL: srv.URL}, NewRedisCache(rdb, "test:"), nil)
	scores, err := c.TeamScores(context.Background(), 2024, 5)
	require.NoError(t, err)
	assert.Equal(t, 24, scores["PHI"])
}
