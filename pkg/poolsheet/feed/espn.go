// Package feed fetches final NFL scores from the ESPN scoreboard API.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// DefaultScoreboardURL is the public ESPN NFL scoreboard endpoint.
const DefaultScoreboardURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"

// DefaultCacheTTL is how long a fetched scoreboard is reused.
const DefaultCacheTTL = 4 * time.Hour

// ErrScoreFeedUnavailable wraps every failure to obtain scores from the feed.
var ErrScoreFeedUnavailable = errors.New("score feed unavailable")

// Config configures a Client. Zero values select the defaults.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	CacheTTL  time.Duration
	RateLimit time.Duration
	// TripAfter is the number of consecutive failures that opens the breaker.
	TripAfter uint32
	// Season adds dates and seasontype parameters when the week's year is known.
	Season bool
}

// Client is a rate-limited, circuit-protected scoreboard client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	season     bool
	logger     logrus.FieldLogger
}

// NewClient creates a Client. A nil cache uses a MemoryCache.
func NewClient(cfg Config, cache Cache, logger logrus.FieldLogger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultScoreboardURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.TripAfter == 0 {
		cfg.TripAfter = 5
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Every(cfg.RateLimit)
	}

	tripAfter := cfg.TripAfter
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "espn",
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	})

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
		limiter:    rate.NewLimiter(limit, 1),
		breaker:    breaker,
		season:     cfg.Season,
		logger:     logger,
	}
}

type scoreboardResponse struct {
	Events []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Competitions []struct {
			Status struct {
				Type struct {
					Completed bool `json:"completed"`
				} `json:"type"`
			} `json:"status"`
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Score    string `json:"score"`
				Team     struct {
					Abbreviation string `json:"abbreviation"`
				} `json:"team"`
			} `json:"competitors"`
		} `json:"competitions"`
	} `json:"events"`
}

// TeamScores returns the final score of every team whose game in the given
// week is completed, keyed by ESPN abbreviation.
func (c *Client) TeamScores(ctx context.Context, year, week int) (map[string]int, error) {
	key := fmt.Sprintf("espn:scoreboard:%d:%d", year, week)
	if scores, err := c.cache.Get(ctx, key); err == nil {
		return scores, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		c.logger.WithError(err).Warn("Score cache read failed")
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, year, week)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoreFeedUnavailable, err)
	}
	scores := res.(map[string]int)

	if err := c.cache.Set(ctx, key, scores, c.cacheTTL); err != nil {
		c.logger.WithError(err).Warn("Score cache write failed")
	}
	return scores, nil
}

func (c *Client) scoreboardURL(year, week int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	if week > 0 {
		q.Set("week", strconv.Itoa(week))
	}
	if c.season && year > 0 {
		q.Set("dates", strconv.Itoa(year))
		q.Set("seasontype", "2")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) fetch(ctx context.Context, year, week int) (map[string]int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint, err := c.scoreboardURL(year, week)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{"year": year, "week": week}).Debug("Fetching scoreboard")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scoreboard returned status %d", resp.StatusCode)
	}

	var board scoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("failed to decode scoreboard: %w", err)
	}
	return board.finalScores(), nil
}

func (b *scoreboardResponse) finalScores() map[string]int {
	scores := make(map[string]int)
	for _, event := range b.Events {
		for _, comp := range event.Competitions {
			if !comp.Status.Type.Completed {
				continue
			}
			for _, team := range comp.Competitors {
				abbr := strings.ToUpper(strings.TrimSpace(team.Team.Abbreviation))
				score, err := strconv.Atoi(strings.TrimSpace(team.Score))
				if abbr == "" || err != nil {
					continue
				}
				scores[abbr] = score
			}
		}
	}
	return scores
}
