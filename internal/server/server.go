// Package server exposes a built pool dataset over a read-only HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	applog "github.com/spreadpool/poolsheet-go/internal/logger"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
)

// Server serves the current dataset. The dataset can be swapped while serving.
type Server struct {
	router *gin.Engine
	logger logrus.FieldLogger

	mu      sync.RWMutex
	data    poolsheet.Dataset
	players []models.Player
}

// New creates a Server for data. mode is a gin mode ("release", "debug", "test").
func New(data poolsheet.Dataset, logger logrus.FieldLogger, mode string) *Server {
	if mode != "" {
		gin.SetMode(mode)
	}
	if logger == nil {
		logger = applog.Discard()
	}
	s := &Server{
		router: gin.New(),
		logger: logger,
	}
	s.SetData(data)

	s.router.Use(gin.Recovery(), requestLogger(logger))
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.health)

	api := s.router.Group("/api")
	{
		api.GET("/weeks", s.listWeeks)
		api.GET("/weeks/:key", s.getWeek)
		api.GET("/players", s.listPlayers)
		api.GET("/players/:id", s.getPlayer)
		api.GET("/standings", s.standings)
	}
}

// SetData replaces the served dataset.
func (s *Server) SetData(data poolsheet.Dataset) {
	if data == nil {
		data = poolsheet.Dataset{}
	}
	players := poolsheet.Players(data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.players = players
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("Starting HTTP server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// WeekSummary is the list view of a week.
type WeekSummary struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	Year       int    `json:"year"`
	Week       int    `json:"week"`
	Games      int    `json:"games"`
	Players    int    `json:"players"`
	Completed  int    `json:"completed"`
	Reconciled bool   `json:"reconciled"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// health reports liveness and how many weeks are loaded.
// GET /healthz
func (s *Server) health(c *gin.Context) {
	s.mu.RLock()
	n := len(s.data)
	s.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "weeks": n})
}

// listWeeks returns week summaries ordered by year and week.
// GET /api/weeks?year=2024
func (s *Server) listWeeks(c *gin.Context) {
	year := 0
	if y := c.Query("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid year"})
			return
		}
		year = v
	}

	s.mu.RLock()
	weeks := s.data.Weeks()
	s.mu.RUnlock()

	items := make([]WeekSummary, 0, len(weeks))
	for _, w := range weeks {
		if year != 0 && w.Year != year {
			continue
		}
		completed := 0
		for _, g := range w.Games {
			if g.Completed {
				completed++
			}
		}
		items = append(items, WeekSummary{
			Key:        w.Key,
			Title:      w.Title,
			Year:       w.Year,
			Week:       w.Week,
			Games:      len(w.Games),
			Players:    len(w.PlayerPicks),
			Completed:  completed,
			Reconciled: w.Reconciled,
		})
	}
	c.JSON(http.StatusOK, items)
}

// getWeek returns one full weekly record.
// GET /api/weeks/:key
func (s *Server) getWeek(c *gin.Context) {
	s.mu.RLock()
	week, ok := s.data[c.Param("key")]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "week not found"})
		return
	}
	c.JSON(http.StatusOK, week)
}

// listPlayers returns every player with their weekly history.
// GET /api/players
func (s *Server) listPlayers(c *gin.Context) {
	s.mu.RLock()
	players := s.players
	s.mu.RUnlock()
	c.JSON(http.StatusOK, players)
}

// getPlayer returns one player.
// GET /api/players/:id
func (s *Server) getPlayer(c *gin.Context) {
	id := c.Param("id")
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.players {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, errorResponse{Error: "player not found"})
}

// standings returns the standings block of the latest week.
// GET /api/standings
func (s *Server) standings(c *gin.Context) {
	s.mu.RLock()
	latest := s.data.Latest()
	s.mu.RUnlock()
	if latest == nil {
		c.JSON(http.StatusOK, []models.PlayerStanding{})
		return
	}
	c.JSON(http.StatusOK, latest.Standings)
}

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start),
			"client_ip": c.ClientIP(),
		})
		if c.Request.URL.RawQuery != "" {
			entry = entry.WithField("query", c.Request.URL.RawQuery)
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("Internal Server Error")
		case status >= 400:
			entry.Warn("Client Error")
		default:
			entry.Debug("Request completed")
		}
	}
}
