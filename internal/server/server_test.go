package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWeek(year, week int, kenPoints float64) *models.WeeklyPoolRecord {
	w := &models.WeeklyPoolRecord{
		Type:  models.RecordType,
		Key:   models.WeekKey(year, week),
		Title: "Pool Week",
		Year:  year,
		Week:  week,
		Games: []models.GameResult{
			{ID: "g1", FavoriteTeam: "BOYS", UnderdogTeam: "PHIL", Spread: -3.5},
			{ID: "g2", FavoriteTeam: "G.B.", UnderdogTeam: "CHI", Spread: -7},
		},
		Standings: []models.PlayerStanding{
			{ID: "ken", Name: "Ken", Position: "1", Points: kenPoints},
			{ID: "hollywood", Name: "Hollywood!", Position: "2", Points: 10},
		},
		PlayerPicks: []models.PlayerPick{
			{ID: "ken", Name: "Ken", Picks: []models.Pick{{Team: "PHIL", ThreePoint: true}, {Team: "G.B."}}},
			{ID: "hollywood", Name: "Hollywood!", Picks: []models.Pick{{Team: "BOYS"}, {Team: "CHI"}}},
		},
	}
	w.Games[0].SetScores(20, 24)
	scoring.LinkPicks(w)
	scoring.ScorePicks(w)
	return w
}

func testServer() *Server {
	gin.SetMode(gin.TestMode)
	data := poolsheet.Dataset{}
	for _, w := range []*models.WeeklyPoolRecord{testWeek(2024, 5, 40), testWeek(2023, 17, 12)} {
		data[w.Key] = w
	}
	return New(data, nil, "")
}

func get(t *testing.T, s *Server, path string, v any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if v != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
	}
	return w.Code
}

func TestHealth(t *testing.T) {
	var resp map[string]any
	assert.Equal(t, http.StatusOK, get(t, testServer(), "/healthz", &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, float64(2), resp["weeks"])
}

func TestListWeeks(t *testing.T) {
	s := testServer()

	var weeks []WeekSummary
	require.Equal(t, http.StatusOK, get(t, s, "/api/weeks", &weeks))
	require.Len(t, weeks, 2)
	assert.Equal(t, "2023_week_17", weeks[0].Key)
	assert.Equal(t, 2, weeks[1].Games)
	assert.Equal(t, 1, weeks[1].Completed)

	weeks = nil
	require.Equal(t, http.StatusOK, get(t, s, "/api/weeks?year=2024", &weeks))
	require.Len(t, weeks, 1)
	assert.Equal(t, 5, weeks[0].Week)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/weeks?year=abc", nil))
}

func TestGetWeek(t *testing.T) {
	s := testServer()

	var week models.WeeklyPoolRecord
	require.Equal(t, http.StatusOK, get(t, s, "/api/weeks/2024_week_5", &week))
	assert.Equal(t, "PHIL", week.Games[0].WinningTeam)
	assert.Equal(t, 3, week.PlayerPicks[0].Points)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/weeks/2024_week_9", nil))
}

func TestPlayers(t *testing.T) {
	s := testServer()

	var players []models.Player
	require.Equal(t, http.StatusOK, get(t, s, "/api/players", &players))
	require.Len(t, players, 2)
	assert.Equal(t, "ken", players[0].ID)
	assert.Len(t, players[0].Weeks, 2)

	var ken models.Player
	require.Equal(t, http.StatusOK, get(t, s, "/api/players/ken", &ken))
	require.NotNil(t, ken.Standing)
	assert.Equal(t, 40.0, ken.Standing.Points)
	require.NotNil(t, ken.Weeks[1].Picks[0].Game)
	assert.Equal(t, "BOYS", ken.Weeks[1].Picks[0].Game.FavoriteTeam)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/players/nobody", nil))
}

func TestStandings(t *testing.T) {
	s := testServer()

	var standings []models.PlayerStanding
	require.Equal(t, http.StatusOK, get(t, s, "/api/standings", &standings))
	require.Len(t, standings, 2)
	assert.Equal(t, 40.0, standings[0].Points)

	s.SetData(nil)
	standings = nil
	require.Equal(t, http.StatusOK, get(t, s, "/api/standings", &standings))
	assert.Empty(t, standings)
}
