package poolsheet

import (
	"sort"

	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
)

// Players aggregates every player's weeks across the dataset. A player's
// standing is taken from the latest week that lists them. The result is
// ordered by standing points, then name.
func Players(data Dataset) []models.Player {
	byID := make(map[string]*models.Player)
	var order []string
	get := func(id, name string) *models.Player {
		p, ok := byID[id]
		if !ok {
			p = &models.Player{ID: id, Name: name, Weeks: []models.PlayerWeek{}}
			byID[id] = p
			order = append(order, id)
		}
		return p
	}

	for _, week := range data.Weeks() {
		for i := range week.Standings {
			s := week.Standings[i]
			get(s.ID, s.Name).Standing = &s
		}
		for _, pp := range week.PlayerPicks {
			if pp.ID == "" {
				continue
			}
			p := get(pp.ID, pp.Name)
			p.Weeks = append(p.Weeks, playerWeek(week, pp))
		}
	}

	players := make([]models.Player, 0, len(order))
	for _, id := range order {
		players = append(players, *byID[id])
	}
	sort.SliceStable(players, func(i, j int) bool {
		si, sj := players[i].Standing, players[j].Standing
		switch {
		case si != nil && sj == nil:
			return true
		case si == nil && sj != nil:
			return false
		case si != nil && sj != nil && si.Points != sj.Points:
			return si.Points > sj.Points
		}
		return players[i].Name < players[j].Name
	})
	return players
}

// Player returns one aggregated player by id.
func Player(data Dataset, id string) (models.Player, bool) {
	for _, p := range Players(data) {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

func playerWeek(week *models.WeeklyPoolRecord, pp models.PlayerPick) models.PlayerWeek {
	picks := make([]models.PickResult, 0, len(pp.Picks))
	for _, pick := range pp.Picks {
		res := models.PickResult{Pick: pick}
		if g, ok := week.Game(pick.GameID); ok {
			game := *g
			res.Game = &game
		}
		picks = append(picks, res)
	}
	return models.PlayerWeek{
		Key:      week.Key,
		Year:     week.Year,
		Week:     week.Week,
		Title:    week.Title,
		TieBreak: pp.TieBreak,
		Points:   pp.Points,
		Picks:    picks,
	}
}
