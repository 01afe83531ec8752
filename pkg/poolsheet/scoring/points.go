package scoring

import "github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"

const (
	// PickPoints is awarded for a pick that wins against the spread.
	PickPoints = 1
	// ThreePointPickPoints is awarded for a winning bonus pick.
	ThreePointPickPoints = 3
)

// LinkPicks assigns each pick the id of the game in the same slot. Picks past
// the last game keep an empty GameID and are never scored.
func LinkPicks(week *models.WeeklyPoolRecord) {
	for i := range week.PlayerPicks {
		picks := week.PlayerPicks[i].Picks
		for j := range picks {
			if j < len(week.Games) {
				picks[j].GameID = week.Games[j].ID
			} else {
				picks[j].GameID = ""
			}
		}
	}
}

// ScorePicks recomputes every player's points from the completed games.
func ScorePicks(week *models.WeeklyPoolRecord) {
	games := make(map[string]*models.GameResult, len(week.Games))
	for i := range week.Games {
		games[week.Games[i].ID] = &week.Games[i]
	}

	for i := range week.PlayerPicks {
		player := &week.PlayerPicks[i]
		player.Points = 0
		for j := range player.Picks {
			pick := &player.Picks[j]
			pick.Covered = nil

			game, ok := games[pick.GameID]
			if pick.GameID == "" || !ok || !game.Completed {
				continue
			}
			covered := pick.Team == game.WinningTeam
			pick.Covered = &covered
			if !covered {
				continue
			}
			if pick.ThreePoint {
				player.Points += ThreePointPickPoints
			} else {
				player.Points += PickPoints
			}
		}
	}
}
