package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/grid"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
)

// gamePattern matches "FAVORITE -SPREAD UNDERDOG", e.g. "BOYS -3 1/2 PHIL".
var gamePattern = regexp.MustCompile(`(?i)^([A-Z. ]+)(-[\d\s/]+)([A-Z. ]+)$`)

var (
	halfPointPattern  = regexp.MustCompile(`\s*1/2`)
	leadingIntPattern = regexp.MustCompile(`^\s*(-?\d+)`)
)

// ConvertScore parses a whole or half point value such as "3", "3 1/2" or "1/2".
func ConvertScore(s string) (float64, error) {
	normalized := strings.TrimSpace(halfPointPattern.ReplaceAllString(s, ".5"))
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q: %w", s, err)
	}
	return v, nil
}

// ParseGameText parses a game line into a GameResult without scores.
func ParseGameText(text string) (models.GameResult, bool) {
	m := gamePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return models.GameResult{}, false
	}
	favorite := strings.ToUpper(strings.TrimSpace(m[1]))
	underdog := strings.ToUpper(strings.TrimSpace(m[3]))
	if favorite == "" || underdog == "" {
		return models.GameResult{}, false
	}
	// The line is kept signed as written, so "-3 1/2" gives -3.5.
	magnitude, err := ConvertScore(strings.TrimPrefix(strings.TrimSpace(m[2]), "-"))
	if err != nil {
		return models.GameResult{}, false
	}
	return models.GameResult{
		FavoriteTeam: favorite,
		UnderdogTeam: underdog,
		Spread:       -magnitude,
	}, true
}

// ParseGames walks down from start collecting game lines. Scores are read from
// the neighbouring columns. Parsing stops after two consecutive empty cells or
// when the cursor reaches stopRow (negative disables the bound).
func ParseGames(g grid.Grid, start models.Coordinate, stopRow int, log logrus.FieldLogger) []models.GameResult {
	var games []models.GameResult
	cursor := start
	empty := 0
	for empty < 2 && (stopRow < 0 || cursor.Row < stopRow) {
		cell, ok := g.Cell(cursor)
		switch {
		case !ok:
			empty++
		case !cell.IsNumeric():
			game, matched := ParseGameText(cell.Text)
			if !matched {
				break
			}
			empty = 0
			favorite, favOK := g.Cell(cursor.Right(-1))
			underdog, dogOK := g.Cell(cursor.Right(1))
			if favOK && dogOK {
				fs, ferr := parseScoreCell(favorite)
				us, uerr := parseScoreCell(underdog)
				if ferr == nil && uerr == nil {
					game.SetScores(fs, us)
				}
			}
			log.WithFields(logrus.Fields{
				"cell":     grid.Key(cursor),
				"favorite": game.FavoriteTeam,
				"underdog": game.UnderdogTeam,
				"spread":   game.Spread,
			}).Debug("Parsed game")
			games = append(games, game)
		}
		cursor = cursor.Down(1)
	}
	return games
}

// parseScoreCell reads a final score from a numeric cell or the leading
// integer of a text cell.
func parseScoreCell(cell models.Cell) (int, error) {
	if cell.IsNumeric() {
		return int(math.Round(cell.Number)), nil
	}
	m := leadingIntPattern.FindStringSubmatch(cell.Text)
	if m == nil {
		return 0, fmt.Errorf("invalid score %q", cell.Text)
	}
	return strconv.Atoi(m[1])
}
