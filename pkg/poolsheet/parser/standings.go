package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/grid"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
)

// ErrUnparsablePlayerRow indicates a standings or picks cell that does not
// hold a recognizable player.
var ErrUnparsablePlayerRow = errors.New("unparsable player row")

var (
	// playerPattern splits "Name (wins)" into the name and the parenthetical.
	playerPattern    = regexp.MustCompile(`^\s*([^(]+)(\([\d.]+\)+)?\s*$`)
	afterWeekPattern = regexp.MustCompile(`(?i)\bafter\s+week\b`)
)

// ParsePlayerName splits a standings name cell into the display name and the
// weekly wins count. A missing parenthetical means zero wins.
func ParsePlayerName(text string) (name string, wins float64, err error) {
	m := playerPattern.FindStringSubmatch(text)
	if m == nil {
		return "", 0, fmt.Errorf("%w: %q", ErrUnparsablePlayerRow, text)
	}
	name = strings.TrimSpace(m[1])
	if name == "" {
		return "", 0, fmt.Errorf("%w: %q", ErrUnparsablePlayerRow, text)
	}
	if m[2] != "" {
		wins, err = strconv.ParseFloat(strings.Trim(m[2], "()"), 64)
		if err != nil {
			return "", 0, fmt.Errorf("%w: wins in %q", ErrUnparsablePlayerRow, text)
		}
	}
	return name, wins, nil
}

// ParseStandings walks down from start until the first empty name cell. A
// leading "after week N" summary row is skipped. Rows whose name cannot be
// parsed are skipped and reported in the returned errors.
func ParseStandings(g grid.Grid, start models.Coordinate, log logrus.FieldLogger) ([]models.PlayerStanding, []error) {
	var (
		standings []models.PlayerStanding
		errs      []error
	)

	cursor := start
	if cell, ok := g.Cell(cursor); ok && afterWeekPattern.MatchString(cell.String()) {
		log.WithField("cell", grid.Key(cursor)).Debugf("Skipping summary row %q", cell.String())
		cursor = cursor.Down(1)
	}

	for {
		cell, ok := g.Cell(cursor)
		if !ok || strings.TrimSpace(cell.String()) == "" {
			break
		}

		name, wins, err := ParsePlayerName(cell.String())
		if err != nil {
			log.WithField("cell", grid.Key(cursor)).Warn(err.Error())
			errs = append(errs, fmt.Errorf("%s: %w", grid.Key(cursor), err))
			cursor = cursor.Down(1)
			continue
		}

		standing := models.PlayerStanding{
			ID:   Slug(name),
			Name: name,
			Wins: wins,
		}
		if position, ok := g.Cell(cursor.Right(-1)); ok {
			standing.Position = strings.TrimSpace(position.String())
		}
		if points, ok := g.Cell(cursor.Right(1)); ok {
			standing.Points = cellNumber(points)
		}

		log.WithFields(logrus.Fields{
			"cell":   grid.Key(cursor),
			"player": standing.ID,
			"wins":   standing.Wins,
		}).Debug("Parsed standing")
		standings = append(standings, standing)
		cursor = cursor.Down(1)
	}

	return standings, errs
}

// cellNumber returns a cell's numeric value, parsing half-point text. Text
// that is not a number yields zero.
func cellNumber(c models.Cell) float64 {
	if c.IsNumeric() {
		return c.Number
	}
	v, err := ConvertScore(c.Text)
	if err != nil {
		return 0
	}
	return v
}
