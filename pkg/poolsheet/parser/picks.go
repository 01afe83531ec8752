package parser

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/grid"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
)

// ColumnPicks is the content of one player's picks column.
type ColumnPicks struct {
	Picks []models.Pick
	// Numbers holds every numeric cell in column order. The last one is the tiebreak.
	Numbers []float64
}

// TieBreak returns the last numeric value of the column, or nil.
func (c ColumnPicks) TieBreak() *float64 {
	if len(c.Numbers) == 0 {
		return nil
	}
	v := c.Numbers[len(c.Numbers)-1]
	return &v
}

// ExtractPlayerPicks walks down a player's column starting one row below the
// header. It stops after two consecutive empty cells or once rowLimit rows
// have been counted. Only pick cells reset the empty counter.
func ExtractPlayerPicks(g grid.Grid, header models.Coordinate, rowLimit int) ColumnPicks {
	col := ColumnPicks{Picks: []models.Pick{}}
	cursor := header.Down(1)
	empty := 0
	for scanned := 1; empty < 2 && scanned < rowLimit; scanned++ {
		cell, ok := g.Cell(cursor)
		c := ClassifyCell(cell, ok)
		switch c.Class {
		case ClassEmpty:
			empty++
		case ClassNumeric:
			col.Numbers = append(col.Numbers, c.Value)
		case ClassPick:
			empty = 0
			col.Picks = append(col.Picks, c.Pick)
		}
		cursor = cursor.Down(1)
	}
	return col
}

// ParsePlayerPicks registers one player per non-empty header cell, walking
// right from start until the first empty header.
func ParsePlayerPicks(g grid.Grid, start models.Coordinate, rowLimit int, log logrus.FieldLogger) []models.PlayerPick {
	var players []models.PlayerPick
	for header := start; ; header = header.Right(1) {
		cell, ok := g.Cell(header)
		if !ok {
			break
		}
		name := strings.TrimSpace(cell.String())
		if name == "" {
			break
		}

		col := ExtractPlayerPicks(g, header, rowLimit)
		if len(col.Numbers) > 1 {
			log.WithFields(logrus.Fields{
				"cell":    grid.Key(header),
				"numbers": col.Numbers,
			}).Debug("Multiple numeric cells in picks column, using the last as tiebreak")
		}

		players = append(players, models.PlayerPick{
			ID:       Slug(name),
			Name:     name,
			TieBreak: col.TieBreak(),
			Picks:    col.Picks,
		})
	}
	return players
}
