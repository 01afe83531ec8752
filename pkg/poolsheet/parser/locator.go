package parser

import (
	"regexp"
	"strings"

	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/grid"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
)

var standingsHeaderPattern = regexp.MustCompile(`(?i)\bStandings\b`)

// LocateGames probes columns right of the nominal games anchor for a cell
// holding a game line. Rows at or past stopRow are never probed; a negative
// stopRow disables that bound. The region starts at the first matching cell.
func LocateGames(g grid.Grid, nominal models.Coordinate, stopRow int, opts Options) models.Region {
	for offset := 0; offset <= opts.GameProbeColumns; offset++ {
		col := nominal.Col + offset
		for r := nominal.Row; r < nominal.Row+opts.GameProbeRows; r++ {
			if stopRow >= 0 && r >= stopRow {
				break
			}
			cell, ok := g.Cell(models.Coordinate{Col: col, Row: r})
			if !ok || cell.IsNumeric() {
				continue
			}
			if gamePattern.MatchString(cell.Text) {
				return models.Region{
					Nominal: nominal,
					Coord:   models.Coordinate{Col: col, Row: r},
					Found:   true,
				}
			}
		}
	}
	return models.Region{Nominal: nominal, Coord: nominal}
}

// LocateStandings searches column col around the nominal standings row for a
// "Standings" header. When found the region starts on the row below it;
// otherwise it starts at the nominal row of column col.
func LocateStandings(g grid.Grid, nominal models.Coordinate, col int, opts Options) models.Region {
	first := nominal.Row - opts.StandingsProbeAbove
	if first < 0 {
		first = 0
	}
	for r := first; r <= nominal.Row+opts.StandingsProbeBelow; r++ {
		cell, ok := g.Cell(models.Coordinate{Col: col, Row: r})
		if !ok || cell.IsNumeric() {
			continue
		}
		if standingsHeaderPattern.MatchString(cell.Text) {
			return models.Region{
				Nominal: nominal,
				Coord:   models.Coordinate{Col: col, Row: r + 1},
				Found:   true,
			}
		}
	}
	return models.Region{Nominal: nominal, Coord: models.Coordinate{Col: col, Row: nominal.Row}}
}

// LocatePicks finds the first non-empty header cell at or right of a picks anchor.
func LocatePicks(g grid.Grid, nominal models.Coordinate, opts Options) models.Region {
	for offset := 0; offset <= opts.PickProbeColumns; offset++ {
		probe := nominal.Right(offset)
		if cell, ok := g.Cell(probe); ok && strings.TrimSpace(cell.String()) != "" {
			return models.Region{Nominal: nominal, Coord: probe, Found: true}
		}
	}
	return models.Region{Nominal: nominal, Coord: nominal}
}
