package parser

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/grid"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
)

// Result holds the blocks parsed from one sheet.
type Result struct {
	Games       []models.GameResult
	Standings   []models.PlayerStanding
	PlayerPicks []models.PlayerPick
	Regions     models.Regions
	// Warnings lists region and row failures that did not stop the parse.
	Warnings []string
}

// ParseSheet locates and parses every block of a sheet. A malformed anchor
// only disables its own region; the other blocks are still parsed.
func ParseSheet(g grid.Grid, rules models.ParsingRules, opts Options) Result {
	log := opts.logger()
	res := Result{
		Games:       []models.GameResult{},
		Standings:   []models.PlayerStanding{},
		PlayerPicks: []models.PlayerPick{},
	}
	warn := func(region string, err error) {
		log.WithField("region", region).Warn(err.Error())
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %v", region, err))
	}

	gamesAnchor, gamesErr := firstAnchor(rules.Games)
	if gamesErr != nil {
		warn("games", gamesErr)
	}
	standingsAnchor, standingsErr := firstAnchor(rules.Standings)
	if standingsErr != nil {
		warn("standings", standingsErr)
	}

	stopRow := -1
	if standingsErr == nil {
		stopRow = standingsAnchor.Row
	}

	var gamesRegion models.Region
	if gamesErr == nil {
		gamesRegion = LocateGames(g, gamesAnchor, stopRow, opts)
		logRegion(log, "games", gamesRegion)
		res.Regions.Games = &gamesRegion
		res.Games = append(res.Games, ParseGames(g, gamesRegion.Coord, stopRow, log)...)
	}

	if standingsErr == nil {
		col := standingsAnchor.Col
		if gamesErr == nil {
			col = gamesRegion.Coord.Col
		}
		region := LocateStandings(g, standingsAnchor, col, opts)
		logRegion(log, "standings", region)
		res.Regions.Standings = &region
		standings, errs := ParseStandings(g, region.Coord, log)
		res.Standings = append(res.Standings, standings...)
		for _, err := range errs {
			res.Warnings = append(res.Warnings, fmt.Sprintf("standings: %v", err))
		}
	}

	rowLimit := opts.MaxGames
	if rowLimit <= 0 {
		rowLimit = DefaultMaxGames
		if gamesErr == nil && standingsErr == nil && standingsAnchor.Row > gamesAnchor.Row {
			rowLimit = standingsAnchor.Row - gamesAnchor.Row
		}
	}

	for _, rule := range rules.PlayerPicks {
		anchor, err := grid.ParseAddress(rule)
		if err != nil {
			warn("playerPicks", err)
			continue
		}
		region := LocatePicks(g, anchor, opts)
		logRegion(log, "playerPicks", region)
		res.Regions.PlayerPicks = append(res.Regions.PlayerPicks, region)
		res.PlayerPicks = append(res.PlayerPicks, ParsePlayerPicks(g, region.Coord, rowLimit, log)...)
	}

	return res
}

func firstAnchor(rules []string) (models.Coordinate, error) {
	if len(rules) == 0 {
		return models.Coordinate{}, fmt.Errorf("%w: no anchor configured", grid.ErrMalformedAddress)
	}
	return grid.ParseAddress(rules[0])
}

func logRegion(log logrus.FieldLogger, name string, r models.Region) {
	entry := log.WithFields(logrus.Fields{
		"region":  name,
		"nominal": grid.Key(r.Nominal),
		"start":   grid.Key(r.Coord),
	})
	if r.Found {
		entry.Debug("Located region")
	} else {
		entry.Debug("Region not confirmed, using nominal anchor")
	}
}
