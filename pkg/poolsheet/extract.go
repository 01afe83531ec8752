package poolsheet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/grid"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/parser"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/scoring"
	"github.com/xuri/excelize/v2"
)

var gameNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("poolsheet/games"))

// Extract parses one weekly workbook into an unreconciled record. The title
// is the file name without extension and the week is its last token.
func Extract(path string, year int, opts Options) (*models.WeeklyPoolRecord, error) {
	title, week, err := TitleWeek(path)
	if err != nil {
		return nil, NewSheetError(path, "title", err)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewSheetError(path, "open", ErrFileNotFound)
		}
		return nil, NewSheetError(path, "open", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewSheetError(path, "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	sheet := opts.sheetName()
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, NewSheetError(path, "sheet", fmt.Errorf("%w: %s", ErrSheetNotFound, sheet))
	}

	g, err := grid.FromSheet(f, sheet)
	if err != nil {
		return nil, NewSheetError(path, "cells", err)
	}

	return Assemble(g, title, year, week, opts), nil
}

// Assemble parses a grid into a record, assigns game ids and links each pick
// to the game in its slot.
func Assemble(g grid.Grid, title string, year, week int, opts Options) *models.WeeklyPoolRecord {
	key := models.WeekKey(year, week)
	log := opts.logger().WithFields(logrus.Fields{"year": year, "week": week, "sheet": title})

	popts := opts.Parser
	popts.Logger = log
	res := parser.ParseSheet(g, opts.Rules, popts)

	record := &models.WeeklyPoolRecord{
		Type:        models.RecordType,
		Key:         key,
		Title:       title,
		Year:        year,
		Week:        week,
		Games:       res.Games,
		Standings:   res.Standings,
		PlayerPicks: res.PlayerPicks,
		Regions:     res.Regions,
		Warnings:    res.Warnings,
	}
	for i := range record.Games {
		record.Games[i].ID = GameID(key, i, record.Games[i])
	}
	scoring.LinkPicks(record)

	log.WithFields(logrus.Fields{
		"games":   len(record.Games),
		"players": len(record.PlayerPicks),
	}).Info("Extracted weekly sheet")
	return record
}

// GameID returns a stable id for the game in the given slot of a week.
func GameID(key string, slot int, g models.GameResult) string {
	name := fmt.Sprintf("%s/%d/%s/%s", key, slot, g.FavoriteTeam, g.UnderdogTeam)
	return uuid.NewSHA1(gameNamespace, []byte(name)).String()
}

// TitleWeek derives the title and week number from a weekly file path.
// "data/2024/Spread Pool Week 5.xlsx" gives ("Spread Pool Week 5", 5).
func TitleWeek(path string) (string, int, error) {
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return title, 0, ErrWeekNotInTitle
	}
	week, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || week <= 0 {
		return title, 0, fmt.Errorf("%w: %q", ErrWeekNotInTitle, title)
	}
	return title, week, nil
}
