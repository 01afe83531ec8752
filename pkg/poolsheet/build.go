package poolsheet

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/scoring"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/teams"
	"golang.org/x/sync/errgroup"
)

var yearDirPattern = regexp.MustCompile(`^\d{4}$`)

// WeekFile is a weekly workbook found under a year directory.
type WeekFile struct {
	Year int
	Path string
}

// Dataset holds the records of one build pass keyed by "{year}_week_{week}".
type Dataset map[string]*models.WeeklyPoolRecord

// Weeks returns the records ordered by year then week.
func (d Dataset) Weeks() []*models.WeeklyPoolRecord {
	weeks := make([]*models.WeeklyPoolRecord, 0, len(d))
	for _, w := range d {
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].Year != weeks[j].Year {
			return weeks[i].Year < weeks[j].Year
		}
		return weeks[i].Week < weeks[j].Week
	})
	return weeks
}

// Latest returns the most recent week, or nil for an empty dataset.
func (d Dataset) Latest() *models.WeeklyPoolRecord {
	weeks := d.Weeks()
	if len(weeks) == 0 {
		return nil
	}
	return weeks[len(weeks)-1]
}

// ScanWeeks lists every .xlsx file in the four-digit year directories of
// dataDir, ordered by year then file name. A missing dataDir yields no files.
func ScanWeeks(dataDir string) ([]WeekFile, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []WeekFile
	for _, e := range entries {
		if !e.IsDir() || !yearDirPattern.MatchString(e.Name()) {
			continue
		}
		year, _ := strconv.Atoi(e.Name())
		yearDir := filepath.Join(dataDir, e.Name())
		sheets, err := os.ReadDir(yearDir)
		if err != nil {
			return nil, err
		}
		for _, s := range sheets {
			name := s.Name()
			// Skip Excel lock files left next to open workbooks.
			if s.IsDir() || strings.HasPrefix(name, "~$") || !strings.EqualFold(filepath.Ext(name), ".xlsx") {
				continue
			}
			files = append(files, WeekFile{Year: year, Path: filepath.Join(yearDir, name)})
		}
	}
	// os.ReadDir is sorted by name, so files are already ordered.
	return files, nil
}

// Builder runs a build pass: extraction, score reconciliation and scoring.
type Builder struct {
	opts       Options
	source     scoring.ScoreSource
	reconciler *scoring.Reconciler
}

// NewBuilder creates a Builder. A nil source skips reconciliation so only
// scores already present in the sheets are used.
func NewBuilder(source scoring.ScoreSource, aliases teams.AliasTable, opts Options) *Builder {
	return &Builder{
		opts:       opts,
		source:     source,
		reconciler: scoring.NewReconciler(aliases, opts.logger()),
	}
}

// Build extracts every weekly file under dataDir and reconciles the result.
// Failures are isolated to their file or week; only a failure to list
// dataDir is returned.
func (b *Builder) Build(ctx context.Context, dataDir string) (Dataset, error) {
	log := b.opts.logger()

	files, err := ScanWeeks(dataDir)
	if err != nil {
		return nil, err
	}
	if files == nil {
		log.WithField("dir", dataDir).Warn("Data directory does not exist or has no year directories")
	}

	data := make(Dataset)
	for _, wf := range files {
		record, err := Extract(wf.Path, wf.Year, b.opts)
		if err != nil {
			log.WithError(err).WithField("file", wf.Path).Error("Error processing file")
			continue
		}
		if prev, ok := data[record.Key]; ok {
			log.WithFields(logrus.Fields{"key": record.Key, "replaced": prev.Title}).Warn("Duplicate week, keeping the later file")
		}
		data[record.Key] = record
	}

	b.Reconcile(ctx, data.Weeks())
	return data, nil
}

// Reconcile fetches final scores for each week, applies them and scores the
// picks. Weeks are processed concurrently; a failed fetch leaves that week
// unreconciled but still scored from the scores present in the sheet.
func (b *Builder) Reconcile(ctx context.Context, weeks []*models.WeeklyPoolRecord) {
	log := b.opts.logger()

	var g errgroup.Group
	g.SetLimit(b.opts.concurrency())
	for _, week := range weeks {
		week := week
		g.Go(func() error {
			wlog := log.WithFields(logrus.Fields{"year": week.Year, "week": week.Week})
			if b.source != nil {
				if err := b.reconciler.Fetch(ctx, b.source, week); err != nil {
					wlog.WithError(err).Warn("Score feed failed, week left unreconciled")
				}
			}
			scoring.ScorePicks(week)
			wlog.Debug("Scored week")
			return nil
		})
	}
	_ = g.Wait()
}
