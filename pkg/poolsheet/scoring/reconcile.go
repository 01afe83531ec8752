// Package scoring merges external final scores into parsed weeks and
// computes player points.
package scoring

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/models"
	"github.com/spreadpool/poolsheet-go/pkg/poolsheet/teams"
)

// ScoreSource returns final scores for the completed games of a week, keyed
// by the feed's team code.
type ScoreSource interface {
	TeamScores(ctx context.Context, year, week int) (map[string]int, error)
}

// Reconciler applies feed scores to games using an explicit alias table.
type Reconciler struct {
	aliases teams.AliasTable
	log     logrus.FieldLogger
}

// NewReconciler creates a Reconciler. A nil logger discards diagnostics.
func NewReconciler(aliases teams.AliasTable, log logrus.FieldLogger) *Reconciler {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Reconciler{aliases: aliases, log: log}
}

// Apply fills in scores for every game of the week that is not yet completed.
// A game whose teams cannot be resolved, or that the feed does not list, is
// left untouched. It returns the number of games reconciled by this call.
func (r *Reconciler) Apply(week *models.WeeklyPoolRecord, scores map[string]int) int {
	reconciled := 0
	for i := range week.Games {
		game := &week.Games[i]
		if game.Completed {
			continue
		}
		fields := logrus.Fields{
			"year":     week.Year,
			"week":     week.Week,
			"favorite": game.FavoriteTeam,
			"underdog": game.UnderdogTeam,
		}

		favorite, ok := r.lookup(game.FavoriteTeam, scores, fields)
		if !ok {
			continue
		}
		underdog, ok := r.lookup(game.UnderdogTeam, scores, fields)
		if !ok {
			continue
		}

		game.SetScores(favorite, underdog)
		reconciled++
		r.log.WithFields(fields).Debugf("Reconciled game %d-%d", favorite, underdog)
	}
	week.Reconciled = true
	return reconciled
}

func (r *Reconciler) lookup(team string, scores map[string]int, fields logrus.Fields) (int, bool) {
	code, err := r.aliases.Resolve(team)
	if err != nil {
		r.log.WithFields(fields).Warn(err.Error())
		return 0, false
	}
	score, ok := scores[code]
	if !ok {
		r.log.WithFields(fields).Debugf("No final score for %s (%s)", team, code)
	}
	return score, ok
}

// Fetch retrieves the week's scores from src and applies them. A feed error
// leaves the week unreconciled and is returned to the caller.
func (r *Reconciler) Fetch(ctx context.Context, src ScoreSource, week *models.WeeklyPoolRecord) error {
	scores, err := src.TeamScores(ctx, week.Year, week.Week)
	if err != nil {
		return err
	}
	r.Apply(week, scores)
	return nil
}
