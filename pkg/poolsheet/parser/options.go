// Package parser locates and parses the games, standings and player picks
// blocks of a weekly pool sheet.
package parser

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultMaxGames bounds a picks column when the anchors give no row limit.
const DefaultMaxGames = 20

// Options holds the probe windows and limits used while parsing a sheet.
type Options struct {
	// GameProbeColumns is how many columns right of the games anchor are probed.
	GameProbeColumns int
	// GameProbeRows is how many rows below the games anchor are probed per column.
	GameProbeRows int
	// StandingsProbeAbove and StandingsProbeBelow bound the rows searched for
	// the "Standings" header around the standings anchor.
	StandingsProbeAbove int
	StandingsProbeBelow int
	// PickProbeColumns is how many columns right of a picks anchor are probed.
	PickProbeColumns int
	// MaxGames caps the rows scanned in a picks column. Zero derives the cap
	// from the distance between the games and standings anchors.
	MaxGames int
	// Logger receives parse diagnostics. Nil discards them.
	Logger logrus.FieldLogger
}

// DefaultOptions returns the probe windows used for the known sheet layouts.
func DefaultOptions() Options {
	return Options{
		GameProbeColumns:    8,
		GameProbeRows:       20,
		StandingsProbeAbove: 2,
		StandingsProbeBelow: 40,
		PickProbeColumns:    8,
	}
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
