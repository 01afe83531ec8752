package models

import "fmt"

// RecordType is the type tag carried by every weekly record.
const RecordType = "spread_pool"

// ParsingRules holds the nominal region anchors as "C:4"-style addresses.
type ParsingRules struct {
	Games       []string `json:"games" toml:"games" mapstructure:"games"`
	Standings   []string `json:"standings" toml:"standings" mapstructure:"standings"`
	PlayerPicks []string `json:"playerPicks" toml:"player_picks" mapstructure:"player_picks"`
}

// Region is the outcome of probing for a block's start.
type Region struct {
	// Nominal is the configured anchor.
	Nominal Coordinate `json:"nominal"`
	// Coord is where parsing starts.
	Coord Coordinate `json:"coord"`
	// Found is false when probing fell back to the nominal anchor.
	Found bool `json:"found"`
}

// Regions records where each block of a sheet was located.
type Regions struct {
	Games       *Region  `json:"games,omitempty"`
	Standings   *Region  `json:"standings,omitempty"`
	PlayerPicks []Region `json:"playerPicks,omitempty"`
}

// WeeklyPoolRecord is the normalized content of one weekly sheet.
type WeeklyPoolRecord struct {
	Type        string           `json:"type"`
	Key         string           `json:"key"`
	Title       string           `json:"title"`
	Year        int              `json:"year"`
	Week        int              `json:"week"`
	Games       []GameResult     `json:"games"`
	Standings   []PlayerStanding `json:"standings"`
	PlayerPicks []PlayerPick     `json:"playerPicks"`
	Regions     Regions          `json:"regions"`
	// Reconciled is true once an external score feed was applied.
	Reconciled bool `json:"reconciled"`
	// Warnings lists non-fatal problems found while parsing.
	Warnings []string `json:"warnings,omitempty"`
}

// WeekKey returns the build key for a year and week.
func WeekKey(year, week int) string {
	return fmt.Sprintf("%d_week_%d", year, week)
}

// Game returns the game with the given id.
func (w *WeeklyPoolRecord) Game(id string) (*GameResult, bool) {
	if id == "" {
		return nil, false
	}
	for i := range w.Games {
		if w.Games[i].ID == id {
			return &w.Games[i], true
		}
	}
	return nil, false
}
