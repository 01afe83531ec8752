package models

// PlayerStanding is one row of the standings block.
type PlayerStanding struct {
	// ID is the slug of the player's name.
	ID string `json:"id"`
	// Name is the display name with the wins suffix removed.
	Name string `json:"name"`
	// Position is the ordinal as written on the sheet (ties share a position).
	Position string `json:"position"`
	// Points is the season point total.
	Points float64 `json:"points"`
	// Wins is the number of weekly wins from the "(N)" suffix.
	Wins float64 `json:"wins"`
}

// Pick is a single player's pick for one game slot.
type Pick struct {
	// GameID references the GameResult this pick was made against.
	GameID string `json:"gameId,omitempty"`
	// Team is the picked team's code.
	Team string `json:"team"`
	// ThreePoint marks the bonus pick.
	ThreePoint bool `json:"threePoint"`
	// Covered is set once the referenced game is completed.
	Covered *bool `json:"covered,omitempty"`
}

// PlayerPick is one player's column from a picks block.
type PlayerPick struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// TieBreak is the last numeric value found in the column.
	TieBreak *float64 `json:"tieBreak,omitempty"`
	// Points is the weekly total computed by scoring.
	Points int    `json:"points"`
	Picks  []Pick `json:"picks"`
}

// PickResult pairs a pick with the game it references.
type PickResult struct {
	Pick
	Game *GameResult `json:"game,omitempty"`
}

// PlayerWeek is one week of a player's history.
type PlayerWeek struct {
	Key      string       `json:"key"`
	Year     int          `json:"year"`
	Week     int          `json:"week"`
	Title    string       `json:"title"`
	TieBreak *float64     `json:"tieBreak,omitempty"`
	Points   int          `json:"points"`
	Picks    []PickResult `json:"picks"`
}

// Player aggregates a player's picks across every week of a build.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Standing is taken from the most recent week that lists the player.
	Standing *PlayerStanding `json:"standing,omitempty"`
	Weeks    []PlayerWeek    `json:"weeks"`
}
