package models

// GameResult represents one game row of the weekly games block.
type GameResult struct {
	// ID is a stable identifier assigned when the week is assembled.
	ID string `json:"id"`
	// FavoriteTeam is the pool's code for the favored team (e.g. "BOYS").
	FavoriteTeam string `json:"favoriteTeam"`
	// UnderdogTeam is the pool's code for the underdog.
	UnderdogTeam string `json:"underdogTeam"`
	// Spread is the favorite's line as written, negative (e.g. -3.5).
	Spread float64 `json:"spread"`
	// FavoriteScore is the favorite's final score (nil until known).
	FavoriteScore *int `json:"favoriteScore,omitempty"`
	// UnderdogScore is the underdog's final score (nil until known).
	UnderdogScore *int `json:"underdogScore,omitempty"`
	// Covered is set once both scores are known.
	Covered *bool `json:"covered,omitempty"`
	// WinningTeam is the team that won against the spread.
	WinningTeam string `json:"winningTeam,omitempty"`
	// TotalScore is the combined final score.
	TotalScore *int `json:"totalScore,omitempty"`
	// Completed is true once both scores are known.
	Completed bool `json:"completed"`
}

// SetScores records both final scores and derives the spread outcome. The
// favorite covers when underdog minus favorite is below the signed spread.
func (g *GameResult) SetScores(favorite, underdog int) {
	fav, dog := favorite, underdog
	covered := float64(dog-fav) < g.Spread
	total := fav + dog

	g.FavoriteScore = &fav
	g.UnderdogScore = &dog
	g.Covered = &covered
	if covered {
		g.WinningTeam = g.FavoriteTeam
	} else {
		g.WinningTeam = g.UnderdogTeam
	}
	g.TotalScore = &total
	g.Completed = true
}

// HasScores reports whether both final scores are known.
func (g *GameResult) HasScores() bool {
	return g.FavoriteScore != nil && g.UnderdogScore != nil
}
