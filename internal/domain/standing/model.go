package standing

// PlayerStats is one derived standings row. Rows are recomputed from raw matches on every
// request and never persisted.
type PlayerStats struct {
	PlayerID      string
	FirstName     string
	LastName      string
	TotalPoints   float64
	Wins          int
	Draws         int
	Losses        int
	MatchesPlayed int
}
