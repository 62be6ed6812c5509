package match

import (
	"time"
)

// Score values a player can earn in a single round.
const (
	ScoreLoss = 0.0
	ScoreDraw = 0.5
	ScoreWin  = 1.0
)

// Scores holds the four per-round results of a match. A nil pointer means not yet entered.
type Scores struct {
	Round1Player1 *float64
	Round1Player2 *float64
	Round2Player1 *float64
	Round2Player2 *float64
}

// Complete reports whether every round score has been entered.
func (s Scores) Complete() bool {
	return s.Round1Player1 != nil &&
		s.Round1Player2 != nil &&
		s.Round2Player1 != nil &&
		s.Round2Player2 != nil
}

// Player1Total sums player 1's round scores, counting missing rounds as zero.
func (s Scores) Player1Total() float64 {
	return valueOrZero(s.Round1Player1) + valueOrZero(s.Round2Player1)
}

// Player2Total sums player 2's round scores, counting missing rounds as zero.
func (s Scores) Player2Total() float64 {
	return valueOrZero(s.Round1Player2) + valueOrZero(s.Round2Player2)
}

// Match is a scheduled head-to-head meeting between two players on a date.
type Match struct {
	ID        string
	Date      Date
	Player1ID string
	Player2ID string
	Scores    Scores
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayerIDs returns both participants.
func (m Match) PlayerIDs() []string {
	return []string{m.Player1ID, m.Player2ID}
}

// Winner values reported by result feeds.
const (
	WinnerPlayer1 = "player1"
	WinnerPlayer2 = "player2"
	WinnerDraw    = "draw"
)

// Winner compares both totals, treating missing scores as zero.
func (m Match) Winner() string {
	p1, p2 := m.Scores.Player1Total(), m.Scores.Player2Total()
	switch {
	case p1 > p2:
		return WinnerPlayer1
	case p2 > p1:
		return WinnerPlayer2
	default:
		return WinnerDraw
	}
}

// Score returns a pointer to v, for building Scores literals.
func Score(v float64) *float64 {
	return &v
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// CollectPlayerIDs returns the distinct participant ids of items in encounter order.
func CollectPlayerIDs(items []Match) []string {
	seen := make(map[string]struct{}, len(items)*2)
	out := make([]string, 0, len(items)*2)
	for _, item := range items {
		for _, id := range item.PlayerIDs() {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
