package standing

import (
	"sort"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
)

// Aggregate folds fully scored matches into per-player totals.
//
// Matches with any missing score, or referencing a player absent from players, are skipped.
// Each round score of exactly 1, 0.5 or 0 counts as a win, draw or loss; any other value only
// contributes points. The result is ordered by total points descending, ties keep the order
// of players, and players without a counted match are left out.
func Aggregate(players []player.Player, matches []match.Match) []PlayerStats {
	index := make(map[string]*PlayerStats, len(players))
	ordered := make([]*PlayerStats, 0, len(players))
	for _, p := range players {
		if _, exists := index[p.ID]; exists {
			continue
		}
		entry := &PlayerStats{
			PlayerID:  p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
		}
		index[p.ID] = entry
		ordered = append(ordered, entry)
	}

	for _, m := range matches {
		if !m.Scores.Complete() {
			continue
		}
		entry1 := index[m.Player1ID]
		entry2 := index[m.Player2ID]
		if entry1 == nil || entry2 == nil {
			continue
		}

		r1p1, r2p1 := *m.Scores.Round1Player1, *m.Scores.Round2Player1
		r1p2, r2p2 := *m.Scores.Round1Player2, *m.Scores.Round2Player2

		entry1.TotalPoints += r1p1 + r2p1
		entry2.TotalPoints += r1p2 + r2p2

		entry1.countRound(r1p1)
		entry1.countRound(r2p1)
		entry2.countRound(r1p2)
		entry2.countRound(r2p2)

		entry1.MatchesPlayed++
		entry2.MatchesPlayed++
	}

	out := make([]PlayerStats, 0, len(ordered))
	for _, entry := range ordered {
		out = append(out, *entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalPoints > out[j].TotalPoints
	})

	filtered := out[:0]
	for _, row := range out {
		if row.MatchesPlayed > 0 {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func (s *PlayerStats) countRound(score float64) {
	switch score {
	case match.ScoreWin:
		s.Wins++
	case match.ScoreDraw:
		s.Draws++
	case match.ScoreLoss:
		s.Losses++
	}
}
