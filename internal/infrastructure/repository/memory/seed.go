package memory

import (
	"time"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
)

// Fixed ids for the local development roster.
const (
	SeedPlayerMartin = "7d4c2f1e-0000-4000-8000-000000000001"
	SeedPlayerDubois = "7d4c2f1e-0000-4000-8000-000000000002"
	SeedPlayerLeroy  = "7d4c2f1e-0000-4000-8000-000000000003"
	SeedPlayerMoreau = "7d4c2f1e-0000-4000-8000-000000000004"
)

func SeedPlayers() []player.Player {
	createdAt := time.Date(2025, time.September, 1, 18, 0, 0, 0, time.UTC)
	return []player.Player{
		{ID: SeedPlayerMartin, FirstName: "Lucas", LastName: "Martin", CreatedAt: createdAt},
		{ID: SeedPlayerDubois, FirstName: "Emma", LastName: "Dubois", CreatedAt: createdAt},
		{ID: SeedPlayerLeroy, FirstName: "Hugo", LastName: "Leroy", CreatedAt: createdAt},
		{ID: SeedPlayerMoreau, FirstName: "Chloe", LastName: "Moreau", CreatedAt: createdAt},
	}
}

// SeedMatches returns one fully scored evening and one scheduled, unscored evening.
func SeedMatches() []match.Match {
	played := match.Date{Year: 2025, Month: time.September, Day: 12}
	upcoming := match.Date{Year: 2025, Month: time.September, Day: 26}
	createdAt := time.Date(2025, time.September, 5, 18, 0, 0, 0, time.UTC)

	return []match.Match{
		{
			ID:        "3b8e5a90-0000-4000-8000-000000000001",
			Date:      played,
			Player1ID: SeedPlayerMartin,
			Player2ID: SeedPlayerDubois,
			Scores: match.Scores{
				Round1Player1: match.Score(1),
				Round1Player2: match.Score(0),
				Round2Player1: match.Score(0.5),
				Round2Player2: match.Score(0.5),
			},
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		{
			ID:        "3b8e5a90-0000-4000-8000-000000000002",
			Date:      played,
			Player1ID: SeedPlayerLeroy,
			Player2ID: SeedPlayerMoreau,
			Scores: match.Scores{
				Round1Player1: match.Score(0),
				Round1Player2: match.Score(1),
				Round2Player1: match.Score(0),
				Round2Player2: match.Score(1),
			},
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		{
			ID:        "3b8e5a90-0000-4000-8000-000000000003",
			Date:      upcoming,
			Player1ID: SeedPlayerMartin,
			Player2ID: SeedPlayerLeroy,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		{
			ID:        "3b8e5a90-0000-4000-8000-000000000004",
			Date:      upcoming,
			Player1ID: SeedPlayerDubois,
			Player2ID: SeedPlayerMoreau,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
	}
}
