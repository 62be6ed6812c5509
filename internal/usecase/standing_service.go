package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
	"github.com/riskibarqy/forces-league/internal/domain/standing"
)

type StandingRow struct {
	Rank int
	standing.PlayerStats
}

type StandingService struct {
	playerRepo player.Repository
	matchRepo  match.Repository
}

func NewStandingService(playerRepo player.Repository, matchRepo match.Repository) *StandingService {
	return &StandingService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

// List recomputes the table from every player and match on each call.
func (s *StandingService) List(ctx context.Context) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.List")
	defer span.End()

	var (
		players []player.Player
		matches []match.Match
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.ListOrderedByLastName(ctx)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		players = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.matchRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		matches = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	stats := standing.Aggregate(players, matches)
	out := make([]StandingRow, 0, len(stats))
	for i, item := range stats {
		out = append(out, StandingRow{Rank: i + 1, PlayerStats: item})
	}

	return out, nil
}
