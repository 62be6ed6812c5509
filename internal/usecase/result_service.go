package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
)

const (
	RecentResultsLimit = 10
	AdminFeedLimit     = 20
)

// MatchResult is a match joined with its players. A player deleted after scheduling leaves
// the corresponding Player zero-valued.
type MatchResult struct {
	Match        match.Match
	Player1      player.Player
	Player2      player.Player
	Player1Total float64
	Player2Total float64
	Winner       string
}

type ResultService struct {
	playerRepo player.Repository
	matchRepo  match.Repository
	now        func() time.Time
}

func NewResultService(playerRepo player.Repository, matchRepo match.Repository) *ResultService {
	return &ResultService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		now:        time.Now,
	}
}

// RecentResults lists the latest matches whose first and second rounds carry a player 1 score.
func (s *ResultService) RecentResults(ctx context.Context) ([]MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.RecentResults")
	defer span.End()

	items, err := s.matchRepo.ListRecentCompleted(ctx, RecentResultsLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent results: %w", err)
	}

	return s.attachPlayers(ctx, items)
}

// AdminFeed lists the latest scheduled matches, scored or not, for results entry.
func (s *ResultService) AdminFeed(ctx context.Context) ([]MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.AdminFeed")
	defer span.End()

	items, err := s.matchRepo.ListLatest(ctx, AdminFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("list latest matches: %w", err)
	}

	return s.attachPlayers(ctx, items)
}

// SaveScores overwrites all four scores of a match in one write. Both rounds are checked
// before anything is sent to the store.
func (s *ResultService) SaveScores(ctx context.Context, matchID string, scores match.Scores) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.SaveScores")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if err := match.ValidateScores(scores); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.matchRepo.UpdateScores(ctx, matchID, scores, s.now().UTC()); err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		}
		return fmt.Errorf("update match scores: %w", err)
	}

	return nil
}

func (s *ResultService) attachPlayers(ctx context.Context, items []match.Match) ([]MatchResult, error) {
	out := make([]MatchResult, 0, len(items))
	if len(items) == 0 {
		return out, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, match.CollectPlayerIDs(items))
	if err != nil {
		return nil, fmt.Errorf("get match players: %w", err)
	}
	byID := player.IndexByID(players)

	for _, item := range items {
		out = append(out, MatchResult{
			Match:        item,
			Player1:      byID[item.Player1ID],
			Player2:      byID[item.Player2ID],
			Player1Total: item.Scores.Player1Total(),
			Player2Total: item.Scores.Player2Total(),
			Winner:       item.Winner(),
		})
	}

	return out, nil
}
