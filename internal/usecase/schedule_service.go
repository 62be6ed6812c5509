package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/forces-league/internal/domain/match"
)

// ScheduleService turns a validated pair request into two unscored matches.
type ScheduleService struct {
	matchRepo match.Repository
}

func NewScheduleService(matchRepo match.Repository) *ScheduleService {
	return &ScheduleService{matchRepo: matchRepo}
}

func (s *ScheduleService) SchedulePair(ctx context.Context, req match.PairRequest) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.SchedulePair")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	created, err := s.matchRepo.CreatePair(ctx, req.Matches())
	if err != nil {
		return nil, fmt.Errorf("create match pair: %w", err)
	}

	return created, nil
}
