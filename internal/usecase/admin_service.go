package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
)

// AccessGate compares a supplied password with the configured admin password. It issues no
// token; every admin request carries the password again.
type AccessGate struct {
	password []byte
}

func NewAccessGate(password string) *AccessGate {
	return &AccessGate{password: []byte(password)}
}

func (g *AccessGate) Authenticate(password string) error {
	if g == nil || len(g.password) == 0 {
		return fmt.Errorf("%w: admin access is not configured", ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(password), g.password) != 1 {
		return fmt.Errorf("%w: invalid admin password", ErrUnauthorized)
	}
	return nil
}

type AdminService struct {
	playerRepo player.Repository
	matchRepo  match.Repository
}

func NewAdminService(playerRepo player.Repository, matchRepo match.Repository) *AdminService {
	return &AdminService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

// ResetDatabase deletes every match, then every player. A failure on matches leaves players
// untouched.
func (s *AdminService) ResetDatabase(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.ResetDatabase")
	defer span.End()

	if err := s.matchRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete all matches: %w", err)
	}
	if err := s.playerRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete all players: %w", err)
	}

	return nil
}
