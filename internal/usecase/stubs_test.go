package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
)

type stubPlayerRepository struct {
	mu        sync.Mutex
	players   []player.Player
	listErr   error
	createErr error
	deleteErr error
	calls     *[]string
	created   []player.Player
	deleted   []string
}

func (s *stubPlayerRepository) record(call string) {
	if s.calls == nil {
		return
	}
	s.mu.Lock()
	*s.calls = append(*s.calls, call)
	s.mu.Unlock()
}

func (s *stubPlayerRepository) ListOrderedByLastName(context.Context) ([]player.Player, error) {
	s.record("players.list")
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]player.Player(nil), s.players...), nil
}

func (s *stubPlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	s.record("players.get_by_ids")
	if s.listErr != nil {
		return nil, s.listErr
	}
	want := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		want[id] = struct{}{}
	}
	out := make([]player.Player, 0, len(playerIDs))
	for _, item := range s.players {
		if _, ok := want[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubPlayerRepository) Create(_ context.Context, item player.Player) (player.Player, error) {
	s.record("players.create")
	if s.createErr != nil {
		return player.Player{}, s.createErr
	}
	item.ID = "generated-id"
	s.created = append(s.created, item)
	return item, nil
}

func (s *stubPlayerRepository) Delete(_ context.Context, playerID string) error {
	s.record("players.delete")
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, playerID)
	return nil
}

func (s *stubPlayerRepository) DeleteAll(context.Context) error {
	s.record("players.delete_all")
	return s.deleteErr
}

type stubMatchRepository struct {
	mu        sync.Mutex
	matches   []match.Match
	listErr   error
	deleteErr error
	calls     *[]string
}

func (s *stubMatchRepository) record(call string) {
	if s.calls == nil {
		return
	}
	s.mu.Lock()
	*s.calls = append(*s.calls, call)
	s.mu.Unlock()
}

func (s *stubMatchRepository) List(context.Context) ([]match.Match, error) {
	s.record("matches.list")
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]match.Match(nil), s.matches...), nil
}

func (s *stubMatchRepository) ListRecentCompleted(context.Context, int) ([]match.Match, error) {
	s.record("matches.recent")
	return s.matches, s.listErr
}

func (s *stubMatchRepository) ListLatest(context.Context, int) ([]match.Match, error) {
	s.record("matches.latest")
	return s.matches, s.listErr
}

func (s *stubMatchRepository) CreatePair(_ context.Context, items []match.Match) ([]match.Match, error) {
	s.record("matches.create_pair")
	return items, nil
}

func (s *stubMatchRepository) UpdateScores(context.Context, string, match.Scores, time.Time) error {
	s.record("matches.update_scores")
	return nil
}

func (s *stubMatchRepository) DeleteAll(context.Context) error {
	s.record("matches.delete_all")
	return s.deleteErr
}
