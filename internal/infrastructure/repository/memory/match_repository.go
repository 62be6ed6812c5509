package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/platform/id"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.Match
	ids     id.Generator
	now     func() time.Time
}

func NewMatchRepository(ids id.Generator, seed []match.Match) *MatchRepository {
	matches := make([]match.Match, 0, len(seed))
	for _, m := range seed {
		matches = append(matches, cloneMatch(m))
	}

	return &MatchRepository{
		matches: matches,
		ids:     ids,
		now:     time.Now,
	}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneMatches(r.matches), nil
}

func (r *MatchRepository) ListRecentCompleted(_ context.Context, limit int) ([]match.Match, error) {
	r.mu.RLock()
	items := make([]match.Match, 0, len(r.matches))
	for _, m := range r.matches {
		if m.Scores.Round1Player1 == nil || m.Scores.Round2Player1 == nil {
			continue
		}
		items = append(items, cloneMatch(m))
	}
	r.mu.RUnlock()

	return newestFirst(items, limit), nil
}

func (r *MatchRepository) ListLatest(_ context.Context, limit int) ([]match.Match, error) {
	r.mu.RLock()
	items := cloneMatches(r.matches)
	r.mu.RUnlock()

	return newestFirst(items, limit), nil
}

func (r *MatchRepository) CreatePair(_ context.Context, items []match.Match) ([]match.Match, error) {
	now := r.now().UTC()
	created := make([]match.Match, 0, len(items))
	for _, item := range items {
		matchID, err := r.ids.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate match id: %w", err)
		}
		row := cloneMatch(item)
		row.ID = matchID
		row.CreatedAt = now
		row.UpdatedAt = now
		created = append(created, row)
	}

	r.mu.Lock()
	r.matches = append(r.matches, created...)
	r.mu.Unlock()

	return cloneMatches(created), nil
}

func (r *MatchRepository) UpdateScores(_ context.Context, matchID string, scores match.Scores, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.matches {
		if r.matches[i].ID != matchID {
			continue
		}
		r.matches[i].Scores = cloneScores(scores)
		r.matches[i].UpdatedAt = updatedAt
		return nil
	}

	return fmt.Errorf("%w: %s", match.ErrNotFound, matchID)
}

func (r *MatchRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	r.matches = nil
	r.mu.Unlock()
	return nil
}

func newestFirst(items []match.Match, limit int) []match.Match {
	sort.SliceStable(items, func(i, j int) bool {
		return items[j].Date.Before(items[i].Date)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func cloneMatches(items []match.Match) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		out = append(out, cloneMatch(item))
	}
	return out
}

func cloneMatch(m match.Match) match.Match {
	m.Scores = cloneScores(m.Scores)
	return m
}

func cloneScores(s match.Scores) match.Scores {
	return match.Scores{
		Round1Player1: cloneScore(s.Round1Player1),
		Round1Player2: cloneScore(s.Round1Player2),
		Round2Player1: cloneScore(s.Round2Player1),
		Round2Player2: cloneScore(s.Round2Player2),
	}
}

func cloneScore(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
