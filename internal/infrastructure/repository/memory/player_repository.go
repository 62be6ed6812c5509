package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/forces-league/internal/domain/player"
	"github.com/riskibarqy/forces-league/internal/platform/id"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
	ids     id.Generator
	now     func() time.Time
}

func NewPlayerRepository(ids id.Generator, seed []player.Player) *PlayerRepository {
	players := make(map[string]player.Player, len(seed))
	for _, p := range seed {
		players[p.ID] = p
	}

	return &PlayerRepository{
		players: players,
		ids:     ids,
		now:     time.Now,
	}
}

func (r *PlayerRepository) ListOrderedByLastName(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName == out[j].LastName {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].LastName < out[j].LastName
	})

	return out, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, playerID := range playerIDs {
		if _, dup := seen[playerID]; dup {
			continue
		}
		seen[playerID] = struct{}{}
		p, ok := r.players[playerID]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) (player.Player, error) {
	playerID, err := r.ids.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	created := player.Player{
		ID:        playerID,
		FirstName: item.FirstName,
		LastName:  item.LastName,
		CreatedAt: r.now().UTC(),
	}

	r.mu.Lock()
	r.players[created.ID] = created
	r.mu.Unlock()

	return created, nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; !ok {
		return fmt.Errorf("%w: %s", player.ErrNotFound, playerID)
	}
	delete(r.players, playerID)
	return nil
}

func (r *PlayerRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	r.players = make(map[string]player.Player)
	r.mu.Unlock()
	return nil
}
