package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
	basecache "github.com/riskibarqy/forces-league/internal/platform/cache"
)

const (
	playerKeyPrefix = "player:"
	matchKeyPrefix  = "match:"
)

// PlayerRepository caches player reads. Every write through it drops all cached player keys
// before and after the write, whether or not the write succeeded.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListOrderedByLastName(ctx context.Context) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, playerKeyPrefix+"list", func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.ListOrderedByLastName(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, playerIDsKey(playerIDs), func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.GetByIDs(ctx, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) (player.Player, error) {
	defer invalidate(ctx, r.cache, playerKeyPrefix)()
	return r.next.Create(ctx, item)
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	defer invalidate(ctx, r.cache, playerKeyPrefix)()
	return r.next.Delete(ctx, playerID)
}

func (r *PlayerRepository) DeleteAll(ctx context.Context) error {
	defer invalidate(ctx, r.cache, playerKeyPrefix)()
	return r.next.DeleteAll(ctx)
}

// invalidate drops prefix now and again when the returned func runs, so a read racing the
// write cannot cache what it saw before the write landed.
func invalidate(ctx context.Context, store *basecache.Store, prefix string) func() {
	store.DeletePrefix(ctx, prefix)
	return func() { store.DeletePrefix(ctx, prefix) }
}

func playerIDsKey(playerIDs []string) string {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	return playerKeyPrefix + "ids:" + strings.Join(ids, ",")
}

// MatchRepository caches match reads with the same write-invalidation rule as PlayerRepository.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	return r.load(ctx, matchKeyPrefix+"list", r.next.List)
}

func (r *MatchRepository) ListRecentCompleted(ctx context.Context, limit int) ([]match.Match, error) {
	return r.load(ctx, matchKeyPrefix+"recent:"+strconv.Itoa(limit), func(ctx context.Context) ([]match.Match, error) {
		return r.next.ListRecentCompleted(ctx, limit)
	})
}

func (r *MatchRepository) ListLatest(ctx context.Context, limit int) ([]match.Match, error) {
	return r.load(ctx, matchKeyPrefix+"latest:"+strconv.Itoa(limit), func(ctx context.Context) ([]match.Match, error) {
		return r.next.ListLatest(ctx, limit)
	})
}

func (r *MatchRepository) CreatePair(ctx context.Context, items []match.Match) ([]match.Match, error) {
	defer invalidate(ctx, r.cache, matchKeyPrefix)()
	return r.next.CreatePair(ctx, items)
}

func (r *MatchRepository) UpdateScores(ctx context.Context, matchID string, scores match.Scores, updatedAt time.Time) error {
	defer invalidate(ctx, r.cache, matchKeyPrefix)()
	return r.next.UpdateScores(ctx, matchID, scores, updatedAt)
}

func (r *MatchRepository) DeleteAll(ctx context.Context) error {
	defer invalidate(ctx, r.cache, matchKeyPrefix)()
	return r.next.DeleteAll(ctx)
}

func (r *MatchRepository) load(ctx context.Context, key string, loader func(context.Context) ([]match.Match, error)) ([]match.Match, error) {
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]match.Match, error) {
		items, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return cloneMatches(items), nil
	})
	if err != nil {
		return nil, err
	}
	return cloneMatches(items), nil
}

func cloneMatches(items []match.Match) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		item.Scores = match.Scores{
			Round1Player1: cloneScore(item.Scores.Round1Player1),
			Round1Player2: cloneScore(item.Scores.Round1Player2),
			Round2Player1: cloneScore(item.Scores.Round2Player1),
			Round2Player2: cloneScore(item.Scores.Round2Player2),
		}
		out = append(out, item)
	}
	return out
}

func cloneScore(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
