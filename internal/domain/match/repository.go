package match

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("match not found")

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	// ListRecentCompleted returns matches whose round 1 and round 2 player 1 scores are set,
	// newest date first.
	ListRecentCompleted(ctx context.Context, limit int) ([]Match, error)
	ListLatest(ctx context.Context, limit int) ([]Match, error)
	// CreatePair inserts both rows in one batch; either both are stored or neither is.
	CreatePair(ctx context.Context, items []Match) ([]Match, error)
	// UpdateScores overwrites all four scores and updated_at. ErrNotFound when no row matches.
	UpdateScores(ctx context.Context, matchID string, scores Scores, updatedAt time.Time) error
	DeleteAll(ctx context.Context) error
}
