package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	ListOrderedByLastName(ctx context.Context) ([]Player, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	// Create inserts first and last name only; the store assigns ID and CreatedAt.
	Create(ctx context.Context, item Player) (Player, error)
	// Delete removes one player. ErrNotFound when no row matches. Matches referencing the
	// player are left untouched.
	Delete(ctx context.Context, playerID string) error
	DeleteAll(ctx context.Context) error
}
