package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/riskibarqy/forces-league/internal/domain/player"
)

const playersTable = "players"

type playerRow struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

type playerInsertRow struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type PlayerRepository struct {
	client *Client
}

func NewPlayerRepository(client *Client) *PlayerRepository {
	return &PlayerRepository{client: client}
}

func (r *PlayerRepository) ListOrderedByLastName(ctx context.Context) ([]player.Player, error) {
	var rows []playerRow
	err := r.client.do(ctx, request{
		method: http.MethodGet,
		table:  playersTable,
		query:  url.Values{"select": {"*"}, "order": {"last_name.asc"}},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}
	return playerRowsToDomain(rows), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	var rows []playerRow
	err := r.client.do(ctx, request{
		method: http.MethodGet,
		table:  playersTable,
		query:  url.Values{"select": {"*"}, "id": {inFilter(playerIDs)}},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}
	return playerRowsToDomain(rows), nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) (player.Player, error) {
	var rows []playerRow
	err := r.client.do(ctx, request{
		method: http.MethodPost,
		table:  playersTable,
		body:   []playerInsertRow{{FirstName: item.FirstName, LastName: item.LastName}},
		prefer: preferRepresentation,
	}, &rows)
	if err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}
	if len(rows) != 1 {
		return player.Player{}, fmt.Errorf("insert player: expected 1 returned row, got %d", len(rows))
	}
	return playerRowToDomain(rows[0]), nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	var rows []playerRow
	err := r.client.do(ctx, request{
		method: http.MethodDelete,
		table:  playersTable,
		query:  url.Values{"id": {"eq." + playerID}},
		prefer: preferRepresentation,
	}, &rows)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("%w: %s", player.ErrNotFound, playerID)
		}
		return fmt.Errorf("delete player: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s", player.ErrNotFound, playerID)
	}
	return nil
}

func (r *PlayerRepository) DeleteAll(ctx context.Context) error {
	err := r.client.do(ctx, request{
		method: http.MethodDelete,
		table:  playersTable,
		query:  url.Values{"id": {"not.is.null"}},
		prefer: preferMinimal,
	}, nil)
	if err != nil {
		return fmt.Errorf("delete all players: %w", err)
	}
	return nil
}

func playerRowsToDomain(rows []playerRow) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerRowToDomain(row))
	}
	return out
}

func playerRowToDomain(row playerRow) player.Player {
	return player.Player{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		CreatedAt: row.CreatedAt,
	}
}

// inFilter renders in.("a","b") with each value quoted, so ids containing commas stay intact.
func inFilter(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, `"`+strings.ReplaceAll(v, `"`, `\"`)+`"`)
	}
	return "in.(" + strings.Join(quoted, ",") + ")"
}
