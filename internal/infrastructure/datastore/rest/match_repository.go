package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/riskibarqy/forces-league/internal/domain/match"
)

const matchesTable = "matches"

type matchRow struct {
	ID                 string     `json:"id"`
	MatchDate          match.Date `json:"match_date"`
	Player1ID          string     `json:"player1_id"`
	Player2ID          string     `json:"player2_id"`
	Round1Player1Score *float64   `json:"round1_player1_score"`
	Round1Player2Score *float64   `json:"round1_player2_score"`
	Round2Player1Score *float64   `json:"round2_player1_score"`
	Round2Player2Score *float64   `json:"round2_player2_score"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type matchInsertRow struct {
	MatchDate match.Date `json:"match_date"`
	Player1ID string     `json:"player1_id"`
	Player2ID string     `json:"player2_id"`
}

// matchScoresPatch always sends all four keys; a nil score is written as null.
type matchScoresPatch struct {
	Round1Player1Score *float64 `json:"round1_player1_score"`
	Round1Player2Score *float64 `json:"round1_player2_score"`
	Round2Player1Score *float64 `json:"round2_player1_score"`
	Round2Player2Score *float64 `json:"round2_player2_score"`
	UpdatedAt          string   `json:"updated_at"`
}

type MatchRepository struct {
	client *Client
}

func NewMatchRepository(client *Client) *MatchRepository {
	return &MatchRepository{client: client}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	return r.selectMatches(ctx, "select matches", url.Values{"select": {"*"}})
}

func (r *MatchRepository) ListRecentCompleted(ctx context.Context, limit int) ([]match.Match, error) {
	return r.selectMatches(ctx, "select recent completed matches", url.Values{
		"select":               {"*"},
		"round1_player1_score": {"not.is.null"},
		"round2_player1_score": {"not.is.null"},
		"order":                {"match_date.desc"},
		"limit":                {strconv.Itoa(limit)},
	})
}

func (r *MatchRepository) ListLatest(ctx context.Context, limit int) ([]match.Match, error) {
	return r.selectMatches(ctx, "select latest matches", url.Values{
		"select": {"*"},
		"order":  {"match_date.desc"},
		"limit":  {strconv.Itoa(limit)},
	})
}

// CreatePair posts both rows in one bulk insert, which the store applies in one statement.
func (r *MatchRepository) CreatePair(ctx context.Context, items []match.Match) ([]match.Match, error) {
	body := make([]matchInsertRow, 0, len(items))
	for _, item := range items {
		body = append(body, matchInsertRow{
			MatchDate: item.Date,
			Player1ID: item.Player1ID,
			Player2ID: item.Player2ID,
		})
	}

	var rows []matchRow
	err := r.client.do(ctx, request{
		method: http.MethodPost,
		table:  matchesTable,
		body:   body,
		prefer: preferRepresentation,
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("insert matches: %w", err)
	}
	return matchRowsToDomain(rows), nil
}

func (r *MatchRepository) UpdateScores(ctx context.Context, matchID string, scores match.Scores, updatedAt time.Time) error {
	var rows []matchRow
	err := r.client.do(ctx, request{
		method: http.MethodPatch,
		table:  matchesTable,
		query:  url.Values{"id": {"eq." + matchID}},
		body: matchScoresPatch{
			Round1Player1Score: scores.Round1Player1,
			Round1Player2Score: scores.Round1Player2,
			Round2Player1Score: scores.Round2Player1,
			Round2Player2Score: scores.Round2Player2,
			UpdatedAt:          updatedAt.UTC().Format(time.RFC3339Nano),
		},
		prefer: preferRepresentation,
	}, &rows)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("%w: %s", match.ErrNotFound, matchID)
		}
		return fmt.Errorf("update match scores: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s", match.ErrNotFound, matchID)
	}
	return nil
}

func (r *MatchRepository) DeleteAll(ctx context.Context) error {
	err := r.client.do(ctx, request{
		method: http.MethodDelete,
		table:  matchesTable,
		query:  url.Values{"id": {"not.is.null"}},
		prefer: preferMinimal,
	}, nil)
	if err != nil {
		return fmt.Errorf("delete all matches: %w", err)
	}
	return nil
}

func (r *MatchRepository) selectMatches(ctx context.Context, op string, query url.Values) ([]match.Match, error) {
	var rows []matchRow
	err := r.client.do(ctx, request{
		method: http.MethodGet,
		table:  matchesTable,
		query:  query,
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return matchRowsToDomain(rows), nil
}

func matchRowsToDomain(rows []matchRow) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Match{
			ID:        row.ID,
			Date:      row.MatchDate,
			Player1ID: row.Player1ID,
			Player2ID: row.Player2ID,
			Scores: match.Scores{
				Round1Player1: row.Round1Player1Score,
				Round1Player2: row.Round1Player2Score,
				Round2Player1: row.Round2Player1Score,
				Round2Player2: row.Round2Player2Score,
			},
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out
}
