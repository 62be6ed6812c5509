package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/forces-league/internal/domain/match"
	qb "github.com/riskibarqy/forces-league/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

var matchSelectColumns = []string{
	"id::text AS id",
	"match_date",
	"player1_id::text AS player1_id",
	"player2_id::text AS player2_id",
	"round1_player1_score",
	"round1_player2_score",
	"round2_player1_score",
	"round2_player2_score",
	"created_at",
	"updated_at",
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}
	return r.selectMatches(ctx, "select matches", query, args)
}

func (r *MatchRepository) ListRecentCompleted(ctx context.Context, limit int) ([]match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(
			qb.IsNotNull("round1_player1_score"),
			qb.IsNotNull("round2_player1_score"),
		).
		OrderBy("match_date DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select recent completed matches query: %w", err)
	}
	return r.selectMatches(ctx, "select recent completed matches", query, args)
}

func (r *MatchRepository) ListLatest(ctx context.Context, limit int) ([]match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		OrderBy("match_date DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select latest matches query: %w", err)
	}
	return r.selectMatches(ctx, "select latest matches", query, args)
}

// CreatePair writes both rows with one multi-row INSERT, which Postgres applies atomically.
func (r *MatchRepository) CreatePair(ctx context.Context, items []match.Match) ([]match.Match, error) {
	models := make([]matchInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, matchInsertModel{
			MatchDate: item.Date,
			Player1ID: item.Player1ID,
			Player2ID: item.Player2ID,
		})
	}

	query, args, err := qb.InsertModels("matches", models, "RETURNING "+strings.Join(matchSelectColumns, ", "))
	if err != nil {
		return nil, fmt.Errorf("build insert matches query: %w", err)
	}
	return r.selectMatches(ctx, "insert matches", query, args)
}

func (r *MatchRepository) UpdateScores(ctx context.Context, matchID string, scores match.Scores, updatedAt time.Time) error {
	query, args, err := qb.Update("matches").
		Set("round1_player1_score", nullFloat(scores.Round1Player1)).
		Set("round1_player2_score", nullFloat(scores.Round1Player2)).
		Set("round2_player1_score", nullFloat(scores.Round2Player1)).
		Set("round2_player2_score", nullFloat(scores.Round2Player2)).
		Set("updated_at", updatedAt).
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match scores query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return fmt.Errorf("%w: %s", match.ErrNotFound, matchID)
		}
		return fmt.Errorf("update match scores: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update match scores: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", match.ErrNotFound, matchID)
	}

	return nil
}

func (r *MatchRepository) DeleteAll(ctx context.Context) error {
	query, args, err := qb.DeleteFrom("matches").All().ToSQL()
	if err != nil {
		return fmt.Errorf("build delete all matches query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete all matches: %w", err)
	}
	return nil
}

func (r *MatchRepository) selectMatches(ctx context.Context, op, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchRowToDomain(row))
	}
	return out, nil
}

func matchRowToDomain(row matchTableModel) match.Match {
	return match.Match{
		ID:        row.ID,
		Date:      row.MatchDate,
		Player1ID: row.Player1ID,
		Player2ID: row.Player2ID,
		Scores: match.Scores{
			Round1Player1: floatPtr(row.Round1Player1Score),
			Round1Player2: floatPtr(row.Round1Player2Score),
			Round2Player1: floatPtr(row.Round2Player1Score),
			Round2Player2: floatPtr(row.Round2Player2Score),
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
