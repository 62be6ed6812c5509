package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/forces-league/internal/domain/match"
)

type matchTableModel struct {
	ID                 string          `db:"id"`
	MatchDate          match.Date      `db:"match_date"`
	Player1ID          string          `db:"player1_id"`
	Player2ID          string          `db:"player2_id"`
	Round1Player1Score sql.NullFloat64 `db:"round1_player1_score"`
	Round1Player2Score sql.NullFloat64 `db:"round1_player2_score"`
	Round2Player1Score sql.NullFloat64 `db:"round2_player1_score"`
	Round2Player2Score sql.NullFloat64 `db:"round2_player2_score"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

type matchInsertModel struct {
	MatchDate match.Date `db:"match_date"`
	Player1ID string     `db:"player1_id"`
	Player2ID string     `db:"player2_id"`
}
