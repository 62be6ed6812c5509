package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
	"github.com/riskibarqy/forces-league/internal/platform/logging"
	"github.com/riskibarqy/forces-league/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	playerService   *usecase.PlayerService
	scheduleService *usecase.ScheduleService
	resultService   *usecase.ResultService
	standingService *usecase.StandingService
	adminService    *usecase.AdminService
	gate            *usecase.AccessGate
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	scheduleService *usecase.ScheduleService,
	resultService *usecase.ResultService,
	standingService *usecase.StandingService,
	adminService *usecase.AdminService,
	gate *usecase.AccessGate,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:   playerService,
		scheduleService: scheduleService,
		resultService:   resultService,
		standingService: standingService,
		adminService:    adminService,
		gate:            gate,
		logger:          logger,
		validator:       newValidator(),
	}
}

type validationRule struct {
	tag string
	fn  validator.Func
}

var requestValidationRules = []validationRule{
	{tag: "roundscore", fn: func(fl validator.FieldLevel) bool {
		switch fl.Field().Float() {
		case match.ScoreLoss, match.ScoreDraw, match.ScoreWin:
			return true
		default:
			return false
		}
	}},
	{tag: "isodate", fn: func(fl validator.FieldLevel) bool {
		_, err := match.ParseDate(fl.Field().String())
		return err == nil
	}},
}

// newValidator panics when a rule cannot be registered; the rules are fixed at build time.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidationRules(v, requestValidationRules); err != nil {
		panic(err)
	}
	return v
}

func registerValidationRules(v *validator.Validate, rules []validationRule) error {
	for _, rule := range rules {
		if err := v.RegisterValidation(rule.tag, rule.fn); err != nil {
			return fmt.Errorf("register %q validation: %w", rule.tag, err)
		}
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, target any) error {
	decoder := jsoniter.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type adminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type createPlayerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

type pairingRequest struct {
	Player1ID string `json:"player1_id" validate:"omitempty,max=64"`
	Player2ID string `json:"player2_id" validate:"omitempty,max=64"`
}

// Missing pair fields are left to the scheduler so the caller sees its own message.
type schedulePairRequest struct {
	Date   string         `json:"date" validate:"omitempty,isodate"`
	First  pairingRequest `json:"first"`
	Second pairingRequest `json:"second"`
}

type saveScoresRequest struct {
	Round1Player1 *float64 `json:"round1_player1_score" validate:"omitempty,roundscore"`
	Round1Player2 *float64 `json:"round1_player2_score" validate:"omitempty,roundscore"`
	Round2Player1 *float64 `json:"round2_player1_score" validate:"omitempty,roundscore"`
	Round2Player2 *float64 `json:"round2_player2_score" validate:"omitempty,roundscore"`
}

type playerDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at,omitempty"`
}

type standingDTO struct {
	Rank          int     `json:"rank"`
	PlayerID      string  `json:"player_id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	TotalPoints   float64 `json:"total_points"`
	Wins          int     `json:"wins"`
	Draws         int     `json:"draws"`
	Losses        int     `json:"losses"`
	MatchesPlayed int     `json:"matches_played"`
}

type scoresDTO struct {
	Round1Player1 *float64 `json:"round1_player1_score"`
	Round1Player2 *float64 `json:"round1_player2_score"`
	Round2Player1 *float64 `json:"round2_player1_score"`
	Round2Player2 *float64 `json:"round2_player2_score"`
}

type matchDTO struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Player1ID string    `json:"player1_id"`
	Player2ID string    `json:"player2_id"`
	Scores    scoresDTO `json:"scores"`
	Complete  bool      `json:"complete"`
}

type matchResultDTO struct {
	matchDTO
	Player1      playerDTO `json:"player1"`
	Player2      playerDTO `json:"player2"`
	Player1Total float64   `json:"player1_total"`
	Player2Total float64   `json:"player2_total"`
	Winner       string    `json:"winner"`
	UpdatedAt    string    `json:"updated_at,omitempty"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:        v.ID,
		FirstName: v.FirstName,
		LastName:  v.LastName,
		FullName:  v.FullName(),
		CreatedAt: formatTime(v.CreatedAt),
	}
}

func standingToDTO(v usecase.StandingRow) standingDTO {
	return standingDTO{
		Rank:          v.Rank,
		PlayerID:      v.PlayerID,
		FirstName:     v.FirstName,
		LastName:      v.LastName,
		TotalPoints:   v.TotalPoints,
		Wins:          v.Wins,
		Draws:         v.Draws,
		Losses:        v.Losses,
		MatchesPlayed: v.MatchesPlayed,
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:        v.ID,
		Date:      v.Date.String(),
		Player1ID: v.Player1ID,
		Player2ID: v.Player2ID,
		Scores: scoresDTO{
			Round1Player1: v.Scores.Round1Player1,
			Round1Player2: v.Scores.Round1Player2,
			Round2Player1: v.Scores.Round2Player1,
			Round2Player2: v.Scores.Round2Player2,
		},
		Complete: v.Scores.Complete(),
	}
}

func matchResultToDTO(v usecase.MatchResult) matchResultDTO {
	return matchResultDTO{
		matchDTO:     matchToDTO(v.Match),
		Player1:      playerToDTO(v.Player1),
		Player2:      playerToDTO(v.Player2),
		Player1Total: v.Player1Total,
		Player2Total: v.Player2Total,
		Winner:       v.Winner,
		UpdatedAt:    formatTime(v.Match.UpdatedAt),
	}
}

func (r saveScoresRequest) toScores() match.Scores {
	return match.Scores{
		Round1Player1: r.Round1Player1,
		Round1Player2: r.Round1Player2,
		Round2Player1: r.Round2Player1,
		Round2Player2: r.Round2Player2,
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
