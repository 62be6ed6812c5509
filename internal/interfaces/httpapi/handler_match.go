package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/usecase"
)

func (h *Handler) SchedulePair(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SchedulePair")
	defer span.End()

	if err := requireAdminContext(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	var req schedulePairRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	// An empty date stays zero and is reported by the scheduler with the other missing fields.
	var date match.Date
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := match.ParseDate(req.Date)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
			return
		}
		date = parsed
	}

	created, err := h.scheduleService.SchedulePair(ctx, match.PairRequest{
		Date:   date,
		First:  match.Pairing{Player1ID: req.First.Player1ID, Player2ID: req.First.Player2ID},
		Second: match.Pairing{Player1ID: req.Second.Player1ID, Player2ID: req.Second.Player2ID},
	})
	if err != nil {
		h.logger.WarnContext(ctx, "schedule match pair failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(created))
	for _, m := range created {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusCreated, items)
}

func (h *Handler) ListAdminMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAdminMatches")
	defer span.End()

	if err := requireAdminContext(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.resultService.AdminFeed(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list admin matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchResultDTO, 0, len(results))
	for _, item := range results {
		items = append(items, matchResultToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SaveMatchScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMatchScores")
	defer span.End()

	if err := requireAdminContext(ctx); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	var req saveScoresRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.resultService.SaveScores(ctx, matchID, req.toScores()); err != nil {
		h.logger.WarnContext(ctx, "save match scores failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListRecentResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRecentResults")
	defer span.End()

	results, err := h.resultService.RecentResults(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list recent results failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchResultDTO, 0, len(results))
	for _, item := range results {
		items = append(items, matchResultToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
