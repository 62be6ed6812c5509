package httpapi

import (
	"net/http"

	"github.com/riskibarqy/forces-league/internal/usecase"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/results/recent", handler.ListRecentResults)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/admin/login", handler.AdminLogin)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, gate *usecase.AccessGate) {
	mux.Handle("POST /v1/admin/players", RequireAdmin(gate, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("DELETE /v1/admin/players/{playerID}", RequireAdmin(gate, http.HandlerFunc(handler.DeletePlayer)))
	mux.Handle("POST /v1/admin/matches/pairs", RequireAdmin(gate, http.HandlerFunc(handler.SchedulePair)))
	mux.Handle("GET /v1/admin/matches", RequireAdmin(gate, http.HandlerFunc(handler.ListAdminMatches)))
	mux.Handle("PUT /v1/admin/matches/{matchID}/scores", RequireAdmin(gate, http.HandlerFunc(handler.SaveMatchScores)))
	// Deletes every match, then every player.
	mux.Handle("POST /v1/admin/reset", RequireAdmin(gate, http.HandlerFunc(handler.ResetDatabase)))
}
