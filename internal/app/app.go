package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/forces-league/internal/config"
	"github.com/riskibarqy/forces-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/forces-league/internal/platform/logging"
	"github.com/riskibarqy/forces-league/internal/usecase"
)

// Services groups the use cases shared by the HTTP server and the seed tool.
type Services struct {
	Players   *usecase.PlayerService
	Schedule  *usecase.ScheduleService
	Results   *usecase.ResultService
	Standings *usecase.StandingService
	Admin     *usecase.AdminService
	Gate      *usecase.AccessGate
}

func NewServices(cfg config.Config, repos Repositories) Services {
	return Services{
		Players:   usecase.NewPlayerService(repos.Players),
		Schedule:  usecase.NewScheduleService(repos.Matches),
		Results:   usecase.NewResultService(repos.Players, repos.Matches),
		Standings: usecase.NewStandingService(repos.Players, repos.Matches),
		Admin:     usecase.NewAdminService(repos.Players, repos.Matches),
		Gate:      usecase.NewAccessGate(cfg.AdminPassword),
	}
}

// NewHTTPServer wires the configured data store into the API. The returned close function
// releases the store connection and must be called after the server stops.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := NewRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	services := NewServices(cfg, repos)
	handler := httpapi.NewHandler(
		services.Players,
		services.Schedule,
		services.Results,
		services.Standings,
		services.Admin,
		services.Gate,
		logger.Named("httpapi"),
	)
	router := httpapi.NewRouter(handler, services.Gate, logger.Named("http"), cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.Close, nil
}
