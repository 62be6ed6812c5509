package app

import (
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/forces-league/internal/config"
	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
	"github.com/riskibarqy/forces-league/internal/infrastructure/datastore/rest"
	cacherepo "github.com/riskibarqy/forces-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/forces-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/forces-league/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/forces-league/internal/platform/cache"
	"github.com/riskibarqy/forces-league/internal/platform/id"
	"github.com/riskibarqy/forces-league/internal/platform/logging"
	"github.com/riskibarqy/forces-league/internal/platform/resilience"
)

type Repositories struct {
	Players player.Repository
	Matches match.Repository
	Close   func() error
}

func NewRepositories(cfg config.Config, logger *logging.Logger) (Repositories, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		repos Repositories
		err   error
	)
	switch cfg.DataStoreDriver {
	case config.DriverREST:
		repos, err = newRESTRepositories(cfg, logger)
	case config.DriverPostgres:
		repos, err = newPostgresRepositories(cfg)
	case config.DriverMemory:
		ids := id.NewUUIDGenerator()
		repos = Repositories{
			Players: memory.NewPlayerRepository(ids, memory.SeedPlayers()),
			Matches: memory.NewMatchRepository(ids, memory.SeedMatches()),
		}
	default:
		return Repositories{}, fmt.Errorf("unsupported data store driver %q", cfg.DataStoreDriver)
	}
	if err != nil {
		return Repositories{}, err
	}
	if repos.Close == nil {
		repos.Close = func() error { return nil }
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.Players = cacherepo.NewPlayerRepository(repos.Players, store)
		repos.Matches = cacherepo.NewMatchRepository(repos.Matches, store)
	}

	logger.Info("data store ready",
		"driver", cfg.DataStoreDriver,
		"cache_enabled", cfg.CacheEnabled,
	)

	return repos, nil
}

func newRESTRepositories(cfg config.Config, logger *logging.Logger) (Repositories, error) {
	client, err := rest.NewClient(rest.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.DataStoreTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL: cfg.DataStoreURL,
		APIKey:  cfg.DataStoreKey,
		Timeout: cfg.DataStoreTimeout,
		Logger:  logger.Named("datastore"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.DataStoreCircuitEnabled,
			FailureThreshold: cfg.DataStoreCircuitFailureCount,
			OpenTimeout:      cfg.DataStoreCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.DataStoreCircuitHalfOpenMaxReq,
		},
	})
	if err != nil {
		return Repositories{}, fmt.Errorf("build data store client: %w", err)
	}

	return Repositories{
		Players: rest.NewPlayerRepository(client),
		Matches: rest.NewMatchRepository(client),
	}, nil
}

func newPostgresRepositories(cfg config.Config) (Repositories, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters), dbTraceOptions(cfg)...)
	if err != nil {
		return Repositories{}, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return Repositories{}, fmt.Errorf("ping postgres: %w", err)
	}

	return Repositories{
		Players: postgres.NewPlayerRepository(db),
		Matches: postgres.NewMatchRepository(db),
		Close:   db.Close,
	}, nil
}
