package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/panjf2000/ants/v2"
	"github.com/urfave/cli/v2"

	"github.com/riskibarqy/forces-league/internal/app"
	"github.com/riskibarqy/forces-league/internal/config"
	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
	"github.com/riskibarqy/forces-league/internal/platform/logging"
)

const minSeasonPlayers = 4

func main() {
	logger := logging.NewJSON(logging.LevelInfo).Named("seed")
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if err := newApp(logger).Run(os.Args); err != nil {
		logger.Error("seed failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newApp(logger *logging.Logger) *cli.App {
	return &cli.App{
		Name:  "seed",
		Usage: "populate the league data store with sample players and matches",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "random seed, 0 picks one from the clock",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: 4,
				Usage: "concurrent writes against the data store",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "players",
				Usage: "create fake players",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "count", Value: 8},
				},
				Action: withServices(logger, func(c *cli.Context, services app.Services) error {
					created, err := seedPlayers(c.Context, services, newFaker(c.Uint64("seed")), c.Int("count"), c.Int("workers"))
					if err != nil {
						return err
					}
					logger.Info("players created", "count", created)
					return nil
				}),
			},
			{
				Name:  "season",
				Usage: "schedule weekly pairs between existing players and record their scores",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "weeks", Value: 6},
					&cli.TimestampFlag{
						Name:   "start",
						Layout: match.DateLayout,
						Usage:  "first match day, defaults to weeks ago from today",
					},
				},
				Action: withServices(logger, func(c *cli.Context, services app.Services) error {
					weeks := c.Int("weeks")
					start := match.DateOf(time.Now().AddDate(0, 0, -7*weeks))
					if ts := c.Timestamp("start"); ts != nil {
						start = match.DateOf(*ts)
					}
					scheduled, err := seedSeason(c.Context, services, newFaker(c.Uint64("seed")), start, weeks, c.Int("workers"))
					if err != nil {
						return err
					}
					logger.Info("season scheduled", "matches", scheduled, "start", start.String(), "weeks", weeks)
					return nil
				}),
			},
			{
				Name:  "reset",
				Usage: "delete every match and player",
				Action: withServices(logger, func(c *cli.Context, services app.Services) error {
					if err := services.Admin.ResetDatabase(c.Context); err != nil {
						return err
					}
					logger.Info("data store reset")
					return nil
				}),
			},
		},
	}
}

func withServices(logger *logging.Logger, fn func(*cli.Context, app.Services) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		repos, err := app.NewRepositories(cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := repos.Close(); err != nil {
				logger.Warn("close data store", "error", err)
			}
		}()
		return fn(c, app.NewServices(cfg, repos))
	}
}

func newFaker(seed uint64) *gofakeit.Faker {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return gofakeit.New(seed)
}

func seedPlayers(ctx context.Context, services app.Services, faker *gofakeit.Faker, count, workers int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("count must be positive")
	}

	names := fakeNames(faker, count)
	var created atomic.Int32
	err := runConcurrently(workers, len(names), func(i int) error {
		if _, err := services.Players.Create(ctx, names[i].FirstName, names[i].LastName); err != nil {
			return fmt.Errorf("create player %s: %w", names[i].FullName(), err)
		}
		created.Add(1)
		return nil
	})
	return int(created.Load()), err
}

func seedSeason(ctx context.Context, services app.Services, faker *gofakeit.Faker, start match.Date, weeks, workers int) (int, error) {
	players, err := services.Players.List(ctx)
	if err != nil {
		return 0, err
	}
	requests, err := planSeason(faker, players, start, weeks)
	if err != nil {
		return 0, err
	}

	// the faker is not safe for concurrent use, so draw every score up front
	scores := make([][2]match.Scores, len(requests))
	for i := range scores {
		scores[i] = [2]match.Scores{randomScores(faker), randomScores(faker)}
	}

	var scheduled atomic.Int32
	err = runConcurrently(workers, len(requests), func(i int) error {
		items, err := services.Schedule.SchedulePair(ctx, requests[i])
		if err != nil {
			return fmt.Errorf("schedule %s: %w", requests[i].Date, err)
		}
		for j, item := range items {
			if j >= len(scores[i]) {
				break
			}
			if err := services.Results.SaveScores(ctx, item.ID, scores[i][j]); err != nil {
				return fmt.Errorf("save scores for match %s: %w", item.ID, err)
			}
			scheduled.Add(1)
		}
		return nil
	})
	return int(scheduled.Load()), err
}

// planSeason builds one pair request per week, each using four distinct players.
func planSeason(faker *gofakeit.Faker, players []player.Player, start match.Date, weeks int) ([]match.PairRequest, error) {
	if weeks <= 0 {
		return nil, fmt.Errorf("weeks must be positive")
	}
	if len(players) < minSeasonPlayers {
		return nil, fmt.Errorf("season needs at least %d players, have %d", minSeasonPlayers, len(players))
	}

	ids := make([]string, len(players))
	for i, item := range players {
		ids[i] = item.ID
	}

	requests := make([]match.PairRequest, 0, weeks)
	day := start.Time()
	for week := 0; week < weeks; week++ {
		faker.ShuffleStrings(ids)
		requests = append(requests, match.PairRequest{
			Date:   match.DateOf(day.AddDate(0, 0, 7*week)),
			First:  match.Pairing{Player1ID: ids[0], Player2ID: ids[1]},
			Second: match.Pairing{Player1ID: ids[2], Player2ID: ids[3]},
		})
	}
	return requests, nil
}

func fakeNames(faker *gofakeit.Faker, count int) []player.Player {
	out := make([]player.Player, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, player.Player{
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
		})
	}
	return out
}

var roundOutcomes = []float64{match.ScoreLoss, match.ScoreDraw, match.ScoreWin}

func randomScores(faker *gofakeit.Faker) match.Scores {
	r1 := roundOutcomes[faker.IntRange(0, len(roundOutcomes)-1)]
	r2 := roundOutcomes[faker.IntRange(0, len(roundOutcomes)-1)]
	return match.Scores{
		Round1Player1: match.Score(r1),
		Round1Player2: match.Score(match.ScoreWin - r1),
		Round2Player1: match.Score(r2),
		Round2Player2: match.Score(match.ScoreWin - r2),
	}
}

// runConcurrently submits n tasks to an ants pool and returns the first error.
func runConcurrently(workers, n int, task func(i int) error) error {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	return runOnPool(pool, n, task)
}

type submitter interface {
	Submit(task func()) error
}

// runOnPool stops submitting after the first submit failure but always waits for the
// tasks already handed to the pool.
func runOnPool(pool submitter, n int, task func(i int) error) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := task(i); err != nil {
				record(err)
			}
		}); err != nil {
			wg.Done()
			record(fmt.Errorf("submit seed task: %w", err))
			break
		}
	}
	wg.Wait()
	return firstErr
}
