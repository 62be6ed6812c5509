package main

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/forces-league/internal/app"
	"github.com/riskibarqy/forces-league/internal/config"
	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
	"github.com/riskibarqy/forces-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/forces-league/internal/platform/id"
)

func newMemoryServices() app.Services {
	ids := id.NewUUIDGenerator()
	return app.NewServices(config.Config{AdminPassword: "secret"}, app.Repositories{
		Players: memory.NewPlayerRepository(ids, nil),
		Matches: memory.NewMatchRepository(ids, nil),
		Close:   func() error { return nil },
	})
}

func TestSeedPlayersAndSeason(t *testing.T) {
	ctx := context.Background()
	services := newMemoryServices()

	created, err := seedPlayers(ctx, services, newFaker(42), 6, 3)
	if err != nil {
		t.Fatalf("seed players: %v", err)
	}
	if created != 6 {
		t.Fatalf("expected 6 players, got %d", created)
	}

	start, _ := match.ParseDate("2026-01-05")
	scheduled, err := seedSeason(ctx, services, newFaker(42), start, 3, 2)
	if err != nil {
		t.Fatalf("seed season: %v", err)
	}
	if scheduled != 6 {
		t.Fatalf("expected 6 matches, got %d", scheduled)
	}

	feed, err := services.Results.AdminFeed(ctx)
	if err != nil {
		t.Fatalf("admin feed: %v", err)
	}
	if len(feed) != 6 {
		t.Fatalf("expected 6 matches in feed, got %d", len(feed))
	}
	for _, item := range feed {
		if !item.Match.Scores.Complete() {
			t.Fatalf("expected complete scores for match %s", item.Match.ID)
		}
		if item.Player1Total+item.Player2Total != 2 {
			t.Fatalf("expected totals to sum to 2, got %v and %v", item.Player1Total, item.Player2Total)
		}
	}

	standings, err := services.Standings.List(ctx)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	var played int
	for _, row := range standings {
		played += row.MatchesPlayed
	}
	if played != 12 {
		t.Fatalf("expected 12 player appearances, got %d", played)
	}
}

func TestSeedSeason_NeedsFourPlayers(t *testing.T) {
	ctx := context.Background()
	services := newMemoryServices()
	if _, err := seedPlayers(ctx, services, newFaker(7), 3, 1); err != nil {
		t.Fatalf("seed players: %v", err)
	}

	_, err := seedSeason(ctx, services, newFaker(7), match.Date{Year: 2026, Month: 1, Day: 5}, 2, 1)
	if err == nil || !strings.Contains(err.Error(), "at least 4 players") {
		t.Fatalf("expected player count error, got %v", err)
	}
}

func TestPlanSeason_DistinctPlayersEachWeek(t *testing.T) {
	players := []player.Player{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}
	start := match.Date{Year: 2026, Month: 3, Day: 2}

	requests, err := planSeason(newFaker(1), players, start, 4)
	if err != nil {
		t.Fatalf("plan season: %v", err)
	}
	if len(requests) != 4 {
		t.Fatalf("expected 4 weeks, got %d", len(requests))
	}
	for i, req := range requests {
		if err := req.Validate(); err != nil {
			t.Fatalf("week %d invalid: %v", i, err)
		}
		seen := map[string]bool{}
		for _, pid := range []string{req.First.Player1ID, req.First.Player2ID, req.Second.Player1ID, req.Second.Player2ID} {
			if seen[pid] {
				t.Fatalf("week %d reuses player %s", i, pid)
			}
			seen[pid] = true
		}
	}
	if got := requests[3].Date.String(); got != "2026-03-23" {
		t.Fatalf("expected fourth week on 2026-03-23, got %s", got)
	}
}

func TestRandomScores_AreValid(t *testing.T) {
	faker := newFaker(99)
	for i := 0; i < 50; i++ {
		if err := match.ValidateScores(randomScores(faker)); err != nil {
			t.Fatalf("invalid scores: %v", err)
		}
	}
}

func TestSeedPlayers_RejectsNonPositiveCount(t *testing.T) {
	if _, err := seedPlayers(context.Background(), newMemoryServices(), newFaker(1), 0, 1); err == nil {
		t.Fatal("expected error for zero count")
	}
}

var errPoolFull = errors.New("pool full")

// flakyPool runs submitted tasks on their own goroutine and refuses everything after accept.
type flakyPool struct {
	accept    int
	submitted int
}

func (p *flakyPool) Submit(task func()) error {
	if p.submitted >= p.accept {
		return errPoolFull
	}
	p.submitted++
	go task()
	return nil
}

func TestRunOnPool_WaitsForSubmittedTasksAfterSubmitFailure(t *testing.T) {
	var finished, started atomic.Int32
	pool := &flakyPool{accept: 2}

	err := runOnPool(pool, 5, func(int) error {
		started.Add(1)
		time.Sleep(20 * time.Millisecond)
		finished.Add(1)
		return nil
	})
	if !errors.Is(err, errPoolFull) {
		t.Fatalf("expected submit error, got %v", err)
	}
	if got := finished.Load(); got != 2 {
		t.Fatalf("expected both accepted tasks to finish before return, got %d", got)
	}
	if got := started.Load(); got != 2 {
		t.Fatalf("expected no tasks after the failed submit, got %d started", got)
	}
}

func TestRunOnPool_ReturnsFirstTaskError(t *testing.T) {
	taskErr := errors.New("store down")
	err := runConcurrently(2, 4, func(i int) error {
		if i == 1 {
			return taskErr
		}
		return nil
	})
	if !errors.Is(err, taskErr) {
		t.Fatalf("expected task error, got %v", err)
	}
}
