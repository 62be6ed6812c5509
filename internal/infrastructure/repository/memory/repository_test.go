package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
)

type sequenceIDs struct {
	next int
}

func (s *sequenceIDs) NewID() (string, error) {
	s.next++
	return fmt.Sprintf("id-%d", s.next), nil
}

func TestPlayerRepository_CreateListDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository(&sequenceIDs{}, nil)

	for _, name := range [][2]string{{"Zoe", "Zidane"}, {"Ana", "Abel"}, {"Max", "Moreau"}} {
		created, err := repo.Create(ctx, player.Player{FirstName: name[0], LastName: name[1]})
		if err != nil {
			t.Fatalf("create player: %v", err)
		}
		if created.ID == "" || created.CreatedAt.IsZero() {
			t.Fatalf("expected store assigned fields, got %+v", created)
		}
	}

	items, err := repo.ListOrderedByLastName(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	got := []string{items[0].LastName, items[1].LastName, items[2].LastName}
	if got[0] != "Abel" || got[1] != "Moreau" || got[2] != "Zidane" {
		t.Fatalf("unexpected order: %v", got)
	}

	byIDs, err := repo.GetByIDs(ctx, []string{"id-1", "missing", "id-1"})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(byIDs) != 1 || byIDs[0].LastName != "Zidane" {
		t.Fatalf("unexpected players by ids: %+v", byIDs)
	}

	if err := repo.Delete(ctx, "id-1"); err != nil {
		t.Fatalf("delete player: %v", err)
	}
	if err := repo.Delete(ctx, "id-1"); !errors.Is(err, player.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	items, _ = repo.ListOrderedByLastName(ctx)
	if len(items) != 0 {
		t.Fatalf("expected no players after reset, got %d", len(items))
	}
}

func TestMatchRepository_ScoresRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository(&sequenceIDs{}, nil)

	created, err := repo.CreatePair(ctx, match.PairRequest{
		Date:   match.Date{Year: 2024, Month: time.March, Day: 1},
		First:  match.Pairing{Player1ID: "a", Player2ID: "b"},
		Second: match.Pairing{Player1ID: "c", Player2ID: "d"},
	}.Matches())
	if err != nil {
		t.Fatalf("create pair: %v", err)
	}
	if len(created) != 2 || created[0].ID == created[1].ID {
		t.Fatalf("unexpected created rows: %+v", created)
	}

	scores := match.Scores{
		Round1Player1: match.Score(0),
		Round1Player2: match.Score(1),
	}
	updatedAt := time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC)
	if err := repo.UpdateScores(ctx, created[0].ID, scores, updatedAt); err != nil {
		t.Fatalf("update scores: %v", err)
	}
	*scores.Round1Player1 = 1

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	var stored match.Match
	for _, item := range items {
		if item.ID == created[0].ID {
			stored = item
		}
	}
	if stored.Scores.Round1Player1 == nil || *stored.Scores.Round1Player1 != 0 {
		t.Fatalf("expected explicit zero to be stored, got %v", stored.Scores.Round1Player1)
	}
	if stored.Scores.Round2Player1 != nil || stored.Scores.Round2Player2 != nil {
		t.Fatalf("expected round 2 to stay absent")
	}
	if !stored.UpdatedAt.Equal(updatedAt) {
		t.Fatalf("unexpected updated_at: %s", stored.UpdatedAt)
	}

	if err := repo.UpdateScores(ctx, "missing", scores, updatedAt); !errors.Is(err, match.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchRepository_Feeds(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository(&sequenceIDs{}, SeedMatches())

	recent, err := repo.ListRecentCompleted(ctx, 10)
	if err != nil {
		t.Fatalf("list recent completed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 completed matches, got %d", len(recent))
	}

	latest, err := repo.ListLatest(ctx, 3)
	if err != nil {
		t.Fatalf("list latest: %v", err)
	}
	if len(latest) != 3 {
		t.Fatalf("expected limit to apply, got %d", len(latest))
	}
	if latest[0].Date.String() != "2025-09-26" || latest[2].Date.String() != "2025-09-12" {
		t.Fatalf("expected newest first, got %s..%s", latest[0].Date, latest[2].Date)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	all, _ := repo.List(ctx)
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %d", len(all))
	}
}
