package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	"github.com/riskibarqy/forces-league/internal/domain/player"
	matchmock "github.com/riskibarqy/forces-league/internal/mocks/domain/match"
	playermock "github.com/riskibarqy/forces-league/internal/mocks/domain/player"
	"github.com/stretchr/testify/mock"
)

func TestResultService_RecentResultsJoinsPlayersUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)

	items := []match.Match{
		{
			ID:        "m1",
			Player1ID: "a",
			Player2ID: "b",
			Scores: match.Scores{
				Round1Player1: match.Score(0),
				Round1Player2: match.Score(1),
				Round2Player1: match.Score(0.5),
				Round2Player2: match.Score(0.5),
			},
		},
		{
			ID:        "m2",
			Player1ID: "a",
			Player2ID: "gone",
			Scores: match.Scores{
				Round1Player1: match.Score(1),
				Round1Player2: match.Score(0),
				Round2Player1: match.Score(1),
			},
		},
	}

	matchRepo.On("ListRecentCompleted", ctx, RecentResultsLimit).Return(items, nil).Once()
	playerRepo.
		On("GetByIDs", ctx, []string{"a", "b", "gone"}).
		Return([]player.Player{
			{ID: "a", FirstName: "Ada", LastName: "Arnaud"},
			{ID: "b", FirstName: "Basile", LastName: "Bernard"},
		}, nil).
		Once()

	got, err := NewResultService(playerRepo, matchRepo).RecentResults(ctx)
	if err != nil {
		t.Fatalf("recent results: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected result count: %d", len(got))
	}
	if got[0].Player1Total != 0.5 || got[0].Player2Total != 1.5 || got[0].Winner != match.WinnerPlayer2 {
		t.Fatalf("unexpected first result: %+v", got[0])
	}
	if got[0].Player2.FullName() != "Basile Bernard" {
		t.Fatalf("unexpected player 2 name: %q", got[0].Player2.FullName())
	}
	if got[1].Player2.ID != "" || got[1].Player2Total != 0 || got[1].Winner != match.WinnerPlayer1 {
		t.Fatalf("expected missing player and zero total for absent score, got %+v", got[1])
	}
}

func TestResultService_AdminFeedEmptySkipsPlayerLookupUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)

	matchRepo.On("ListLatest", ctx, AdminFeedLimit).Return([]match.Match{}, nil).Once()

	got, err := NewResultService(playerRepo, matchRepo).AdminFeed(ctx)
	if err != nil {
		t.Fatalf("admin feed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty feed, got %d", len(got))
	}
	playerRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestResultService_SaveScoresRejectsBadRoundBeforeWriteUsingMockery(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	service := NewResultService(playerRepo, matchRepo)

	err := service.SaveScores(context.Background(), "m1", match.Scores{
		Round1Player1: match.Score(1),
		Round1Player2: match.Score(1),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err.Error() != "invalid input: round 1: scores must sum to 1" {
		t.Fatalf("unexpected message: %v", err)
	}
	matchRepo.AssertNotCalled(t, "UpdateScores", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResultService_SaveScoresWritesAllFourAndTimestampUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	service := NewResultService(playerRepo, matchRepo)
	fixed := time.Date(2024, time.March, 2, 20, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	scores := match.Scores{
		Round1Player1: match.Score(0.5),
		Round1Player2: match.Score(0.5),
		Round2Player1: match.Score(1),
	}
	matchRepo.On("UpdateScores", ctx, "m1", scores, fixed).Return(nil).Once()

	if err := service.SaveScores(ctx, "m1", scores); err != nil {
		t.Fatalf("save scores: %v", err)
	}
}

func TestResultService_SaveScoresMapsNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)

	matchRepo.
		On("UpdateScores", ctx, "missing", match.Scores{}, mock.AnythingOfType("time.Time")).
		Return(fmt.Errorf("%w: missing", match.ErrNotFound)).
		Once()

	err := NewResultService(playerRepo, matchRepo).SaveScores(ctx, "missing", match.Scores{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
