package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/forces-league/internal/domain/match"
	matchmock "github.com/riskibarqy/forces-league/internal/mocks/domain/match"
	"github.com/stretchr/testify/mock"
)

func TestScheduleService_SchedulePairWritesOneBatchUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	date := match.Date{Year: 2024, Month: time.March, Day: 2}

	req := match.PairRequest{
		Date:   date,
		First:  match.Pairing{Player1ID: "a", Player2ID: "b"},
		Second: match.Pairing{Player1ID: "c", Player2ID: "d"},
	}
	matchRepo.
		On("CreatePair", ctx, mock.MatchedBy(func(items []match.Match) bool {
			return len(items) == 2 &&
				items[0].Date == date && items[1].Date == date &&
				items[0].Player1ID == "a" && items[1].Player2ID == "d" &&
				!items[0].Scores.Complete()
		})).
		Return(func(_ context.Context, items []match.Match) ([]match.Match, error) {
			items[0].ID, items[1].ID = "m1", "m2"
			return items, nil
		}).
		Once()

	got, err := NewScheduleService(matchRepo).SchedulePair(ctx, req)
	if err != nil {
		t.Fatalf("schedule pair: %v", err)
	}
	if len(got) != 2 || got[0].ID != "m1" || got[1].ID != "m2" {
		t.Fatalf("unexpected created matches: %+v", got)
	}
}

func TestScheduleService_SchedulePairRejectsSelfMatchUsingMockery(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	req := match.PairRequest{
		Date:   match.Date{Year: 2024, Month: time.March, Day: 2},
		First:  match.Pairing{Player1ID: "a", Player2ID: "b"},
		Second: match.Pairing{Player1ID: "c", Player2ID: "c"},
	}

	_, err := NewScheduleService(matchRepo).SchedulePair(context.Background(), req)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "cannot play against himself") {
		t.Fatalf("unexpected message: %v", err)
	}
	matchRepo.AssertNotCalled(t, "CreatePair", mock.Anything, mock.Anything)
}
