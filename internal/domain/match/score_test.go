package match

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRound(t *testing.T) {
	tests := []struct {
		name      string
		player1   *float64
		player2   *float64
		targetErr error
	}{
		{name: "win and loss", player1: Score(1), player2: Score(0)},
		{name: "loss and win", player1: Score(0), player2: Score(1)},
		{name: "draw", player1: Score(0.5), player2: Score(0.5)},
		{name: "both missing", player1: nil, player2: nil},
		{name: "one missing with odd value", player1: Score(1), player2: nil},
		{name: "other missing", player1: nil, player2: Score(0.5)},
		{name: "both win", player1: Score(1), player2: Score(1), targetErr: ErrRoundTotal},
		{name: "both loss", player1: Score(0), player2: Score(0), targetErr: ErrRoundTotal},
		{name: "win and draw", player1: Score(1), player2: Score(0.5), targetErr: ErrRoundTotal},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateRound(1, tc.player1, tc.player2)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected error %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestValidateScores_ReportsFailingRound(t *testing.T) {
	err := ValidateScores(Scores{
		Round1Player1: Score(1),
		Round1Player2: Score(1),
		Round2Player1: Score(0.5),
		Round2Player2: Score(0.5),
	})
	if !errors.Is(err, ErrRoundTotal) {
		t.Fatalf("expected ErrRoundTotal, got %v", err)
	}
	if err.Error() != "round 1: scores must sum to 1" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	err = ValidateScores(Scores{
		Round1Player1: Score(1),
		Round1Player2: Score(0),
		Round2Player1: Score(0),
		Round2Player2: Score(0),
	})
	if err == nil || !strings.HasPrefix(err.Error(), "round 2:") {
		t.Fatalf("expected round 2 error, got %v", err)
	}
}

func TestValidateScores_RoundsAreIndependent(t *testing.T) {
	err := ValidateScores(Scores{
		Round1Player1: Score(0.5),
		Round1Player2: Score(0.5),
	})
	if err != nil {
		t.Fatalf("expected partial entry to pass, got %v", err)
	}
}

func TestMatchWinner(t *testing.T) {
	m := Match{Scores: Scores{
		Round1Player1: Score(1),
		Round1Player2: Score(0),
		Round2Player1: Score(0.5),
		Round2Player2: Score(0.5),
	}}
	if got := m.Winner(); got != WinnerPlayer1 {
		t.Fatalf("expected %s, got %s", WinnerPlayer1, got)
	}
	if m.Scores.Player1Total() != 1.5 || m.Scores.Player2Total() != 0.5 {
		t.Fatalf("unexpected totals: %v/%v", m.Scores.Player1Total(), m.Scores.Player2Total())
	}

	partial := Match{Scores: Scores{Round1Player1: Score(0), Round1Player2: Score(1)}}
	if got := partial.Winner(); got != WinnerPlayer2 {
		t.Fatalf("expected %s, got %s", WinnerPlayer2, got)
	}
	if got := (Match{}).Winner(); got != WinnerDraw {
		t.Fatalf("expected %s for empty scores, got %s", WinnerDraw, got)
	}
}
