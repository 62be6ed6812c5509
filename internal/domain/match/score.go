package match

import (
	"errors"
	"fmt"
)

var ErrRoundTotal = errors.New("scores must sum to 1")

// ValidateRound accepts a round when either score is still missing, or when both are
// present and add up to exactly 1.
func ValidateRound(round int, player1, player2 *float64) error {
	if player1 == nil || player2 == nil {
		return nil
	}
	if *player1+*player2 != ScoreWin {
		return fmt.Errorf("round %d: %w", round, ErrRoundTotal)
	}
	return nil
}

// ValidateScores checks both rounds independently; the first failing round is reported.
func ValidateScores(s Scores) error {
	if err := ValidateRound(1, s.Round1Player1, s.Round1Player2); err != nil {
		return err
	}
	if err := ValidateRound(2, s.Round2Player1, s.Round2Player2); err != nil {
		return err
	}
	return nil
}
