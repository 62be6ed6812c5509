package match

import (
	"errors"
	"strings"
)

var (
	ErrMissingField = errors.New("all fields are required")
	ErrSelfMatch    = errors.New("a player cannot play against himself")
)

// Pairing is one head-to-head slot of a scheduled pair.
type Pairing struct {
	Player1ID string
	Player2ID string
}

func (p Pairing) empty() bool {
	return strings.TrimSpace(p.Player1ID) == "" || strings.TrimSpace(p.Player2ID) == ""
}

func (p Pairing) selfMatch() bool {
	return strings.TrimSpace(p.Player1ID) == strings.TrimSpace(p.Player2ID)
}

// PairRequest schedules two matches on the same date.
//
// The same player may appear in both pairings, and (A,B)/(B,A) duplicates are accepted.
type PairRequest struct {
	Date   Date
	First  Pairing
	Second Pairing
}

func (r PairRequest) Validate() error {
	if r.Date.IsZero() || r.First.empty() || r.Second.empty() {
		return ErrMissingField
	}
	if r.First.selfMatch() || r.Second.selfMatch() {
		return ErrSelfMatch
	}
	return nil
}

// Matches returns the two unscored rows to insert as one batch.
func (r PairRequest) Matches() []Match {
	out := make([]Match, 0, 2)
	for _, pairing := range []Pairing{r.First, r.Second} {
		out = append(out, Match{
			Date:      r.Date,
			Player1ID: strings.TrimSpace(pairing.Player1ID),
			Player2ID: strings.TrimSpace(pairing.Player2ID),
		})
	}
	return out
}
