package player

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNameRequired = errors.New("player name is required")
	ErrNotFound     = errors.New("player not found")
)

// Player is a club member who can be scheduled into matches.
type Player struct {
	ID        string
	FirstName string
	LastName  string
	CreatedAt time.Time
}

// FullName returns the display name used by standings and result feeds.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Validate checks the fields a caller supplies on creation. ID and CreatedAt are store-assigned.
func (p Player) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("%w: first name", ErrNameRequired)
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("%w: last name", ErrNameRequired)
	}

	return nil
}

// IndexByID maps players by their identifier.
func IndexByID(items []Player) map[string]Player {
	out := make(map[string]Player, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out
}
