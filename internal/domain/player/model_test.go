package player

import (
	"errors"
	"testing"
)

func TestPlayerValidate(t *testing.T) {
	tests := []struct {
		name    string
		player  Player
		wantErr bool
	}{
		{name: "valid", player: Player{FirstName: "Ada", LastName: "Lovelace"}},
		{name: "missing first name", player: Player{LastName: "Lovelace"}, wantErr: true},
		{name: "blank last name", player: Player{FirstName: "Ada", LastName: "   "}, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.player.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrNameRequired) {
					t.Fatalf("expected ErrNameRequired, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	if got := (Player{FirstName: "Ada", LastName: "Lovelace"}).FullName(); got != "Ada Lovelace" {
		t.Fatalf("unexpected full name: %q", got)
	}
	if got := (Player{}).FullName(); got != "" {
		t.Fatalf("expected empty full name, got %q", got)
	}
}
