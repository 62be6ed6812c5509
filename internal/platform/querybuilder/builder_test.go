package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "round1_player1_score").
		From("matches").
		Where(Eq("player1_id", "p1"), IsNotNull("round1_player1_score"), IsNotNull("round2_player1_score")).
		OrderBy("match_date DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, round1_player1_score FROM matches WHERE player1_id = $1 AND round1_player1_score IS NOT NULL AND round2_player1_score IS NOT NULL ORDER BY match_date DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "p1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("id").From("players").Where(InStrings("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("matches").
		Columns("match_date", "player1_id", "player2_id").
		Values("2024-01-01", "a", "b").
		Values("2024-01-01", "c", "d").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO matches (match_date, player1_id, player2_id) VALUES ($1, $2, $3), ($4, $5, $6) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[3] != "2024-01-01" || args[5] != "d" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("players").
		Columns("first_name", "last_name").
		Values("Ada").
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("matches").
		Set("round1_player1_score", 1.0).
		Set("updated_at", "now").
		Where(Eq("id", "m1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE matches SET round1_player1_score = $1, updated_at = $2 WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != "m1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := Update("matches").Set("updated_at", "now").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional update")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("players").Where(Eq("id", "p1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM players WHERE id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "p1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("players").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without conditions")
	}

	query, _, err = DeleteFrom("matches").All().ToSQL()
	if err != nil {
		t.Fatalf("build delete all query: %v", err)
	}
	if query != "DELETE FROM matches" {
		t.Fatalf("unexpected query: %s", query)
	}
}

type playerRow struct {
	ID        string `db:"id,readonly"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	note      string
}

func TestInsertModels(t *testing.T) {
	rows := []playerRow{
		{ID: "ignored", FirstName: "Ada", LastName: "Lovelace", note: "x"},
		{FirstName: "Alan", LastName: "Turing"},
	}
	query, args, err := InsertModels("players", rows, "RETURNING id, created_at")
	if err != nil {
		t.Fatalf("build insert models: %v", err)
	}

	wantQuery := "INSERT INTO players (first_name, last_name) VALUES ($1, $2), ($3, $4) RETURNING id, created_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "Ada" || args[3] != "Turing" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[playerRow]("players", nil, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}
