package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseVersion(t *testing.T) {
	if got, err := parseVersion(" 1 "); err != nil || got != 1 {
		t.Fatalf("parseVersion: got=%d err=%v", got, err)
	}
	for _, raw := range []string{"", "-1", "abc"} {
		if _, err := parseVersion(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestNormalizeDBURL(t *testing.T) {
	got := normalizeDBURL("postgres://u:p@localhost:5432/forces_league?sslmode=disable", true)
	if !strings.Contains(got, "binary_parameters=yes") {
		t.Fatalf("expected binary_parameters in %q", got)
	}

	in := "postgres://u:p@localhost:5432/forces_league?binary_parameters=no"
	if got := normalizeDBURL(in, true); got != in {
		t.Fatalf("expected explicit value kept, got %q", got)
	}
	if got := normalizeDBURL(in, false); got != in {
		t.Fatalf("expected url unchanged when disabled, got %q", got)
	}
}

func TestResolveMigrationsDir_PrefersExplicit(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != dir {
		t.Fatalf("unexpected dir: got=%s want=%s", got, dir)
	}

	missing := filepath.Join(dir, "missing")
	wd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(wd, "db", "migrations")); err == nil {
		t.Skip("working directory has a db/migrations fallback")
	}
	if _, err := resolveMigrationsDir(missing); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
