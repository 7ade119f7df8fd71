// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands against a SQLite store in a temp data directory.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/singsmart/internal/models"
	"github.com/harperreed/singsmart/internal/storage"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world this is long", 10, "hello w..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("abc", 6); got != "abc   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not cut, got %q", got)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, "[----]"},
		{50, "[##--]"},
		{100, "[####]"},
		{150, "[####]"},
		{-5, "[----]"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.pct, 4); got != tt.want {
			t.Errorf("progressBar(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	v := 82.4
	if got := formatScore(&v); got != "82" {
		t.Errorf("formatScore = %q", got)
	}
	if got := formatScore(nil); got != "-" {
		t.Errorf("formatScore(nil) = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := percent(30, 60); got != 50 {
		t.Errorf("percent(30, 60) = %v", got)
	}
	if got := percent(30, 0); got != 0 {
		t.Errorf("percent with zero goal = %v", got)
	}
}

func TestFindExercise(t *testing.T) {
	catalog := []*models.Exercise{
		{ID: storage.CatalogID("exercise:Lip Trill Warm-Up"), Name: "Lip Trill Warm-Up"},
		{ID: storage.CatalogID("exercise:Breath Support Exercise"), Name: "Breath Support Exercise"},
		{ID: storage.CatalogID("exercise:Vowel Clarity Exercise"), Name: "Vowel Clarity Exercise"},
	}

	got, err := findExercise(catalog, "lip trill")
	if err != nil || got.Name != "Lip Trill Warm-Up" {
		t.Errorf("findExercise by name = %v, %v", got, err)
	}

	prefix := catalog[1].ID.String()[:8]
	got, err = findExercise(catalog, prefix)
	if err != nil || got.ID != catalog[1].ID {
		t.Errorf("findExercise by prefix = %v, %v", got, err)
	}

	if _, err := findExercise(catalog, "exercise"); err == nil || !strings.Contains(err.Error(), "several") {
		t.Errorf("ambiguous match should fail, got %v", err)
	}
	if _, err := findExercise(catalog, "yodel"); err == nil {
		t.Error("unknown exercise should fail")
	}
	if _, err := findExercise(catalog, " "); err == nil {
		t.Error("empty query should fail")
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "singsmart" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "singsmart")
	}
	for _, name := range []string{"backend", "data-dir", "user", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag %q", name)
		}
	}
}

func TestRootHelpNamesPhases(t *testing.T) {
	for _, p := range models.Phases {
		if !strings.Contains(rootCmd.Long, p.Name) {
			t.Errorf("root help missing phase %d name %q", p.ID, p.Name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"serve", "mcp", "status", "phases", "onboard", "practice", "reset", "export", "import"}
	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("Expected %q command to be registered", name)
		}
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	if len(exportCmd.ValidArgs) != 2 {
		t.Errorf("ValidArgs = %v", exportCmd.ValidArgs)
	}
	if exportCmd.Flags().Lookup("output") == nil {
		t.Error("Expected --output flag")
	}
}

// setupTestCLI points config and data at temp directories and returns the data dir.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()

	t.Cleanup(func() {
		flagBackend, flagDataDir, flagUser, flagVerbose = "", "", "", false
		onboardLevel, onboardRange = "beginner", ""
		practicePitch, practiceTone, practiceBreathing, practiceOverall = 0, 0, 0, 0
		practiceFeedback, practiceSimulate = "", false
		resetConfirm = false
		exportOutput = ""
		for _, name := range []string{"pitch", "tone", "breathing", "overall"} {
			if f := practiceCmd.Flags().Lookup(name); f != nil {
				f.Changed = false
			}
		}
	})
	return dataDir
}

func run(t *testing.T, dataDir string, args ...string) error {
	t.Helper()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--backend", "sqlite", "--data-dir", dataDir}, args...))
	return rootCmd.Execute()
}

func openTestDB(t *testing.T, dataDir string) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(dataDir, "singsmart.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOnboardPracticeReset(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := run(t, dataDir, "onboard", "Ada", "--level", "beginner", "--range", "alto"); err != nil {
		t.Fatalf("onboard failed: %v", err)
	}
	if err := run(t, dataDir, "practice", "lip trill", "--overall", "82", "--pitch", "75"); err != nil {
		t.Fatalf("practice failed: %v", err)
	}
	if err := run(t, dataDir, "status"); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if err := run(t, dataDir, "phases"); err != nil {
		t.Fatalf("phases failed: %v", err)
	}

	db, err := storage.Open(filepath.Join(dataDir, "singsmart.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	u, err := db.FirstUser()
	if err != nil {
		t.Fatalf("FirstUser failed: %v", err)
	}
	if u.Name != "Ada" || u.TotalPracticeMinutes == 0 {
		t.Errorf("unexpected user after practice: %+v", u)
	}
	rows, _ := db.ListProgress(u.ID)
	if len(rows) != 1 || rows[0].OverallScore == nil || *rows[0].OverallScore != 82 {
		t.Fatalf("unexpected progress rows: %+v", rows)
	}
	if rows[0].ToneScore != nil {
		t.Error("unset --tone should stay null")
	}
	db.Close()

	if err := run(t, dataDir, "reset"); err == nil {
		t.Error("reset without --yes should fail")
	}
	if err := run(t, dataDir, "reset", "--yes"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	db = openTestDB(t, dataDir)
	rows, _ = db.ListProgress(u.ID)
	if len(rows) != 0 {
		t.Errorf("Expected progress cleared, got %d rows", len(rows))
	}
}

func TestPracticeSimulate(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := run(t, dataDir, "onboard", "Ada"); err != nil {
		t.Fatalf("onboard failed: %v", err)
	}
	if err := run(t, dataDir, "practice", "humming", "--simulate"); err != nil {
		t.Fatalf("practice --simulate failed: %v", err)
	}

	db := openTestDB(t, dataDir)
	u, _ := db.FirstUser()
	rows, _ := db.ListProgress(u.ID)
	if len(rows) != 1 {
		t.Fatalf("Expected one progress row, got %d", len(rows))
	}
	p := rows[0]
	if p.PitchScore == nil || p.OverallScore == nil || p.Feedback == nil {
		t.Fatalf("simulate should fill scores and feedback: %+v", p)
	}
	if *p.OverallScore < 60 || *p.OverallScore > 100 {
		t.Errorf("OverallScore = %v out of simulated range", *p.OverallScore)
	}
}

func TestStatusWithoutSinger(t *testing.T) {
	dataDir := setupTestCLI(t)

	if err := run(t, dataDir, "status"); err == nil {
		t.Error("status without a singer should fail")
	}
	if err := run(t, dataDir, "phases"); err != nil {
		t.Errorf("phases without a singer should list phases: %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dataDir := setupTestCLI(t)
	if err := run(t, dataDir, "onboard", "Ada"); err != nil {
		t.Fatalf("onboard failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "backup.json")
	if err := run(t, dataDir, "export", "json", "-o", out); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	var data storage.ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(data.Users) != 1 || len(data.Exercises) == 0 {
		t.Errorf("unexpected export: %d users, %d exercises", len(data.Users), len(data.Exercises))
	}

	fresh := t.TempDir()
	if err := run(t, fresh, "import", out); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	db := openTestDB(t, fresh)
	users, _ := db.ListUsers()
	if len(users) != 1 || users[0].Name != "Ada" {
		t.Errorf("imported users = %+v", users)
	}

	if err := run(t, dataDir, "export", "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}
