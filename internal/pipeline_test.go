package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/castellan/internal/models"
)

func testPipeline(t *testing.T) (*Pipeline, *Config) {
	t.Helper()
	cfg := NewDefaultConfig()
	cfg.Data.Dir = t.TempDir()
	cfg.Site.OutputDir = t.TempDir()
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "catalog.db")
	// Disable network sources for the offline tests.
	cfg.Extract.WikipediaEndpoint = ""
	cfg.Extract.WikidataEndpoint = ""

	pipe, err := NewPipeline(cfg, slog.Default())
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return pipe, cfg
}

func writeFile(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGrowAddsCandidatesOnce(t *testing.T) {
	pipe, cfg := testPipeline(t)
	writeFile(t, filepath.Join(cfg.Data.Dir, cfg.Data.Candidates), []models.Candidate{
		{ID: "neuschwanstein_castle", CastleName: "Neuschwanstein Castle", Country: "Germany"},
		{ID: "bran_castle", CastleName: "Bran Castle", Country: "Romania"},
	})

	added, err := pipe.Grow(1)
	if err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}

	// Second run picks the remaining candidate, never a duplicate.
	added, err = pipe.Grow(5)
	if err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if added != 1 {
		t.Fatalf("second run added = %d, want 1", added)
	}

	castles := pipe.Collection().Load()
	if len(castles) != 2 {
		t.Fatalf("collection size = %d, want 2", len(castles))
	}
	seen := map[string]int{}
	for _, c := range castles {
		seen[c.ID]++
	}
	if seen["neuschwanstein_castle"] != 1 {
		t.Errorf("neuschwanstein_castle count = %d, want exactly 1", seen["neuschwanstein_castle"])
	}

	// Pool exhausted.
	if added, _ := pipe.Grow(5); added != 0 {
		t.Errorf("exhausted pool added = %d, want 0", added)
	}
}

func TestEnhanceMergesAndScores(t *testing.T) {
	pipe, cfg := testPipeline(t)
	writeFile(t, filepath.Join(cfg.Data.Dir, cfg.Data.Collection), []models.Castle{
		{ID: "windsor_castle", CastleName: "Windsor Castle", Country: "United Kingdom",
			ArchitecturalStyle: "Norman", YearBuilt: "1070"},
	})
	writeFile(t, filepath.Join(cfg.EnhancementsGlobDir(), "batch.json"), []models.Enhancement{
		{ID: "windsor_castle", DetailedDescription: "The oldest occupied castle."},
	})

	if err := pipe.Enhance(); err != nil {
		t.Fatalf("Enhance: %v", err)
	}

	castles := pipe.Collection().Load()
	if len(castles) != 1 {
		t.Fatalf("collection size = %d", len(castles))
	}
	c := castles[0]
	if c.DetailedDescription != "The oldest occupied castle." {
		t.Errorf("description = %q", c.DetailedDescription)
	}
	if c.ModernTrends == nil {
		t.Error("classification missing")
	}
	if len(c.HistoricalPeriods) == 0 {
		t.Error("narrative periods missing")
	}
	if c.Metadata == nil || c.Metadata.CompletenessScore <= 0 {
		t.Error("completeness not stamped")
	}
}

func TestScoreReportsWithoutWriting(t *testing.T) {
	pipe, cfg := testPipeline(t)
	writeFile(t, filepath.Join(cfg.Data.Dir, cfg.Data.Collection), []models.Castle{
		{ID: "alhambra", CastleName: "Alhambra", Country: "Spain"},
	})

	castles := pipe.Score()
	if len(castles) != 1 || castles[0].Metadata == nil || castles[0].Metadata.CompletenessScore <= 0 {
		t.Fatalf("castles = %+v", castles)
	}

	// The collection file is untouched.
	stored := pipe.Collection().Load()
	if stored[0].Metadata != nil {
		t.Errorf("score command wrote to the collection: %+v", stored[0].Metadata)
	}
}

func TestExtractWritesDataset(t *testing.T) {
	pipe, cfg := testPipeline(t)
	writeFile(t, filepath.Join(cfg.Data.Dir, cfg.Data.Collection), []models.Castle{
		{ID: "tower_of_london", CastleName: "Tower of London", Country: "United Kingdom"},
	})

	n, err := pipe.Extract(context.Background(), "all")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if n != 1 {
		t.Fatalf("records = %d, want 1", n)
	}

	records := pipe.Collection().LoadEnhancements()
	if len(records) != 1 || records[0].ID != "tower_of_london" {
		t.Fatalf("records = %+v", records)
	}
	// Static UNESCO data applies even with network sources disabled.
	if records[0].Unesco == nil || !records[0].Unesco.Listed {
		t.Errorf("unesco = %+v", records[0].Unesco)
	}
}

func TestExtractRejectsUnknownSource(t *testing.T) {
	pipe, _ := testPipeline(t)
	if _, err := pipe.Extract(context.Background(), "astrology"); err == nil {
		t.Error("unknown source should fail")
	}
}

func TestRenderWritesSite(t *testing.T) {
	pipe, cfg := testPipeline(t)
	writeFile(t, filepath.Join(cfg.Data.Dir, cfg.Data.Collection), []models.Castle{
		{ID: "alhambra", CastleName: "Alhambra", Country: "Spain"},
	})

	if err := pipe.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, f := range []string{"index.html", "castles/alhambra.html", "style.css"} {
		if _, err := os.Stat(filepath.Join(cfg.Site.OutputDir, f)); err != nil {
			t.Errorf("missing output file %s: %v", f, err)
		}
	}
}
