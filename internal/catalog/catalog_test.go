package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/starford/castellan/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "castellan-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertAndGet(t *testing.T) {
	db := testDB(t)
	row := CastleRow{ID: "windsor_castle", Name: "Windsor Castle", Country: "United Kingdom",
		Style: "Norman", Completeness: 72}
	if err := db.UpsertCastle(row, "royal residence on the Thames"); err != nil {
		t.Fatalf("UpsertCastle: %v", err)
	}

	got, err := db.GetCastle("windsor_castle")
	if err != nil {
		t.Fatalf("GetCastle: %v", err)
	}
	if got == nil {
		t.Fatal("row not found")
	}
	if got.Name != "Windsor Castle" || got.Completeness != 72 {
		t.Errorf("row = %+v", got)
	}
}

func TestGetUnknownReturnsNil(t *testing.T) {
	db := testDB(t)
	got, err := db.GetCastle("nope")
	if err != nil {
		t.Fatalf("GetCastle: %v", err)
	}
	if got != nil {
		t.Errorf("row = %+v, want nil", got)
	}
}

func TestUpsertUpdatesInPlace(t *testing.T) {
	db := testDB(t)
	row := CastleRow{ID: "x", Name: "X", Country: "France", Completeness: 10}
	if err := db.UpsertCastle(row, "first"); err != nil {
		t.Fatal(err)
	}
	row.Completeness = 55
	if err := db.UpsertCastle(row, "second"); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetCastle("x")
	if err != nil {
		t.Fatal(err)
	}
	if got.Completeness != 55 {
		t.Errorf("completeness = %d, want 55", got.Completeness)
	}
	if _, total, err := db.ListCastles(10, 0, "", ""); err != nil || total != 1 {
		t.Errorf("total = %d (err %v), want 1", total, err)
	}
}

func TestListCastlesFilterAndSort(t *testing.T) {
	db := testDB(t)
	seed := []CastleRow{
		{ID: "a", Name: "Avila", Country: "Spain", Completeness: 30},
		{ID: "b", Name: "Burg Eltz", Country: "Germany", Completeness: 80},
		{ID: "c", Name: "Coca", Country: "Spain", Completeness: 60},
	}
	for _, r := range seed {
		if err := db.UpsertCastle(r, ""); err != nil {
			t.Fatal(err)
		}
	}

	rows, total, err := db.ListCastles(10, 0, "Spain", "completeness")
	if err != nil {
		t.Fatalf("ListCastles: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("total = %d, len = %d", total, len(rows))
	}
	if rows[0].ID != "c" {
		t.Errorf("first row = %s, want highest completeness", rows[0].ID)
	}
}

func TestListCastlesPagination(t *testing.T) {
	db := testDB(t)
	for _, r := range []CastleRow{
		{ID: "a", Name: "A", Country: "France"},
		{ID: "b", Name: "B", Country: "France"},
		{ID: "c", Name: "C", Country: "France"},
	} {
		if err := db.UpsertCastle(r, ""); err != nil {
			t.Fatal(err)
		}
	}
	rows, total, err := db.ListCastles(2, 2, "", "name")
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(rows) != 1 || rows[0].ID != "c" {
		t.Errorf("total = %d, rows = %+v", total, rows)
	}
}

func TestCountries(t *testing.T) {
	db := testDB(t)
	for _, r := range []CastleRow{
		{ID: "a", Name: "A", Country: "Spain"},
		{ID: "b", Name: "B", Country: "Spain"},
		{ID: "c", Name: "C", Country: "France"},
	} {
		if err := db.UpsertCastle(r, ""); err != nil {
			t.Fatal(err)
		}
	}
	counts, err := db.Countries()
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 2 {
		t.Fatalf("counts = %+v", counts)
	}
	if counts[0].Country != "Spain" || counts[0].Count != 2 {
		t.Errorf("first = %+v, want Spain 2", counts[0])
	}
}

func TestCompletenessStatsAggregatesAllRows(t *testing.T) {
	db := testDB(t)
	for i := 0; i < 120; i++ {
		r := CastleRow{
			ID:           fmt.Sprintf("castle_%03d", i),
			Name:         fmt.Sprintf("Castle %03d", i),
			Country:      "France",
			Completeness: i % 101,
		}
		if err := db.UpsertCastle(r, ""); err != nil {
			t.Fatal(err)
		}
	}
	total, avg, err := db.CompletenessStats()
	if err != nil {
		t.Fatalf("CompletenessStats: %v", err)
	}
	if total != 120 {
		t.Errorf("total = %d, want 120", total)
	}
	sum := 0
	for i := 0; i < 120; i++ {
		sum += i % 101
	}
	want := float64(sum) / 120
	if avg != want {
		t.Errorf("avg = %v, want %v", avg, want)
	}
}

func TestCompletenessStatsEmptyCatalog(t *testing.T) {
	db := testDB(t)
	total, avg, err := db.CompletenessStats()
	if err != nil {
		t.Fatalf("CompletenessStats: %v", err)
	}
	if total != 0 || avg != 0 {
		t.Errorf("empty catalog: total=%d avg=%v, want 0 0", total, avg)
	}
}

func TestSearchFindsBodyText(t *testing.T) {
	db := testDB(t)
	row := CastleRow{ID: "alhambra", Name: "Alhambra", Country: "Spain"}
	if err := db.UpsertCastle(row, "Nasrid palace complex in Granada"); err != nil {
		t.Fatal(err)
	}
	hits, err := db.Search("Granada", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "alhambra" {
		t.Errorf("hits = %+v", hits)
	}
}

func TestSyncUpsertsAndRemovesStale(t *testing.T) {
	db := testDB(t)
	logger := slog.Default()

	first := []models.Castle{
		{ID: "a", CastleName: "A", Country: "France",
			Metadata: &models.Metadata{CompletenessScore: 40}},
		{ID: "b", CastleName: "B", Country: "Spain"},
	}
	if err := Sync(db, first, logger); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if _, total, _ := db.ListCastles(10, 0, "", ""); total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}

	second := []models.Castle{first[0]}
	if err := Sync(db, second, logger); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if _, total, _ := db.ListCastles(10, 0, "", ""); total != 1 {
		t.Errorf("stale row not removed, total = %d", total)
	}
	got, err := db.GetCastle("a")
	if err != nil || got == nil {
		t.Fatalf("surviving row missing: %v", err)
	}
	if got.Completeness != 40 {
		t.Errorf("completeness = %d, want 40", got.Completeness)
	}
}

func TestSearchBodyFlattensNarrative(t *testing.T) {
	c := models.Castle{
		Location:         "Granada",
		ShortDescription: "Hilltop fortress.",
		Legends:          []models.Legend{{Title: "The Sigh", Narrative: "Boabdil wept."}},
		KeyFeatures:      []string{"Court of the Lions"},
	}
	body := searchBody(&c)
	for _, want := range []string{"Granada", "Hilltop fortress.", "The Sigh: Boabdil wept.", "Court of the Lions"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}
