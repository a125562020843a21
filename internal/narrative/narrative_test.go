package narrative

import (
	"reflect"
	"testing"

	"github.com/starford/castellan/internal/models"
)

func TestLegendLine(t *testing.T) {
	l := models.Legend{Title: "The White Lady", Narrative: "She walks the ramparts."}
	if got := LegendLine(l); got != "The White Lady: She walks the ramparts." {
		t.Errorf("line = %q", got)
	}
	if got := LegendLine(models.Legend{Title: "Only Title"}); got != "Only Title" {
		t.Errorf("line = %q", got)
	}
	if got := LegendLine(models.Legend{Narrative: "Only narrative."}); got != "Only narrative." {
		t.Errorf("line = %q", got)
	}
}

func TestBattleLine(t *testing.T) {
	b := models.Battle{
		Name:         "Siege of 1216",
		Participants: "King John vs barons",
		Significance: "Ended the first barons' war locally",
	}
	want := "Siege of 1216 (King John vs barons) - Ended the first barons' war locally"
	if got := BattleLine(b); got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
	if got := BattleLine(models.Battle{Name: "Skirmish"}); got != "Skirmish" {
		t.Errorf("line = %q", got)
	}
}

func TestRulerLine(t *testing.T) {
	r := models.RulerBiography{
		FullName: "William I",
		Lifespan: "1028-1087",
		Epithet:  "the Conqueror",
		Legacy:   "Reshaped English landholding.",
	}
	want := "William I (1028-1087), the Conqueror. Reshaped English landholding."
	if got := RulerLine(r); got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestDerivePeriodsFromStyle(t *testing.T) {
	got := DerivePeriods("Norman", "")
	want := []string{"Norman", "Early Medieval"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("periods = %v, want %v", got, want)
	}
}

func TestDerivePeriodsFromYear(t *testing.T) {
	cases := []struct {
		year string
		want string
	}{
		{"850", "Early Medieval"},
		{"1070", "High Medieval"},
		{"1350", "Late Medieval"},
		{"1550", "Early Modern"},
		{"1700", "Baroque"},
		{"1869", "19th Century"},
		{"1930", "Modern"},
	}
	for _, tc := range cases {
		got := DerivePeriods("", tc.year)
		if len(got) != 1 || got[0] != tc.want {
			t.Errorf("DerivePeriods(%q) = %v, want [%s]", tc.year, got, tc.want)
		}
	}
}

func TestDerivePeriodsDedupes(t *testing.T) {
	got := DerivePeriods("Renaissance", "1550")
	count := 0
	for _, p := range got {
		if p == "Early Modern" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Early Modern appears %d times in %v", count, got)
	}
}

func TestDerivePeriodsFreeFormYear(t *testing.T) {
	got := DerivePeriods("", "c. 1070")
	if len(got) != 1 || got[0] != "High Medieval" {
		t.Errorf("periods = %v", got)
	}
	if got := DerivePeriods("", "unknown"); got != nil {
		t.Errorf("unparseable year should yield nothing, got %v", got)
	}
}

func TestCulturalContext(t *testing.T) {
	cases := map[string]string{
		"England":        "Anglo-Norman",
		"United Kingdom": "Anglo-Norman",
		"France":         "French royal",
		"Germany":        "Holy Roman Imperial",
		"Spain":          "Iberian medieval",
		"Japan":          "European medieval",
	}
	for country, want := range cases {
		if got := CulturalContext(country); got != want {
			t.Errorf("CulturalContext(%q) = %q, want %q", country, got, want)
		}
	}
}

func TestDeriveThemes(t *testing.T) {
	got := DeriveThemes("Gothic", "Seat of the royal court and a trade hub.")
	want := map[string]bool{
		"religious_authority": true,
		"royal_authority":     true,
		"economic_power":      true,
	}
	if len(got) != len(want) {
		t.Fatalf("themes = %v", got)
	}
	for _, theme := range got {
		if !want[theme] {
			t.Errorf("unexpected theme %q", theme)
		}
	}
}

func TestDeriveThemesFallback(t *testing.T) {
	got := DeriveThemes("", "")
	if len(got) != 1 || got[0] != "political_authority" {
		t.Errorf("fallback themes = %v", got)
	}
}

func TestQuality(t *testing.T) {
	empty := models.Castle{}
	if got := Quality(&empty); got != 0 {
		t.Errorf("empty quality = %v", got)
	}

	full := models.Castle{
		CastleName:           "X",
		Location:             "Y",
		YearBuilt:            "1100",
		ArchitecturalStyle:   "Norman",
		RulerBiographies:     []models.RulerBiography{{FullName: "A"}},
		NotableBattles:       []models.Battle{{Name: "B"}},
		Legends:              []models.Legend{{Title: "C"}},
		CulturalSignificance: "D",
	}
	got := Quality(&full)
	if got < 0.99 || got > 1.0 {
		t.Errorf("full quality = %v, want 1.0", got)
	}
}

func TestEnrichFillsEmptyFieldsOnly(t *testing.T) {
	c := models.Castle{
		ID: "x", CastleName: "X", Country: "Germany",
		ArchitecturalStyle: "Gothic", YearBuilt: "1250",
		CulturalThemes: []string{"custom_theme"},
	}
	out := Enrich(c)

	if len(out.HistoricalPeriods) == 0 {
		t.Error("periods not derived")
	}
	if !reflect.DeepEqual(out.CulturalThemes, []string{"custom_theme"}) {
		t.Errorf("existing themes clobbered: %v", out.CulturalThemes)
	}
	if out.CulturalSignificance == "" {
		t.Error("significance not generated")
	}
	if out.Metadata == nil || out.Metadata.NarrativeQuality <= 0 {
		t.Error("narrative quality not stamped")
	}
}

func TestEnrichIdempotent(t *testing.T) {
	c := models.Castle{
		ID: "x", CastleName: "X", Country: "France",
		ArchitecturalStyle: "Renaissance", YearBuilt: "1519",
	}
	once := Enrich(c)
	twice := Enrich(once)
	if !reflect.DeepEqual(once, twice) {
		t.Error("enrich is not idempotent")
	}
}
