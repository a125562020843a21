package score

import (
	"testing"

	"github.com/starford/castellan/internal/models"
)

func fullRecord() models.Castle {
	return models.Castle{
		ID:                   "alhambra",
		CastleName:           "Alhambra",
		Country:              "Spain",
		Location:             "Granada, Andalusia",
		Coordinates:          &models.Coordinates{Lat: 37.176, Lon: -3.588},
		ArchitecturalStyle:   "Moorish",
		YearBuilt:            "1238",
		ShortDescription:     "A palace and fortress complex.",
		DetailedDescription:  "Built by the Nasrid dynasty on the Sabika hill.",
		HistoricalPeriods:    []string{"Medieval"},
		CulturalThemes:       []string{"political_authority"},
		CulturalSignificance: "Finest surviving example of Moorish palace architecture.",
		KeyFeatures:          []string{"Court of the Lions"},
		Legends:              []models.Legend{{Title: "The Moor's Sigh", Narrative: "Boabdil wept."}},
		NotableBattles:       []models.Battle{{Name: "Granada War"}},
		RulerBiographies:     []models.RulerBiography{{FullName: "Muhammad I of Granada"}},
		CurrentStatus:        &models.CurrentStatus{Condition: "Restored"},
		VisitorInfo: &models.VisitorInfo{
			OpeningHours: &models.OpeningHours{Seasonal: "Year-round"},
		},
		PreservationEfforts: &models.PreservationEfforts{Status: "Active"},
		TourismDetails:      &models.TourismDetails{AnnualVisitors: "2.7 million"},
		EngineeringDetails:  &models.EngineeringDetails{NotableInnovations: "Hydraulic systems"},
		Unesco:              &models.UnescoInfo{Listed: true, Reference: "314"},
	}
}

func TestCompletenessBounds(t *testing.T) {
	empty := models.Castle{}
	if got := Completeness(&empty); got != 0 {
		t.Errorf("empty record score = %d, want 0", got)
	}
	full := fullRecord()
	if got := Completeness(&full); got != 100 {
		t.Errorf("full record score = %d, want 100", got)
	}
}

func TestCompletenessMonotone(t *testing.T) {
	c := models.Castle{ID: "x", CastleName: "X", Country: "Germany"}
	before := Completeness(&c)

	c.DetailedDescription = "A long description."
	after := Completeness(&c)
	if after <= before {
		t.Errorf("adding a field lowered the score: %d -> %d", before, after)
	}

	c.Legends = []models.Legend{{Title: "T", Narrative: "N"}}
	if got := Completeness(&c); got <= after {
		t.Errorf("adding legends lowered the score: %d -> %d", after, got)
	}
}

func TestCompletenessDeterministic(t *testing.T) {
	c := fullRecord()
	first := Completeness(&c)
	for i := 0; i < 5; i++ {
		if got := Completeness(&c); got != first {
			t.Fatalf("score changed between runs: %d vs %d", first, got)
		}
	}
}

func TestVisitorInfoRequiresOpeningHours(t *testing.T) {
	c := models.Castle{VisitorInfo: &models.VisitorInfo{AdmissionFee: "10 EUR"}}
	for _, name := range MissingFields(&c) {
		if name == "visitorInfo" {
			return
		}
	}
	t.Error("visitorInfo without openingHours should count as missing")
}

func TestUnescoRequiresListed(t *testing.T) {
	c := models.Castle{Unesco: &models.UnescoInfo{Listed: false}}
	for _, name := range MissingFields(&c) {
		if name == "unesco" {
			return
		}
	}
	t.Error("unlisted unesco block should count as missing")
}

func TestMissingFieldsEmptyForFullRecord(t *testing.T) {
	c := fullRecord()
	if missing := MissingFields(&c); len(missing) != 0 {
		t.Errorf("missing = %v, want none", missing)
	}
}

func TestStampCreatesMetadata(t *testing.T) {
	castles := []models.Castle{
		{ID: "a", CastleName: "A", Country: "France"},
		{ID: "b", CastleName: "B", Country: "Spain",
			Metadata: &models.Metadata{Version: "1.0"}},
	}
	Stamp(castles)
	if castles[0].Metadata == nil {
		t.Fatal("metadata not created")
	}
	if castles[0].Metadata.CompletenessScore <= 0 {
		t.Error("score not stamped")
	}
	if castles[1].Metadata.Version != "1.0" {
		t.Error("existing metadata fields clobbered")
	}
}
