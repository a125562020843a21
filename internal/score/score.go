// Package score computes the 0-100 completeness score for castle records.
package score

import "github.com/starford/castellan/internal/models"

// fieldCheck is one weighted field-presence check. The score is the earned
// weight over the total weight, scaled to 0-100 and rounded.
type fieldCheck struct {
	name    string
	weight  int
	present func(c *models.Castle) bool
}

var checks = []fieldCheck{
	{"id", 3, func(c *models.Castle) bool { return c.ID != "" }},
	{"castleName", 5, func(c *models.Castle) bool { return c.CastleName != "" }},
	{"country", 5, func(c *models.Castle) bool { return c.Country != "" }},
	{"location", 4, func(c *models.Castle) bool { return c.Location != "" }},
	{"coordinates", 3, func(c *models.Castle) bool { return c.Coordinates != nil }},
	{"architecturalStyle", 5, func(c *models.Castle) bool { return c.ArchitecturalStyle != "" }},
	{"yearBuilt", 5, func(c *models.Castle) bool { return c.YearBuilt != "" }},
	{"shortDescription", 5, func(c *models.Castle) bool { return c.ShortDescription != "" }},
	{"detailedDescription", 6, func(c *models.Castle) bool { return c.DetailedDescription != "" }},
	{"historicalPeriods", 4, func(c *models.Castle) bool { return len(c.HistoricalPeriods) > 0 }},
	{"culturalThemes", 4, func(c *models.Castle) bool { return len(c.CulturalThemes) > 0 }},
	{"culturalSignificance", 6, func(c *models.Castle) bool { return c.CulturalSignificance != "" }},
	{"keyFeatures", 5, func(c *models.Castle) bool { return len(c.KeyFeatures) > 0 }},
	{"legends", 6, func(c *models.Castle) bool { return len(c.Legends) > 0 }},
	{"notableBattles", 5, func(c *models.Castle) bool { return len(c.NotableBattles) > 0 }},
	{"rulerBiographies", 5, func(c *models.Castle) bool { return len(c.RulerBiographies) > 0 }},
	{"currentStatus", 5, func(c *models.Castle) bool { return c.CurrentStatus != nil }},
	{"visitorInfo", 6, func(c *models.Castle) bool {
		return c.VisitorInfo != nil && c.VisitorInfo.OpeningHours != nil
	}},
	{"preservationEfforts", 5, func(c *models.Castle) bool { return c.PreservationEfforts != nil }},
	{"tourismDetails", 4, func(c *models.Castle) bool { return c.TourismDetails != nil }},
	{"engineeringDetails", 4, func(c *models.Castle) bool { return c.EngineeringDetails != nil }},
	{"unesco", 4, func(c *models.Castle) bool { return c.Unesco != nil && c.Unesco.Listed }},
}

var totalWeight = func() int {
	sum := 0
	for _, ch := range checks {
		sum += ch.weight
	}
	return sum
}()

// Completeness returns the completeness score for a record, always in [0,100].
// It is deterministic, pure, and order-independent; populating a previously
// absent scored field can only raise it.
func Completeness(c *models.Castle) int {
	earned := 0
	for _, ch := range checks {
		if ch.present(c) {
			earned += ch.weight
		}
	}
	// Round half up.
	return (earned*100 + totalWeight/2) / totalWeight
}

// MissingFields returns the names of scored fields the record lacks.
func MissingFields(c *models.Castle) []string {
	var out []string
	for _, ch := range checks {
		if !ch.present(c) {
			out = append(out, ch.name)
		}
	}
	return out
}

// Stamp recomputes and stores the completeness score on every record's
// metadata block, creating the block when absent.
func Stamp(castles []models.Castle) {
	for i := range castles {
		if castles[i].Metadata == nil {
			castles[i].Metadata = &models.Metadata{}
		}
		castles[i].Metadata.CompletenessScore = Completeness(&castles[i])
	}
}
