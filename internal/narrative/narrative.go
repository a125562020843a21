// Package narrative converts structured castle sub-objects into flat display
// strings and derives period/theme classifications from record fields.
// Everything here is a pure function over the record.
package narrative

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/starford/castellan/internal/models"
)

// LegendLine renders a legend as a single display string.
func LegendLine(l models.Legend) string {
	if l.Narrative == "" {
		return l.Title
	}
	if l.Title == "" {
		return l.Narrative
	}
	return fmt.Sprintf("%s: %s", l.Title, l.Narrative)
}

// BattleLine renders a battle as a single display string.
func BattleLine(b models.Battle) string {
	line := b.Name
	if b.Participants != "" {
		line = fmt.Sprintf("%s (%s)", line, b.Participants)
	}
	if b.Significance != "" {
		line = fmt.Sprintf("%s - %s", line, b.Significance)
	}
	return line
}

// RulerLine renders a ruler biography as a single display string.
func RulerLine(r models.RulerBiography) string {
	line := r.FullName
	if r.Lifespan != "" {
		line = fmt.Sprintf("%s (%s)", line, r.Lifespan)
	}
	if r.Epithet != "" {
		line = fmt.Sprintf("%s, %s", line, r.Epithet)
	}
	if r.Legacy != "" {
		line = fmt.Sprintf("%s. %s", line, r.Legacy)
	}
	return line
}

// styleEras maps architectural style keywords to the periods they imply.
var styleEras = map[string][]string{
	"norman":      {"Norman", "Early Medieval"},
	"gothic":      {"Gothic", "High Medieval"},
	"renaissance": {"Renaissance", "Early Modern"},
	"romanesque":  {"Romanesque", "Medieval"},
	"baroque":     {"Baroque", "Early Modern"},
	"byzantine":   {"Byzantine", "Early Medieval"},
	"moorish":     {"Moorish", "Medieval"},
	"islamic":     {"Islamic", "Medieval"},
}

var yearRe = regexp.MustCompile(`\d{3,4}`)

// DerivePeriods derives historical periods from the architectural style and
// the construction year. Duplicates are removed; insertion order is kept so
// the result is deterministic.
func DerivePeriods(style, yearBuilt string) []string {
	var periods []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			periods = append(periods, p)
		}
	}

	low := strings.ToLower(style)
	for key, eras := range styleEras {
		if strings.Contains(low, key) {
			for _, e := range eras {
				add(e)
			}
		}
	}

	if year, ok := parseYear(yearBuilt); ok {
		switch {
		case year >= 500 && year < 1000:
			add("Early Medieval")
		case year >= 1000 && year < 1300:
			add("High Medieval")
		case year >= 1300 && year < 1500:
			add("Late Medieval")
		case year >= 1500 && year < 1650:
			add("Early Modern")
		case year >= 1650 && year < 1800:
			add("Baroque")
		case year >= 1800 && year < 1900:
			add("19th Century")
		case year >= 1900:
			add("Modern")
		}
	}

	return periods
}

// parseYear extracts the first 3-4 digit number from a free-form year string
// like "c. 1070" or "1869-1886".
func parseYear(s string) (int, bool) {
	m := yearRe.FindString(s)
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return year, true
}

// CulturalContext maps a country to the cultural sphere used in generated
// significance text.
func CulturalContext(country string) string {
	switch {
	case strings.Contains(country, "England"), strings.Contains(country, "Scotland"),
		strings.Contains(country, "United Kingdom"):
		return "Anglo-Norman"
	case strings.Contains(country, "France"):
		return "French royal"
	case strings.Contains(country, "Germany"):
		return "Holy Roman Imperial"
	case strings.Contains(country, "Spain"):
		return "Iberian medieval"
	default:
		return "European medieval"
	}
}

// DeriveThemes derives cultural theme tags from the architectural style and
// the description text. Falls back to political_authority when nothing matches.
func DeriveThemes(style, description string) []string {
	var themes []string
	lowStyle := strings.ToLower(style)
	lowDesc := strings.ToLower(description)

	if strings.Contains(lowStyle, "gothic") || strings.Contains(lowStyle, "cathedral") {
		themes = append(themes, "religious_authority")
	}
	if strings.Contains(lowStyle, "renaissance") || strings.Contains(lowStyle, "palace") {
		themes = append(themes, "artistic_patronage")
	}
	if strings.Contains(lowStyle, "fortress") || strings.Contains(lowStyle, "military") {
		themes = append(themes, "military_power")
	}
	if containsAny(lowDesc, "king", "royal", "crown") {
		themes = append(themes, "royal_authority")
	}
	if containsAny(lowDesc, "trade", "merchant", "economic") {
		themes = append(themes, "economic_power")
	}

	if len(themes) == 0 {
		return []string{"political_authority"}
	}
	return themes
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Quality returns a 0-1 heuristic for how much narrative material a record
// carries, mirroring the weighting the hand-run pipeline used.
func Quality(c *models.Castle) float64 {
	score := 0.0
	if c.CastleName != "" {
		score += 0.2
	}
	if c.Location != "" {
		score += 0.2
	}
	if c.YearBuilt != "" {
		score += 0.2
	}
	if c.ArchitecturalStyle != "" {
		score += 0.2
	}
	if len(c.RulerBiographies) > 0 {
		score += 0.1
	}
	if len(c.NotableBattles) > 0 {
		score += 0.1
	}
	if len(c.Legends) > 0 {
		score += 0.1
	}
	if c.CulturalSignificance != "" {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Enrich fills narrative-derived fields that are still empty: historical
// periods, cultural themes, and a generated cultural significance line.
func Enrich(c models.Castle) models.Castle {
	if len(c.HistoricalPeriods) == 0 {
		c.HistoricalPeriods = DerivePeriods(c.ArchitecturalStyle, c.YearBuilt)
	}
	if len(c.CulturalThemes) == 0 {
		c.CulturalThemes = DeriveThemes(c.ArchitecturalStyle, c.ShortDescription)
	}
	if c.CulturalSignificance == "" && c.ArchitecturalStyle != "" {
		c.CulturalSignificance = fmt.Sprintf(
			"%s represents the %s architectural achievement and %s heritage.",
			c.CastleName, c.ArchitecturalStyle, CulturalContext(c.Country))
	}
	if c.Metadata == nil {
		c.Metadata = &models.Metadata{}
	}
	c.Metadata.NarrativeQuality = Quality(&c)
	return c
}
