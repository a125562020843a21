// Package enhance implements the enhancement merge: it folds enhancement
// records into base castle records with a fixed per-field precedence and
// stamps every record with a modernTrends2025 classification.
package enhance

import "github.com/starford/castellan/internal/models"

// Field defaults applied during a merge when neither the enhancement nor the
// base record carries a value.
const (
	defaultCondition     = "Condition not assessed"
	defaultOwnership     = "Not documented"
	defaultFunction      = "Historic site"
	defaultHours         = "Seasonal opening, check before visiting"
	defaultAdmission     = "See official site"
	defaultAccessibility = "Partial accessibility"
	defaultGuidedTours   = "Availability varies by season"
	defaultPreservation  = "No active programme recorded"
)

// Merge applies enhancements to every base record and returns a new slice.
// byID is a read-only lookup of enhancement records keyed by castle id.
// The operation is pure and idempotent: enhancement values replace rather
// than accumulate, so merging twice with the same inputs yields the same
// output as merging once.
func Merge(base []models.Castle, byID map[string]models.Enhancement, rules Ruleset) []models.Castle {
	out := make([]models.Castle, len(base))
	for i, c := range base {
		if e, ok := byID[c.ID]; ok {
			c = Apply(c, &e, rules)
		} else {
			c.ModernTrends = classify(c, rules)
		}
		out[i] = c
	}
	return out
}

// Apply merges a single enhancement record into a castle record.
// Precedence per field: enhancement value, else existing value, else default.
func Apply(c models.Castle, e *models.Enhancement, rules Ruleset) models.Castle {
	c.CurrentStatus = mergeCurrentStatus(c.CurrentStatus, e.CurrentStatus)
	c.VisitorInfo = mergeVisitorInfo(c.VisitorInfo, e)
	c.PreservationEfforts = mergePreservation(c.PreservationEfforts, e.PreservationEfforts)
	c.TourismDetails = mergeTourism(c.TourismDetails, e.TourismDetails)

	c.YearBuilt = pick(e.YearBuilt, c.YearBuilt, "")
	c.DetailedDescription = pick(e.DetailedDescription, c.DetailedDescription, "")
	if e.Unesco != nil {
		c.Unesco = cloneUnesco(e.Unesco)
	}
	c.CulturalSignificance = pick(e.CulturalSignificance, c.CulturalSignificance, "")
	if len(e.Legends) > 0 {
		c.Legends = append([]models.Legend(nil), e.Legends...)
	}
	if len(e.NotableBattles) > 0 {
		c.NotableBattles = append([]models.Battle(nil), e.NotableBattles...)
	}
	if len(e.RulerBiographies) > 0 {
		c.RulerBiographies = append([]models.RulerBiography(nil), e.RulerBiographies...)
	}

	c.ModernTrends = classify(c, rules)
	return c
}

// classify computes the modernTrends2025 block from country, architectural
// style, and the presence of content arrays. Every record gets one.
func classify(c models.Castle, rules Ruleset) *models.ModernTrends {
	return &models.ModernTrends{
		PPPEligible:         rules.pppEligible(c.Country, c.ArchitecturalStyle),
		BudgetEstimate:      rules.budgetEstimate(c.Country),
		DigitalTourismReady: len(c.KeyFeatures) > 0 || len(c.Legends) > 0,
		SustainabilityFocus: rules.sustainabilityFocus(c.ArchitecturalStyle),
	}
}

func mergeCurrentStatus(existing, enh *models.CurrentStatus) *models.CurrentStatus {
	var ex models.CurrentStatus
	if existing != nil {
		ex = *existing
	}
	var en models.CurrentStatus
	if enh != nil {
		en = *enh
	}
	return &models.CurrentStatus{
		Condition:         pick(en.Condition, ex.Condition, defaultCondition),
		Ownership:         pick(en.Ownership, ex.Ownership, defaultOwnership),
		Function:          pick(en.Function, ex.Function, defaultFunction),
		RestorationStatus: pick(en.RestorationStatus, ex.RestorationStatus, ""),
	}
}

func mergeVisitorInfo(existing *models.VisitorInfo, e *models.Enhancement) *models.VisitorInfo {
	var ex models.VisitorInfo
	if existing != nil {
		ex = *existing
	}
	var exHours models.OpeningHours
	if ex.OpeningHours != nil {
		exHours = *ex.OpeningHours
	}
	var enHours models.OpeningHours
	if e.OpeningHours != nil {
		enHours = *e.OpeningHours
	}
	return &models.VisitorInfo{
		OpeningHours: &models.OpeningHours{
			Seasonal: pick(enHours.Seasonal, exHours.Seasonal, defaultHours),
			Summer:   pick(enHours.Summer, exHours.Summer, ""),
			Winter:   pick(enHours.Winter, exHours.Winter, ""),
		},
		AdmissionFee:  pick(e.AdmissionFee, ex.AdmissionFee, defaultAdmission),
		Accessibility: pick(e.Accessibility, ex.Accessibility, defaultAccessibility),
		GuidedTours:   pick(e.GuidedTours, ex.GuidedTours, defaultGuidedTours),
	}
}

func mergePreservation(existing, enh *models.PreservationEfforts) *models.PreservationEfforts {
	var ex models.PreservationEfforts
	if existing != nil {
		ex = *existing
	}
	var en models.PreservationEfforts
	if enh != nil {
		en = *enh
	}
	merged := &models.PreservationEfforts{
		Status:       pick(en.Status, ex.Status, defaultPreservation),
		Organization: pick(en.Organization, ex.Organization, ""),
	}
	switch {
	case len(en.RecentWork) > 0:
		merged.RecentWork = append([]string(nil), en.RecentWork...)
	case len(ex.RecentWork) > 0:
		merged.RecentWork = append([]string(nil), ex.RecentWork...)
	}
	return merged
}

func mergeTourism(existing, enh *models.TourismDetails) *models.TourismDetails {
	var ex models.TourismDetails
	if existing != nil {
		ex = *existing
	}
	var en models.TourismDetails
	if enh != nil {
		en = *enh
	}
	merged := &models.TourismDetails{
		AnnualVisitors: pick(en.AnnualVisitors, ex.AnnualVisitors, ""),
	}
	switch {
	case len(en.Facilities) > 0:
		merged.Facilities = append([]string(nil), en.Facilities...)
	case len(ex.Facilities) > 0:
		merged.Facilities = append([]string(nil), ex.Facilities...)
	}
	switch {
	case len(en.NearbyAttractions) > 0:
		merged.NearbyAttractions = append([]string(nil), en.NearbyAttractions...)
	case len(ex.NearbyAttractions) > 0:
		merged.NearbyAttractions = append([]string(nil), ex.NearbyAttractions...)
	}
	return merged
}

func cloneUnesco(u *models.UnescoInfo) *models.UnescoInfo {
	cp := *u
	return &cp
}

// pick returns the first non-empty of enhancement, existing, fallback.
func pick(enh, existing, fallback string) string {
	if enh != "" {
		return enh
	}
	if existing != "" {
		return existing
	}
	return fallback
}
