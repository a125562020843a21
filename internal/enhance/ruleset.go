package enhance

import "strings"

// Ruleset is the configuration data behind the modernTrends2025 classifier.
// The allowlists are heuristics carried over from the hand-maintained
// dataset; they are data, not logic, and can be overridden from a YAML file.
type Ruleset struct {
	// PPPCountries and PPPStyles gate public-private-partnership eligibility.
	// A record is eligible only when both its country and its architectural
	// style appear in the lists.
	PPPCountries []string `yaml:"ppp_countries" json:"ppp_countries"`
	PPPStyles    []string `yaml:"ppp_styles" json:"ppp_styles"`

	// BudgetBands maps a country to a restoration budget estimate string.
	BudgetBands map[string]string `yaml:"budget_bands" json:"budget_bands"`
	// DefaultBudget is used when the country has no band.
	DefaultBudget string `yaml:"default_budget" json:"default_budget"`

	// SustainabilityByStyle maps an architectural style to a
	// sustainability focus string.
	SustainabilityByStyle map[string]string `yaml:"sustainability_by_style" json:"sustainability_by_style"`
	// DefaultSustainability is used when the style has no entry.
	DefaultSustainability string `yaml:"default_sustainability" json:"default_sustainability"`
}

// DefaultRuleset returns the built-in classifier configuration.
func DefaultRuleset() Ruleset {
	return Ruleset{
		PPPCountries: []string{
			"Germany", "France", "Spain", "Italy", "Austria",
			"United Kingdom", "Czech Republic", "Poland", "Portugal",
		},
		PPPStyles: []string{
			"Renaissance", "Gothic", "Baroque", "Romanesque",
			"Norman", "Medieval", "Moorish",
		},
		BudgetBands: map[string]string{
			"Germany":        "EUR 2-5M annually",
			"France":         "EUR 2-5M annually",
			"United Kingdom": "GBP 1-4M annually",
			"Spain":          "EUR 1-3M annually",
			"Italy":          "EUR 1-3M annually",
		},
		DefaultBudget: "EUR 0.5-1M annually",
		SustainabilityByStyle: map[string]string{
			"Gothic":      "stone conservation and visitor-load management",
			"Renaissance": "adaptive reuse and climate-controlled interiors",
			"Medieval":    "ruins stabilisation and habitat protection",
			"Norman":      "masonry repair with traditional materials",
		},
		DefaultSustainability: "routine heritage maintenance",
	}
}

func (r Ruleset) pppEligible(country, style string) bool {
	return containsFold(r.PPPCountries, country) && matchesStyleFold(r.PPPStyles, style)
}

func (r Ruleset) budgetEstimate(country string) string {
	if b, ok := r.BudgetBands[country]; ok {
		return b
	}
	return r.DefaultBudget
}

func (r Ruleset) sustainabilityFocus(style string) string {
	for key, focus := range r.SustainabilityByStyle {
		if strings.Contains(strings.ToLower(style), strings.ToLower(key)) {
			return focus
		}
	}
	return r.DefaultSustainability
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// matchesStyleFold matches loosely: "French Renaissance" matches "Renaissance".
func matchesStyleFold(list []string, style string) bool {
	low := strings.ToLower(style)
	for _, item := range list {
		if strings.Contains(low, strings.ToLower(item)) {
			return true
		}
	}
	return false
}
