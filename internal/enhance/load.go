package enhance

import (
	"fmt"

	"github.com/starford/castellan/internal/models"
	pkgconfig "github.com/starford/castellan/pkg/config"
)

// BuildLookup converts a flat list of enhancement records into the read-only
// by-id lookup the merge consumes. Later records win on duplicate ids.
func BuildLookup(records []models.Enhancement) map[string]models.Enhancement {
	byID := make(map[string]models.Enhancement, len(records))
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		byID[r.ID] = r
	}
	return byID
}

// LoadRuleset returns the built-in ruleset, overridden by the YAML file at
// path when path is non-empty.
func LoadRuleset(path string) (Ruleset, error) {
	rules := DefaultRuleset()
	if path == "" {
		return rules, nil
	}
	if err := pkgconfig.Load(path, &rules); err != nil {
		return Ruleset{}, fmt.Errorf("enhance: load ruleset: %w", err)
	}
	return rules, nil
}
