package catalog

import (
	"log/slog"
	"strings"

	"github.com/starford/castellan/internal/models"
	"github.com/starford/castellan/internal/narrative"
)

// Sync brings the catalog in line with the collection:
//   - every collection record is upserted
//   - catalog rows whose id left the collection are deleted
func Sync(db CastleIndex, castles []models.Castle, logger *slog.Logger) error {
	ids, err := db.AllIDs()
	if err != nil {
		return err
	}

	present := make(map[string]struct{}, len(castles))
	for i := range castles {
		c := &castles[i]
		present[c.ID] = struct{}{}

		row := CastleRow{
			ID:      c.ID,
			Name:    c.CastleName,
			Country: c.Country,
			Style:   c.ArchitecturalStyle,
		}
		if c.Metadata != nil {
			row.Completeness = c.Metadata.CompletenessScore
		}
		if err := db.UpsertCastle(row, searchBody(c)); err != nil {
			logger.Warn("sync: upsert failed", slog.String("id", c.ID), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("id", c.ID))
		}
	}

	// Remove stale entries.
	for id := range ids {
		if _, ok := present[id]; !ok {
			if err := db.DeleteCastle(id); err != nil {
				logger.Warn("sync: delete failed", slog.String("id", id), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("id", id))
			}
		}
	}

	return nil
}

// searchBody flattens the textual fields of a record for full-text search.
func searchBody(c *models.Castle) string {
	var parts []string
	add := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}
	add(c.Location)
	add(c.ShortDescription)
	add(c.DetailedDescription)
	add(c.CulturalSignificance)
	for _, l := range c.Legends {
		add(narrative.LegendLine(l))
	}
	for _, b := range c.NotableBattles {
		add(narrative.BattleLine(b))
	}
	parts = append(parts, c.KeyFeatures...)
	return strings.Join(parts, "\n")
}
