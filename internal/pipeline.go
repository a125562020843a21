package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/castellan/internal/collection"
	"github.com/starford/castellan/internal/enhance"
	"github.com/starford/castellan/internal/extract"
	"github.com/starford/castellan/internal/models"
	"github.com/starford/castellan/internal/narrative"
	"github.com/starford/castellan/internal/score"
	"github.com/starford/castellan/internal/site"
	"github.com/starford/castellan/internal/storage"
)

// ExtractedDataset is the file name the extract command writes under the
// enhancements directory.
const ExtractedDataset = "extracted.json"

// Pipeline wires the dataset stores and classification rules behind the
// data commands.
type Pipeline struct {
	cfg    *Config
	logger *slog.Logger
	col    *collection.Store
	rules  enhance.Ruleset
}

// NewPipeline initializes storage under the configured data directory and
// loads the classification ruleset.
func NewPipeline(cfg *Config, logger *slog.Logger) (*Pipeline, error) {
	if err := os.MkdirAll(cfg.EnhancementsGlobDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	store, err := storage.NewFS(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	rules, err := enhance.LoadRuleset(cfg.RulesPath())
	if err != nil {
		return nil, err
	}

	col := collection.NewStore(store, cfg.Data.Collection, cfg.Data.Candidates,
		cfg.Data.EnhancementsDir, logger)

	return &Pipeline{cfg: cfg, logger: logger, col: col, rules: rules}, nil
}

// Collection returns the underlying collection store.
func (p *Pipeline) Collection() *collection.Store {
	return p.col
}

// Grow appends up to n new castles from the candidate registry and saves
// the collection. Returns how many were added; zero means the registry has
// no unused candidates left.
func (p *Pipeline) Grow(n int) (int, error) {
	castles := p.col.Load()
	picked := p.col.NextCandidates(castles, n)
	if len(picked) == 0 {
		p.logger.Info("grow: candidate registry exhausted, nothing added")
		return 0, nil
	}

	for _, cand := range picked {
		base := collection.FromCandidate(cand)
		p.logger.Info("grow: adding castle",
			slog.String("id", base.ID), slog.String("country", base.Country))
		castles = append(castles, base)
	}
	if err := p.col.Save(castles); err != nil {
		return 0, err
	}
	return len(picked), nil
}

// Enhance merges every enhancement dataset into the collection, derives
// narrative fields, restamps completeness scores, and saves.
func (p *Pipeline) Enhance() error {
	castles := p.col.Load()
	byID := enhance.BuildLookup(p.col.LoadEnhancements())

	merged := enhance.Merge(castles, byID, p.rules)
	for i := range merged {
		merged[i] = narrative.Enrich(merged[i])
	}
	score.Stamp(merged)

	p.logger.Info("enhance: pipeline complete",
		slog.Int("castles", len(merged)), slog.Int("enhancements", len(byID)))
	return p.col.Save(merged)
}

// Score recomputes completeness scores for reporting. Nothing is written;
// the enhance pipeline is what persists scores.
func (p *Pipeline) Score() []models.Castle {
	castles := p.col.Load()
	score.Stamp(castles)
	return castles
}

// Extract fetches enrichment data for every castle in the collection and
// writes the result as an enhancement dataset. Source selects which
// reference APIs to query: "wikipedia", "wikidata", or "all". Individual
// fetch failures degrade to empty fields and are never fatal.
func (p *Pipeline) Extract(ctx context.Context, source string) (int, error) {
	wikipedia := p.cfg.Extract.WikipediaEndpoint
	wikidata := p.cfg.Extract.WikidataEndpoint
	switch source {
	case "wikipedia":
		wikidata = ""
	case "wikidata":
		wikipedia = ""
	case "", "all":
	default:
		return 0, fmt.Errorf("unknown extract source %q", source)
	}

	client := extract.NewClient(p.cfg.Extract.UserAgent, p.cfg.Extract.Timeout(),
		wikipedia, wikidata, p.logger)

	castles := p.col.Load()
	if len(castles) == 0 {
		p.logger.Info("extract: collection empty, nothing to do")
		return 0, nil
	}

	records := make([]models.Enhancement, 0, len(castles))
	for _, c := range castles {
		records = append(records, client.EnhancementFor(ctx, c))
	}
	if err := p.col.SaveEnhancements(ExtractedDataset, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Render writes the static site for the current collection into the
// configured output directory.
func (p *Pipeline) Render() error {
	if err := os.MkdirAll(p.cfg.Site.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create site dir: %w", err)
	}
	out, err := storage.NewFS(p.cfg.Site.OutputDir)
	if err != nil {
		return fmt.Errorf("init site storage: %w", err)
	}
	gen := site.NewGenerator(out, p.cfg.Site.Title, p.cfg.Site.BaseURL, p.logger)
	return gen.Render(p.col.Load())
}
