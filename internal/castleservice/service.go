// Package castleservice coordinates the collection file and the catalog for
// read queries served by the preview API and the MCP tools.
package castleservice

import (
	"context"

	"github.com/starford/castellan/internal/apperr"
	"github.com/starford/castellan/internal/catalog"
	"github.com/starford/castellan/internal/collection"
	"github.com/starford/castellan/internal/models"
)

// Stats summarises the collection for the dashboard endpoint.
type Stats struct {
	Total               int     `json:"total"`
	AverageCompleteness float64 `json:"averageCompleteness"`
	Countries           int     `json:"countries"`
}

// Service answers read queries over the castle dataset.
type Service struct {
	col *collection.Store
	db  catalog.CastleIndex
}

// NewService creates a new castle service.
func NewService(col *collection.Store, db catalog.CastleIndex) *Service {
	return &Service{col: col, db: db}
}

// List returns a page of catalogued castle rows plus the total count.
func (s *Service) List(_ context.Context, limit, offset int, country, sort string) ([]catalog.CastleRow, int, error) {
	return s.db.ListCastles(limit, offset, country, sort)
}

// Get returns the full collection record for an id.
func (s *Service) Get(_ context.Context, id string) (*models.Castle, error) {
	for _, c := range s.col.Load() {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// Search runs a full-text search over the catalog.
func (s *Service) Search(_ context.Context, query string, limit int) ([]catalog.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Countries returns per-country castle counts.
func (s *Service) Countries(_ context.Context) ([]catalog.CountryCount, error) {
	return s.db.Countries()
}

// Summary computes collection-level statistics.
func (s *Service) Summary(_ context.Context) (Stats, error) {
	total, avg, err := s.db.CompletenessStats()
	if err != nil {
		return Stats{}, err
	}
	countries, err := s.db.Countries()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Total: total, AverageCompleteness: avg, Countries: len(countries)}, nil
}
