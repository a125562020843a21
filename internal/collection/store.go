// Package collection manages the castle collection file and its companion
// datasets: whole-file read, in-memory transform, validate, atomic write.
package collection

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/starford/castellan/internal/apperr"
	"github.com/starford/castellan/internal/models"
	"github.com/starford/castellan/internal/storage"
)

// Store reads and writes the collection, candidate registry, and enhancement
// datasets through a storage.Provider rooted at the data directory.
type Store struct {
	store           storage.Provider
	collectionPath  string
	candidatesPath  string
	enhancementsDir string
	logger          *slog.Logger
}

// NewStore creates a collection store. All paths are relative to the
// provider root.
func NewStore(store storage.Provider, collectionPath, candidatesPath, enhancementsDir string, logger *slog.Logger) *Store {
	return &Store{
		store:           store,
		collectionPath:  collectionPath,
		candidatesPath:  candidatesPath,
		enhancementsDir: enhancementsDir,
		logger:          logger,
	}
}

// Load reads the full collection. A missing file or invalid JSON is logged
// and degrades to an empty collection so downstream commands can proceed.
func (s *Store) Load() []models.Castle {
	data, err := s.store.Read(s.collectionPath)
	if err != nil {
		s.logger.Warn("collection: read failed, starting empty",
			slog.String("path", s.collectionPath), slog.String("error", err.Error()))
		return nil
	}
	var castles []models.Castle
	if err := json.Unmarshal(data, &castles); err != nil {
		s.logger.Warn("collection: invalid JSON, starting empty",
			slog.String("path", s.collectionPath), slog.String("error", err.Error()))
		return nil
	}
	return castles
}

// Save validates every record and atomically writes the full collection.
// Validation failure aborts before anything is written.
func (s *Store) Save(castles []models.Castle) error {
	seen := make(map[string]struct{}, len(castles))
	for i := range castles {
		if err := Validate(&castles[i]); err != nil {
			return fmt.Errorf("collection: record %d: %w", i, err)
		}
		if _, dup := seen[castles[i].ID]; dup {
			return fmt.Errorf("collection: record %d: %w: %s", i, apperr.ErrDuplicateID, castles[i].ID)
		}
		seen[castles[i].ID] = struct{}{}
	}
	data, err := json.MarshalIndent(castles, "", "  ")
	if err != nil {
		return fmt.Errorf("collection: marshal: %w", err)
	}
	data = append(data, '\n')
	if err := s.store.Write(s.collectionPath, data); err != nil {
		return fmt.Errorf("collection: save: %w", err)
	}
	return nil
}

// Validate checks the required identity fields of a final record.
func Validate(c *models.Castle) error {
	var missing []string
	if c.ID == "" {
		missing = append(missing, "id")
	}
	if c.CastleName == "" {
		missing = append(missing, "castleName")
	}
	if c.Country == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", apperr.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// LoadCandidates reads the candidate registry, degrading to empty on failure.
func (s *Store) LoadCandidates() []models.Candidate {
	data, err := s.store.Read(s.candidatesPath)
	if err != nil {
		s.logger.Warn("collection: candidate registry read failed",
			slog.String("path", s.candidatesPath), slog.String("error", err.Error()))
		return nil
	}
	var candidates []models.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		s.logger.Warn("collection: candidate registry invalid JSON",
			slog.String("path", s.candidatesPath), slog.String("error", err.Error()))
		return nil
	}
	return candidates
}

// NextCandidates returns up to n candidates whose ids are not already present
// in the collection. An id that exists in the collection is never returned,
// regardless of how often it appears in the registry.
func (s *Store) NextCandidates(existing []models.Castle, n int) []models.Candidate {
	used := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		used[c.ID] = struct{}{}
	}

	var out []models.Candidate
	for _, cand := range s.LoadCandidates() {
		if len(out) >= n {
			break
		}
		if cand.ID == "" {
			continue
		}
		if _, taken := used[cand.ID]; taken {
			continue
		}
		used[cand.ID] = struct{}{}
		out = append(out, cand)
	}
	return out
}

// FromCandidate builds a base castle record from a registry entry.
func FromCandidate(cand models.Candidate) models.Castle {
	return models.Castle{
		ID:                 cand.ID,
		CastleName:         cand.CastleName,
		Country:            cand.Country,
		Location:           cand.Location,
		Coordinates:        cand.Coordinates,
		ArchitecturalStyle: cand.ArchitecturalStyle,
		YearBuilt:          cand.YearBuilt,
		ShortDescription:   cand.ShortDescription,
		Metadata: &models.Metadata{
			Version:   "1.0",
			Source:    cand.Source,
			SourceURL: cand.SourceURL,
		},
	}
}

// LoadEnhancements reads every .json dataset under the enhancements
// directory. Each file holds an array of enhancement records. A file that
// cannot be read or parsed is logged and skipped.
func (s *Store) LoadEnhancements() []models.Enhancement {
	metas, err := s.store.List(s.enhancementsDir, ".json")
	if err != nil {
		s.logger.Warn("collection: list enhancements failed",
			slog.String("dir", s.enhancementsDir), slog.String("error", err.Error()))
		return nil
	}

	var all []models.Enhancement
	for _, m := range metas {
		data, err := s.store.Read(m.Path)
		if err != nil {
			s.logger.Warn("collection: enhancement read failed",
				slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		var records []models.Enhancement
		if err := json.Unmarshal(data, &records); err != nil {
			s.logger.Warn("collection: enhancement invalid JSON, skipped",
				slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		all = append(all, records...)
	}
	return all
}

// SaveEnhancements writes an enhancement dataset file under the
// enhancements directory.
func (s *Store) SaveEnhancements(name string, records []models.Enhancement) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("collection: marshal enhancements: %w", err)
	}
	data = append(data, '\n')
	path := filepath.Join(s.enhancementsDir, name)
	if err := s.store.Write(path, data); err != nil {
		return fmt.Errorf("collection: save enhancements: %w", err)
	}
	return nil
}
