// Package site renders the static HTML site from the castle collection.
// All output files go through the storage layer's atomic write, so a crash
// mid-render never leaves a torn page behind.
package site

import (
	"bytes"
	"fmt"
	"log/slog"
	"path"
	"sort"

	"github.com/starford/castellan/internal/checksum"
	"github.com/starford/castellan/internal/models"
	"github.com/starford/castellan/internal/storage"
)

// Generator renders the site into a storage.Provider rooted at the
// output directory.
type Generator struct {
	out     storage.Provider
	title   string
	baseURL string
	logger  *slog.Logger
}

// NewGenerator creates a site generator.
func NewGenerator(out storage.Provider, title, baseURL string, logger *slog.Logger) *Generator {
	if baseURL == "" {
		baseURL = "/"
	}
	return &Generator{out: out, title: title, baseURL: baseURL, logger: logger}
}

type indexData struct {
	Title    string
	BaseURL  string
	StyleVer string
	Castles  []models.Castle
}

type castleData struct {
	Title    string
	BaseURL  string
	StyleVer string
	Castle   models.Castle
}

// Render regenerates every page and the stylesheet. Callers must validate
// the collection before rendering; this method assumes records are complete.
func (g *Generator) Render(castles []models.Castle) error {
	sorted := make([]models.Castle, len(castles))
	copy(sorted, castles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CastleName < sorted[j].CastleName
	})

	styleVer := checksum.Short([]byte(styleCSS))

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, indexData{Title: g.title, BaseURL: g.baseURL, StyleVer: styleVer, Castles: sorted}); err != nil {
		return fmt.Errorf("site: render index: %w", err)
	}
	if err := g.out.Write("index.html", buf.Bytes()); err != nil {
		return fmt.Errorf("site: write index: %w", err)
	}

	for _, c := range sorted {
		buf.Reset()
		if err := castleTmpl.Execute(&buf, castleData{Title: g.title, BaseURL: g.baseURL, StyleVer: styleVer, Castle: c}); err != nil {
			return fmt.Errorf("site: render %s: %w", c.ID, err)
		}
		page := path.Join("castles", c.ID+".html")
		if err := g.out.Write(page, buf.Bytes()); err != nil {
			return fmt.Errorf("site: write %s: %w", page, err)
		}
	}

	if err := g.out.Write("style.css", []byte(styleCSS)); err != nil {
		return fmt.Errorf("site: write stylesheet: %w", err)
	}

	g.logger.Info("site: rendered", slog.Int("pages", len(sorted)+1))
	return nil
}
