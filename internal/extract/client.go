// Package extract implements best-effort enrichment from public reference
// APIs. Every call degrades to empty values on failure: errors are logged,
// never retried, and never escalate to the caller.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/starford/castellan/internal/models"
)

// Summary is the subset of a Wikipedia page summary the pipeline uses.
type Summary struct {
	Extract     string `json:"extract"`
	Description string `json:"description"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Facts is the subset of Wikidata structured data the pipeline uses.
type Facts struct {
	Inception    string
	CountryLabel string
}

// Client fetches enrichment data from Wikipedia and Wikidata.
type Client struct {
	http              *http.Client
	userAgent         string
	wikipediaEndpoint string
	wikidataEndpoint  string
	logger            *slog.Logger
}

// NewClient creates an enrichment client. An empty endpoint disables the
// corresponding source.
func NewClient(userAgent string, timeout time.Duration, wikipediaEndpoint, wikidataEndpoint string, logger *slog.Logger) *Client {
	return &Client{
		http:              &http.Client{Timeout: timeout},
		userAgent:         userAgent,
		wikipediaEndpoint: wikipediaEndpoint,
		wikidataEndpoint:  wikidataEndpoint,
		logger:            logger,
	}
}

// WikipediaSummary fetches the REST summary for a page title. Any failure
// returns a zero Summary.
func (c *Client) WikipediaSummary(ctx context.Context, title string) Summary {
	if c.wikipediaEndpoint == "" || title == "" {
		return Summary{}
	}
	u := c.wikipediaEndpoint + url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	body, err := c.get(ctx, u, "application/json")
	if err != nil {
		c.logger.Warn("extract: wikipedia fetch failed",
			slog.String("title", title), slog.String("error", err.Error()))
		return Summary{}
	}

	var s Summary
	if err := json.Unmarshal(body, &s); err != nil {
		c.logger.Warn("extract: wikipedia parse failed",
			slog.String("title", title), slog.String("error", err.Error()))
		return Summary{}
	}
	return s
}

// sparqlResponse mirrors the SPARQL JSON result envelope.
type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// WikidataFacts looks up structured facts for a castle by its English label.
// Any failure returns a zero Facts.
func (c *Client) WikidataFacts(ctx context.Context, name string) Facts {
	if c.wikidataEndpoint == "" || name == "" {
		return Facts{}
	}

	query := fmt.Sprintf(`SELECT ?inception ?countryLabel WHERE {
  ?item rdfs:label %q@en .
  ?item wdt:P31/wdt:P279* wd:Q23413 .
  OPTIONAL { ?item wdt:P571 ?inception . }
  OPTIONAL { ?item wdt:P17 ?country . }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en" . }
} LIMIT 1`, name)

	u := c.wikidataEndpoint + "?format=json&query=" + url.QueryEscape(query)
	body, err := c.get(ctx, u, "application/sparql-results+json")
	if err != nil {
		c.logger.Warn("extract: wikidata fetch failed",
			slog.String("name", name), slog.String("error", err.Error()))
		return Facts{}
	}

	var resp sparqlResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("extract: wikidata parse failed",
			slog.String("name", name), slog.String("error", err.Error()))
		return Facts{}
	}
	if len(resp.Results.Bindings) == 0 {
		return Facts{}
	}

	b := resp.Results.Bindings[0]
	var f Facts
	if v, ok := b["inception"]; ok {
		// Inception arrives as an ISO timestamp; keep the year.
		f.Inception = strings.SplitN(strings.TrimPrefix(v.Value, "+"), "-", 2)[0]
	}
	if v, ok := b["countryLabel"]; ok {
		f.CountryLabel = v.Value
	}
	return f
}

// EnhancementFor builds an enhancement record for one castle from every
// configured source. Missing data leaves fields empty.
func (c *Client) EnhancementFor(ctx context.Context, castle models.Castle) models.Enhancement {
	e := models.Enhancement{ID: castle.ID}

	summary := c.WikipediaSummary(ctx, castle.CastleName)
	e.DetailedDescription = summary.Extract

	facts := c.WikidataFacts(ctx, castle.CastleName)
	e.YearBuilt = facts.Inception

	if u, ok := UnescoListing(castle.ID); ok {
		e.Unesco = &u
	}
	return e
}

func (c *Client) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}
