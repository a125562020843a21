package internal

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Data    DataConfig        `yaml:"data"`
	Catalog CatalogConfig     `yaml:"catalog"`
	Site    SiteConfig        `yaml:"site"`
	Extract ExtractConfig     `yaml:"extract"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Extract.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds preview server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DataConfig holds the paths of the dataset files inside the data directory.
// Collection, Candidates, EnhancementsDir, and Rules are relative to Dir.
// Rules is optional; when empty the built-in classification rules apply.
type DataConfig struct {
	Dir             string `yaml:"dir"`
	Collection      string `yaml:"collection"`
	Candidates      string `yaml:"candidates"`
	EnhancementsDir string `yaml:"enhancements_dir"`
	Rules           string `yaml:"rules"`
}

// Validate validates the data configuration.
func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Collection, validation.Required),
		validation.Field(&c.Candidates, validation.Required),
		validation.Field(&c.EnhancementsDir, validation.Required),
	)
}

// CatalogConfig holds SQLite catalog configuration.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the catalog configuration.
func (c *CatalogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SiteConfig holds static site generation configuration.
type SiteConfig struct {
	OutputDir string `yaml:"output_dir"`
	Title     string `yaml:"title"`
	BaseURL   string `yaml:"base_url"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.Title, validation.Required),
	)
}

// ExtractConfig holds external enrichment configuration. Failures of these
// sources are never fatal; an empty endpoint disables the source.
type ExtractConfig struct {
	UserAgent         string `yaml:"user_agent"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	WikipediaEndpoint string `yaml:"wikipedia_endpoint"`
	WikidataEndpoint  string `yaml:"wikidata_endpoint"`
}

// Timeout returns the per-request timeout for enrichment calls.
func (c *ExtractConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate validates the extract configuration.
func (c *ExtractConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.UserAgent, validation.Required),
		validation.Field(&c.TimeoutSeconds, validation.Min(0)),
	)
}

// AuthConfig holds preview server authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Data: DataConfig{
			Dir:             "./data",
			Collection:      "castles.json",
			Candidates:      "candidates.json",
			EnhancementsDir: "enhancements",
		},
		Catalog: CatalogConfig{
			Path: "./castellan.db",
		},
		Site: SiteConfig{
			OutputDir: "./site",
			Title:     "Castle Atlas",
			BaseURL:   "/",
		},
		Extract: ExtractConfig{
			UserAgent:         "Castellan/1.0 (castle dataset curator)",
			TimeoutSeconds:    30,
			WikipediaEndpoint: "https://en.wikipedia.org/api/rest_v1/page/summary/",
			WikidataEndpoint:  "https://query.wikidata.org/sparql",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}

// EnhancementsGlobDir returns the absolute enhancements directory.
func (c *Config) EnhancementsGlobDir() string {
	return filepath.Join(c.Data.Dir, c.Data.EnhancementsDir)
}

// RulesPath returns the absolute classification ruleset path, or "" when
// no override file is configured.
func (c *Config) RulesPath() string {
	if c.Data.Rules == "" {
		return ""
	}
	return filepath.Join(c.Data.Dir, c.Data.Rules)
}
