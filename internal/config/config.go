// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/admission-advisor/internal/llm"
)

// Defaults applied by MergeWithDefaults when neither the file nor a flag sets a value.
const (
	DefaultPort             = 8000
	DefaultCatalog          = "testdata/catalog.json"
	DefaultExplainTopN      = 5
	DefaultAITimeoutSeconds = 10
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, flags or environment.
type Config struct {
	// Data
	Catalog      string `json:"catalog,omitempty"`       // Catalog path or s3://bucket/key
	CatalogWatch bool   `json:"catalog_watch,omitempty"` // Reload the catalog file when it changes
	DatabaseURL  string `json:"database_url,omitempty"`  // postgres://... or sqlite://path

	// Server
	Port               int    `json:"port,omitempty"`
	EmailSimulationDir string `json:"email_simulation_dir,omitempty"` // Where simulated emails are written

	// AI
	APIKey           string `json:"api_key,omitempty"`      // Gemini API key
	LLMProvider      string `json:"llm_provider,omitempty"` // gemini or genai
	ExplainTopN      int    `json:"explain_top_n,omitempty"`
	AITimeoutSeconds int    `json:"ai_timeout_seconds,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables.
func FromEnv() Config {
	return Config{
		Catalog:            os.Getenv("CATALOG_SOURCE"),
		CatalogWatch:       strings.EqualFold(os.Getenv("CATALOG_WATCH"), "true"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		EmailSimulationDir: os.Getenv("EMAIL_SIMULATION_DIR"),
		APIKey:             os.Getenv("GEMINI_API_KEY"),
		LLMProvider:        os.Getenv("LLM_PROVIDER"),
	}
}

// Validate checks that the configuration has valid values.
// A missing catalog file is not an error: the server starts with an empty catalog.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.ExplainTopN < 0 {
		return fmt.Errorf("config error: 'explain_top_n' must be non-negative")
	}
	if c.AITimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'ai_timeout_seconds' must be non-negative")
	}
	if _, err := llm.ParseProvider(c.LLMProvider); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.DatabaseURL != "" && !strings.Contains(c.DatabaseURL, "://") {
		return fmt.Errorf("config error: 'database_url' must be a URL, got %q", c.DatabaseURL)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.EmailSimulationDir == "" {
		result.EmailSimulationDir = defaults.EmailSimulationDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ExplainTopN == 0 {
		result.ExplainTopN = defaults.ExplainTopN
	}
	if result.AITimeoutSeconds == 0 {
		result.AITimeoutSeconds = defaults.AITimeoutSeconds
	}
	// Bools cannot distinguish unset from false, so only true propagates.
	result.CatalogWatch = result.CatalogWatch || defaults.CatalogWatch

	if result.Catalog == "" {
		result.Catalog = DefaultCatalog
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.ExplainTopN == 0 {
		result.ExplainTopN = DefaultExplainTopN
	}
	if result.AITimeoutSeconds == 0 {
		result.AITimeoutSeconds = DefaultAITimeoutSeconds
	}
	return result
}

// AITimeout returns the per-call AI timeout.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AITimeoutSeconds) * time.Second
}
