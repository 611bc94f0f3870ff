package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"catalog": "s3://admissions/catalog.json",
		"database_url": "sqlite://data/admissions.db",
		"port": 9000,
		"explain_top_n": 3,
		"llm_provider": "genai",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "s3://admissions/catalog.json", cfg.Catalog)
	assert.Equal(t, "sqlite://data/admissions.db", cfg.DatabaseURL)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 3, cfg.ExplainTopN)
	assert.Equal(t, "genai", cfg.LLMProvider)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	tests := []struct {
		name string
		path string
		want string
	}{
		{"invalid json", tmpFile, "failed to parse config JSON"},
		{"missing file", "/nonexistent/path/config.json", "failed to read config file"},
		{"empty path", "", "config path is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"valid", Config{Port: 8000, ExplainTopN: 5, DatabaseURL: "postgres://localhost/db"}, ""},
		{"zero values", Config{}, ""},
		{"port", Config{Port: 70000}, "port"},
		{"top n", Config{ExplainTopN: -1}, "explain_top_n"},
		{"timeout", Config{AITimeoutSeconds: -2}, "ai_timeout_seconds"},
		{"provider", Config{LLMProvider: "openai"}, "unknown LLM provider"},
		{"database url", Config{DatabaseURL: "admissions.db"}, "database_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		DatabaseURL:  "sqlite://default.db",
		APIKey:       "env-key",
		Port:         8080,
		CatalogWatch: true,
	}
	partial := Config{Catalog: "mine.json", ExplainTopN: 2}

	merged := partial.MergeWithDefaults(defaults)

	assert.Equal(t, "mine.json", merged.Catalog)
	assert.Equal(t, 2, merged.ExplainTopN)
	assert.Equal(t, "sqlite://default.db", merged.DatabaseURL)
	assert.Equal(t, "env-key", merged.APIKey)
	assert.Equal(t, 8080, merged.Port)
	assert.True(t, merged.CatalogWatch)
	assert.Equal(t, DefaultAITimeoutSeconds, merged.AITimeoutSeconds)
	assert.Equal(t, 10*time.Second, merged.AITimeout())
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	var cfg Config
	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, DefaultCatalog, merged.Catalog)
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultExplainTopN, merged.ExplainTopN)
	assert.Empty(t, merged.DatabaseURL)
	assert.False(t, merged.CatalogWatch)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "catalog.json")
	t.Setenv("CATALOG_WATCH", "TRUE")
	t.Setenv("DATABASE_URL", "sqlite://x.db")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("LLM_PROVIDER", "genai")
	t.Setenv("EMAIL_SIMULATION_DIR", "/tmp/mail")

	cfg := FromEnv()
	assert.Equal(t, "catalog.json", cfg.Catalog)
	assert.True(t, cfg.CatalogWatch)
	assert.Equal(t, "sqlite://x.db", cfg.DatabaseURL)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "genai", cfg.LLMProvider)
	assert.Equal(t, "/tmp/mail", cfg.EmailSimulationDir)
}
