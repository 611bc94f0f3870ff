package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jonathan/admission-advisor/internal/cache"
	"github.com/jonathan/admission-advisor/internal/career"
	"github.com/jonathan/admission-advisor/internal/catalog"
	"github.com/jonathan/admission-advisor/internal/config"
	"github.com/jonathan/admission-advisor/internal/explain"
	"github.com/jonathan/admission-advisor/internal/llm"
	"github.com/jonathan/admission-advisor/internal/observability"
	"github.com/jonathan/admission-advisor/internal/pipeline"
	"github.com/spf13/cobra"
)

// commonFlags are shared by the commands that load the catalog.
type commonFlags struct {
	configPath string
	catalog    string
	apiKey     string
	verbose    bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.Flags().StringVar(&f.catalog, "catalog", "", "Catalog path or s3://bucket/key (defaults to CATALOG_SOURCE)")
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed debug information")
}

// resolve merges the config file, explicitly set flags and the environment, in that priority.
func (f *commonFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("catalog") {
		cfg.Catalog = f.catalog
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = f.apiKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbose
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.MergeWithDefaults(config.FromEnv()), nil
}

func s3ConfigFromEnv() catalog.S3Config {
	return catalog.S3Config{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Region:    os.Getenv("S3_REGION"),
	}
}

// openCatalog builds the store and performs the first load. A failed first
// load is logged and leaves the catalog empty.
func openCatalog(ctx context.Context, location string) (*catalog.Store, error) {
	source, err := catalog.NewSource(ctx, location, s3ConfigFromEnv())
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog source: %w", err)
	}
	store := catalog.NewStore(source, func(cat *catalog.Catalog, err error) {
		observability.RecordCatalogReload(cat.Len(), err)
	})
	if _, err := store.Reload(ctx); err != nil {
		log.Printf("[catalog] Warning: starting with an empty catalog: %v", err)
	}
	return store, nil
}

// newLLMClient returns nil when no API key is configured; every AI feature
// then uses its deterministic fallback.
func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		log.Printf("[llm] GEMINI_API_KEY not set, AI features use their fallbacks")
		return nil, nil
	}
	provider, err := llm.ParseProvider(cfg.LLMProvider)
	if err != nil {
		return nil, err
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig().WithProvider(provider), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// newPipeline wires the AI collaborators around the catalog. jsonCache may be nil.
func newPipeline(store pipeline.CatalogProvider, client llm.Client, jsonCache cache.JSONCache, cfg config.Config) *pipeline.Service {
	return &pipeline.Service{
		Catalog:   store,
		Mapper:    career.NewMapper(client, jsonCache, cfg.AITimeout()),
		Explainer: explain.NewExplainer(client, jsonCache, cfg.AITimeout(), nil),
		TopN:      cfg.ExplainTopN,
	}
}
