// Package llm provides centralized LLM configuration and client abstractions
// for the advisor's annotation layer (career mapping, explanations, chat).
package llm

import (
	"fmt"
	"strings"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short free text: per-course explanations
	TierLite ModelTier = "lite"
	// TierStandard is for structured output: career-goal to course mapping
	TierStandard ModelTier = "standard"
	// TierAdvanced is for open conversation: counselor chat
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini uses the github.com/google/generative-ai-go SDK
	ProviderGemini Provider = "gemini"
	// ProviderGenAI uses the google.golang.org/genai SDK
	ProviderGenAI Provider = "genai"
)

// ParseProvider maps a configuration string to a Provider.
// An empty string selects ProviderGemini.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProviderGemini:
		return ProviderGemini, nil
	case ProviderGenAI:
		return ProviderGenAI, nil
	}
	return "", fmt.Errorf("unknown LLM provider %q", s)
}

// Config holds the model configuration for the application
type Config struct {
	Provider     Provider
	Models       map[ModelTier]string
	Temperatures map[ModelTier]float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-flash",
		},
		Temperatures: map[ModelTier]float32{
			TierLite:     0.7,
			TierStandard: 0.1,
			TierAdvanced: 0.7,
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// DefaultTemperature applies to tiers without an explicit temperature.
const DefaultTemperature float32 = 0.1

// GetTemperature returns the sampling temperature for a tier
func (c *Config) GetTemperature(tier ModelTier) float32 {
	if t, ok := c.Temperatures[tier]; ok {
		return t
	}
	return DefaultTemperature
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := c.clone()
	newConfig.Models[tier] = model
	return newConfig
}

// WithProvider returns a new Config using provider
func (c *Config) WithProvider(provider Provider) *Config {
	newConfig := c.clone()
	newConfig.Provider = provider
	return newConfig
}

func (c *Config) clone() *Config {
	newConfig := &Config{
		Provider:     c.Provider,
		Models:       make(map[ModelTier]string, len(c.Models)),
		Temperatures: make(map[ModelTier]float32, len(c.Temperatures)),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	for k, v := range c.Temperatures {
		newConfig.Temperatures[k] = v
	}
	return newConfig
}
