package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one endpoint. Paths ending in "/" match by prefix.
type Rule struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int           // bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Rules           []Rule
	// Exempt paths are never limited.
	Exempt map[string]bool
}

// DefaultConfig returns the built-in limits.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		Rules:           DefaultRules(),
		Exempt:          map[string]bool{"/health": true, "/metrics": true},
	}
}

// DefaultRules returns the per-endpoint limits. Endpoints that call the LLM
// are the strictest.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/suggest-admission", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/suggest-admission/stream", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/ai-chat", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/submit-application", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/catalog/", Method: "POST", Limit: 6, Window: time.Minute, Burst: 2},
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = getEnvBool("RATE_LIMIT_ENABLED", true)
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))
	return cfg
}

// Match returns the rule for a request, or nil when the default applies.
// Exact paths win over prefixes.
func (c *Config) Match(path, method string) *Rule {
	for i := range c.Rules {
		if r := &c.Rules[i]; r.Method == method && r.Path == path {
			return r
		}
	}
	for i := range c.Rules {
		r := &c.Rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
