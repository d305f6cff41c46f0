package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pep299/headline-search/internal/newsapi"
)

// DefaultPort is used when neither the first argument nor API_PORT hold a port
const DefaultPort = 3000

// Config holds all configuration for the application
type Config struct {
	// Server settings
	Port      int    `json:"port"`
	Host      string `json:"host"`
	StaticDir string `json:"static_dir"`

	// NewsAPI settings
	APIKey          string        `json:"-"` // Don't expose in JSON
	NewsAPIBaseURL  string        `json:"newsapi_base_url"`
	UpstreamTimeout time.Duration `json:"upstream_timeout"`

	// Cache settings
	CacheEnabled         bool          `json:"cache_enabled"`
	CacheType            string        `json:"cache_type"` // "memory" or "cloud-storage"
	CacheTTL             time.Duration `json:"cache_ttl"`
	CacheMaxEntries      int           `json:"cache_max_entries"`
	CacheBucket          string        `json:"cache_bucket"`
	CacheStorageEndpoint string        `json:"cache_storage_endpoint"`
	CacheCleanupSchedule string        `json:"cache_cleanup_schedule"`
}

// Load reads configuration from the command line arguments, environment
// variables and .env file. args are the positional arguments after flags.
func Load(args []string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:                 resolvePort(args),
		Host:                 getEnvOrDefault("HOST", ""),
		StaticDir:            getEnvOrDefault("STATIC_DIR", "public"),
		APIKey:               getEnvOrDefault("API_KEY", ""),
		NewsAPIBaseURL:       getEnvOrDefault("NEWSAPI_BASE_URL", newsapi.DefaultBaseURL),
		UpstreamTimeout:      time.Duration(getEnvOrDefaultInt("UPSTREAM_TIMEOUT_SECONDS", 0)) * time.Second,
		CacheEnabled:         getEnvOrDefaultBool("CACHE_ENABLED", false),
		CacheType:            getEnvOrDefault("CACHE_TYPE", "memory"),
		CacheTTL:             time.Duration(getEnvOrDefaultInt("CACHE_TTL_MINUTES", 10)) * time.Minute,
		CacheMaxEntries:      getEnvOrDefaultInt("CACHE_MAX_ENTRIES", 256),
		CacheBucket:          getEnvOrDefault("CACHE_BUCKET", "headline-search-cache"),
		CacheStorageEndpoint: getEnvOrDefault("CACHE_STORAGE_ENDPOINT", ""),
		CacheCleanupSchedule: getEnvOrDefault("CACHE_CLEANUP_SCHEDULE", "@every 10m"),
	}

	return config, config.validate()
}

// resolvePort prefers the first argument, then API_PORT, then DefaultPort.
// A source without a leading positive integer falls through to the next one.
func resolvePort(args []string) int {
	if len(args) > 0 {
		if port, ok := parsePort(args[0]); ok {
			return port
		}
	}
	if port, ok := parsePort(os.Getenv("API_PORT")); ok {
		return port
	}
	return DefaultPort
}

// parsePort reads the leading digits of value, so "8080abc" is 8080.
// Zero, negative and digitless values are rejected.
func parsePort(value string) (int, bool) {
	value = strings.TrimLeft(value, " \t\n\r")
	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	port, err := strconv.Atoi(value[:end])
	if err != nil || port <= 0 {
		return 0, false
	}
	return port, true
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// WriteTimeout bounds writing a response. It leaves room for the upstream
// call, and is unbounded when the upstream call is.
func (c *Config) WriteTimeout() time.Duration {
	if c.UpstreamTimeout <= 0 {
		return 0
	}
	return 30*time.Second + c.UpstreamTimeout
}

// validate checks if required configuration values are present
func (c *Config) validate() error {
	if c.APIKey == "" {
		return &ConfigError{Field: "API_KEY", Message: "Invalid API_KEY. Please input a valid API_KEY."}
	}
	if c.CacheEnabled && c.CacheType != "memory" && c.CacheType != "cloud-storage" {
		return &ConfigError{Field: "CACHE_TYPE", Message: "must be memory or cloud-storage"}
	}
	if c.CacheEnabled && c.CacheTTL <= 0 {
		return &ConfigError{Field: "CACHE_TTL_MINUTES", Message: "must be positive"}
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvOrDefaultBool returns environment variable value as bool or default if not set
func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
