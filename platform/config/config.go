// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RateLimitConfig provides per-IP request limits for the HTTP layer.
type RateLimitConfig interface {
	GetRateLimitPerMinute() int
	GetSearchRateLimitPerMinute() int
}

// PlacesConfig provides settings for the place-directory client.
type PlacesConfig interface {
	GetPlacesAPIKey() string
	GetPlacesBaseURL() string
	GetPlacesRequestTimeout() time.Duration
	GetPlacesPageTokenDelay() time.Duration
	GetPlacesRequestsPerSecond() float64
	GetPlacesBurst() int
}

// DiscoveryConfig provides settings for the business discovery pipeline.
type DiscoveryConfig interface {
	GetDetailConcurrency() int
	GetTypeConcurrency() int
	GetIsolateTypeFailures() bool
	GetSearchTimeout() time.Duration
}

// PhoneConfig provides settings for phone number normalization.
type PhoneConfig interface {
	GetPhoneDefaultRegion() string
}

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	IsDatabaseEnabled() bool
}

// SchedulerConfig provides settings for async search jobs.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetSearchJobTTL() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration.
// It implements all module-specific config interfaces.
type Config struct {
	Env            string
	HTTPAddr       string
	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	RateLimitPerMinute       int
	SearchRateLimitPerMinute int

	PlacesAPIKey            string
	PlacesBaseURL           string
	PlacesRequestTimeout    time.Duration
	PlacesPageTokenDelay    time.Duration
	PlacesRequestsPerSecond float64
	PlacesBurst             int

	DetailConcurrency   int
	TypeConcurrency     int
	IsolateTypeFailures bool
	SearchTimeout       time.Duration

	PhoneDefaultRegion string

	DatabaseURL string

	RedisURL         string
	RedisTLSInsecure bool
	AsynqQueueName   string
	AsynqConcurrency int
	SearchJobTTL     time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RateLimitConfig implementation
func (c *Config) GetRateLimitPerMinute() int       { return c.RateLimitPerMinute }
func (c *Config) GetSearchRateLimitPerMinute() int { return c.SearchRateLimitPerMinute }

// PlacesConfig implementation
func (c *Config) GetPlacesAPIKey() string                { return c.PlacesAPIKey }
func (c *Config) GetPlacesBaseURL() string               { return c.PlacesBaseURL }
func (c *Config) GetPlacesRequestTimeout() time.Duration { return c.PlacesRequestTimeout }
func (c *Config) GetPlacesPageTokenDelay() time.Duration { return c.PlacesPageTokenDelay }
func (c *Config) GetPlacesRequestsPerSecond() float64    { return c.PlacesRequestsPerSecond }
func (c *Config) GetPlacesBurst() int                    { return c.PlacesBurst }

// DiscoveryConfig implementation
func (c *Config) GetDetailConcurrency() int       { return c.DetailConcurrency }
func (c *Config) GetTypeConcurrency() int         { return c.TypeConcurrency }
func (c *Config) GetIsolateTypeFailures() bool    { return c.IsolateTypeFailures }
func (c *Config) GetSearchTimeout() time.Duration { return c.SearchTimeout }

// PhoneConfig implementation
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string  { return c.DatabaseURL }
func (c *Config) IsDatabaseEnabled() bool { return c.DatabaseURL != "" }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string            { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool      { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string      { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int       { return c.AsynqConcurrency }
func (c *Config) GetSearchJobTTL() time.Duration { return c.SearchJobTTL }
func (c *Config) IsSchedulerEnabled() bool       { return c.RedisURL != "" }

const defaultCORSOrigins = "https://business-finder.online,https://www.business-finder.online,http://localhost:4200"

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", defaultCORSOrigins))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	var p envParser
	cfg := &Config{
		Env:                      getEnv("APP_ENV", "development"),
		HTTPAddr:                 getEnv("HTTP_ADDR", ":3000"),
		CORSAllowAll:             corsAllowAll,
		CORSOrigins:              corsOrigins,
		CORSAllowCreds:           strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RateLimitPerMinute:       p.intVar("RATE_LIMIT_PER_MINUTE", "10"),
		SearchRateLimitPerMinute: p.intVar("SEARCH_RATE_LIMIT_PER_MINUTE", "5"),
		PlacesAPIKey:             strings.TrimSpace(getEnv("GOOGLE_PLACES_API_KEY", "")),
		PlacesBaseURL:            strings.TrimRight(getEnv("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"), "/"),
		PlacesRequestTimeout:     p.durationVar("PLACES_REQUEST_TIMEOUT", "10s"),
		PlacesPageTokenDelay:     p.durationVar("PLACES_PAGE_TOKEN_DELAY", "2s"),
		PlacesRequestsPerSecond:  p.floatVar("PLACES_REQUESTS_PER_SECOND", "10"),
		PlacesBurst:              p.intVar("PLACES_BURST", "10"),
		DetailConcurrency:        p.intVar("DISCOVERY_DETAIL_CONCURRENCY", "8"),
		TypeConcurrency:          p.intVar("DISCOVERY_TYPE_CONCURRENCY", "1"),
		IsolateTypeFailures:      strings.EqualFold(getEnv("DISCOVERY_ISOLATE_TYPE_FAILURES", "false"), "true"),
		SearchTimeout:            p.durationVar("DISCOVERY_SEARCH_TIMEOUT", "90s"),
		PhoneDefaultRegion:       strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "PE")),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		RedisURL:                 getEnv("REDIS_URL", ""),
		RedisTLSInsecure:         strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:           getEnv("ASYNQ_QUEUE_NAME", "default"),
		AsynqConcurrency:         p.intVar("ASYNQ_CONCURRENCY", "4"),
		SearchJobTTL:             p.durationVar("SEARCH_JOB_TTL", "24h"),
	}

	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	if cfg.PlacesAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_PLACES_API_KEY is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.PlacesPageTokenDelay < 0 {
		return nil, fmt.Errorf("PLACES_PAGE_TOKEN_DELAY must not be negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// envParser reads typed variables and collects every malformed one.
type envParser struct {
	errs []error
}

func (p *envParser) durationVar(key, fallback string) time.Duration {
	value := getEnv(key, fallback)
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid duration %q (use a unit, e.g. 2s)", key, value))
		return 0
	}
	return d
}

func (p *envParser) intVar(key, fallback string) int {
	value := getEnv(key, fallback)
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid integer %q", key, value))
		return 0
	}
	return result
}

func (p *envParser) floatVar(key, fallback string) float64 {
	value := getEnv(key, fallback)
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid number %q", key, value))
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
