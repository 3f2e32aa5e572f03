// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Loading order (Koanf v2, later sources win):
//  1. Defaults from defaultConfig()
//  2. Optional YAML file (CONFIG_PATH or config.yaml)
//  3. Environment variables listed in envMappings
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Kakao     KakaoConfig     `koanf:"kakao"`
	Discovery DiscoveryConfig `koanf:"discovery"`
	Cache     CacheConfig     `koanf:"cache"`
	Store     StoreConfig     `koanf:"store"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development or production
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// KakaoConfig holds the Kakao Local / Search API client settings.
type KakaoConfig struct {
	APIKey            string        `koanf:"api_key"`  // REST API key, sent as "KakaoAK <key>"
	BaseURL           string        `koanf:"base_url"` // https://dapi.kakao.com
	Timeout           time.Duration `koanf:"timeout"`
	MaxRetries        int           `koanf:"max_retries"` // retries on HTTP 429
	RetryBaseDelay    time.Duration `koanf:"retry_base_delay"`
	RequestsPerSecond float64       `koanf:"requests_per_second"` // 0 disables client-side throttling
}

// DiscoveryConfig tunes the venue discovery pipeline.
type DiscoveryConfig struct {
	CenterX              float64  `koanf:"center_x"` // longitude used when the caller omits x
	CenterY              float64  `koanf:"center_y"` // latitude used when the caller omits y
	Radius               int      `koanf:"radius"`   // meters
	DefaultSize          int      `koanf:"default_size"`
	AllCategoriesSize    int      `koanf:"all_categories_size"`
	IncludeThumbnails    bool     `koanf:"include_thumbnails"`
	ThumbnailConcurrency int      `koanf:"thumbnail_concurrency"` // 0 = unlimited
	ParallelCategories   bool     `koanf:"parallel_categories"`
	FailOnUnavailable    bool     `koanf:"fail_on_unavailable"`
	DefaultNeighborhood  string   `koanf:"default_neighborhood"`
	BlacklistNames       []string `koanf:"blacklist_names"`      // empty = built-in list
	BlacklistCategories  []string `koanf:"blacklist_categories"` // empty = built-in list
}

// CacheConfig selects and sizes the thumbnail and region caches.
type CacheConfig struct {
	Backend         string        `koanf:"backend"`  // memory or redis
	Capacity        int           `koanf:"capacity"` // 0 = unbounded (memory backend)
	TTL             time.Duration `koanf:"ttl"`      // 0 = no expiry
	RedisAddr       string        `koanf:"redis_addr"`
	RedisPassword   string        `koanf:"redis_password"`
	RedisDB         int           `koanf:"redis_db"`
	JanitorInterval time.Duration `koanf:"janitor_interval"`
}

// StoreConfig configures the BadgerDB community store.
type StoreConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// SecurityConfig holds authentication, CORS and rate limiting settings.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"`  // jwt or none
	JWTSecret         string        `koanf:"jwt_secret"` // HS256 secret shared with the auth backend
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ShouldWarnAboutCORS reports whether wildcard CORS is combined with authentication.
func (c *Config) ShouldWarnAboutCORS() bool {
	if c.Security.AuthMode == "none" {
		return false
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// Load reads configuration from defaults, an optional YAML file and the environment.
// See LoadWithKoanf for the layering rules.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
