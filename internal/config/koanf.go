// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moim/config.yaml",
	"/etc/moim/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Seoul City Hall, used when a request carries no coordinates.
const (
	DefaultCenterX = 126.9784147
	DefaultCenterY = 37.5666805
)

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Kakao: KakaoConfig{
			APIKey:            "",
			BaseURL:           "https://dapi.kakao.com",
			Timeout:           10 * time.Second,
			MaxRetries:        3,
			RetryBaseDelay:    time.Second,
			RequestsPerSecond: 10,
		},
		Discovery: DiscoveryConfig{
			CenterX:              DefaultCenterX,
			CenterY:              DefaultCenterY,
			Radius:               2000,
			DefaultSize:          10,
			AllCategoriesSize:    5,
			IncludeThumbnails:    true,
			ThumbnailConcurrency: 8,
			ParallelCategories:   false,
			FailOnUnavailable:    false,
			DefaultNeighborhood:  "서초구",
			BlacklistNames:       []string{},
			BlacklistCategories:  []string{},
		},
		Cache: CacheConfig{
			Backend:         "memory",
			Capacity:        5000,
			TTL:             24 * time.Hour,
			RedisAddr:       "localhost:6379",
			RedisDB:         0,
			JanitorInterval: 10 * time.Minute,
		},
		Store: StoreConfig{
			Path:     "/data/moim",
			InMemory: false,
		},
		Security: SecurityConfig{
			AuthMode:          "jwt",
			JWTSecret:         "",
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"discovery.blacklist_names",
	"discovery.blacklist_categories",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unlisted variables are ignored so unrelated env vars cannot leak into config.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Kakao
	"kakao_api_key":             "kakao.api_key",
	"kakao_rest_api_key":        "kakao.api_key",
	"kakao_base_url":            "kakao.base_url",
	"kakao_timeout":             "kakao.timeout",
	"kakao_max_retries":         "kakao.max_retries",
	"kakao_retry_base_delay":    "kakao.retry_base_delay",
	"kakao_requests_per_second": "kakao.requests_per_second",

	// Discovery
	"discovery_center_x":              "discovery.center_x",
	"discovery_center_y":              "discovery.center_y",
	"discovery_radius":                "discovery.radius",
	"discovery_default_size":          "discovery.default_size",
	"discovery_all_categories_size":   "discovery.all_categories_size",
	"discovery_include_thumbnails":    "discovery.include_thumbnails",
	"discovery_thumbnail_concurrency": "discovery.thumbnail_concurrency",
	"discovery_parallel_categories":   "discovery.parallel_categories",
	"discovery_fail_on_unavailable":   "discovery.fail_on_unavailable",
	"discovery_default_neighborhood":  "discovery.default_neighborhood",
	"blacklist_names":                 "discovery.blacklist_names",
	"blacklist_categories":            "discovery.blacklist_categories",

	// Cache
	"cache_backend":          "cache.backend",
	"cache_capacity":         "cache.capacity",
	"cache_ttl":              "cache.ttl",
	"redis_addr":             "cache.redis_addr",
	"redis_password":         "cache.redis_password",
	"redis_db":               "cache.redis_db",
	"cache_janitor_interval": "cache.janitor_interval",

	// Store
	"store_path":      "store.path",
	"store_in_memory": "store.in_memory",

	// Security
	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to a koanf path.
//
//	KAKAO_API_KEY   -> kakao.api_key
//	CACHE_BACKEND   -> cache.backend
//	HTTP_PORT       -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
