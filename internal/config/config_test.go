// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Kakao.APIKey = "kakao_rest_key_12345"
	cfg.Security.JWTSecret = "a-very-long-secret-that-is-32-bytes-plus"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing api key", func(c *Config) { c.Kakao.APIKey = "" }, "KAKAO_API_KEY is required"},
		{"placeholder api key", func(c *Config) { c.Kakao.APIKey = "your_api_key_here" }, "placeholder"},
		{"base url with path", func(c *Config) { c.Kakao.BaseURL = "https://dapi.kakao.com/v2" }, "KAKAO_BASE_URL"},
		{"base url bad scheme", func(c *Config) { c.Kakao.BaseURL = "ftp://dapi.kakao.com" }, "KAKAO_BASE_URL"},
		{"zero timeout", func(c *Config) { c.Kakao.Timeout = 0 }, "KAKAO_TIMEOUT"},
		{"negative retries", func(c *Config) { c.Kakao.MaxRetries = -1 }, "KAKAO_MAX_RETRIES"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"radius too large", func(c *Config) { c.Discovery.Radius = 20001 }, "DISCOVERY_RADIUS"},
		{"bad longitude", func(c *Config) { c.Discovery.CenterX = 200 }, "DISCOVERY_CENTER_X"},
		{"zero default size", func(c *Config) { c.Discovery.DefaultSize = 0 }, "DISCOVERY_DEFAULT_SIZE"},
		{"negative concurrency", func(c *Config) { c.Discovery.ThumbnailConcurrency = -1 }, "DISCOVERY_THUMBNAIL_CONCURRENCY"},
		{"unlimited concurrency", func(c *Config) { c.Discovery.ThumbnailConcurrency = 0 }, ""},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, "CACHE_BACKEND"},
		{"redis without addr", func(c *Config) { c.Cache.Backend = "redis"; c.Cache.RedisAddr = "" }, "REDIS_ADDR"},
		{"store path empty", func(c *Config) { c.Store.Path = "" }, "STORE_PATH"},
		{"in memory store", func(c *Config) { c.Store.Path = ""; c.Store.InMemory = true }, ""},
		{"unknown auth mode", func(c *Config) { c.Security.AuthMode = "basic" }, "AUTH_MODE"},
		{"short jwt secret", func(c *Config) { c.Security.JWTSecret = "short" }, "at least 32"},
		{"placeholder jwt secret", func(c *Config) {
			c.Security.JWTSecret = "REPLACE_WITH_A_REAL_SECRET_VALUE_123456"
		}, "placeholder"},
		{"none in production", func(c *Config) {
			c.Security.AuthMode = "none"
			c.Server.Environment = "production"
		}, "not allowed"},
		{"none in development", func(c *Config) { c.Security.AuthMode = "none"; c.Security.JWTSecret = "" }, ""},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"disabled rate limit", func(c *Config) {
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, ""},
		{"short rate window", func(c *Config) { c.Security.RateLimitWindow = 100 * time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	tests := []struct {
		env        string
		production bool
		dev        bool
	}{
		{"", false, true},
		{"development", false, true},
		{"production", true, false},
		{"PROD", true, false},
		{"staging", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{Environment: tt.env}}
			if got := cfg.IsProduction(); got != tt.production {
				t.Errorf("IsProduction() = %v, want %v", got, tt.production)
			}
			if got := cfg.IsDevelopment(); got != tt.dev {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.dev)
			}
		})
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	cfg := validConfig()
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("wildcard CORS with jwt auth should warn")
	}
	cfg.Security.CORSOrigins = []string{"https://moim.example.org"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("explicit origins should not warn")
	}
	cfg.Security.CORSOrigins = []string{"*"}
	cfg.Security.AuthMode = "none"
	if cfg.ShouldWarnAboutCORS() {
		t.Error("auth mode none should not warn")
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", got)
	}
}
