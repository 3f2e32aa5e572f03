// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setRequiredEnv sets the minimum environment for LoadWithKoanf to succeed.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("KAKAO_API_KEY", "kakao_rest_key_12345")
	t.Setenv("AUTH_MODE", "none")
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Kakao.APIKey != "" {
		t.Errorf("Kakao.APIKey should be empty by default, got %q", cfg.Kakao.APIKey)
	}
	if cfg.Kakao.BaseURL != "https://dapi.kakao.com" {
		t.Errorf("Kakao.BaseURL = %q, want https://dapi.kakao.com", cfg.Kakao.BaseURL)
	}
	if cfg.Discovery.Radius != 2000 {
		t.Errorf("Discovery.Radius = %d, want 2000", cfg.Discovery.Radius)
	}
	if cfg.Discovery.DefaultSize != 10 {
		t.Errorf("Discovery.DefaultSize = %d, want 10", cfg.Discovery.DefaultSize)
	}
	if cfg.Discovery.AllCategoriesSize != 5 {
		t.Errorf("Discovery.AllCategoriesSize = %d, want 5", cfg.Discovery.AllCategoriesSize)
	}
	if !cfg.Discovery.IncludeThumbnails {
		t.Error("Discovery.IncludeThumbnails should be true by default")
	}
	if cfg.Discovery.FailOnUnavailable {
		t.Error("Discovery.FailOnUnavailable should be false by default")
	}
	if cfg.Discovery.DefaultNeighborhood != "서초구" {
		t.Errorf("Discovery.DefaultNeighborhood = %q, want 서초구", cfg.Discovery.DefaultNeighborhood)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Security.AuthMode != "jwt" {
		t.Errorf("Security.AuthMode = %q, want jwt", cfg.Security.AuthMode)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"KAKAO_API_KEY", "kakao.api_key"},
		{"KAKAO_REST_API_KEY", "kakao.api_key"},
		{"HTTP_PORT", "server.port"},
		{"CACHE_BACKEND", "cache.backend"},
		{"BLACKLIST_NAMES", "discovery.blacklist_names"},
		{"DISCOVERY_FAIL_ON_UNAVAILABLE", "discovery.fail_on_unavailable"},
		{"disable_rate_limit", "security.rate_limit_disabled"},
		{"HOME", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		customPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(customPath, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, customPath)

		if got := findConfigFile(); got != customPath {
			t.Errorf("findConfigFile() = %q, want %q", got, customPath)
		}
	})

	t.Run("missing explicit path falls through", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "nope.yaml"))
		got := findConfigFile()
		for _, p := range DefaultConfigPaths {
			if got == p {
				return
			}
		}
		if got != "" {
			t.Errorf("findConfigFile() = %q, want empty or a default path", got)
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DISCOVERY_RADIUS", "1500")
	t.Setenv("DISCOVERY_THUMBNAIL_CONCURRENCY", "4")
	t.Setenv("KAKAO_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "https://moim.example.org, https://admin.moim.example.org")
	t.Setenv("BLACKLIST_NAMES", "노래방,PC방")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Kakao.APIKey != "kakao_rest_key_12345" {
		t.Errorf("Kakao.APIKey = %q, want kakao_rest_key_12345", cfg.Kakao.APIKey)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Discovery.Radius != 1500 {
		t.Errorf("Discovery.Radius = %d, want 1500", cfg.Discovery.Radius)
	}
	if cfg.Discovery.ThumbnailConcurrency != 4 {
		t.Errorf("Discovery.ThumbnailConcurrency = %d, want 4", cfg.Discovery.ThumbnailConcurrency)
	}
	if cfg.Kakao.Timeout != 3*time.Second {
		t.Errorf("Kakao.Timeout = %v, want 3s", cfg.Kakao.Timeout)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://admin.moim.example.org" {
		t.Errorf("Security.CORSOrigins = %v, want two trimmed origins", cfg.Security.CORSOrigins)
	}
	if len(cfg.Discovery.BlacklistNames) != 2 || cfg.Discovery.BlacklistNames[0] != "노래방" {
		t.Errorf("Discovery.BlacklistNames = %v, want [노래방 PC방]", cfg.Discovery.BlacklistNames)
	}

	// Defaults still apply to unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Cache.Capacity != 5000 {
		t.Errorf("Cache.Capacity = %d, want 5000 (default)", cfg.Cache.Capacity)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	configContent := `
kakao:
  api_key: "file_kakao_key"

server:
  port: 8888
  host: "127.0.0.1"

discovery:
  default_neighborhood: "강남구"
  parallel_categories: true

security:
  auth_mode: "none"

logging:
  level: "warn"
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Kakao.APIKey != "file_kakao_key" {
		t.Errorf("Kakao.APIKey = %q, want file_kakao_key", cfg.Kakao.APIKey)
	}
	if cfg.Server.Port != 8888 {
		t.Errorf("Server.Port = %d, want 8888", cfg.Server.Port)
	}
	if cfg.Discovery.DefaultNeighborhood != "강남구" {
		t.Errorf("Discovery.DefaultNeighborhood = %q, want 강남구", cfg.Discovery.DefaultNeighborhood)
	}
	if !cfg.Discovery.ParallelCategories {
		t.Error("Discovery.ParallelCategories = false, want true")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Store.Path != "/data/moim" {
		t.Errorf("Store.Path = %q, want /data/moim (default)", cfg.Store.Path)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	configContent := `
kakao:
  api_key: "file_kakao_key"
server:
  port: 8888
security:
  auth_mode: "none"
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "7777")
	t.Setenv("KAKAO_API_KEY", "env_kakao_key")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777 (env override)", cfg.Server.Port)
	}
	if cfg.Kakao.APIKey != "env_kakao_key" {
		t.Errorf("Kakao.APIKey = %q, want env_kakao_key (env override)", cfg.Kakao.APIKey)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	t.Run("missing kakao key", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
		t.Setenv("KAKAO_API_KEY", "")
		t.Setenv("AUTH_MODE", "none")
		if _, err := LoadWithKoanf(); err == nil {
			t.Error("LoadWithKoanf() should fail without KAKAO_API_KEY")
		}
	})

	t.Run("jwt mode without secret", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("AUTH_MODE", "jwt")
		t.Setenv("JWT_SECRET", "")
		if _, err := LoadWithKoanf(); err == nil {
			t.Error("LoadWithKoanf() should fail without JWT_SECRET in jwt mode")
		}
	})

	t.Run("invalid cache backend", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CACHE_BACKEND", "memcached")
		if _, err := LoadWithKoanf(); err == nil {
			t.Error("LoadWithKoanf() should reject unknown cache backend")
		}
	})
}
