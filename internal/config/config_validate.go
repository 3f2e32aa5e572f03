// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateKakao,
		c.validateDiscovery,
		c.validateCache,
		c.validateStore,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

func (c *Config) validateKakao() error {
	if c.Kakao.APIKey == "" {
		return fmt.Errorf("KAKAO_API_KEY is required")
	}
	if containsPlaceholder(c.Kakao.APIKey) {
		return fmt.Errorf("KAKAO_API_KEY contains a placeholder value")
	}
	if err := validateBaseURL(c.Kakao.BaseURL); err != nil {
		return fmt.Errorf("KAKAO_BASE_URL is invalid: %w", err)
	}
	if c.Kakao.Timeout <= 0 {
		return fmt.Errorf("KAKAO_TIMEOUT must be positive")
	}
	if c.Kakao.MaxRetries < 0 || c.Kakao.MaxRetries > 10 {
		return fmt.Errorf("KAKAO_MAX_RETRIES must be between 0 and 10")
	}
	if c.Kakao.RequestsPerSecond < 0 {
		return fmt.Errorf("KAKAO_REQUESTS_PER_SECOND must not be negative")
	}
	return nil
}

// Kakao keyword search accepts radius 0..20000 m. Aggregated results are
// capped at three full keyword pages.
const (
	maxSearchRadius = 20000
	maxResultSize   = 45
)

func (c *Config) validateDiscovery() error {
	d := c.Discovery
	if d.CenterX < -180 || d.CenterX > 180 {
		return fmt.Errorf("DISCOVERY_CENTER_X must be a valid longitude")
	}
	if d.CenterY < -90 || d.CenterY > 90 {
		return fmt.Errorf("DISCOVERY_CENTER_Y must be a valid latitude")
	}
	if d.Radius < 0 || d.Radius > maxSearchRadius {
		return fmt.Errorf("DISCOVERY_RADIUS must be between 0 and %d meters", maxSearchRadius)
	}
	if d.DefaultSize < 1 || d.DefaultSize > maxResultSize {
		return fmt.Errorf("DISCOVERY_DEFAULT_SIZE must be between 1 and %d", maxResultSize)
	}
	if d.AllCategoriesSize < 1 || d.AllCategoriesSize > maxResultSize {
		return fmt.Errorf("DISCOVERY_ALL_CATEGORIES_SIZE must be between 1 and %d", maxResultSize)
	}
	if d.ThumbnailConcurrency < 0 {
		return fmt.Errorf("DISCOVERY_THUMBNAIL_CONCURRENCY must not be negative")
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case "memory":
		if c.Cache.Capacity < 0 {
			return fmt.Errorf("CACHE_CAPACITY must not be negative")
		}
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, redis")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY=true")
	}
	return nil
}

var validAuthModes = map[string]bool{
	"jwt":  true,
	"none": true,
}

func (c *Config) validateSecurity() error {
	if !validAuthModes[c.Security.AuthMode] {
		return fmt.Errorf("AUTH_MODE must be one of: jwt, none")
	}
	if c.Security.AuthMode == "none" && c.IsProduction() {
		return fmt.Errorf("AUTH_MODE=none is not allowed when ENVIRONMENT=production")
	}
	if c.Security.AuthMode == "jwt" {
		if err := c.validateJWTSecret(); err != nil {
			return err
		}
	}
	return c.validateRateLimits()
}

func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_MODE is jwt")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if containsPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value")
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment reports whether ENVIRONMENT is development (or unset).
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_API_KEY",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"EXAMPLE",
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}
