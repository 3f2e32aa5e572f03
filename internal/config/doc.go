// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

/*
Package config provides layered configuration loading for Moim.

# Configuration Sources

Koanf v2 merges three layers, later layers overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - An optional YAML file (CONFIG_PATH, config.yaml, /etc/moim/config.yaml)
  - Environment variables listed in envMappings

# Configuration Structure

  - ServerConfig: listen address, timeouts, environment
  - KakaoConfig: Kakao Local / Search API key, base URL, retry and throttle
  - DiscoveryConfig: search center, radius, result sizes, thumbnail fan-out,
    degrade policy and content filter overrides
  - CacheConfig: thumbnail/region cache backend (memory or redis)
  - StoreConfig: BadgerDB path for bookmarks, meetings, posts and friends
  - SecurityConfig: auth mode, JWT secret, CORS, rate limiting
  - LoggingConfig: zerolog level, format, caller

# Required Settings

	KAKAO_API_KEY   Kakao REST API key
	JWT_SECRET      at least 32 characters when AUTH_MODE=jwt

# Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	client := kakao.NewClient(cfg.Kakao)

Comma-separated values are accepted for CORS_ORIGINS, BLACKLIST_NAMES and
BLACKLIST_CATEGORIES.
*/
package config
