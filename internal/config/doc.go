// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config loads service configuration from defaults, an optional YAML
file and environment variables, using Koanf v2.

# Precedence

Environment variables override the config file, which overrides defaults.
The file is taken from CONFIG_PATH, or the first of config.yaml, config.yml,
/etc/cinematch/config.yaml and /etc/cinematch/config.yml that exists.

# Example config.yaml

	server:
	  port: 8080
	logging:
	  level: debug
	  format: console
	recommend:
	  hybrid_content_weight: 0.6
	  default_k: 5
	  rebuild_interval: 30m
	data:
	  dataset_path: /data/catalog.yaml
	  store_path: /data/ratings

# Environment Variables

Only mapped variables are read, for example HTTP_PORT, LOG_LEVEL,
RECOMMEND_DEFAULT_K, RECOMMEND_REBUILD_INTERVAL, DATASET_PATH, STORE_PATH and
CORS_ORIGINS (comma-separated). See envMappings for the full list.
*/
package config
