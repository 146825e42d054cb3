// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package main is the entry point for the cinematch recommendation server.

# Startup

 1. Configuration: koanf v2 layering defaults, config.yaml and environment
 2. Logging: zerolog, JSON or console
 3. Catalog: DATASET_PATH (YAML or JSON) or the built-in demo catalog
 4. Rating store: BadgerDB at STORE_PATH, replayed over the dataset ratings
 5. Engine: content vectors and item similarity built once
 6. Supervisor tree: rebuild loop and HTTP server under suture v4

# Configuration

Priority: environment variables > config file > defaults.

	HTTP_HOST=0.0.0.0
	HTTP_PORT=8080
	LOG_LEVEL=info                      # trace, debug, info, warn, error
	LOG_FORMAT=json                     # json or console
	DATASET_PATH=/data/catalog.yaml     # empty serves the demo catalog
	STORE_PATH=/data/ratings            # empty keeps ratings in memory only
	RECOMMEND_HYBRID_CONTENT_WEIGHT=0.5
	RECOMMEND_REBUILD_INTERVAL=1h       # 0 disables scheduled rebuilds
	RATE_LIMIT_REQUESTS=100
	CORS_ORIGINS=https://app.example.com,https://admin.example.com

# Signals

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains for
HTTP_SHUTDOWN_TIMEOUT, then the rating store is closed.
*/
package main
