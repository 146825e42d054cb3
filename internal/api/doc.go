// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api exposes the recommendation engine over HTTP using the chi router.

# Endpoints

	GET  /api/v1/health/live                       liveness probe
	GET  /api/v1/health/ready                      readiness probe with snapshot status
	GET  /api/v1/status                            engine status
	GET  /api/v1/items                             catalog
	GET  /api/v1/items/{itemID}                    one item
	GET  /api/v1/items/{itemID}/similar            similar items (?k=&mode=)
	GET  /api/v1/users                             known user ids
	GET  /api/v1/users/{userID}/ratings            a user's ratings
	GET  /api/v1/users/{userID}/recommendations    recommendations (?k=&mode=&content_weight=&diversity=)
	POST /api/v1/ratings                           record a rating
	POST /api/v1/admin/rebuild                     rebuild the similarity snapshot
	GET  /api/v1/admin/backup                      stream a rating store backup
	GET  /metrics                                  Prometheus metrics

Every JSON response uses the APIResponse envelope. Errors carry a machine
readable code and the request id.
*/
package api
