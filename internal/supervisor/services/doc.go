// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services provides suture.Service wrappers for cinematch components.

HTTPServerService translates http.Server's ListenAndServe/Shutdown pair into
suture's context-aware Serve. RebuildService rebuilds the engine snapshot on
a ticker, optionally once at startup.

Return values drive supervisor behavior:

	nil         -> stopped cleanly, not restarted
	error       -> crashed, restarted with backoff
	ctx.Err()   -> shutdown requested

Both services implement fmt.Stringer so suture's event log names them
"http-server" and "rebuild-service".
*/
package services
