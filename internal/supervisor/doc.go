// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor provides process supervision for cinematch using suture v4.

The tree separates the rebuild loop from the HTTP server so each restarts
independently:

	RootSupervisor ("cinematch")
	├── EngineSupervisor ("engine-layer")
	│   └── RebuildService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events are logged through sutureslog, bridged to zerolog with
logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddEngineService(services.NewRebuildService(engine, rebuildCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 15*time.Second))
	errCh := tree.ServeBackground(ctx)

Canceling ctx stops every service. Services that miss the shutdown timeout
show up in UnstoppedServiceReport.
*/
package supervisor
