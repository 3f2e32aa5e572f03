// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

/*
Package supervisor runs Moim's long-lived services under a suture v4 tree.

# Tree Layout

	moim (root)
	├── data-layer
	│   └── maintenance   cache expiry sweeps, cache gauges, Badger value log GC
	└── api-layer
	    └── http-server   chi router behind net/http

Each layer is its own supervisor, so repeated maintenance failures put only
the data layer into backoff while the API keeps serving.

# Logging

Supervisor events (service panics, restarts, backoff) are logged through
sutureslog into the zerolog stream:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

# Shutdown

Serve returns when its context is canceled. Each service gets
TreeConfig.ShutdownTimeout to stop; UnstoppedServiceReport lists any that
did not.

Service implementations live in the services subpackage.
*/
package supervisor
