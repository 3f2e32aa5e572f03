// Moim - Teen Community Venue Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moim

// Package services adapts Moim's components to suture.Service.
//
//   - HTTPServerService: runs an *http.Server and shuts it down gracefully
//     when the supervisor context is canceled.
//   - MaintenanceService: on a fixed interval, sweeps expired entries from
//     the in-process caches, publishes cache gauges and runs BadgerDB value
//     log GC.
//
// Every Serve method blocks until its context is canceled and returns
// ctx.Err() on a clean stop, so suture does not restart it.
package services
