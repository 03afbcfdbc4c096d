// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package vectorcache stores embedding vectors in BadgerDB with per-entry
// expiration.
//
// Keys are namespaced by purpose: "event_vector:<id>" for events and
// "cluster_vector:<name>" for audience clusters. A failure to open the
// store aborts initialization; every later operation is best effort and
// degrades store failures to cache misses so recommendation quality may
// drop during an outage but requests never fail because of the cache.
package vectorcache
