// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package metrics provides Prometheus instrumentation for the
// recommendation core: vector cache efficiency, embedding model latency,
// recommendation request timing and background training progress.
//
// Collectors are registered with the default registry via promauto; the
// host application decides whether and where to expose them.
package metrics
