// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package embedding wraps a pre-trained sentence-embedding model behind the
// Provider interface and layers batching, worker-pool offloading, rate
// limiting and circuit breaking on top (Encoder). The Resolver unifies the
// resolve-or-compute-and-cache pattern every consumer of vectors shares.
package embedding
