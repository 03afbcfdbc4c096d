// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package matcher assigns events to taxonomy clusters by cosine similarity
// between the event embedding and per-cluster tag embeddings.
package matcher
