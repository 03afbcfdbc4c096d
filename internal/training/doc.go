// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package training runs incremental sequence-model training off the
// feedback stream. Ratings are published to an in-process queue and
// consumed by a supervised trainer, so a slow or failing training step
// never blocks the feedback path.
package training
