// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package profile maintains per-user state derived from rated events: the
// category affinity vector and the bounded interaction history. All
// functions are pure so callers decide when and where state is persisted.
package profile
