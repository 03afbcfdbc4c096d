// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package recommend ranks candidate events for users.
//
// The sequence path feeds a rating-weighted window of the user's event
// embeddings through a stacked LSTM and ranks candidates by cosine
// similarity to the predicted next embedding. Users without enough history
// fall back to an affinity profile accumulated from their liked events, and
// users with no usable history at all get the leading candidates verbatim.
//
// The Engine type is the facade the bot runtime talks to: one call to rank
// events, one call to record a rating.
package recommend
