// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package models holds the domain types shared across the recommendation
// core: event candidates, user profiles with their cluster-affinity scores
// and interaction history, and the repository interfaces the surrounding
// bot runtime implements.
package models
