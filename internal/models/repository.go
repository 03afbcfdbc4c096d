// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package models

import "context"

// EventRepository is the narrow view of the bot's event store this core
// consumes. Implementations live in the surrounding bot runtime.
type EventRepository interface {
	// Candidates returns the events currently eligible for recommendation.
	Candidates(ctx context.Context) ([]EventCandidate, error)

	// Event returns a single stored event. Used to look up rated history
	// events that are no longer candidates.
	Event(ctx context.Context, eventID int) (EventCandidate, error)
}

// UserRepository is the narrow view of the bot's user store this core
// consumes. StatusML writes must be idempotent-safe against retries; the
// profile updater is pure, so re-applying the same write is harmless.
type UserRepository interface {
	// Profile returns the stored profile for a user.
	Profile(ctx context.Context, userID int) (UserProfile, error)

	// SaveStatusML persists an updated cluster-affinity vector.
	SaveStatusML(ctx context.Context, userID int, status []CategoryScore) error

	// SaveHistory persists an updated interaction history.
	SaveHistory(ctx context.Context, userID int, history []HistoryEntry) error
}
