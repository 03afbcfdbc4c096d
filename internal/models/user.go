// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package models

import "time"

// Rating classifies a user's reaction to an event.
type Rating string

const (
	RatingLike      Rating = "like"
	RatingDislike   Rating = "dislike"
	RatingConfirmed Rating = "confirmed"
)

// Valid reports whether r is one of the known ratings.
func (r Rating) Valid() bool {
	switch r {
	case RatingLike, RatingDislike, RatingConfirmed:
		return true
	}
	return false
}

// CategoryScore is one (category, score) pair of a cluster-affinity vector.
// Scores always lie in [0, 1] after any profile update.
type CategoryScore struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// HistoryEntry records one rated event in a user's interaction history.
type HistoryEntry struct {
	EventID   int       `json:"event_id"`
	Rating    Rating    `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// UserProfile is the subset of the bot's user record this core reads and
// writes. StatusML is mutated only through the profile updater; EventHistory
// is append-only with dedupe by event id and a fixed maximum length.
type UserProfile struct {
	UserID       int             `json:"user_id"`
	StatusML     []CategoryScore `json:"status_ml"`
	EventHistory []HistoryEntry  `json:"event_history"`
}
