// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package profile

import "github.com/suadeo-dev/suadeo/internal/models"

// Config holds the profile update knobs.
type Config struct {
	// UpdateWeight scales how strongly one rated event shifts the
	// category affinity vector.
	UpdateWeight float64

	// MaxHistory bounds the interaction history kept per user.
	MaxHistory int
}

// Update blends an event's cluster scores into the user's category affinity
// vector and returns the result; neither input is mutated. Existing
// categories keep their position, categories the user has not seen before
// are appended in event order, and every resulting score is clamped to
// [0, 1]. Weight may be negative for dislikes.
func Update(userScores, eventScores []models.CategoryScore, weight float64) []models.CategoryScore {
	out := make([]models.CategoryScore, len(userScores))
	index := make(map[string]int, len(userScores))
	for i, s := range userScores {
		out[i] = s
		index[s.Category] = i
	}

	for _, es := range eventScores {
		delta := weight * es.Score
		if i, ok := index[es.Category]; ok {
			out[i].Score = clamp01(out[i].Score + delta)
			continue
		}
		index[es.Category] = len(out)
		out = append(out, models.CategoryScore{Category: es.Category, Score: clamp01(delta)})
	}
	return out
}

// AppendHistory appends one rated event to a history and returns the
// result; the input slice is not mutated. A previous entry for the same
// event id is dropped so the newest rating wins, and the history is trimmed
// from the oldest end to maxLen entries.
func AppendHistory(history []models.HistoryEntry, entry models.HistoryEntry, maxLen int) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(history)+1)
	for _, h := range history {
		if h.EventID == entry.EventID {
			continue
		}
		out = append(out, h)
	}
	out = append(out, entry)
	if maxLen > 0 && len(out) > maxLen {
		out = out[len(out)-maxLen:]
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
