// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package profile

import (
	"testing"
	"time"

	"github.com/suadeo-dev/suadeo/internal/models"
)

func TestUpdate(t *testing.T) {
	tests := []struct {
		name   string
		user   []models.CategoryScore
		event  []models.CategoryScore
		weight float64
		want   []models.CategoryScore
	}{
		{
			name:   "blend existing category",
			user:   []models.CategoryScore{{Category: "music", Score: 0.5}},
			event:  []models.CategoryScore{{Category: "music", Score: 0.8}},
			weight: 0.3,
			want:   []models.CategoryScore{{Category: "music", Score: 0.74}},
		},
		{
			name:   "clamp upper bound",
			user:   []models.CategoryScore{{Category: "music", Score: 0.9}},
			event:  []models.CategoryScore{{Category: "music", Score: 1.0}},
			weight: 0.5,
			want:   []models.CategoryScore{{Category: "music", Score: 1.0}},
		},
		{
			name:   "clamp lower bound on dislike",
			user:   []models.CategoryScore{{Category: "music", Score: 0.1}},
			event:  []models.CategoryScore{{Category: "music", Score: 0.9}},
			weight: -0.5,
			want:   []models.CategoryScore{{Category: "music", Score: 0.0}},
		},
		{
			name:   "append new category",
			user:   []models.CategoryScore{{Category: "music", Score: 0.5}},
			event:  []models.CategoryScore{{Category: "food", Score: 0.6}},
			weight: 0.3,
			want: []models.CategoryScore{
				{Category: "music", Score: 0.5},
				{Category: "food", Score: 0.18},
			},
		},
		{
			name:   "new category never below zero",
			user:   nil,
			event:  []models.CategoryScore{{Category: "food", Score: 0.6}},
			weight: -0.3,
			want:   []models.CategoryScore{{Category: "food", Score: 0.0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Update(tt.user, tt.event, tt.weight)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d scores, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].Category != tt.want[i].Category {
					t.Errorf("scores[%d].Category = %q, want %q", i, got[i].Category, tt.want[i].Category)
				}
				if diff := got[i].Score - tt.want[i].Score; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("scores[%d].Score = %f, want %f", i, got[i].Score, tt.want[i].Score)
				}
			}
		})
	}
}

func TestUpdateDoesNotMutateInput(t *testing.T) {
	user := []models.CategoryScore{{Category: "music", Score: 0.5}}
	Update(user, []models.CategoryScore{{Category: "music", Score: 1.0}}, 0.3)
	if user[0].Score != 0.5 {
		t.Errorf("input mutated: %f", user[0].Score)
	}
}

func entry(id int, rating models.Rating, minute int) models.HistoryEntry {
	return models.HistoryEntry{
		EventID:   id,
		Rating:    rating,
		Timestamp: time.Date(2026, 8, 1, 12, minute, 0, 0, time.UTC),
	}
}

func TestAppendHistoryDedupesByEventID(t *testing.T) {
	history := []models.HistoryEntry{
		entry(1, models.RatingLike, 0),
		entry(2, models.RatingDislike, 1),
	}
	got := AppendHistory(history, entry(1, models.RatingDislike, 2), 50)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries after dedupe, got %d", len(got))
	}
	last := got[len(got)-1]
	if last.EventID != 1 || last.Rating != models.RatingDislike {
		t.Errorf("newest rating must win, got %+v", last)
	}
	if got[0].EventID != 2 {
		t.Errorf("surviving entries out of order: %+v", got)
	}
}

func TestAppendHistoryTrimsOldest(t *testing.T) {
	var history []models.HistoryEntry
	for i := 1; i <= 5; i++ {
		history = AppendHistory(history, entry(i, models.RatingLike, i), 3)
	}
	if len(history) != 3 {
		t.Fatalf("expected history bounded at 3, got %d", len(history))
	}
	if history[0].EventID != 3 || history[2].EventID != 5 {
		t.Errorf("expected oldest trimmed, got %+v", history)
	}
}

func TestAppendHistoryLeavesInputIntact(t *testing.T) {
	history := []models.HistoryEntry{entry(1, models.RatingLike, 0)}
	AppendHistory(history, entry(1, models.RatingDislike, 1), 50)
	if history[0].Rating != models.RatingLike {
		t.Errorf("input mutated: %+v", history[0])
	}
}
