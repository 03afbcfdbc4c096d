// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package models

import (
	"errors"
	"testing"
)

func TestEventCandidateValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   EventCandidate
		wantErr error
	}{
		{
			name:  "valid event",
			event: EventCandidate{ID: 7, Title: "Jazz night"},
		},
		{
			name:    "missing id",
			event:   EventCandidate{Title: "Jazz night"},
			wantErr: ErrMissingEventID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmbeddingText(t *testing.T) {
	tests := []struct {
		name  string
		event EventCandidate
		want  string
	}{
		{
			name: "title description and tags",
			event: EventCandidate{
				ID:          1,
				Title:       "Jazz night",
				Description: "live jazz",
				Tags:        []string{"music", "concert"},
			},
			want: "Jazz night live jazz music concert",
		},
		{
			name:  "title only",
			event: EventCandidate{ID: 2, Title: "Jazz night"},
			want:  "Jazz night",
		},
		{
			name:  "empty event",
			event: EventCandidate{ID: 3},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.EmbeddingText(); got != tt.want {
				t.Errorf("EmbeddingText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRatingValid(t *testing.T) {
	for _, r := range []Rating{RatingLike, RatingDislike, RatingConfirmed} {
		if !r.Valid() {
			t.Errorf("Rating(%q).Valid() = false, want true", r)
		}
	}
	if Rating("meh").Valid() {
		t.Error(`Rating("meh").Valid() = true, want false`)
	}
}
