// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package models

import (
	"errors"
	"strings"
)

// ErrMissingEventID is returned when an event without an id reaches a path
// that needs one (cache keys are derived from the id).
var ErrMissingEventID = errors.New("models: event has no id")

// EventCandidate is an event offered for recommendation or classification.
// Candidates are transient: they are supplied per request by the event
// repository and never persisted by this core.
type EventCandidate struct {
	ID          int      `json:"id" validate:"required"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`

	// AgeRestriction is free-form source text such as "18+".
	AgeRestriction string `json:"age_restriction,omitempty"`

	// Category is the source listing category, when known.
	Category string `json:"category,omitempty"`

	// ClusterScores holds the event's audience-cluster affinity, as produced
	// by the cluster matcher and stored alongside the event.
	ClusterScores []CategoryScore `json:"status_ml,omitempty"`
}

// Validate checks the fields this core requires at the repository boundary.
func (e EventCandidate) Validate() error {
	if e.ID == 0 {
		return ErrMissingEventID
	}
	return nil
}

// EmbeddingText returns the text blob embedded for this event: title,
// description and tags joined with single spaces.
func (e EventCandidate) EmbeddingText() string {
	parts := make([]string, 0, 3)
	if e.Title != "" {
		parts = append(parts, e.Title)
	}
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	if len(e.Tags) > 0 {
		parts = append(parts, strings.Join(e.Tags, " "))
	}
	return strings.Join(parts, " ")
}

// ScoredEvent pairs a candidate with a recommendation score.
type ScoredEvent struct {
	Event EventCandidate
	Score float64
}
