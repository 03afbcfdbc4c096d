// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/suadeo-dev/suadeo/internal/logging"
	"github.com/suadeo-dev/suadeo/internal/metrics"
	"github.com/suadeo-dev/suadeo/internal/models"
	"github.com/suadeo-dev/suadeo/internal/profile"
)

// ClusterMatcher classifies an event against the cluster taxonomy.
type ClusterMatcher interface {
	RelevantClusters(ctx context.Context, ev models.EventCandidate) ([]models.CategoryScore, error)
}

// TrainingNotifier receives a signal for every recorded rating so the
// background trainer can pick it up. Notification is best effort.
type TrainingNotifier interface {
	FeedbackRecorded(ctx context.Context, userID, eventID int, rating models.Rating) error
}

// Engine ties recommendation and feedback handling together behind the two
// operations the bot calls. It owns no storage; user and event state lives
// in the bot's repositories.
type Engine struct {
	rec        *Recommender
	matcher    ClusterMatcher
	users      models.UserRepository
	events     models.EventRepository
	notifier   TrainingNotifier
	profileCfg profile.Config
	timeout    time.Duration
}

// NewEngine creates the facade. The notifier may be nil when background
// training is disabled.
func NewEngine(
	rec *Recommender,
	matcher ClusterMatcher,
	users models.UserRepository,
	events models.EventRepository,
	notifier TrainingNotifier,
	profileCfg profile.Config,
	timeout time.Duration,
) *Engine {
	return &Engine{
		rec:        rec,
		matcher:    matcher,
		users:      users,
		events:     events,
		notifier:   notifier,
		profileCfg: profileCfg,
		timeout:    timeout,
	}
}

// RecommendForUser returns the ranked events for a user.
func (e *Engine) RecommendForUser(ctx context.Context, userID int) ([]models.ScoredEvent, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	start := time.Now()

	user, err := e.users.Profile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile for user %d: %w", userID, err)
	}
	candidates, err := e.events.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	scored, mode, err := e.rec.Recommend(ctx, user, candidates)
	if err != nil {
		return nil, err
	}
	metrics.ObserveRecommend(mode, start)
	logging.Debug().Int("user_id", userID).Str("mode", mode).Int("results", len(scored)).
		Msg("recommendation served")
	return scored, nil
}

// Feedback records a rating: the user's cluster affinity vector is blended
// with the event's scores, the history is appended with dedupe and bound,
// and the trainer is notified. History is recorded even when the event has
// no cluster scores and classification fails; a rating must never be lost
// to a model hiccup.
func (e *Engine) Feedback(ctx context.Context, userID, eventID int, rating models.Rating) error {
	if !rating.Valid() {
		return fmt.Errorf("invalid rating %q", rating)
	}

	ev, err := e.events.Event(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load event %d: %w", eventID, err)
	}
	user, err := e.users.Profile(ctx, userID)
	if err != nil {
		return fmt.Errorf("load profile for user %d: %w", userID, err)
	}

	scores := ev.ClusterScores
	if len(scores) == 0 && e.matcher != nil {
		scores, err = e.matcher.RelevantClusters(ctx, ev)
		if err != nil {
			logging.Warn().Err(err).Int("event_id", eventID).
				Msg("classification failed, skipping profile update")
			scores = nil
		}
	}
	if len(scores) > 0 {
		weight := e.profileCfg.UpdateWeight
		if rating == models.RatingDislike {
			weight = -weight
		}
		updated := profile.Update(user.StatusML, scores, weight)
		if err := e.users.SaveStatusML(ctx, userID, updated); err != nil {
			return fmt.Errorf("save status for user %d: %w", userID, err)
		}
	}

	entry := models.HistoryEntry{EventID: eventID, Rating: rating, Timestamp: time.Now().UTC()}
	history := profile.AppendHistory(user.EventHistory, entry, e.profileCfg.MaxHistory)
	if err := e.users.SaveHistory(ctx, userID, history); err != nil {
		return fmt.Errorf("save history for user %d: %w", userID, err)
	}

	if e.notifier != nil {
		if err := e.notifier.FeedbackRecorded(ctx, userID, eventID, rating); err != nil {
			logging.Warn().Err(err).Int("user_id", userID).Int("event_id", eventID).
				Msg("training notification failed")
		}
	}
	return nil
}
