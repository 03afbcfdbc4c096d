// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package recommend

import (
	"context"
	"sort"

	"github.com/suadeo-dev/suadeo/internal/embedding"
	"github.com/suadeo-dev/suadeo/internal/logging"
	"github.com/suadeo-dev/suadeo/internal/models"
	"github.com/suadeo-dev/suadeo/internal/vector"
)

// Recommendation modes, reported via metrics.
const (
	ModeSequence = "sequence"
	ModeFallback = "fallback"
	ModeCold     = "cold"
)

// Config holds the recommender knobs.
type Config struct {
	// SeqLen is the history window fed to the sequence model. Users with
	// fewer than SeqLen/2 entries are scored in fallback mode.
	SeqLen int

	// RecommendCount caps the number of events returned.
	RecommendCount int

	// LikeWeight and DislikeWeight scale history embeddings before they
	// enter the sequence model. Dislikes push the prediction away.
	LikeWeight    float64
	DislikeWeight float64

	// AffinityWeight scales cluster scores of liked events when building
	// the fallback affinity profile.
	AffinityWeight float64
}

// Recommender ranks candidate events for a user, preferring the sequence
// model when the user has enough history and degrading to affinity-based
// scoring otherwise. It never fails a request because of model trouble; the
// worst case is a cold-start answer.
type Recommender struct {
	cfg      Config
	resolver *embedding.Resolver
	model    *LSTM
	events   models.EventRepository
}

// New creates a Recommender around a shared embedding resolver and sequence
// model.
func New(cfg Config, resolver *embedding.Resolver, model *LSTM, events models.EventRepository) *Recommender {
	return &Recommender{cfg: cfg, resolver: resolver, model: model, events: events}
}

// Recommend ranks candidates for the user and returns the top results plus
// the mode that produced them.
func (r *Recommender) Recommend(ctx context.Context, user models.UserProfile, candidates []models.EventCandidate) ([]models.ScoredEvent, string, error) {
	if len(candidates) == 0 {
		return nil, ModeCold, nil
	}
	if len(user.EventHistory) < r.cfg.SeqLen/2 {
		return r.fallback(ctx, user, candidates)
	}

	seq := r.historySequence(ctx, user)
	if len(seq) < 2 {
		logging.Debug().Int("user_id", user.UserID).Int("vectors", len(seq)).
			Msg("too few resolvable history vectors, using fallback")
		return r.fallback(ctx, user, candidates)
	}

	// The model is trained to predict the last window vector from the ones
	// before it, so prediction drops the newest entry too.
	predicted, err := r.model.Predict(seq[:len(seq)-1])
	if err != nil {
		logging.Warn().Err(err).Int("user_id", user.UserID).
			Msg("sequence prediction failed, using fallback")
		return r.fallback(ctx, user, candidates)
	}

	scored := make([]models.ScoredEvent, 0, len(candidates))
	for _, cand := range candidates {
		vec, err := r.resolver.EventVector(ctx, cand)
		if err != nil {
			logging.Warn().Err(err).Int("event_id", cand.ID).
				Msg("skipping candidate, embedding failed")
			continue
		}
		sim, err := vector.Cosine(predicted, vec)
		if err != nil {
			continue
		}
		scored = append(scored, models.ScoredEvent{Event: cand, Score: sim})
	}
	if len(scored) == 0 {
		return r.fallback(ctx, user, candidates)
	}

	sortScored(scored)
	return r.top(scored), ModeSequence, nil
}

// historySequence turns the newest SeqLen history entries into rating-
// weighted embeddings, oldest first. Vectors go through the shared
// resolver, so an expired cache entry is recomputed rather than dropped;
// only events that no longer exist in the repository are skipped.
func (r *Recommender) historySequence(ctx context.Context, user models.UserProfile) []vector.Vector {
	history := user.EventHistory
	if len(history) > r.cfg.SeqLen {
		history = history[len(history)-r.cfg.SeqLen:]
	}

	seq := make([]vector.Vector, 0, len(history))
	for _, entry := range history {
		ev, err := r.events.Event(ctx, entry.EventID)
		if err != nil {
			logging.Debug().Err(err).Int("event_id", entry.EventID).
				Msg("skipping unavailable history event")
			continue
		}
		vec, err := r.resolver.EventVector(ctx, ev)
		if err != nil {
			logging.Warn().Err(err).Int("event_id", entry.EventID).
				Msg("skipping history event, embedding failed")
			continue
		}
		weight := r.cfg.LikeWeight
		if entry.Rating == models.RatingDislike {
			weight = r.cfg.DislikeWeight
		}
		seq = append(seq, vec.Scale(weight))
	}
	return seq
}

// fallback scores candidates against a category affinity profile built from
// the user's liked events. With no usable history at all, the first
// candidates are returned as-is.
func (r *Recommender) fallback(ctx context.Context, user models.UserProfile, candidates []models.EventCandidate) ([]models.ScoredEvent, string, error) {
	affinity := r.likedAffinity(ctx, user)
	if len(affinity) == 0 {
		out := make([]models.ScoredEvent, 0, r.cfg.RecommendCount)
		for _, cand := range candidates {
			if len(out) == r.cfg.RecommendCount {
				break
			}
			out = append(out, models.ScoredEvent{Event: cand})
		}
		return out, ModeCold, nil
	}

	scored := make([]models.ScoredEvent, 0, len(candidates))
	for _, cand := range candidates {
		score := 0.0
		for _, cs := range cand.ClusterScores {
			score += cs.Score * affinity[cs.Category]
		}
		scored = append(scored, models.ScoredEvent{Event: cand, Score: score})
	}
	sortScored(scored)
	return r.top(scored), ModeFallback, nil
}

// likedAffinity accumulates weighted cluster scores of the user's liked and
// confirmed events. Events that cannot be looked up any more are skipped.
func (r *Recommender) likedAffinity(ctx context.Context, user models.UserProfile) map[string]float64 {
	affinity := make(map[string]float64)
	for _, entry := range user.EventHistory {
		if entry.Rating == models.RatingDislike {
			continue
		}
		ev, err := r.events.Event(ctx, entry.EventID)
		if err != nil {
			logging.Debug().Err(err).Int("event_id", entry.EventID).
				Msg("skipping unavailable history event")
			continue
		}
		for _, cs := range ev.ClusterScores {
			affinity[cs.Category] += r.cfg.AffinityWeight * cs.Score
		}
	}
	return affinity
}

func (r *Recommender) top(scored []models.ScoredEvent) []models.ScoredEvent {
	if len(scored) > r.cfg.RecommendCount {
		scored = scored[:r.cfg.RecommendCount]
	}
	return scored
}

func sortScored(scored []models.ScoredEvent) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}
