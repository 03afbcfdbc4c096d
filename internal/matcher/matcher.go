// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package matcher

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/suadeo-dev/suadeo/internal/catalog"
	"github.com/suadeo-dev/suadeo/internal/embedding"
	"github.com/suadeo-dev/suadeo/internal/logging"
	"github.com/suadeo-dev/suadeo/internal/metrics"
	"github.com/suadeo-dev/suadeo/internal/models"
	"github.com/suadeo-dev/suadeo/internal/vector"
	"github.com/suadeo-dev/suadeo/internal/vectorcache"
)

// ErrNoClusters is returned when Load could not vectorize a single cluster,
// which leaves the matcher unable to classify anything.
var ErrNoClusters = errors.New("matcher: no cluster vectors available")

// Config holds the matching thresholds.
type Config struct {
	// Threshold is the minimum cosine similarity for a cluster to count
	// as relevant. Strictly-greater comparison.
	Threshold float64

	// TopK caps the number of clusters returned when several clear the
	// threshold.
	TopK int
}

// Matcher classifies events against the loaded cluster taxonomy by cosine
// similarity of their embeddings. Cluster vectors are computed once at Load
// and kept in memory; the shared vector cache is consulted first so a warm
// cache survives process restarts.
type Matcher struct {
	cfg      Config
	resolver *embedding.Resolver

	mu       sync.RWMutex
	clusters []catalog.Cluster
	vectors  map[string]vector.Vector
}

// New creates a Matcher. Load must be called before RelevantClusters.
func New(cfg Config, resolver *embedding.Resolver) *Matcher {
	return &Matcher{
		cfg:      cfg,
		resolver: resolver,
		vectors:  make(map[string]vector.Vector),
	}
}

// Load vectorizes the catalog. A cluster whose embedding fails is logged and
// skipped rather than aborting the load; such clusters simply never match.
// Load fails only when no cluster could be vectorized at all.
func (m *Matcher) Load(ctx context.Context, clusters []catalog.Cluster) error {
	vectors := make(map[string]vector.Vector, len(clusters))
	kept := make([]catalog.Cluster, 0, len(clusters))

	for _, cluster := range clusters {
		vec, err := m.resolver.Resolve(ctx, vectorcache.ClusterKey(cluster.Name), cluster.EmbeddingText())
		if err != nil {
			logging.Warn().Err(err).Str("cluster", cluster.Name).
				Msg("skipping cluster, embedding failed")
			continue
		}
		vectors[cluster.Name] = vec
		kept = append(kept, cluster)
	}
	if len(kept) == 0 {
		return ErrNoClusters
	}

	m.mu.Lock()
	m.clusters = kept
	m.vectors = vectors
	m.mu.Unlock()

	logging.Info().Int("clusters", len(kept)).Int("skipped", len(clusters)-len(kept)).
		Msg("cluster catalog vectorized")
	return nil
}

// Clusters returns the successfully loaded clusters.
func (m *Matcher) Clusters() []catalog.Cluster {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]catalog.Cluster, len(m.clusters))
	copy(out, m.clusters)
	return out
}

// RelevantClusters scores the event against every loaded cluster and returns
// the relevant ones, best first. Clusters conflicting with the event's age
// restriction are excluded, but if the age filter empties the result the
// single best unfiltered cluster is returned so every event gets at least
// one category. When no cluster clears the threshold the best match is
// returned alone. Embedding failure for the event yields an empty result.
func (m *Matcher) RelevantClusters(ctx context.Context, ev models.EventCandidate) ([]models.CategoryScore, error) {
	evVec, err := m.resolver.EventVector(ctx, ev)
	if err != nil {
		logging.Error().Err(err).Int("event_id", ev.ID).
			Msg("event embedding failed, no clusters matched")
		metrics.MatcherEmptyResults.Inc()
		return nil, nil
	}

	m.mu.RLock()
	clusters := m.clusters
	m.mu.RUnlock()

	scored := make([]models.CategoryScore, 0, len(clusters))
	filtered := make([]models.CategoryScore, 0, len(clusters))
	for _, cluster := range clusters {
		vec, ok := m.clusterVector(cluster.Name)
		if !ok {
			continue
		}
		sim, err := vector.Cosine(evVec, vec)
		if err != nil {
			logging.Warn().Err(err).Str("cluster", cluster.Name).
				Msg("skipping cluster, similarity failed")
			continue
		}
		score := models.CategoryScore{Category: cluster.Name, Score: sim}
		scored = append(scored, score)
		if !cluster.ConflictsWith(ev.AgeRestriction) {
			filtered = append(filtered, score)
		}
	}
	if len(scored) == 0 {
		metrics.MatcherEmptyResults.Inc()
		return nil, nil
	}

	sortByScore(scored)
	sortByScore(filtered)

	if len(filtered) == 0 {
		logging.Debug().Int("event_id", ev.ID).Str("restriction", ev.AgeRestriction).
			Msg("age filter excluded all clusters, keeping best match")
		return scored[:1], nil
	}
	return m.selectRelevant(filtered), nil
}

// selectRelevant applies the threshold to a score-sorted list: everything
// strictly above it capped at TopK, or the single best match when nothing
// clears it.
func (m *Matcher) selectRelevant(sorted []models.CategoryScore) []models.CategoryScore {
	above := 0
	for _, s := range sorted {
		if s.Score > m.cfg.Threshold {
			above++
		}
	}
	if above == 0 {
		return sorted[:1]
	}
	if above > m.cfg.TopK {
		above = m.cfg.TopK
	}
	return sorted[:above]
}

// clusterVector prefers the shared cache so externally refreshed vectors are
// picked up, falling back to the copy captured at Load.
func (m *Matcher) clusterVector(name string) (vector.Vector, bool) {
	if vec, ok := m.resolver.Cached(vectorcache.ClusterKey(name)); ok {
		return vec, true
	}
	m.mu.RLock()
	vec, ok := m.vectors[name]
	m.mu.RUnlock()
	return vec, ok
}

func sortByScore(scores []models.CategoryScore) {
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Category < scores[j].Category
	})
}
