// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package matcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/suadeo-dev/suadeo/internal/catalog"
	"github.com/suadeo-dev/suadeo/internal/embedding"
	"github.com/suadeo-dev/suadeo/internal/models"
	"github.com/suadeo-dev/suadeo/internal/vector"
	"github.com/suadeo-dev/suadeo/internal/vectorcache"
)

// mapProvider returns a fixed vector per input text, so test similarities
// are fully controlled. Unknown texts fail.
type mapProvider struct {
	vectors map[string]vector.Vector
}

func (p *mapProvider) EmbedBatch(_ context.Context, texts []string) ([]vector.Vector, error) {
	out := make([]vector.Vector, len(texts))
	for i, text := range texts {
		vec, ok := p.vectors[text]
		if !ok {
			return nil, errors.New("no vector for text: " + text)
		}
		out[i] = vec
	}
	return out, nil
}

func (p *mapProvider) Dimension() int { return 3 }

func newTestMatcher(t *testing.T, cfg Config, provider embedding.Provider) *Matcher {
	t.Helper()
	cache, err := vectorcache.Open(vectorcache.Config{InMemory: true, DefaultTTL: time.Hour})
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	resolver := embedding.NewResolver(embedding.NewEncoder(provider, embedding.EncoderConfig{BatchSize: 8}), cache)
	return New(cfg, resolver)
}

// Three clusters on orthogonal-ish axes. The "music" event vector is close
// to music, somewhat close to food, far from sport.
func testProvider() *mapProvider {
	return &mapProvider{vectors: map[string]vector.Vector{
		"концерты фестивали": {1, 0, 0},
		"рестораны дегустации": {0.6, 0.8, 0},
		"футбол пробежки":    {0, 0, 1},
		"jazz night":         {0.9, 0.2, 0},
	}}
}

func testClusters() []catalog.Cluster {
	return []catalog.Cluster{
		{Name: "music", AgeRange: "18-60", Interests: []string{"концерты", "фестивали"}},
		{Name: "food", AgeRange: "25-45", Interests: []string{"рестораны", "дегустации"}},
		{Name: "sport", AgeRange: "18-35", Interests: []string{"футбол", "пробежки"}},
	}
}

func loadedMatcher(t *testing.T, cfg Config) *Matcher {
	t.Helper()
	m := newTestMatcher(t, cfg, testProvider())
	if err := m.Load(context.Background(), testClusters()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func TestRelevantClustersOrdersByScore(t *testing.T) {
	m := loadedMatcher(t, Config{Threshold: 0.4, TopK: 10})

	got, err := m.RelevantClusters(context.Background(), models.EventCandidate{ID: 1, Title: "jazz night"})
	if err != nil {
		t.Fatalf("RelevantClusters: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 clusters above threshold, got %d: %v", len(got), got)
	}
	if got[0].Category != "music" || got[1].Category != "food" {
		t.Errorf("unexpected order: %v", got)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("scores not descending: %v", got)
	}
}

func TestRelevantClustersTopKCap(t *testing.T) {
	m := loadedMatcher(t, Config{Threshold: 0.4, TopK: 1})

	got, err := m.RelevantClusters(context.Background(), models.EventCandidate{ID: 1, Title: "jazz night"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Category != "music" {
		t.Errorf("expected single best cluster, got %v", got)
	}
}

func TestRelevantClustersThresholdFallback(t *testing.T) {
	// Threshold above every similarity: the single best match still wins.
	m := loadedMatcher(t, Config{Threshold: 0.999, TopK: 10})

	got, err := m.RelevantClusters(context.Background(), models.EventCandidate{ID: 1, Title: "jazz night"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Category != "music" {
		t.Errorf("expected best-match fallback, got %v", got)
	}
}

func TestRelevantClustersAgeFilter(t *testing.T) {
	m := loadedMatcher(t, Config{Threshold: 0.4, TopK: 10})

	// 50+ excludes food (25-45) and sport (18-35) but not music (18-60).
	got, err := m.RelevantClusters(context.Background(),
		models.EventCandidate{ID: 1, Title: "jazz night", AgeRestriction: "50+"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Category != "music" {
		t.Errorf("expected only age-compatible cluster, got %v", got)
	}
}

func TestRelevantClustersAgeFilterEmptyFallsBack(t *testing.T) {
	m := loadedMatcher(t, Config{Threshold: 0.4, TopK: 10})

	// 70+ conflicts with every cluster, so the best unfiltered match wins.
	got, err := m.RelevantClusters(context.Background(),
		models.EventCandidate{ID: 1, Title: "jazz night", AgeRestriction: "70+"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Category != "music" {
		t.Errorf("expected best-match fallback after age filter, got %v", got)
	}
}

func TestRelevantClustersEmbeddingFailure(t *testing.T) {
	m := loadedMatcher(t, Config{Threshold: 0.4, TopK: 10})

	got, err := m.RelevantClusters(context.Background(),
		models.EventCandidate{ID: 2, Title: "unknown event"})
	if err != nil {
		t.Fatalf("embedding failure must not propagate, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestLoadSkipsFailingCluster(t *testing.T) {
	provider := testProvider()
	delete(provider.vectors, "футбол пробежки")
	m := newTestMatcher(t, Config{Threshold: 0.4, TopK: 10}, provider)

	if err := m.Load(context.Background(), testClusters()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(m.Clusters()); got != 2 {
		t.Errorf("expected failing cluster to be skipped, have %d clusters", got)
	}
}

func TestLoadAllClustersFail(t *testing.T) {
	m := newTestMatcher(t, Config{Threshold: 0.4, TopK: 10}, &mapProvider{vectors: map[string]vector.Vector{}})

	if err := m.Load(context.Background(), testClusters()); !errors.Is(err, ErrNoClusters) {
		t.Errorf("expected ErrNoClusters, got %v", err)
	}
}
