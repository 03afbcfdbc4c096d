// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Cache.DefaultTTL != 7*24*time.Hour {
		t.Errorf("Cache.DefaultTTL = %s, want 168h", cfg.Cache.DefaultTTL)
	}
	if cfg.Matcher.SimilarityThreshold != 0.4 {
		t.Errorf("Matcher.SimilarityThreshold = %f, want 0.4", cfg.Matcher.SimilarityThreshold)
	}
	if cfg.Recommender.SeqLen != 10 {
		t.Errorf("Recommender.SeqLen = %d, want 10", cfg.Recommender.SeqLen)
	}
	if cfg.Recommender.RecommendCount != 5 {
		t.Errorf("Recommender.RecommendCount = %d, want 5", cfg.Recommender.RecommendCount)
	}
	if cfg.Profile.MaxHistory != 50 {
		t.Errorf("Profile.MaxHistory = %d, want 50", cfg.Profile.MaxHistory)
	}
	if cfg.Recommender.AffinityWeight != cfg.Profile.UpdateWeight {
		// Both default to 0.3 but remain independently tunable.
		t.Errorf("AffinityWeight = %f, UpdateWeight = %f, both should default to 0.3",
			cfg.Recommender.AffinityWeight, cfg.Profile.UpdateWeight)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"EMBEDDING_MODEL", "embedding.model"},
		{"EMBEDDING_BATCH_SIZE", "embedding.batch_size"},
		{"CACHE_DEFAULT_TTL", "cache.default_ttl"},
		{"MATCHER_SIMILARITY_THRESHOLD", "matcher.similarity_threshold"},
		{"RECOMMENDER_SEQ_LEN", "recommender.seq_len"},
		{"PATH", ""},
		{"HOME", ""},
		{"EMBEDDING_", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := envTransform(tt.in); got != tt.want {
				t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suadeo.yaml")
	yaml := `
matcher:
  similarity_threshold: 0.6
recommender:
  recommend_count: 3
cache:
  in_memory: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECOMMENDER_RECOMMEND_COUNT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Matcher.SimilarityThreshold != 0.6 {
		t.Errorf("file layer not applied: threshold = %f, want 0.6", cfg.Matcher.SimilarityThreshold)
	}
	if cfg.Recommender.RecommendCount != 7 {
		t.Errorf("env layer not applied: recommend_count = %d, want 7", cfg.Recommender.RecommendCount)
	}
	// Untouched keys keep defaults.
	if cfg.Recommender.SeqLen != 10 {
		t.Errorf("default lost: seq_len = %d, want 10", cfg.Recommender.SeqLen)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty model", func(c *Config) { c.Embedding.Model = "" }},
		{"zero batch size", func(c *Config) { c.Embedding.BatchSize = 0 }},
		{"no cache path", func(c *Config) { c.Cache.InMemory = false; c.Cache.Path = "" }},
		{"negative ttl", func(c *Config) { c.Cache.DefaultTTL = -time.Hour }},
		{"threshold above 1", func(c *Config) { c.Matcher.SimilarityThreshold = 1.5 }},
		{"zero top k", func(c *Config) { c.Matcher.TopK = 0 }},
		{"seq len 1", func(c *Config) { c.Recommender.SeqLen = 1 }},
		{"update weight above 1", func(c *Config) { c.Profile.UpdateWeight = 1.2 }},
		{"zero history", func(c *Config) { c.Profile.MaxHistory = 0 }},
		{"training enabled without topic", func(c *Config) { c.Training.Enabled = true; c.Training.Topic = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestValidateTrainingDisabledSkipsChecks(t *testing.T) {
	cfg := defaultConfig()
	cfg.Training.Enabled = false
	cfg.Training.Topic = ""
	cfg.Training.BufferSize = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for disabled training", err)
	}
}
