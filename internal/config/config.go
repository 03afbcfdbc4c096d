// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package config

import "time"

// Config is the root configuration for the recommendation core.
// It is loaded once at process start via Load and treated as read-only.
type Config struct {
	Embedding   EmbeddingConfig   `koanf:"embedding"`
	Cache       CacheConfig       `koanf:"cache"`
	Catalog     CatalogConfig     `koanf:"catalog"`
	Matcher     MatcherConfig     `koanf:"matcher"`
	Recommender RecommenderConfig `koanf:"recommender"`
	Profile     ProfileConfig     `koanf:"profile"`
	Training    TrainingConfig    `koanf:"training"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// EmbeddingConfig configures the text embedder.
type EmbeddingConfig struct {
	// Model is the embedding model identifier, e.g. "text-embedding-3-small".
	Model string `koanf:"model"`

	// APIKey authenticates against the embedding API.
	APIKey string `koanf:"api_key"`

	// Dimension overrides the model's embedding dimension. 0 means derive it
	// from the model name.
	Dimension int `koanf:"dimension"`

	// BatchSize is the number of texts sent per model call.
	BatchSize int `koanf:"batch_size"`

	// Workers bounds the number of concurrent model calls.
	Workers int `koanf:"workers"`

	// RateLimit caps model calls per minute. 0 disables limiting.
	RateLimit int `koanf:"rate_limit"`

	// RequestTimeout bounds a single model call.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// CacheConfig configures the badger-backed vector cache.
type CacheConfig struct {
	// Path is the on-disk location of the cache. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory runs the cache without persistence. Intended for tests.
	InMemory bool `koanf:"in_memory"`

	// DefaultTTL applies to cache writes that do not specify a TTL.
	DefaultTTL time.Duration `koanf:"default_ttl"`
}

// CatalogConfig configures the audience cluster catalog.
type CatalogConfig struct {
	// Path points at the JSON catalog file loaded at startup.
	Path string `koanf:"path"`
}

// MatcherConfig configures cluster matching.
type MatcherConfig struct {
	// SimilarityThreshold is the minimum similarity for a cluster to count
	// as a real match.
	SimilarityThreshold float64 `koanf:"similarity_threshold"`

	// TopK caps the number of clusters returned per event.
	TopK int `koanf:"top_k"`
}

// RecommenderConfig configures the sequence recommender.
type RecommenderConfig struct {
	// SeqLen is the history window fed to the sequence model. Users with
	// fewer than SeqLen/2 history entries are scored in fallback mode.
	SeqLen int `koanf:"seq_len"`

	// RecommendCount is the maximum number of events returned per request.
	RecommendCount int `koanf:"recommend_count"`

	// LikeWeight scales history vectors for liked events.
	LikeWeight float64 `koanf:"like_weight"`

	// DislikeWeight scales history vectors for disliked events.
	DislikeWeight float64 `koanf:"dislike_weight"`

	// AffinityWeight is the per-liked-event accumulation factor used by
	// fallback scoring. Deliberately a separate knob from
	// Profile.UpdateWeight even though both default to 0.3.
	AffinityWeight float64 `koanf:"affinity_weight"`

	// HiddenSize is the LSTM hidden state dimension.
	HiddenSize int `koanf:"hidden_size"`

	// NumLayers is the number of stacked LSTM layers.
	NumLayers int `koanf:"num_layers"`

	// LearningRate is the Adam learning rate for training steps.
	LearningRate float64 `koanf:"learning_rate"`

	// RequestTimeout bounds one recommendation request end to end.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// ProfileConfig configures profile updates and history maintenance.
type ProfileConfig struct {
	// UpdateWeight scales event cluster scores blended into a user profile.
	UpdateWeight float64 `koanf:"update_weight"`

	// MaxHistory bounds the interaction history length per user.
	MaxHistory int `koanf:"max_history"`
}

// TrainingConfig configures the background trainer.
type TrainingConfig struct {
	// Enabled switches background training on.
	Enabled bool `koanf:"enabled"`

	// Topic is the feedback message topic on the in-process queue.
	Topic string `koanf:"topic"`

	// BufferSize is the queue buffer before publishers block.
	BufferSize int `koanf:"buffer_size"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
