// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package config

import "fmt"

// Validate checks the configuration for values that would break the core at
// runtime. It is called by Load after all layers are merged.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateEmbedding,
		c.validateCache,
		c.validateMatcher,
		c.validateRecommender,
		c.validateProfile,
		c.validateTraining,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateEmbedding() error {
	if c.Embedding.Model == "" {
		return fmt.Errorf("embedding.model must not be empty")
	}
	if c.Embedding.BatchSize <= 0 {
		return fmt.Errorf("embedding.batch_size must be positive, got %d", c.Embedding.BatchSize)
	}
	if c.Embedding.Workers <= 0 {
		return fmt.Errorf("embedding.workers must be positive, got %d", c.Embedding.Workers)
	}
	if c.Embedding.RateLimit < 0 {
		return fmt.Errorf("embedding.rate_limit must not be negative, got %d", c.Embedding.RateLimit)
	}
	if c.Embedding.RequestTimeout <= 0 {
		return fmt.Errorf("embedding.request_timeout must be positive, got %s", c.Embedding.RequestTimeout)
	}
	if c.Embedding.Dimension < 0 {
		return fmt.Errorf("embedding.dimension must not be negative, got %d", c.Embedding.Dimension)
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.InMemory && c.Cache.Path == "" {
		return fmt.Errorf("cache.path must be set when cache.in_memory is false")
	}
	if c.Cache.DefaultTTL <= 0 {
		return fmt.Errorf("cache.default_ttl must be positive, got %s", c.Cache.DefaultTTL)
	}
	return nil
}

func (c *Config) validateMatcher() error {
	if c.Matcher.SimilarityThreshold < -1 || c.Matcher.SimilarityThreshold > 1 {
		return fmt.Errorf("matcher.similarity_threshold must be in [-1, 1], got %f", c.Matcher.SimilarityThreshold)
	}
	if c.Matcher.TopK <= 0 {
		return fmt.Errorf("matcher.top_k must be positive, got %d", c.Matcher.TopK)
	}
	return nil
}

func (c *Config) validateRecommender() error {
	if c.Recommender.SeqLen < 2 {
		return fmt.Errorf("recommender.seq_len must be at least 2, got %d", c.Recommender.SeqLen)
	}
	if c.Recommender.RecommendCount <= 0 {
		return fmt.Errorf("recommender.recommend_count must be positive, got %d", c.Recommender.RecommendCount)
	}
	if c.Recommender.HiddenSize <= 0 {
		return fmt.Errorf("recommender.hidden_size must be positive, got %d", c.Recommender.HiddenSize)
	}
	if c.Recommender.NumLayers <= 0 {
		return fmt.Errorf("recommender.num_layers must be positive, got %d", c.Recommender.NumLayers)
	}
	if c.Recommender.LearningRate <= 0 {
		return fmt.Errorf("recommender.learning_rate must be positive, got %f", c.Recommender.LearningRate)
	}
	if c.Recommender.RequestTimeout <= 0 {
		return fmt.Errorf("recommender.request_timeout must be positive, got %s", c.Recommender.RequestTimeout)
	}
	return nil
}

func (c *Config) validateProfile() error {
	if c.Profile.UpdateWeight < 0 || c.Profile.UpdateWeight > 1 {
		return fmt.Errorf("profile.update_weight must be in [0, 1], got %f", c.Profile.UpdateWeight)
	}
	if c.Profile.MaxHistory <= 0 {
		return fmt.Errorf("profile.max_history must be positive, got %d", c.Profile.MaxHistory)
	}
	return nil
}

func (c *Config) validateTraining() error {
	if !c.Training.Enabled {
		return nil
	}
	if c.Training.Topic == "" {
		return fmt.Errorf("training.topic must not be empty")
	}
	if c.Training.BufferSize <= 0 {
		return fmt.Errorf("training.buffer_size must be positive, got %d", c.Training.BufferSize)
	}
	return nil
}
