// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package suadeo assembles the recommendation core from configuration.
//
// The bot runtime supplies its user and event repositories, calls New, and
// gets back a Core whose Engine serves recommendations and records
// feedback. Background work (incremental model training, cache garbage
// collection) runs under a supervision tree started with Serve.
package suadeo

import (
	"context"
	"fmt"

	"github.com/suadeo-dev/suadeo/internal/catalog"
	"github.com/suadeo-dev/suadeo/internal/config"
	"github.com/suadeo-dev/suadeo/internal/embedding"
	"github.com/suadeo-dev/suadeo/internal/logging"
	"github.com/suadeo-dev/suadeo/internal/matcher"
	"github.com/suadeo-dev/suadeo/internal/models"
	"github.com/suadeo-dev/suadeo/internal/profile"
	"github.com/suadeo-dev/suadeo/internal/recommend"
	"github.com/suadeo-dev/suadeo/internal/supervisor"
	"github.com/suadeo-dev/suadeo/internal/training"
	"github.com/suadeo-dev/suadeo/internal/vectorcache"
)

// Config re-exports the loaded configuration type.
type Config = config.Config

// LoadConfig loads configuration from defaults, an optional YAML file and
// environment variables.
func LoadConfig() (Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return Config{}, err
	}
	return *cfg, nil
}

// Option adjusts core assembly.
type Option func(*options)

type options struct {
	provider embedding.Provider
}

// WithProvider replaces the OpenAI embedding provider, for bots that bring
// their own model and for tests.
func WithProvider(p embedding.Provider) Option {
	return func(o *options) { o.provider = p }
}

// Core is the assembled recommendation engine and its background services.
type Core struct {
	Engine   *recommend.Engine
	Matcher  *matcher.Matcher
	Resolver *embedding.Resolver
	Model    *recommend.LSTM

	cache *vectorcache.Cache
	queue interface{ Close() error }
	tree  *supervisor.Tree
}

// New assembles the core: cache, embedder, catalog, matcher, sequence model,
// engine, and (when enabled) the supervised trainer. The context bounds
// catalog vectorization, which may call the embedding API for every cluster
// on a cold cache.
func New(ctx context.Context, cfg Config, users models.UserRepository, events models.EventRepository, opts ...Option) (*Core, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	provider := o.provider
	if provider == nil {
		p, err := embedding.NewOpenAI(cfg.Embedding.APIKey, cfg.Embedding.Model, cfg.Embedding.Dimension)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	cache, err := vectorcache.Open(vectorcache.Config{
		Path:       cfg.Cache.Path,
		InMemory:   cfg.Cache.InMemory,
		DefaultTTL: cfg.Cache.DefaultTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("open vector cache: %w", err)
	}

	encoder := embedding.NewEncoder(provider, embedding.EncoderConfig{
		BatchSize:      cfg.Embedding.BatchSize,
		Workers:        cfg.Embedding.Workers,
		RateLimit:      cfg.Embedding.RateLimit,
		RequestTimeout: cfg.Embedding.RequestTimeout,
	})
	resolver := embedding.NewResolver(encoder, cache)

	clusters, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		_ = cache.Close()
		return nil, err
	}
	m := matcher.New(matcher.Config{
		Threshold: cfg.Matcher.SimilarityThreshold,
		TopK:      cfg.Matcher.TopK,
	}, resolver)
	if err := m.Load(ctx, clusters); err != nil {
		_ = cache.Close()
		return nil, err
	}

	model, err := recommend.NewLSTM(recommend.LSTMConfig{
		InputSize:    provider.Dimension(),
		HiddenSize:   cfg.Recommender.HiddenSize,
		NumLayers:    cfg.Recommender.NumLayers,
		LearningRate: cfg.Recommender.LearningRate,
		Seed:         42,
	})
	if err != nil {
		_ = cache.Close()
		return nil, err
	}

	rec := recommend.New(recommend.Config{
		SeqLen:         cfg.Recommender.SeqLen,
		RecommendCount: cfg.Recommender.RecommendCount,
		LikeWeight:     cfg.Recommender.LikeWeight,
		DislikeWeight:  cfg.Recommender.DislikeWeight,
		AffinityWeight: cfg.Recommender.AffinityWeight,
	}, resolver, model, events)

	core := &Core{
		Matcher:  m,
		Resolver: resolver,
		Model:    model,
		cache:    cache,
	}

	var notifier recommend.TrainingNotifier
	if cfg.Training.Enabled {
		queue := training.NewQueue(cfg.Training.BufferSize)
		trainer, err := training.NewTrainer(training.TrainerConfig{
			Topic:         cfg.Training.Topic,
			SeqLen:        cfg.Recommender.SeqLen,
			LikeWeight:    cfg.Recommender.LikeWeight,
			DislikeWeight: cfg.Recommender.DislikeWeight,
		}, queue, model, resolver, users)
		if err != nil {
			_ = queue.Close()
			_ = cache.Close()
			return nil, err
		}
		notifier = training.NewPublisher(queue, cfg.Training.Topic)

		tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
		tree.AddModelService(trainer)
		tree.AddMaintenanceService(vectorcache.NewGCService(cache, 0))
		core.queue = queue
		core.tree = tree
	}

	core.Engine = recommend.NewEngine(rec, m, users, events, notifier,
		profile.Config{
			UpdateWeight: cfg.Profile.UpdateWeight,
			MaxHistory:   cfg.Profile.MaxHistory,
		}, cfg.Recommender.RequestTimeout)
	return core, nil
}

// Serve runs the background services until the context is canceled. With
// training disabled there is nothing to run and Serve waits for ctx.
func (c *Core) Serve(ctx context.Context) error {
	if c.tree == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	return c.tree.Serve(ctx)
}

// Close releases the queue and the cache. Call after Serve has returned.
func (c *Core) Close() error {
	if c.queue != nil {
		_ = c.queue.Close()
	}
	return c.cache.Close()
}
