// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"suadeo.yaml",
	"suadeo.yml",
	"/etc/suadeo/config.yaml",
	"/etc/suadeo/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "SUADEO_CONFIG"

// defaultConfig returns a Config with all defaults applied. Numeric values
// mirror the production deployment this engine grew out of.
func defaultConfig() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Model:          "text-embedding-3-small",
			APIKey:         "",
			Dimension:      0, // derived from the model name
			BatchSize:      16,
			Workers:        4,
			RateLimit:      3000,
			RequestTimeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			Path:       "/data/suadeo/vectors",
			InMemory:   false,
			DefaultTTL: 7 * 24 * time.Hour,
		},
		Catalog: CatalogConfig{
			Path: "clusters.json",
		},
		Matcher: MatcherConfig{
			SimilarityThreshold: 0.4,
			TopK:                10,
		},
		Recommender: RecommenderConfig{
			SeqLen:         10,
			RecommendCount: 5,
			LikeWeight:     1.0,
			DislikeWeight:  -0.3,
			AffinityWeight: 0.3,
			HiddenSize:     64,
			NumLayers:      2,
			LearningRate:   0.001,
			RequestTimeout: 10 * time.Second,
		},
		Profile: ProfileConfig{
			UpdateWeight: 0.3,
			MaxHistory:   50,
		},
		Training: TrainingConfig{
			Enabled:    true,
			Topic:      "user.feedback",
			BufferSize: 256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from three layers with clear precedence:
//
//  1. Defaults (built in)
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
//
// Environment variables map section-first onto koanf paths:
// EMBEDDING_BATCH_SIZE -> embedding.batch_size, CACHE_DEFAULT_TTL ->
// cache.default_ttl, and so on.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration invalid: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// configSections are the recognized env var prefixes. Anything else in the
// environment is ignored rather than unmarshaled into the config.
var configSections = []string{
	"EMBEDDING_",
	"CACHE_",
	"CATALOG_",
	"MATCHER_",
	"RECOMMENDER_",
	"PROFILE_",
	"TRAINING_",
	"LOGGING_",
}

// envTransform maps EMBEDDING_BATCH_SIZE to embedding.batch_size. Variables
// outside the known sections map to "" and are dropped by koanf.
func envTransform(key string) string {
	for _, section := range configSections {
		if strings.HasPrefix(key, section) {
			prefix := strings.ToLower(strings.TrimSuffix(section, "_"))
			rest := strings.ToLower(strings.TrimPrefix(key, section))
			if rest == "" {
				return ""
			}
			return prefix + "." + rest
		}
	}
	return ""
}
