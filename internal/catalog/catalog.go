// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/suadeo-dev/suadeo/internal/validation"
)

// ErrCatalogInvalid marks any catalog load failure. The load is
// all-or-nothing: one malformed entry aborts the whole catalog rather than
// leaving the process with a partial taxonomy.
var ErrCatalogInvalid = errors.New("catalog: invalid cluster catalog")

// Cluster is one named audience segment of the fixed classification
// taxonomy. Clusters are loaded once at process start and are read-only for
// the process lifetime, so they are safely shared without locking.
type Cluster struct {
	Name string `json:"name" validate:"required"`

	// AgeRange is free-form source text such as "30–50 лет (с детьми)".
	// The first two integers found in it are taken as the inclusive bounds.
	AgeRange string `json:"age_range" validate:"required"`

	Interests   []string `json:"interests"`
	Preferences []string `json:"preferences"`
	Motivations []string `json:"motivations"`
}

// EmbeddingText returns the text blob embedded for this cluster: all tag
// lists concatenated with single spaces.
func (c Cluster) EmbeddingText() string {
	tags := make([]string, 0, len(c.Interests)+len(c.Preferences)+len(c.Motivations))
	tags = append(tags, c.Interests...)
	tags = append(tags, c.Preferences...)
	tags = append(tags, c.Motivations...)
	return strings.Join(tags, " ")
}

// Load reads a cluster catalog from a JSON file. Any parse or validation
// failure aborts the load; a successfully loaded catalog is complete.
func Load(path string) ([]Cluster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrCatalogInvalid, path, err)
	}
	return Parse(data)
}

// Parse parses and validates catalog JSON.
func Parse(data []byte) ([]Cluster, error) {
	var clusters []Cluster
	if err := json.Unmarshal(data, &clusters); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogInvalid, err)
	}
	if len(clusters) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrCatalogInvalid)
	}

	seen := make(map[string]struct{}, len(clusters))
	for i, cluster := range clusters {
		if err := validation.Struct(cluster); err != nil {
			return nil, fmt.Errorf("%w: cluster %d: %w", ErrCatalogInvalid, i, err)
		}
		if _, dup := seen[cluster.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate cluster name %q", ErrCatalogInvalid, cluster.Name)
		}
		seen[cluster.Name] = struct{}{}
		if cluster.EmbeddingText() == "" {
			return nil, fmt.Errorf("%w: cluster %q has no tags to embed", ErrCatalogInvalid, cluster.Name)
		}
	}

	return clusters, nil
}
