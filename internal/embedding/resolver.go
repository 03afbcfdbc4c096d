// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package embedding

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/suadeo-dev/suadeo/internal/models"
	"github.com/suadeo-dev/suadeo/internal/vector"
	"github.com/suadeo-dev/suadeo/internal/vectorcache"
)

// Resolver is the single resolve-or-compute-and-cache path for vectors.
// Every caller that needs "the vector for key K derived from text T" goes
// through Resolve, which keeps the cache-consistency rule in one place:
// a cached vector always corresponds to the text passed at write time.
//
// Concurrent resolves of the same key are collapsed with singleflight so a
// cache miss triggers at most one model call per key at a time.
type Resolver struct {
	encoder *Encoder
	cache   *vectorcache.Cache
	group   singleflight.Group
}

// NewResolver creates a resolver over the encoder and cache.
func NewResolver(encoder *Encoder, cache *vectorcache.Cache) *Resolver {
	return &Resolver{encoder: encoder, cache: cache}
}

// Dimension returns the embedding dimension vectors resolve to.
func (r *Resolver) Dimension() int {
	return r.encoder.Dimension()
}

// Resolve returns the vector for key, computing and caching it from text on
// a miss. The cache write is best effort; the freshly computed vector is
// used either way.
func (r *Resolver) Resolve(ctx context.Context, key, text string) (vector.Vector, error) {
	if vec, ok := r.cache.Get(key); ok {
		return vec, nil
	}

	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		// Another flight may have filled the cache while we queued.
		if vec, ok := r.cache.Get(key); ok {
			return vec, nil
		}
		vec, err := r.encoder.EncodeOne(ctx, text)
		if err != nil {
			return nil, err
		}
		r.cache.Set(key, vec)
		return vec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", key, err)
	}
	return result.(vector.Vector), nil
}

// Cached returns the vector stored for key without computing on miss.
func (r *Resolver) Cached(key string) (vector.Vector, bool) {
	return r.cache.Get(key)
}

// Invalidate drops the cached vector for key, forcing the next Resolve to
// recompute. Used when the underlying text changes.
func (r *Resolver) Invalidate(key string) bool {
	return r.cache.Delete(key)
}

// EventVector resolves the embedding of an event candidate. An event
// without an id is a hard error: the cache cannot be keyed without it.
func (r *Resolver) EventVector(ctx context.Context, ev models.EventCandidate) (vector.Vector, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return r.Resolve(ctx, vectorcache.EventKey(ev.ID), ev.EmbeddingText())
}
