// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package vectorcache

import (
	"context"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/suadeo-dev/suadeo/internal/logging"
)

// RunGC reclaims space held by expired vectors in the value log. It returns
// true when a log file was rewritten.
func (c *Cache) RunGC(discardRatio float64) bool {
	err := c.db.RunValueLogGC(discardRatio)
	switch {
	case err == nil:
		return true
	case errors.Is(err, badger.ErrNoRewrite):
		return false
	default:
		logging.Warn().Str("component", "vectorcache").Err(err).Msg("value log gc failed")
		return false
	}
}

// GCService runs periodic value log garbage collection. It satisfies
// suture.Service.
type GCService struct {
	cache    *Cache
	interval time.Duration
}

// NewGCService creates a GC loop for the cache. A non-positive interval
// defaults to ten minutes.
func NewGCService(cache *Cache, interval time.Duration) *GCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &GCService{cache: cache, interval: interval}
}

// Serve loops until the context is canceled. When one GC pass rewrites a
// log file another pass follows immediately, which is how badger
// recommends draining reclaimable space.
func (s *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for s.cache.RunGC(0.5) {
			}
		}
	}
}

func (s *GCService) String() string {
	return "vectorcache.GCService"
}
