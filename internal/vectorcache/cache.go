// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package vectorcache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/suadeo-dev/suadeo/internal/logging"
	"github.com/suadeo-dev/suadeo/internal/metrics"
	"github.com/suadeo-dev/suadeo/internal/vector"
)

// Config configures the cache store.
type Config struct {
	// Path is the badger directory. Ignored when InMemory is set.
	Path string

	// InMemory runs badger without persistence.
	InMemory bool

	// DefaultTTL applies to Set calls. Zero falls back to 7 days.
	DefaultTTL time.Duration
}

// Cache is a badger-backed vector store with per-entry expiration.
//
// The cache is best effort by contract: after a successful Open, every
// operation degrades a store failure to a miss (Get), a false result
// (Set/Delete/Exists/Clear) or a nil slot (GetMultiple) and logs a warning.
// Callers recompute on miss and never fail because the cache is unhealthy.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
	log zerologLogger
}

// zerologLogger narrows the logging dependency for tests.
type zerologLogger interface {
	warn(op, key string, err error)
}

type stdLogger struct{}

func (stdLogger) warn(op, key string, err error) {
	logging.Warn().Str("component", "vectorcache").Str("op", op).Str("key", key).Err(err).
		Msg("cache operation degraded")
}

// payload is the serialized form of one cached vector. The dimension is
// stored explicitly so a torn or foreign value is detected on read.
type payload struct {
	Dim    int       `json:"dim"`
	Values []float64 `json:"values"`
}

// Open opens the cache store. Failure here is fatal to initialization:
// a core that cannot reach its cache at construction is misconfigured,
// unlike a cache that degrades later at runtime.
func Open(cfg Config) (*Cache, error) {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 7 * 24 * time.Hour
	}

	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithLogger(nil)
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open vector cache at %q: %w", cfg.Path, err)
	}

	return &Cache{db: db, ttl: cfg.DefaultTTL, log: stdLogger{}}, nil
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Set stores a vector under key with the default TTL.
func (c *Cache) Set(key string, vec vector.Vector) bool {
	return c.SetWithTTL(key, vec, c.ttl)
}

// SetWithTTL stores a vector under key, expiring after ttl. The write is
// atomic: concurrent readers observe either the previous value or the
// complete new one, never a torn entry.
func (c *Cache) SetWithTTL(key string, vec vector.Vector, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(payload{Dim: len(vec), Values: vec})
	if err != nil {
		c.log.warn("set", key, err)
		metrics.CacheErrors.WithLabelValues("set").Inc()
		return false
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), data).WithTTL(ttl))
	})
	if err != nil {
		c.log.warn("set", key, err)
		metrics.CacheErrors.WithLabelValues("set").Inc()
		return false
	}
	return true
}

// Get returns the vector stored under key, or (nil, false) when the key is
// absent, expired, unreadable or the store fails.
func (c *Cache) Get(key string) (vector.Vector, bool) {
	var vec vector.Vector

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := decode(val)
			if err != nil {
				return err
			}
			vec = decoded
			return nil
		})
	})

	switch {
	case err == nil:
		metrics.CacheHits.WithLabelValues(namespaceFor(key)).Inc()
		return vec, true
	case errors.Is(err, badger.ErrKeyNotFound):
		metrics.CacheMisses.WithLabelValues(namespaceFor(key)).Inc()
		return nil, false
	default:
		// Store failure or malformed payload: both are misses by contract.
		c.log.warn("get", key, err)
		metrics.CacheErrors.WithLabelValues("get").Inc()
		metrics.CacheMisses.WithLabelValues(namespaceFor(key)).Inc()
		return nil, false
	}
}

// GetMultiple returns one slot per key, in key order. Absent, expired or
// unreadable entries yield a nil slot.
func (c *Cache) GetMultiple(keys []string) []vector.Vector {
	out := make([]vector.Vector, len(keys))

	err := c.db.View(func(txn *badger.Txn) error {
		for i, key := range keys {
			item, err := txn.Get([]byte(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				metrics.CacheMisses.WithLabelValues(namespaceFor(key)).Inc()
				continue
			}
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				decoded, err := decode(val)
				if err != nil {
					return err
				}
				out[i] = decoded
				return nil
			})
			if err != nil {
				// One bad entry must not void the batch.
				c.log.warn("get_multiple", key, err)
				metrics.CacheMisses.WithLabelValues(namespaceFor(key)).Inc()
				continue
			}
			metrics.CacheHits.WithLabelValues(namespaceFor(key)).Inc()
		}
		return nil
	})
	if err != nil {
		c.log.warn("get_multiple", "", err)
		metrics.CacheErrors.WithLabelValues("get").Inc()
		return make([]vector.Vector, len(keys))
	}

	return out
}

// Delete removes key and reports whether an entry existed.
func (c *Cache) Delete(key string) bool {
	existed := false
	err := c.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		existed = true
		return txn.Delete([]byte(key))
	})
	if err != nil {
		c.log.warn("delete", key, err)
		metrics.CacheErrors.WithLabelValues("delete").Inc()
		return false
	}
	return existed
}

// DeleteEvent invalidates the cached vector of one event, typically after
// its text was edited.
func (c *Cache) DeleteEvent(eventID int) bool {
	return c.Delete(EventKey(eventID))
}

// Exists reports whether key currently holds a live entry.
func (c *Cache) Exists(key string) bool {
	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return err
	})
	switch {
	case err == nil:
		return true
	case errors.Is(err, badger.ErrKeyNotFound):
		return false
	default:
		c.log.warn("exists", key, err)
		metrics.CacheErrors.WithLabelValues("exists").Inc()
		return false
	}
}

// Clear drops every entry in the store.
func (c *Cache) Clear() bool {
	if err := c.db.DropAll(); err != nil {
		c.log.warn("clear", "", err)
		metrics.CacheErrors.WithLabelValues("clear").Inc()
		return false
	}
	return true
}

// decode parses a stored payload and rejects inconsistent entries.
func decode(val []byte) (vector.Vector, error) {
	var p payload
	if err := json.Unmarshal(val, &p); err != nil {
		return nil, fmt.Errorf("unmarshal cached vector: %w", err)
	}
	if p.Dim != len(p.Values) {
		return nil, fmt.Errorf("cached vector dim %d does not match %d values", p.Dim, len(p.Values))
	}
	return vector.Vector(p.Values), nil
}
