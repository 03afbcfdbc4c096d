// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package vectorcache

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/suadeo-dev/suadeo/internal/vector"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(Config{InMemory: true, DefaultTTL: time.Hour})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSetGetRoundTrip(t *testing.T) {
	c := newTestCache(t)
	vec := vector.Vector{0.1, -0.2, 0.3}

	if ok := c.Set(EventKey(42), vec); !ok {
		t.Fatal("Set() = false, want true")
	}

	got, ok := c.Get(EventKey(42))
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if len(got) != len(vec) {
		t.Fatalf("Get() len = %d, want %d", len(got), len(vec))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("Get()[%d] = %f, want %f", i, got[i], vec[i])
		}
	}
}

func TestGetAbsentKey(t *testing.T) {
	c := newTestCache(t)
	if _, ok := c.Get(ClusterKey("nobody")); ok {
		t.Error("Get() on absent key = hit, want miss")
	}
}

func TestExpiration(t *testing.T) {
	c := newTestCache(t)
	c.SetWithTTL("short-lived", vector.Vector{1}, 50*time.Millisecond)

	if _, ok := c.Get("short-lived"); !ok {
		t.Fatal("entry should be live immediately after write")
	}

	time.Sleep(120 * time.Millisecond)
	if _, ok := c.Get("short-lived"); ok {
		t.Error("entry should have expired")
	}
}

func TestGetMultiplePreservesOrder(t *testing.T) {
	c := newTestCache(t)
	c.Set(EventKey(1), vector.Vector{1})
	c.Set(EventKey(3), vector.Vector{3})

	keys := []string{EventKey(1), EventKey(2), EventKey(3)}
	got := c.GetMultiple(keys)

	if len(got) != 3 {
		t.Fatalf("GetMultiple() len = %d, want 3", len(got))
	}
	if got[0] == nil || got[0][0] != 1 {
		t.Errorf("slot 0 = %v, want [1]", got[0])
	}
	if got[1] != nil {
		t.Errorf("slot 1 = %v, want nil for missing key", got[1])
	}
	if got[2] == nil || got[2][0] != 3 {
		t.Errorf("slot 2 = %v, want [3]", got[2])
	}
}

func TestMalformedPayloadIsMiss(t *testing.T) {
	c := newTestCache(t)
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(EventKey(9)), []byte("definitely-not-json"))
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get(EventKey(9)); ok {
		t.Error("Get() on malformed payload = hit, want miss")
	}
}

func TestInconsistentDimIsMiss(t *testing.T) {
	c := newTestCache(t)
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(EventKey(9)), []byte(`{"dim":5,"values":[1,2]}`))
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get(EventKey(9)); ok {
		t.Error("Get() on inconsistent payload = hit, want miss")
	}
}

func TestDeleteAndExists(t *testing.T) {
	c := newTestCache(t)
	c.Set(EventKey(5), vector.Vector{1})

	if !c.Exists(EventKey(5)) {
		t.Error("Exists() = false after Set")
	}
	if !c.DeleteEvent(5) {
		t.Error("DeleteEvent() = false for existing entry")
	}
	if c.Exists(EventKey(5)) {
		t.Error("Exists() = true after delete")
	}
	if c.Delete(EventKey(5)) {
		t.Error("Delete() = true for absent entry")
	}
}

func TestClear(t *testing.T) {
	c := newTestCache(t)
	c.Set(EventKey(1), vector.Vector{1})
	c.Set(ClusterKey("a"), vector.Vector{2})

	if !c.Clear() {
		t.Fatal("Clear() = false")
	}
	if c.Exists(EventKey(1)) || c.Exists(ClusterKey("a")) {
		t.Error("entries survived Clear()")
	}
}

// A broken store must degrade every operation rather than propagate errors.
func TestBrokenStoreDegrades(t *testing.T) {
	c, err := Open(Config{InMemory: true, DefaultTTL: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	c.Set(EventKey(1), vector.Vector{1})
	_ = c.Close()

	if ok := c.Set(EventKey(2), vector.Vector{2}); ok {
		t.Error("Set() on closed store = true, want false")
	}
	if _, ok := c.Get(EventKey(1)); ok {
		t.Error("Get() on closed store = hit, want miss")
	}
	if c.Exists(EventKey(1)) {
		t.Error("Exists() on closed store = true, want false")
	}
	if c.Delete(EventKey(1)) {
		t.Error("Delete() on closed store = true, want false")
	}
	got := c.GetMultiple([]string{EventKey(1), EventKey(2)})
	if len(got) != 2 || got[0] != nil || got[1] != nil {
		t.Errorf("GetMultiple() on closed store = %v, want [nil nil]", got)
	}
}

func TestKeys(t *testing.T) {
	if got := EventKey(17); got != "event_vector:17" {
		t.Errorf("EventKey(17) = %q", got)
	}
	if got := ClusterKey("Jazz lovers"); got != "cluster_vector:Jazz lovers" {
		t.Errorf("ClusterKey() = %q", got)
	}
	if got := namespaceFor("event_vector:1"); got != "event" {
		t.Errorf("namespaceFor(event) = %q", got)
	}
	if got := namespaceFor("cluster_vector:x"); got != "cluster" {
		t.Errorf("namespaceFor(cluster) = %q", got)
	}
	if got := namespaceFor("misc"); got != "other" {
		t.Errorf("namespaceFor(misc) = %q", got)
	}
}
