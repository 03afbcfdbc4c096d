// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package vectorcache

import (
	"strconv"
	"strings"
)

// Key prefixes namespace cache entries by purpose.
const (
	eventKeyPrefix   = "event_vector:"
	clusterKeyPrefix = "cluster_vector:"
)

// EventKey returns the cache key for an event's embedding.
func EventKey(eventID int) string {
	return eventKeyPrefix + strconv.Itoa(eventID)
}

// ClusterKey returns the cache key for a cluster's embedding.
func ClusterKey(name string) string {
	return clusterKeyPrefix + name
}

// namespaceFor maps a key to its metrics namespace label.
func namespaceFor(key string) string {
	switch {
	case strings.HasPrefix(key, eventKeyPrefix):
		return "event"
	case strings.HasPrefix(key, clusterKeyPrefix):
		return "cluster"
	default:
		return "other"
	}
}
