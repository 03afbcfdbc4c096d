// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

var digits = regexp.MustCompile(`\d+`)

// ParseRestriction parses an event age restriction of the form "18+".
// Anything else, including the empty string, reports ok=false.
func ParseRestriction(s string) (min int, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "+") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "+")))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ParseAgeRange extracts the inclusive age bounds from free-form range text
// by taking the first two integers found, in order. Text with fewer than two
// integers is unparseable and reports ok=false.
func ParseAgeRange(s string) (lo, hi int, ok bool) {
	nums := digits.FindAllString(s, 2)
	if len(nums) < 2 {
		return 0, 0, false
	}
	lo, err := strconv.Atoi(nums[0])
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.Atoi(nums[1])
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// ConflictsWith reports whether an event restriction like "18+" excludes
// this cluster, which happens when the restriction floor is above the
// cluster's upper age bound. Unparseable text on either side never
// conflicts: ambiguity keeps the cluster in play.
func (c Cluster) ConflictsWith(restriction string) bool {
	floor, ok := ParseRestriction(restriction)
	if !ok {
		return false
	}
	_, hi, ok := ParseAgeRange(c.AgeRange)
	if !ok {
		return false
	}
	return floor > hi
}
