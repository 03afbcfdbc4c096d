// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package catalog loads the fixed cluster taxonomy that events are
// classified against, and parses the age text used to filter clusters
// against event age restrictions.
package catalog
