// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package config loads and validates the engine configuration from three
// koanf layers: built-in defaults, an optional YAML file and environment
// variables, in ascending precedence.
package config
