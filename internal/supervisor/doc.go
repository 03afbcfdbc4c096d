// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package supervisor builds the suture tree that keeps the background
// trainer and cache maintenance running, restarting them on failure with
// backoff.
package supervisor
