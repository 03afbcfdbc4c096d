// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package embedding

import (
	"context"

	"github.com/suadeo-dev/suadeo/internal/vector"
)

// Provider generates text embeddings from a pre-trained model.
type Provider interface {
	// EmbedBatch embeds multiple texts in one model call, returning vectors
	// in input order. Batching must not change the numeric output versus
	// single-item calls beyond ordinary floating-point nondeterminism.
	EmbedBatch(ctx context.Context, texts []string) ([]vector.Vector, error)

	// Dimension returns the fixed embedding dimension of the loaded model.
	Dimension() int
}
