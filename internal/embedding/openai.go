// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/suadeo-dev/suadeo/internal/vector"
)

// ErrModelLoad marks a provider construction failure. It is distinct from
// per-call embedding errors: construction failure is fatal to startup.
var ErrModelLoad = errors.New("embedding: model load failed")

// modelDimensions maps known embedding models to their output dimension.
var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// OpenAIProvider implements Provider using the OpenAI embeddings API.
type OpenAIProvider struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	dimension int
}

// NewOpenAI creates an OpenAI embedding provider. dimension may be zero for
// models listed in modelDimensions; for any other model it must be given
// explicitly. Construction fails fast on a configuration that could never
// produce embeddings.
func NewOpenAI(apiKey, model string, dimension int) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: api key is empty", ErrModelLoad)
	}
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	if dimension == 0 {
		known, ok := modelDimensions[model]
		if !ok {
			return nil, fmt.Errorf("%w: unknown model %q and no explicit dimension", ErrModelLoad, model)
		}
		dimension = known
	}

	return &OpenAIProvider{
		client:    openai.NewClient(apiKey),
		model:     openai.EmbeddingModel(model),
		dimension: dimension,
	}, nil
}

// Dimension returns the embedding dimension of the configured model.
func (p *OpenAIProvider) Dimension() int {
	return p.dimension
}

// EmbedBatch embeds texts in one API call, preserving input order.
func (p *OpenAIProvider) EmbedBatch(ctx context.Context, texts []string) ([]vector.Vector, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: p.model,
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response has %d vectors for %d texts", len(resp.Data), len(texts))
	}

	out := make([]vector.Vector, len(texts))
	for i, data := range resp.Data {
		vec := vector.FromFloat32(data.Embedding)
		if len(vec) != p.dimension {
			return nil, fmt.Errorf("model returned %d-dim vector, expected %d", len(vec), p.dimension)
		}
		out[i] = vec
	}
	return out, nil
}
