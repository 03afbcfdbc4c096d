// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package embedding

import (
	"context"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/suadeo-dev/suadeo/internal/metrics"
	"github.com/suadeo-dev/suadeo/internal/vector"
)

// EncoderConfig configures the batching encoder.
type EncoderConfig struct {
	// BatchSize is the number of texts sent per provider call.
	BatchSize int

	// Workers bounds concurrent provider calls. Encoding runs off the
	// caller's goroutine so a slow model call never stalls unrelated
	// request handling.
	Workers int

	// RateLimit caps provider calls per minute. 0 disables limiting.
	RateLimit int

	// RequestTimeout bounds one provider call.
	RequestTimeout time.Duration
}

// Encoder turns texts into vectors through a Provider, splitting large
// inputs into batches and fanning them out to a bounded worker group.
// Output order always matches input order.
//
// The provider sits behind a circuit breaker: once calls fail repeatedly
// the breaker opens and encoding fails fast instead of piling timeouts on
// a struggling upstream.
type Encoder struct {
	provider Provider
	cfg      EncoderConfig
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker[[]vector.Vector]
}

// NewEncoder creates an encoder over the given provider.
func NewEncoder(provider Provider, cfg EncoderConfig) *Encoder {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 16
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimit)/60.0), cfg.RateLimit/10+1)
	}

	breaker := gobreaker.NewCircuitBreaker[[]vector.Vector](gobreaker.Settings{
		Name:    "embedding-provider",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Encoder{
		provider: provider,
		cfg:      cfg,
		limiter:  limiter,
		breaker:  breaker,
	}
}

// Dimension returns the provider's embedding dimension.
func (e *Encoder) Dimension() int {
	return e.provider.Dimension()
}

// Encode embeds texts, preserving input order and length. It blocks until
// every batch completes, the context ends or the breaker rejects the call.
func (e *Encoder) Encode(ctx context.Context, texts []string) ([]vector.Vector, error) {
	if len(texts) == 0 {
		return []vector.Vector{}, nil
	}

	out := make([]vector.Vector, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)

	for start := 0; start < len(texts); start += e.cfg.BatchSize {
		end := min(start+e.cfg.BatchSize, len(texts))
		g.Go(func() error {
			batch, err := e.encodeBatch(gctx, texts[start:end])
			if err != nil {
				return fmt.Errorf("batch [%d:%d]: %w", start, end, err)
			}
			copy(out[start:end], batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeOne embeds a single text.
func (e *Encoder) EncodeOne(ctx context.Context, text string) (vector.Vector, error) {
	vecs, err := e.Encode(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// encodeBatch runs one provider call with rate limiting, timeout and the
// circuit breaker applied.
func (e *Encoder) encodeBatch(ctx context.Context, batch []string) ([]vector.Vector, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	start := time.Now()
	vecs, err := e.breaker.Execute(func() ([]vector.Vector, error) {
		callCtx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
		defer cancel()
		return e.provider.EmbedBatch(callCtx, batch)
	})
	metrics.ObserveEmbed(start, len(batch), err)
	if err != nil {
		return nil, err
	}
	return vecs, nil
}
