// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package vector defines the embedding vector type and the similarity and
// distance measures used across the recommendation core.
//
// Vectors are comparable only when their dimensions match; every pairwise
// operation returns ErrDimensionMismatch otherwise. There is no silent
// truncation or padding anywhere in this package.
package vector

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when two vectors of unequal length are
// combined in a pairwise operation.
var ErrDimensionMismatch = errors.New("vector: dimension mismatch")

// ErrZeroVector is returned when a zero vector is normalized.
var ErrZeroVector = errors.New("vector: cannot normalize zero vector")

// Vector is a fixed-dimension embedding produced by the text embedder.
// A Vector is treated as immutable once produced.
type Vector []float64

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Scale returns v multiplied element-wise by factor as a new vector.
func (v Vector) Scale(factor float64) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = x * factor
	}
	return out
}

// Norm returns the euclidean (L2) norm of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// FromFloat32 converts a provider-native float32 slice into a Vector.
// Conversion happens once at the embedder boundary; everything downstream
// works in float64.
func FromFloat32(src []float32) Vector {
	out := make(Vector, len(src))
	for i, x := range src {
		out[i] = float64(x)
	}
	return out
}

// checkDims verifies a and b share a dimension.
func checkDims(a, b Vector) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}
	return nil
}

// Dot returns the dot product of a and b.
func Dot(a, b Vector) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// A zero vector on either side yields similarity 0.
func Cosine(a, b Vector) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	// Floating point rounding can nudge the ratio just outside [-1, 1].
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}
	return sim, nil
}

// Euclidean returns the L2 distance between a and b.
func Euclidean(a, b Vector) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Manhattan returns the L1 distance between a and b.
func Manhattan(a, b Vector) (float64, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum, nil
}

// Normalize returns v scaled to unit length as a new vector.
// Returns ErrZeroVector when v has zero norm.
func Normalize(v Vector) (Vector, error) {
	norm := v.Norm()
	if norm == 0 {
		return nil, ErrZeroVector
	}
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out, nil
}

// PairwiseCosine computes the cosine similarity of every vector in a against
// every vector in b. The result has len(a) rows and len(b) columns.
func PairwiseCosine(a, b []Vector) ([][]float64, error) {
	out := make([][]float64, len(a))
	for i, va := range a {
		out[i] = make([]float64, len(b))
		for j, vb := range b {
			sim, err := Cosine(va, vb)
			if err != nil {
				return nil, fmt.Errorf("pair (%d,%d): %w", i, j, err)
			}
			out[i][j] = sim
		}
	}
	return out, nil
}
