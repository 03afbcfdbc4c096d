// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package validation

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `validate:"required"`
	Count int    `validate:"min=1,max=10"`
	Kind  string `validate:"omitempty,oneof=a b"`
}

func TestStructValid(t *testing.T) {
	if err := Struct(sample{Name: "x", Count: 5, Kind: "a"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
}

func TestStructCollectsFieldErrors(t *testing.T) {
	err := Struct(sample{Count: 99, Kind: "c"})
	if err == nil {
		t.Fatal("expected error")
	}
	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %T", err)
	}
	if len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(errs), errs)
	}
	msg := err.Error()
	for _, want := range []string{"Name is required", "Count must be at most 10", "Kind must be one of"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestStructNonStructInput(t *testing.T) {
	if err := Struct(42); err == nil {
		t.Error("expected error for non-struct input")
	}
}
