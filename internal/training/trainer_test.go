// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package training

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/suadeo-dev/suadeo/internal/embedding"
	"github.com/suadeo-dev/suadeo/internal/models"
	"github.com/suadeo-dev/suadeo/internal/recommend"
	"github.com/suadeo-dev/suadeo/internal/vector"
	"github.com/suadeo-dev/suadeo/internal/vectorcache"
)

type fixedProvider struct{}

func (fixedProvider) EmbedBatch(_ context.Context, texts []string) ([]vector.Vector, error) {
	out := make([]vector.Vector, len(texts))
	for i, text := range texts {
		out[i] = vector.Vector{float64(len(text)), 1, 0, 0}
	}
	return out, nil
}

func (fixedProvider) Dimension() int { return 4 }

type fixedUsers struct {
	profile models.UserProfile
	err     error
}

func (f *fixedUsers) Profile(context.Context, int) (models.UserProfile, error) {
	return f.profile, f.err
}

func (f *fixedUsers) SaveStatusML(context.Context, int, []models.CategoryScore) error { return nil }
func (f *fixedUsers) SaveHistory(context.Context, int, []models.HistoryEntry) error   { return nil }

func testTrainerSetup(t *testing.T, users *fixedUsers) (*Trainer, *Publisher, *embedding.Resolver, *recommend.LSTM) {
	t.Helper()
	cache, err := vectorcache.Open(vectorcache.Config{InMemory: true, DefaultTTL: time.Hour})
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	resolver := embedding.NewResolver(embedding.NewEncoder(fixedProvider{}, embedding.EncoderConfig{BatchSize: 8}), cache)

	model, err := recommend.NewLSTM(recommend.LSTMConfig{
		InputSize: 4, HiddenSize: 8, NumLayers: 2, LearningRate: 0.001, Seed: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	queue := NewQueue(16)
	t.Cleanup(func() { _ = queue.Close() })

	cfg := TrainerConfig{Topic: "feedback", SeqLen: 4, LikeWeight: 1.0, DislikeWeight: -0.3}
	trainer, err := NewTrainer(cfg, queue, model, resolver, users)
	if err != nil {
		t.Fatalf("NewTrainer: %v", err)
	}
	return trainer, NewPublisher(queue, "feedback"), resolver, model
}

func cacheEventVector(t *testing.T, resolver *embedding.Resolver, id int, title string) {
	t.Helper()
	if _, err := resolver.EventVector(context.Background(), models.EventCandidate{ID: id, Title: title}); err != nil {
		t.Fatalf("embed event %d: %v", id, err)
	}
}

func runTrainer(t *testing.T, trainer *Trainer) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	done := make(chan error, 1)
	go func() { done <- trainer.Serve(ctx) }()
	select {
	case <-trainer.router.Running():
	case err := <-done:
		t.Fatalf("trainer stopped early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("trainer did not start")
	}
}

func waitForVersion(t *testing.T, model *recommend.LSTM, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if model.Version() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("model version %d, want at least %d", model.Version(), want)
}

func TestTrainerAppliesStepFromFeedback(t *testing.T) {
	history := []models.HistoryEntry{
		{EventID: 1, Rating: models.RatingLike},
		{EventID: 2, Rating: models.RatingDislike},
		{EventID: 3, Rating: models.RatingLike},
	}
	users := &fixedUsers{profile: models.UserProfile{UserID: 7, EventHistory: history}}
	trainer, pub, resolver, model := testTrainerSetup(t, users)

	for id, title := range map[int]string{1: "jazz", 2: "opera", 3: "ballet"} {
		cacheEventVector(t, resolver, id, title)
	}
	runTrainer(t, trainer)

	if err := pub.FeedbackRecorded(context.Background(), 7, 3, models.RatingLike); err != nil {
		t.Fatalf("publish: %v", err)
	}
	waitForVersion(t, model, 1)
}

func TestTrainerSkipsWithoutHistoryVectors(t *testing.T) {
	users := &fixedUsers{profile: models.UserProfile{UserID: 7}}
	trainer, pub, _, model := testTrainerSetup(t, users)
	runTrainer(t, trainer)

	if err := pub.FeedbackRecorded(context.Background(), 7, 99, models.RatingLike); err != nil {
		t.Fatal(err)
	}
	// The message is consumed and dropped; the model must stay untouched.
	time.Sleep(200 * time.Millisecond)
	if model.Version() != 0 {
		t.Errorf("model version = %d, want 0", model.Version())
	}
}

func TestTrainingSequenceWeightsFullWindow(t *testing.T) {
	users := &fixedUsers{}
	trainer, _, resolver, _ := testTrainerSetup(t, users)
	cacheEventVector(t, resolver, 1, "jazz")
	cacheEventVector(t, resolver, 2, "opera")
	cacheEventVector(t, resolver, 3, "ballet")

	history := []models.HistoryEntry{
		{EventID: 1, Rating: models.RatingLike},
		{EventID: 2, Rating: models.RatingDislike},
		{EventID: 3, Rating: models.RatingLike},
	}
	seq := trainer.trainingSequence(history)
	if len(seq) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(seq))
	}
	// Event 2 is disliked: its vector is scaled by the dislike weight.
	if seq[1][1] != -0.3 {
		t.Errorf("dislike weighting not applied: %v", seq[1])
	}
	if seq[0][1] != 1.0 || seq[2][1] != 1.0 {
		t.Errorf("like weighting not applied: %v", seq)
	}
}

func TestTrainingSequenceSkipsUncached(t *testing.T) {
	users := &fixedUsers{}
	trainer, _, resolver, _ := testTrainerSetup(t, users)
	cacheEventVector(t, resolver, 1, "jazz")
	cacheEventVector(t, resolver, 3, "ballet")

	history := []models.HistoryEntry{
		{EventID: 1, Rating: models.RatingLike},
		{EventID: 2, Rating: models.RatingLike},
		{EventID: 3, Rating: models.RatingLike},
	}
	if seq := trainer.trainingSequence(history); len(seq) != 2 {
		t.Fatalf("expected uncached event dropped, got %d vectors", len(seq))
	}
}

func TestDislikeTrainsAwayFromEvent(t *testing.T) {
	history := []models.HistoryEntry{
		{EventID: 1, Rating: models.RatingLike},
		{EventID: 2, Rating: models.RatingLike},
		{EventID: 3, Rating: models.RatingDislike},
	}
	users := &fixedUsers{profile: models.UserProfile{UserID: 7, EventHistory: history}}
	trainer, _, resolver, model := testTrainerSetup(t, users)
	for id, title := range map[int]string{1: "jazz", 2: "opera", 3: "ballet"} {
		cacheEventVector(t, resolver, id, title)
	}

	evt := FeedbackRecorded{UserID: 7, EventID: 3, Rating: models.RatingDislike}
	for i := 0; i < 500; i++ {
		if err := trainer.trainOn(context.Background(), evt); err != nil {
			t.Fatalf("trainOn: %v", err)
		}
	}

	// The target is the weighted vector of the disliked final entry, so
	// the prediction must converge away from the raw event embedding.
	disliked, ok := resolver.Cached(vectorcache.EventKey(3))
	if !ok {
		t.Fatal("disliked vector missing from cache")
	}
	input := trainer.trainingSequence(history)
	pred, err := model.Predict(input[:len(input)-1])
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	sim, err := vector.Cosine(pred, disliked)
	if err != nil {
		t.Fatal(err)
	}
	if sim >= 0 {
		t.Errorf("prediction should point away from the disliked event, cosine = %v", sim)
	}
}

func TestUnmarshalFeedbackRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{"user_id":`},
		{"invalid rating", `{"task_id":"t","user_id":1,"event_id":2,"rating":"meh"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := message.NewMessage("t", []byte(tt.payload))
			if _, err := unmarshalFeedback(msg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTrainerSkipsOnProfileError(t *testing.T) {
	users := &fixedUsers{err: errors.New("db down")}
	trainer, pub, resolver, model := testTrainerSetup(t, users)
	cacheEventVector(t, resolver, 3, "ballet")
	runTrainer(t, trainer)

	if err := pub.FeedbackRecorded(context.Background(), 7, 3, models.RatingLike); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if model.Version() != 0 {
		t.Errorf("model version = %d, want 0", model.Version())
	}
}
