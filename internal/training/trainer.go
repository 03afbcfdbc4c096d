// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package training

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/suadeo-dev/suadeo/internal/embedding"
	"github.com/suadeo-dev/suadeo/internal/logging"
	"github.com/suadeo-dev/suadeo/internal/metrics"
	"github.com/suadeo-dev/suadeo/internal/models"
	"github.com/suadeo-dev/suadeo/internal/recommend"
	"github.com/suadeo-dev/suadeo/internal/vector"
	"github.com/suadeo-dev/suadeo/internal/vectorcache"
)

// TrainerConfig shapes the training samples the trainer builds from user
// histories. The weights mirror the recommender so training and inference
// see the same representation.
type TrainerConfig struct {
	Topic         string
	SeqLen        int
	LikeWeight    float64
	DislikeWeight float64
}

// Trainer consumes feedback events and applies one incremental training
// step per rating: the rating-weighted window over the user's newest
// history entries splits into an input sequence and its final vector as the
// prediction target. A failed or unbuildable step is counted and skipped;
// the stream must keep flowing.
type Trainer struct {
	cfg      TrainerConfig
	model    *recommend.LSTM
	resolver *embedding.Resolver
	users    models.UserRepository
	router   *message.Router
}

// NewTrainer builds the trainer and its message router on the given
// subscriber.
func NewTrainer(
	cfg TrainerConfig,
	sub message.Subscriber,
	model *recommend.LSTM,
	resolver *embedding.Resolver,
	users models.UserRepository,
) (*Trainer, error) {
	logger := watermillLogger()
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, logger)
	if err != nil {
		return nil, fmt.Errorf("create training router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          logger,
	}
	router.AddMiddleware(retry.Middleware)

	t := &Trainer{
		cfg:      cfg,
		model:    model,
		resolver: resolver,
		users:    users,
		router:   router,
	}
	router.AddNoPublisherHandler("sequence_trainer", cfg.Topic, sub, t.handle)
	return t, nil
}

// Serve runs the message router until the context is canceled. It satisfies
// suture.Service.
func (t *Trainer) Serve(ctx context.Context) error {
	return t.router.Run(ctx)
}

func (t *Trainer) String() string {
	return "training.Trainer"
}

// handle processes one feedback event. It never returns an error for
// training trouble: a retry would rebuild the same sample and fail the same
// way, so failures are counted and the message acked.
func (t *Trainer) handle(msg *message.Message) error {
	evt, err := unmarshalFeedback(msg)
	if err != nil {
		logging.Warn().Err(err).Msg("dropping malformed feedback event")
		metrics.TrainingFailures.Inc()
		return nil
	}
	if err := t.trainOn(msg.Context(), evt); err != nil {
		logging.Warn().Err(err).Int("user_id", evt.UserID).Int("event_id", evt.EventID).
			Msg("training step skipped")
		metrics.TrainingFailures.Inc()
		return nil
	}
	return nil
}

func (t *Trainer) trainOn(ctx context.Context, evt FeedbackRecorded) error {
	user, err := t.users.Profile(ctx, evt.UserID)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	seq := t.trainingSequence(user.EventHistory)
	if len(seq) < 2 {
		return fmt.Errorf("only %d resolvable history vectors", len(seq))
	}

	loss, err := t.model.TrainStep(seq[:len(seq)-1], seq[len(seq)-1])
	if err != nil {
		return fmt.Errorf("train step: %w", err)
	}
	metrics.TrainingSteps.Inc()
	metrics.TrainingLastLoss.Set(loss)
	logging.Debug().Int("user_id", evt.UserID).Float64("loss", loss).
		Int("model_version", t.model.Version()).Msg("training step applied")
	return nil
}

// trainingSequence builds the rating-weighted window over the newest SeqLen
// history entries, oldest first. The just-rated event sits at the end of
// the history, so its weighted vector becomes the training target; a
// dislike therefore trains the model away from the event, not toward it.
// Entries whose vectors are missing from the cache are skipped.
func (t *Trainer) trainingSequence(history []models.HistoryEntry) []vector.Vector {
	if len(history) > t.cfg.SeqLen {
		history = history[len(history)-t.cfg.SeqLen:]
	}

	seq := make([]vector.Vector, 0, len(history))
	for _, entry := range history {
		vec, ok := t.resolver.Cached(vectorcache.EventKey(entry.EventID))
		if !ok {
			continue
		}
		weight := t.cfg.LikeWeight
		if entry.Rating == models.RatingDislike {
			weight = t.cfg.DislikeWeight
		}
		seq = append(seq, vec.Scale(weight))
	}
	return seq
}
