// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package training

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/suadeo-dev/suadeo/internal/logging"
	"github.com/suadeo-dev/suadeo/internal/models"
)

// NewQueue creates the in-process pub/sub channel carrying feedback events
// from the engine to the trainer.
func NewQueue(bufferSize int) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: int64(bufferSize)},
		watermillLogger(),
	)
}

// Publisher emits FeedbackRecorded events. It satisfies the engine's
// training notifier contract.
type Publisher struct {
	pub   message.Publisher
	topic string
}

// NewPublisher wraps a watermill publisher for the given topic.
func NewPublisher(pub message.Publisher, topic string) *Publisher {
	return &Publisher{pub: pub, topic: topic}
}

// FeedbackRecorded publishes one feedback event.
func (p *Publisher) FeedbackRecorded(_ context.Context, userID, eventID int, rating models.Rating) error {
	evt := FeedbackRecorded{
		TaskID:     uuid.NewString(),
		UserID:     userID,
		EventID:    eventID,
		Rating:     rating,
		OccurredAt: time.Now().UTC(),
	}
	msg, err := evt.marshal()
	if err != nil {
		return err
	}
	if err := p.pub.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish feedback event: %w", err)
	}
	return nil
}

func watermillLogger() watermill.LoggerAdapter {
	return watermill.NewSlogLogger(logging.NewSlogLogger())
}
