// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

package training

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/suadeo-dev/suadeo/internal/models"
)

// FeedbackRecorded is the message emitted for every rating the engine
// records. The trainer consumes it to run one incremental training step.
type FeedbackRecorded struct {
	TaskID     string        `json:"task_id"`
	UserID     int           `json:"user_id"`
	EventID    int           `json:"event_id"`
	Rating     models.Rating `json:"rating"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// marshal encodes the event as a watermill message keyed by TaskID.
func (e FeedbackRecorded) marshal() (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal feedback event: %w", err)
	}
	return message.NewMessage(e.TaskID, payload), nil
}

func unmarshalFeedback(msg *message.Message) (FeedbackRecorded, error) {
	var evt FeedbackRecorded
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return FeedbackRecorded{}, fmt.Errorf("unmarshal feedback event %s: %w", msg.UUID, err)
	}
	if !evt.Rating.Valid() {
		return FeedbackRecorded{}, fmt.Errorf("feedback event %s has invalid rating %q", msg.UUID, evt.Rating)
	}
	return evt, nil
}
