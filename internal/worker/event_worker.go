package worker

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/St1cky1/task-tracker/internal/entity"
)

type DeliverySource interface {
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
}

// EventWorker consumes task events and writes them to the log.
type EventWorker struct {
	source DeliverySource
	logger zerolog.Logger
}

func NewEventWorker(source DeliverySource, logger zerolog.Logger) *EventWorker {
	return &EventWorker{
		source: source,
		logger: logger.With().Str("component", "event_worker").Logger(),
	}
}

// Start blocks until ctx is cancelled or the delivery channel closes.
func (w *EventWorker) Start(ctx context.Context) error {
	msgs, err := w.source.Consume("task_event_worker")
	if err != nil {
		return fmt.Errorf("failed to start event worker: %w", err)
	}

	w.logger.Info().Msg("event worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("event worker stopped")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				w.logger.Warn().Msg("delivery channel closed")
				return nil
			}
			w.processMessage(msg)
		}
	}
}

func (w *EventWorker) processMessage(msg amqp.Delivery) {
	var event entity.TaskEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		w.logger.Error().Err(err).Str("message_id", msg.MessageId).Msg("failed to parse task event")
		// malformed payloads would fail again on redelivery
		_ = msg.Nack(false, false)
		return
	}

	log := w.logger.Info().
		Str("event_id", event.ID).
		Str("action", string(event.Action)).
		Int64("task_id", event.TaskID).
		Time("occurred_at", event.OccurredAt)
	if event.Task != nil {
		log = log.Str("status", string(event.Task.Status)).Str("title", event.Task.Title)
	}
	log.Msg("task event")

	if err := msg.Ack(false); err != nil {
		w.logger.Error().Err(err).Str("event_id", event.ID).Msg("failed to ack task event")
	}
}
