package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/St1cky1/task-tracker/internal/entity"
)

type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  zerolog.Logger
}

func NewRabbitMQClient(url, queueName string, logger zerolog.Logger) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	queue, err := declareQueue(channel, queueName)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: channel,
		queue:   queue,
		logger:  logger.With().Str("component", "rabbitmq").Logger(),
	}, nil
}

func declareQueue(channel *amqp.Channel, name string) (amqp.Queue, error) {
	queue, err := channel.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return queue, nil
}

func (c *RabbitMQClient) QueueName() string {
	return c.queue.Name
}

// PublishTaskEvent fills in the event id and timestamp when they are empty.
func (c *RabbitMQClient) PublishTaskEvent(ctx context.Context, event *entity.TaskEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal task event: %w", err)
	}

	err = c.channel.PublishWithContext(
		ctx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.ID,
			Type:         string(event.Action),
			Timestamp:    event.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish task event: %w", err)
	}

	c.logger.Debug().
		Str("event_id", event.ID).
		Str("action", string(event.Action)).
		Int64("task_id", event.TaskID).
		Msg("published task event")
	return nil
}

// Consume opens a dedicated channel for a consumer; it is closed together with the client.
func (c *RabbitMQClient) Consume(consumerTag string) (<-chan amqp.Delivery, error) {
	channel, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open consumer channel: %w", err)
	}

	if _, err := declareQueue(channel, c.queue.Name); err != nil {
		channel.Close()
		return nil, err
	}

	msgs, err := channel.Consume(
		c.queue.Name, // queue
		consumerTag,  // consumer tag
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		channel.Close()
		return nil, fmt.Errorf("failed to start consumer: %w", err)
	}
	return msgs, nil
}

func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
