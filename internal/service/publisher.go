// Package service holds the application logic that sits between the HTTP
// handlers and the store: booking creation with its follow-up event, and
// the RabbitMQ publisher for those events.  Publishing errors are logged
// and returned so callers can ignore them without interrupting the main
// request flow.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/movie-chat-booking/internal/config"
	q "github.com/iliyamo/movie-chat-booking/internal/queue"
)

// Publisher sends booking events to the broker.
type Publisher interface {
	PublishBookingCreated(ctx context.Context, event q.BookingCreatedEvent) error
}

// NopPublisher drops every event.  It is used when the queue is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishBookingCreated(context.Context, q.BookingCreatedEvent) error { return nil }

// AMQPPublisher publishes events to a durable RabbitMQ queue.  Each
// publish dials its own connection; bookings are rare enough that a
// long-lived channel is not worth the reconnect handling.
type AMQPPublisher struct {
	url   string
	queue string
}

// NewPublisher returns an AMQPPublisher when the queue is enabled and a
// NopPublisher otherwise.
func NewPublisher(cfg config.QueueConfig) Publisher {
	if !cfg.Enabled {
		return NopPublisher{}
	}
	return &AMQPPublisher{url: cfg.URL, queue: cfg.QueueName}
}

// PublishBookingCreated publishes event as a persistent JSON message with
// a fresh message id.
func (p *AMQPPublisher) PublishBookingCreated(ctx context.Context, event q.BookingCreatedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	pub, err := newPublishing(event, time.Now().UTC())
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}

func newPublishing(event q.BookingCreatedEvent, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal booking %d: %w", event.BookingID, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         "booking.created",
		Timestamp:    now,
		Body:         body,
	}, nil
}
