package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/movie-chat-booking/internal/config"
)

// BookingLogFile is the file the consumer appends to inside the log dir.
const BookingLogFile = "booking.log"

// StartBookingConsumer connects to RabbitMQ, declares the booking queue
// (durable) and appends every event to <LogDir>/booking.log.  It
// reconnects with exponential backoff until ctx is cancelled, then
// returns ctx.Err().  Malformed messages are rejected without requeue so
// a bad payload cannot loop.
func StartBookingConsumer(ctx context.Context, cfg config.QueueConfig) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(cfg.URL)
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, cfg)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, cfg config.QueueConfig) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, cfg.QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := HandleMessage(cfg.LogDir, d.Body); err != nil {
			log.Printf("booking-consumer: handle message %s failed: %v", d.MessageId, err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// HandleMessage decodes one event body and appends it to the booking log
// in dir.
func HandleMessage(dir string, body []byte) error {
	var ev BookingCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.BookingID == 0 {
		return errors.New("event has no booking id")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, BookingLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLogLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLogLine renders ev as one human-friendly line.
func FormatLogLine(ev BookingCreatedEvent) string {
	user := "guest"
	if ev.UserID != nil {
		user = fmt.Sprint(*ev.UserID)
	}
	return fmt.Sprintf("[%s] Booking created | booking_id=%d | user=%s | showtime_id=%d | movie=%q | theater=%q | when=%q | total=%d cents | seats=[%s]\n",
		ev.CreatedAt, ev.BookingID, user, ev.ShowtimeID, ev.MovieTitle, ev.Theater,
		strings.TrimSpace(ev.Date+" "+ev.Time), ev.TotalCents, strings.Join(ev.SeatLabels, ","))
}
