package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-chat-booking/internal/config"
	"github.com/iliyamo/movie-chat-booking/internal/model"
	q "github.com/iliyamo/movie-chat-booking/internal/queue"
	"github.com/iliyamo/movie-chat-booking/internal/repository"
)

type chanPublisher struct {
	events chan q.BookingCreatedEvent
	err    error
}

func (p *chanPublisher) PublishBookingCreated(_ context.Context, ev q.BookingCreatedEvent) error {
	p.events <- ev
	return p.err
}

func newStore(t *testing.T) *repository.Store {
	t.Helper()
	s := repository.NewStore()
	repository.Seed(s, repository.SeedOptions{Rand: rand.New(rand.NewSource(1))})
	return s
}

func receive(t *testing.T, ch <-chan q.BookingCreatedEvent) q.BookingCreatedEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
		return q.BookingCreatedEvent{}
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	store := newStore(t)
	pub := &chanPublisher{events: make(chan q.BookingCreatedEvent, 1)}
	svc := NewBookingService(store, pub)

	b, err := svc.Create(context.Background(), model.BookingRequest{
		ShowtimeID: 1,
		SeatIDs:    model.SeatIDList{"1", "9"},
		TotalPrice: 2750,
	}, nil)
	require.NoError(t, err)

	ev := receive(t, pub.events)
	assert.Equal(t, b.ID, ev.BookingID)
	assert.Equal(t, "Avengers: The Final Chapter", ev.MovieTitle)
	assert.Equal(t, "Cineplex IMAX - Downtown", ev.Theater)
	assert.Equal(t, "10:30 AM", ev.Time)
	assert.Equal(t, []string{"A1", "B2"}, ev.SeatLabels)
	assert.Equal(t, 2750, ev.TotalCents)
	assert.Nil(t, ev.UserID)
}

func TestCreateSignedInUserWins(t *testing.T) {
	store := newStore(t)
	pub := &chanPublisher{events: make(chan q.BookingCreatedEvent, 1), err: errors.New("broker down")}
	svc := NewBookingService(store, pub)
	claimed, caller := uint64(1), uint64(2)

	b, err := svc.Create(context.Background(), model.BookingRequest{
		UserID:     &claimed,
		ShowtimeID: 1,
		SeatIDs:    model.SeatIDList{"3"},
		TotalPrice: 1500,
	}, &caller)
	require.NoError(t, err, "publish failures do not fail the booking")
	require.NotNil(t, b.UserID)
	assert.Equal(t, caller, *b.UserID)
	receive(t, pub.events)
}

func TestCreateConflictPublishesNothing(t *testing.T) {
	store := newStore(t)
	pub := &chanPublisher{events: make(chan q.BookingCreatedEvent, 1)}
	svc := NewBookingService(store, pub)
	_, err := store.UpdateSeatAvailability(4, false)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), model.BookingRequest{
		ShowtimeID: 1,
		SeatIDs:    model.SeatIDList{"3", "4"},
	}, nil)
	var unavailable *repository.SeatUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "4", unavailable.SeatID)
	assert.Empty(t, pub.events)
}

func TestNewPublisher(t *testing.T) {
	assert.IsType(t, NopPublisher{}, NewPublisher(config.QueueConfig{}))
	assert.IsType(t, &AMQPPublisher{}, NewPublisher(config.QueueConfig{Enabled: true, URL: "amqp://x", QueueName: "q"}))
}

func TestNewPublishing(t *testing.T) {
	now := time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC)
	pub, err := newPublishing(q.BookingCreatedEvent{BookingID: 7}, now)
	require.NoError(t, err)

	assert.Equal(t, "application/json", pub.ContentType)
	assert.NotEmpty(t, pub.MessageId)
	assert.Equal(t, now, pub.Timestamp)
	var ev q.BookingCreatedEvent
	require.NoError(t, json.Unmarshal(pub.Body, &ev))
	assert.Equal(t, uint64(7), ev.BookingID)
}
