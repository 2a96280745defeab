package main

import (
	"bytes"
	"context"
	"math/rand"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-chat-booking/internal/client"
	"github.com/iliyamo/movie-chat-booking/internal/config"
	"github.com/iliyamo/movie-chat-booking/internal/model"
	"github.com/iliyamo/movie-chat-booking/internal/repository"
	"github.com/iliyamo/movie-chat-booking/internal/router"
	"github.com/iliyamo/movie-chat-booking/internal/service"
	"github.com/iliyamo/movie-chat-booking/internal/session"
)

func runScript(t *testing.T, script string) (string, *repository.Store) {
	t.Helper()
	store := repository.NewStore()
	repository.Seed(store, repository.SeedOptions{Rand: rand.New(rand.NewSource(1))})
	srv := httptest.NewServer(router.New(router.Deps{
		Cfg:      config.Config{Env: "test", JWTSecret: "x", AccessTTLMin: 5, BcryptCost: 4},
		Store:    store,
		Bookings: service.NewBookingService(store, service.NopPublisher{}),
	}))
	t.Cleanup(srv.Close)

	api := client.New(srv.URL)
	var out bytes.Buffer
	r := newREPL(session.New(api, 0), api, strings.NewReader(script), &out)
	require.NoError(t, r.Run(context.Background()))
	return out.String(), store
}

func TestREPLBooksSeats(t *testing.T) {
	out, store := runScript(t, strings.Join([]string{
		"show me popular movies",
		"/movie 2",
		"/showtime 6",
		"/tickets 2",
		"/seat B3",
		"/seat b4",
		"/confirm",
		"/book",
		"/checkout",
		"/quit",
		"never read",
	}, "\n"))

	assert.Contains(t, out, "MovieBot: 👋 Hi there!")
	assert.Contains(t, out, "[2] The Dark Knight Returns")
	assert.Contains(t, out, "[6] 2023-06-15 11:00 AM")
	assert.Contains(t, out, "selected 2/2: B3, B4")
	assert.Contains(t, out, "Seats: B3, B4")
	assert.Contains(t, out, "Total: $27.50")
	assert.Contains(t, out, "Booking #1 created for $27.50")
	assert.Contains(t, out, "Booking #1 paid")

	bookings := store.ListBookings()
	require.Len(t, bookings, 1)
	assert.True(t, bookings[0].Completed)
	assert.Len(t, bookings[0].SeatIDs, 2)
}

func TestREPLReportsErrors(t *testing.T) {
	out, _ := runScript(t, "/showtime 1\n/movie 99\n/tickets x\n/bogus\n")

	assert.Contains(t, out, "! select_showtime on idle: invalid transition")
	assert.Contains(t, out, "Movie not found")
	assert.Contains(t, out, `tickets: "x" is not a number`)
	assert.Contains(t, out, "unknown command /bogus")
}

func TestSeatMap(t *testing.T) {
	seats := []model.Seat{
		{ID: 3, Row: "B", Number: 1, IsAvailable: true},
		{ID: 1, Row: "A", Number: 1, IsAvailable: true},
		{ID: 2, Row: "A", Number: 2, IsAvailable: false},
	}
	got := seatMap(seats, []model.Seat{{ID: 3}})
	assert.Equal(t, "  SCREEN\n  A ox\n  B *\n", got)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$12.50", formatCents(1250))
	assert.Equal(t, "$0.05", formatCents(5))
}
