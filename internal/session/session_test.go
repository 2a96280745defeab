package session

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-chat-booking/internal/chat"
	"github.com/iliyamo/movie-chat-booking/internal/model"
	"github.com/iliyamo/movie-chat-booking/internal/repository"
)

// fakeBackend serves the session from an in-process store.
type fakeBackend struct {
	store    *repository.Store
	router   *chat.Router
	seatsErr error
	requests []model.BookingRequest
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	s := repository.NewStore()
	repository.Seed(s, repository.SeedOptions{Rand: rand.New(rand.NewSource(1))})
	return &fakeBackend{store: s, router: chat.NewRouter(s)}
}

func (f *fakeBackend) Chat(_ context.Context, msg string) (chat.Response, error) {
	return f.router.Route(msg)
}

func (f *fakeBackend) Showtimes(_ context.Context, movieID uint64) ([]model.Showtime, error) {
	return f.store.ListShowtimesByMovie(movieID), nil
}

func (f *fakeBackend) Theater(_ context.Context, id uint64) (model.Theater, error) {
	t, ok := f.store.GetTheater(id)
	if !ok {
		return model.Theater{}, errors.New("theater not found")
	}
	return t, nil
}

func (f *fakeBackend) Seats(_ context.Context, showtimeID uint64) ([]model.Seat, error) {
	if f.seatsErr != nil {
		return nil, f.seatsErr
	}
	return f.store.GetSeats(showtimeID), nil
}

func (f *fakeBackend) CreateBooking(_ context.Context, req model.BookingRequest) (model.Booking, error) {
	f.requests = append(f.requests, req)
	return f.store.CreateBooking(repository.BookingInput{
		UserID:     req.UserID,
		ShowtimeID: req.ShowtimeID,
		SeatIDs:    req.SeatIDs,
		TotalPrice: req.TotalPrice,
	})
}

func (f *fakeBackend) CompleteBooking(_ context.Context, id uint64) (model.Booking, error) {
	return f.store.CompleteBooking(id)
}

func newTestSession(t *testing.T) (*Session, *fakeBackend) {
	t.Helper()
	b := newFakeBackend(t)
	s := New(b, 0)
	s.sleep = func(time.Duration) {}
	return s, b
}

func movie(t *testing.T, b *fakeBackend, id uint64) model.Movie {
	t.Helper()
	m, ok := b.store.GetMovie(id)
	require.True(t, ok)
	return m
}

func showtime(t *testing.T, b *fakeBackend, id uint64) model.Showtime {
	t.Helper()
	st, ok := b.store.GetShowtime(id)
	require.True(t, ok)
	return st
}

// driveToQuantity walks a fresh session to StateQuantityChosen on showtime 1.
func driveToQuantity(t *testing.T, s *Session, b *fakeBackend, quantity int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.SelectMovie(ctx, movie(t, b, 1)))
	require.NoError(t, s.SelectShowtime(ctx, showtime(t, b, 1)))
	require.NoError(t, s.SelectQuantity(ctx, quantity))
}

func TestNewSessionGreets(t *testing.T) {
	s, _ := newTestSession(t)

	assert.Equal(t, StateIdle, s.State())
	tr := s.Transcript()
	require.Len(t, tr, 1)
	assert.Equal(t, SenderAgent, tr[0].Sender)
	assert.Contains(t, tr[0].Text, "MovieBot")
	assert.Equal(t, QuickRepliesFor(chat.TypeGeneral), s.QuickReplies())
}

func TestNext(t *testing.T) {
	tests := []struct {
		from State
		on   Event
		want State
		ok   bool
	}{
		{StateIdle, EventSelectMovie, StateMovieChosen, true},
		{StateMovieChosen, EventSelectMovie, StateMovieChosen, true},
		{StateMovieChosen, EventSelectShowtime, StateShowtimeChosen, true},
		{StateShowtimeChosen, EventSelectShowtime, StateShowtimeChosen, true},
		{StateShowtimeChosen, EventSelectQuantity, StateQuantityChosen, true},
		{StateQuantityChosen, EventToggleSeat, StateSeatsPartial, true},
		{StateSeatsComplete, EventConfirmSeats, StateBookingConfirmed, true},
		{StateIdle, EventSelectShowtime, StateIdle, false},
		{StateIdle, EventConfirmSeats, StateIdle, false},
		{StateSeatsPartial, EventConfirmSeats, StateSeatsPartial, false},
		{StateBookingConfirmed, EventToggleSeat, StateBookingConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.on), func(t *testing.T) {
			got, err := Next(tt.from, tt.on)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidTransition)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectMovieShowsShowtimes(t *testing.T) {
	s, b := newTestSession(t)
	m := movie(t, b, 2)

	require.NoError(t, s.SelectMovie(context.Background(), m))

	assert.Equal(t, StateMovieChosen, s.State())
	got, ok := s.Movie()
	require.True(t, ok)
	assert.Equal(t, m.ID, got.ID)

	tr := s.Transcript()
	require.Len(t, tr, 3)
	assert.Equal(t, Message{Text: "I'd like to watch The Dark Knight Returns", Sender: SenderUser, Type: "text"}, tr[1])
	assert.Equal(t, chat.TypeShowtimeResults, tr[2].Type)
	data, ok := tr[2].Data.(chat.ShowtimeData)
	require.True(t, ok)
	assert.Len(t, data.Showtimes, 3)
	assert.Equal(t, QuickRepliesFor(chat.TypeShowtimeResults), s.QuickReplies())
}

func TestSelectShowtimeRejectsOtherMovie(t *testing.T) {
	s, b := newTestSession(t)
	ctx := context.Background()
	require.NoError(t, s.SelectMovie(ctx, movie(t, b, 1)))

	err := s.SelectShowtime(ctx, showtime(t, b, 9))
	require.ErrorIs(t, err, ErrShowtimeMismatch)
	assert.Equal(t, StateMovieChosen, s.State())
	assert.Len(t, s.Transcript(), 3)
}

func TestOutOfOrderActionsAreRejected(t *testing.T) {
	s, b := newTestSession(t)
	ctx := context.Background()

	require.ErrorIs(t, s.SelectShowtime(ctx, showtime(t, b, 1)), ErrInvalidTransition)
	require.ErrorIs(t, s.SelectQuantity(ctx, 2), ErrInvalidTransition)
	require.ErrorIs(t, s.ToggleSeat(1), ErrInvalidTransition)
	_, err := s.ConfirmSeats(ctx)
	require.ErrorIs(t, err, ErrInvalidTransition)
	_, err = s.Book(ctx)
	require.ErrorIs(t, err, ErrInvalidTransition)

	assert.Equal(t, StateIdle, s.State())
	assert.Len(t, s.Transcript(), 1)
}

func TestSelectQuantity(t *testing.T) {
	s, b := newTestSession(t)
	ctx := context.Background()
	require.NoError(t, s.SelectMovie(ctx, movie(t, b, 1)))
	require.NoError(t, s.SelectShowtime(ctx, showtime(t, b, 1)))

	require.ErrorIs(t, s.SelectQuantity(ctx, 0), ErrInvalidQuantity)
	require.NoError(t, s.SelectQuantity(ctx, 2))

	assert.Equal(t, StateQuantityChosen, s.State())
	assert.Equal(t, 2, s.Quantity())
	assert.Len(t, s.Seats(), 28)

	tr := s.Transcript()
	last := tr[len(tr)-1]
	assert.Equal(t, chat.TypeTicketQuantity, last.Type)
	assert.Equal(t, "2 tickets please", tr[len(tr)-2].Text)
}

func TestSelectQuantityBackendFailureKeepsState(t *testing.T) {
	s, b := newTestSession(t)
	ctx := context.Background()
	require.NoError(t, s.SelectMovie(ctx, movie(t, b, 1)))
	require.NoError(t, s.SelectShowtime(ctx, showtime(t, b, 1)))
	b.seatsErr = errors.New("boom")

	require.Error(t, s.SelectQuantity(ctx, 2))
	assert.Equal(t, StateShowtimeChosen, s.State())
	assert.False(t, s.Typing())
}

func TestToggleSeat(t *testing.T) {
	s, b := newTestSession(t)
	driveToQuantity(t, s, b, 2)
	before := len(s.Transcript())

	require.NoError(t, s.ToggleSeat(1))
	assert.Equal(t, StateSeatsPartial, s.State())

	require.NoError(t, s.ToggleSeat(2))
	assert.Equal(t, StateSeatsComplete, s.State())

	// Full selection: a third seat is ignored.
	require.NoError(t, s.ToggleSeat(3))
	assert.Len(t, s.SelectedSeats(), 2)
	assert.Equal(t, StateSeatsComplete, s.State())

	// Picking a selected seat again removes it.
	require.NoError(t, s.ToggleSeat(1))
	assert.Equal(t, StateSeatsPartial, s.State())
	selected := s.SelectedSeats()
	require.Len(t, selected, 1)
	assert.Equal(t, uint64(2), selected[0].ID)

	require.ErrorIs(t, s.ToggleSeat(9999), ErrUnknownSeat)
	assert.Len(t, s.Transcript(), before, "seat toggles add no messages")
}

func TestToggleSeatIgnoresUnavailable(t *testing.T) {
	s, b := newTestSession(t)
	_, err := b.store.UpdateSeatAvailability(5, false)
	require.NoError(t, err)
	driveToQuantity(t, s, b, 1)

	require.NoError(t, s.ToggleSeat(5))
	assert.Empty(t, s.SelectedSeats())
	assert.Equal(t, StateSeatsPartial, s.State())
}

func TestConfirmSeatsBuildsSummary(t *testing.T) {
	s, b := newTestSession(t)
	driveToQuantity(t, s, b, 2)
	require.NoError(t, s.ToggleSeat(3))
	require.NoError(t, s.ToggleSeat(4))

	sum, err := s.ConfirmSeats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateBookingConfirmed, s.State())
	assert.Equal(t, "Avengers: The Final Chapter", sum.Movie.Title)
	assert.Equal(t, "10:30 AM", sum.Showtime.Time)
	assert.Equal(t, "Cineplex IMAX - Downtown", sum.Theater.Name)
	assert.Equal(t, 2500, sum.TicketsTotal)
	assert.Equal(t, 250, sum.BookingFee)
	assert.Equal(t, 2750, sum.Total)
	require.Len(t, sum.Seats, 2)
	assert.Equal(t, "A3", sum.Seats[0].Label())

	tr := s.Transcript()
	assert.Equal(t, "Those seats look perfect!", tr[len(tr)-2].Text)
	assert.Equal(t, chat.TypeBookingConfirmation, tr[len(tr)-1].Type)
	assert.Equal(t, QuickRepliesFor(chat.TypeBookingConfirmation), s.QuickReplies())
}

func TestBookAndCheckout(t *testing.T) {
	s, b := newTestSession(t)
	ctx := context.Background()
	s.SetUserID(7)
	driveToQuantity(t, s, b, 2)
	require.NoError(t, s.ToggleSeat(10))
	require.NoError(t, s.ToggleSeat(11))
	_, err := s.ConfirmSeats(ctx)
	require.NoError(t, err)

	_, err = s.Checkout(ctx)
	require.ErrorIs(t, err, ErrNoBooking)

	booking, err := s.Book(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "11"}, booking.SeatIDs)
	assert.Equal(t, 2750, booking.TotalPrice)
	require.NotNil(t, booking.UserID)
	assert.Equal(t, uint64(7), *booking.UserID)

	require.Len(t, b.requests, 1)
	assert.Equal(t, uint64(1), b.requests[0].ShowtimeID)

	_, err = s.Book(ctx)
	require.ErrorIs(t, err, ErrAlreadyBooked)

	done, err := s.Checkout(ctx)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	got, ok := s.Booking()
	require.True(t, ok)
	assert.True(t, got.Completed)
}

func TestBookRejectedSeatKeepsSession(t *testing.T) {
	s, b := newTestSession(t)
	ctx := context.Background()
	driveToQuantity(t, s, b, 1)
	require.NoError(t, s.ToggleSeat(6))
	_, err := s.ConfirmSeats(ctx)
	require.NoError(t, err)

	// Someone else books the seat first.
	_, err = b.store.CreateBooking(repository.BookingInput{ShowtimeID: 1, SeatIDs: []string{"6"}, TotalPrice: 1500})
	require.NoError(t, err)

	_, err = s.Book(ctx)
	require.ErrorIs(t, err, repository.ErrSeatUnavailable)
	_, ok := s.Booking()
	assert.False(t, ok)
	assert.Equal(t, StateBookingConfirmed, s.State())
}

func TestSendUpdatesContextNotState(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	resp, err := s.Send(ctx, "I want to watch Star Wars")
	require.NoError(t, err)
	assert.Equal(t, chat.TypeMovieResults, resp.Type)
	assert.Equal(t, StateIdle, s.State())
	m, ok := s.Movie()
	require.True(t, ok)
	assert.Equal(t, "Star Wars: New Horizons", m.Title)

	resp, err = s.Send(ctx, "yes please, confirm")
	require.NoError(t, err)
	assert.Equal(t, chat.TypeBookingConfirmation, resp.Type)
	assert.Equal(t, StateIdle, s.State(), "bot replies never move the flow")

	tr := s.Transcript()
	require.Len(t, tr, 5)
	assert.Equal(t, SenderUser, tr[3].Sender)
	assert.Equal(t, SenderAgent, tr[4].Sender)
}

func TestSendKeepsMovieOnceShowtimePicked(t *testing.T) {
	s, b := newTestSession(t)
	ctx := context.Background()
	driveToQuantity(t, s, b, 1)
	require.NoError(t, s.ToggleSeat(2))

	resp, err := s.Send(ctx, "I want to watch star wars")
	require.NoError(t, err)
	assert.Equal(t, chat.TypeMovieResults, resp.Type)

	sum, err := s.ConfirmSeats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Avengers: The Final Chapter", sum.Movie.Title)
	assert.Equal(t, sum.Showtime.MovieID, sum.Movie.ID)
}

func TestTypingDuringDelay(t *testing.T) {
	b := newFakeBackend(t)
	s := New(b, time.Second)
	var typing bool
	var slept time.Duration
	s.sleep = func(d time.Duration) {
		slept = d
		typing = s.Typing()
	}

	_, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.True(t, typing)
	assert.Equal(t, time.Second, slept)
	assert.False(t, s.Typing())
}

func TestResetKeepsTranscript(t *testing.T) {
	s, b := newTestSession(t)
	driveToQuantity(t, s, b, 2)
	n := len(s.Transcript())

	s.Reset()

	assert.Equal(t, StateIdle, s.State())
	assert.Zero(t, s.Quantity())
	assert.Empty(t, s.SelectedSeats())
	_, ok := s.Movie()
	assert.False(t, ok)
	assert.Len(t, s.Transcript(), n)
	require.NoError(t, s.SelectMovie(context.Background(), movie(t, b, 3)))
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, 1500, TotalPrice(1))
	assert.Equal(t, 7750, TotalPrice(6))
}
