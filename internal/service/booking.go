package service

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/iliyamo/movie-chat-booking/internal/model"
	q "github.com/iliyamo/movie-chat-booking/internal/queue"
	"github.com/iliyamo/movie-chat-booking/internal/repository"
)

// publishTimeout bounds the background publish of a booking event.
const publishTimeout = 5 * time.Second

// BookingService creates bookings in the store and announces them.
type BookingService struct {
	store *repository.Store
	pub   Publisher
}

func NewBookingService(store *repository.Store, pub Publisher) *BookingService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &BookingService{store: store, pub: pub}
}

// Create stores the booking described by req.  userID, when set, wins
// over the id in the body: a signed-in caller cannot book on behalf of
// someone else.  On success a BookingCreatedEvent is published in the
// background; publish failures never fail the booking.
func (s *BookingService) Create(ctx context.Context, req model.BookingRequest, userID *uint64) (model.Booking, error) {
	owner := req.UserID
	if userID != nil {
		owner = userID
	}
	b, err := s.store.CreateBooking(repository.BookingInput{
		UserID:     owner,
		ShowtimeID: req.ShowtimeID,
		SeatIDs:    req.SeatIDs,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		return model.Booking{}, err
	}

	ev := s.event(b)
	go func() {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := s.pub.PublishBookingCreated(pctx, ev); err != nil {
			log.Printf("booking %d: publish event: %v", b.ID, err)
		}
	}()
	return b, nil
}

// event describes b with the titles and seat labels a log reader needs.
func (s *BookingService) event(b model.Booking) q.BookingCreatedEvent {
	ev := q.BookingCreatedEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		ShowtimeID: b.ShowtimeID,
		TotalCents: b.TotalPrice,
		CreatedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
		SeatLabels: make([]string, 0, len(b.SeatIDs)),
	}
	if st, ok := s.store.GetShowtime(b.ShowtimeID); ok {
		ev.Date, ev.Time = st.Date, st.Time
		if m, ok := s.store.GetMovie(st.MovieID); ok {
			ev.MovieTitle = m.Title
		}
		if t, ok := s.store.GetTheater(st.TheaterID); ok {
			ev.Theater = t.Name
		}
	}
	for _, raw := range b.SeatIDs {
		label := raw
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			if seat, ok := s.store.GetSeat(id); ok {
				label = seat.Label()
			}
		}
		ev.SeatLabels = append(ev.SeatLabels, label)
	}
	return ev
}
