package repository

import (
	"strconv"
	"strings"

	"github.com/iliyamo/movie-chat-booking/internal/model"
)

// BookingInput carries the fields a caller supplies when booking seats.
// SeatIDs are kept as strings because that is how bookings record them.
type BookingInput struct {
	UserID     *uint64
	ShowtimeID uint64
	SeatIDs    []string
	TotalPrice int
}

// CreateBooking reserves every requested seat and records the booking as
// one critical section.  Seat ids are checked in request order while the
// write lock is held; the first id that is malformed, unknown or already
// booked rejects the whole request with a *SeatUnavailableError and no
// state changes.  Only after every seat passes are the booking stored and
// the seats flipped to unavailable.  Duplicate ids collapse to their first
// occurrence.
func (s *Store) CreateBooking(in BookingInput) (model.Booking, error) {
	if in.ShowtimeID == 0 || len(in.SeatIDs) == 0 {
		return model.Booking{}, ErrInvalidBooking
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seatIDs := make([]string, 0, len(in.SeatIDs))
	numeric := make([]uint64, 0, len(in.SeatIDs))
	seen := make(map[uint64]struct{}, len(in.SeatIDs))
	for _, raw := range in.SeatIDs {
		id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return model.Booking{}, &SeatUnavailableError{SeatID: raw}
		}
		seat, ok := s.seats[id]
		if !ok || !seat.IsAvailable {
			return model.Booking{}, &SeatUnavailableError{SeatID: raw}
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		seatIDs = append(seatIDs, strconv.FormatUint(id, 10))
		numeric = append(numeric, id)
	}

	b := model.Booking{
		ID:         s.nextBookingID,
		ShowtimeID: in.ShowtimeID,
		SeatIDs:    seatIDs,
		TotalPrice: in.TotalPrice,
		CreatedAt:  s.now(),
	}
	if in.UserID != nil {
		uid := *in.UserID
		b.UserID = &uid
	}
	s.nextBookingID++
	s.bookings[b.ID] = b

	for _, id := range numeric {
		// cannot fail: every id was resolved above under the same lock
		if _, err := s.setSeatAvailabilityLocked(id, false); err != nil {
			panic(err)
		}
	}
	return cloneBooking(b), nil
}

// GetBooking fetches a booking by id.
func (s *Store) GetBooking(id uint64) (model.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return model.Booking{}, false
	}
	return cloneBooking(b), true
}

// ListBookings returns every booking ordered by id.
func (s *Store) ListBookings() []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := sortedValues(s.bookings)
	for i := range out {
		out[i] = cloneBooking(out[i])
	}
	return out
}

// ListBookingsByUser returns the bookings made by userID.
func (s *Store) ListBookingsByUser(userID uint64) []model.Booking {
	out := []model.Booking{}
	for _, b := range s.ListBookings() {
		if b.UserID != nil && *b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// CompleteBooking marks a booking as paid.  Completing twice is harmless.
func (s *Store) CompleteBooking(id uint64) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return model.Booking{}, ErrBookingNotFound
	}
	b.Completed = true
	s.bookings[id] = b
	return cloneBooking(b), nil
}

func cloneBooking(b model.Booking) model.Booking {
	b.SeatIDs = append([]string(nil), b.SeatIDs...)
	if b.UserID != nil {
		uid := *b.UserID
		b.UserID = &uid
	}
	return b
}
