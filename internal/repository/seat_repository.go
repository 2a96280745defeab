package repository

import (
	"fmt"

	"github.com/iliyamo/movie-chat-booking/internal/model"
)

// GetSeats returns the seats of a showtime in creation order.  An unknown
// showtime yields an empty slice, never an error.
func (s *Store) GetSeats(showtimeID uint64) []model.Seat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.seatsByShowtime[showtimeID]
	out := make([]model.Seat, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.seats[id])
	}
	return out
}

// GetSeat fetches a seat by id.
func (s *Store) GetSeat(id uint64) (model.Seat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seat, ok := s.seats[id]
	return seat, ok
}

// CreateSeat stores seat under the next seat id.
func (s *Store) CreateSeat(seat model.Seat) model.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat.ID = s.nextSeatID
	s.nextSeatID++
	s.seats[seat.ID] = seat
	s.seatsByShowtime[seat.ShowtimeID] = append(s.seatsByShowtime[seat.ShowtimeID], seat.ID)
	return seat
}

// UpdateSeatAvailability sets the availability flag of a seat.  Unlike the
// lookups it fails with ErrSeatNotFound when the seat does not exist.
func (s *Store) UpdateSeatAvailability(id uint64, available bool) (model.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setSeatAvailabilityLocked(id, available)
}

func (s *Store) setSeatAvailabilityLocked(id uint64, available bool) (model.Seat, error) {
	seat, ok := s.seats[id]
	if !ok {
		return model.Seat{}, fmt.Errorf("seat %d: %w", id, ErrSeatNotFound)
	}
	seat.IsAvailable = available
	s.seats[id] = seat
	return seat, nil
}
