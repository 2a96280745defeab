package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/movie-chat-booking/internal/model"
)

// Store is the in-memory repository for every entity kind.  Each kind is
// kept in its own map keyed by id with its own monotonic counter starting
// at 1.  A single RWMutex guards all maps so that booking creation can
// check and reserve seats as one critical section.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users     map[uint64]model.User
	movies    map[uint64]model.Movie
	theaters  map[uint64]model.Theater
	showtimes map[uint64]model.Showtime
	seats     map[uint64]model.Seat
	bookings  map[uint64]model.Booking

	// seat ids per showtime, in creation order
	seatsByShowtime map[uint64][]uint64

	nextUserID     uint64
	nextMovieID    uint64
	nextTheaterID  uint64
	nextShowtimeID uint64
	nextSeatID     uint64
	nextBookingID  uint64
}

// NewStore returns an empty store.  Use Seed to load the demo catalog.
func NewStore() *Store {
	return &Store{
		now:             func() time.Time { return time.Now().UTC() },
		users:           make(map[uint64]model.User),
		movies:          make(map[uint64]model.Movie),
		theaters:        make(map[uint64]model.Theater),
		showtimes:       make(map[uint64]model.Showtime),
		seats:           make(map[uint64]model.Seat),
		bookings:        make(map[uint64]model.Booking),
		seatsByShowtime: make(map[uint64][]uint64),
		nextUserID:      1,
		nextMovieID:     1,
		nextTheaterID:   1,
		nextShowtimeID:  1,
		nextSeatID:      1,
		nextBookingID:   1,
	}
}

// SetClock replaces the clock used to stamp booking creation times.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// sortedValues returns the map values ordered by id.
func sortedValues[T any](m map[uint64]T) []T {
	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
