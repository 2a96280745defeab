package repository

import "github.com/iliyamo/movie-chat-booking/internal/model"

// ListShowtimes returns every showtime ordered by id.
func (s *Store) ListShowtimes() []model.Showtime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.showtimes)
}

// ListShowtimesByMovie returns the showtimes screening movieID.
func (s *Store) ListShowtimesByMovie(movieID uint64) []model.Showtime {
	return s.filterShowtimes(func(st model.Showtime) bool { return st.MovieID == movieID })
}

// ListShowtimesByTheater returns the showtimes hosted by theaterID.
func (s *Store) ListShowtimesByTheater(theaterID uint64) []model.Showtime {
	return s.filterShowtimes(func(st model.Showtime) bool { return st.TheaterID == theaterID })
}

func (s *Store) filterShowtimes(keep func(model.Showtime) bool) []model.Showtime {
	out := []model.Showtime{}
	for _, st := range s.ListShowtimes() {
		if keep(st) {
			out = append(out, st)
		}
	}
	return out
}

// GetShowtime fetches a showtime by id.
func (s *Store) GetShowtime(id uint64) (model.Showtime, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.showtimes[id]
	return st, ok
}

// CreateShowtime stores st under the next showtime id.  The referenced
// movie and theater are not checked.
func (s *Store) CreateShowtime(st model.Showtime) model.Showtime {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.ID = s.nextShowtimeID
	s.nextShowtimeID++
	s.showtimes[st.ID] = st
	return st
}
