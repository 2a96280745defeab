package repository

import "github.com/iliyamo/movie-chat-booking/internal/model"

// ListTheaters returns every theater ordered by id.
func (s *Store) ListTheaters() []model.Theater {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.theaters)
}

// GetTheater fetches a theater by id.
func (s *Store) GetTheater(id uint64) (model.Theater, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.theaters[id]
	return t, ok
}

// CreateTheater stores t under the next theater id.
func (s *Store) CreateTheater(t model.Theater) model.Theater {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextTheaterID
	s.nextTheaterID++
	s.theaters[t.ID] = t
	return t
}
