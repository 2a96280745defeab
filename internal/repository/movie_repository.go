package repository

import (
	"strings"

	"github.com/iliyamo/movie-chat-booking/internal/model"
)

// ListMovies returns every movie ordered by id.
func (s *Store) ListMovies() []model.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := sortedValues(s.movies)
	for i := range out {
		out[i] = cloneMovie(out[i])
	}
	return out
}

// GetMovie fetches a movie by id.
func (s *Store) GetMovie(id uint64) (model.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movies[id]
	if !ok {
		return model.Movie{}, false
	}
	return cloneMovie(m), true
}

// GetMovieByTitle returns the movie whose title equals title, ignoring case.
func (s *Store) GetMovieByTitle(title string) (model.Movie, bool) {
	for _, m := range s.ListMovies() {
		if strings.EqualFold(m.Title, title) {
			return m, true
		}
	}
	return model.Movie{}, false
}

// SearchMovies returns all movies whose title or genre list contains query,
// case-insensitively.  Results keep id order; there is no ranking.
func (s *Store) SearchMovies(query string) []model.Movie {
	q := strings.ToLower(query)
	out := []model.Movie{}
	for _, m := range s.ListMovies() {
		if strings.Contains(strings.ToLower(m.Title), q) || strings.Contains(strings.ToLower(m.Genres), q) {
			out = append(out, m)
		}
	}
	return out
}

// CreateMovie stores m under the next movie id and returns the stored copy.
func (s *Store) CreateMovie(m model.Movie) model.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextMovieID
	s.nextMovieID++
	m = cloneMovie(m)
	s.movies[m.ID] = m
	return cloneMovie(m)
}

// cloneMovie copies the Formats slice so callers never share the stored one.
func cloneMovie(m model.Movie) model.Movie {
	if m.Formats != nil {
		m.Formats = append([]string(nil), m.Formats...)
	}
	return m
}
