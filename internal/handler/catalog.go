package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-chat-booking/internal/repository"
)

// CatalogHandler serves the read-only catalog: movies, theaters,
// showtimes and seat maps.
type CatalogHandler struct {
	Store *repository.Store
}

func NewCatalogHandler(s *repository.Store) *CatalogHandler {
	if s == nil {
		panic("nil store passed to NewCatalogHandler")
	}
	return &CatalogHandler{Store: s}
}

// ListMovies handles GET /movies.  A non-empty ?q= searches instead.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		return c.JSON(http.StatusOK, h.Store.SearchMovies(q))
	}
	return c.JSON(http.StatusOK, h.Store.ListMovies())
}

// GetMovie handles GET /movies/:id.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return message(c, http.StatusBadRequest, "Invalid movie id")
	}
	m, ok := h.Store.GetMovie(id)
	if !ok {
		return message(c, http.StatusNotFound, "Movie not found")
	}
	return c.JSON(http.StatusOK, m)
}

// SearchMovies handles GET /search/movies?q=.
func (h *CatalogHandler) SearchMovies(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return message(c, http.StatusBadRequest, "Query parameter q is required")
	}
	return c.JSON(http.StatusOK, h.Store.SearchMovies(q))
}

func (h *CatalogHandler) ListTheaters(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.ListTheaters())
}

// GetTheater handles GET /theaters/:id.
func (h *CatalogHandler) GetTheater(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return message(c, http.StatusBadRequest, "Invalid theater id")
	}
	t, ok := h.Store.GetTheater(id)
	if !ok {
		return message(c, http.StatusNotFound, "Theater not found")
	}
	return c.JSON(http.StatusOK, t)
}

// ListShowtimes handles GET /showtimes with optional movieId and
// theaterId filters.  When both are given, movieId wins.
func (h *CatalogHandler) ListShowtimes(c echo.Context) error {
	movieID, byMovie, err := queryID(c, "movieId")
	if err != nil {
		return message(c, http.StatusBadRequest, "Invalid movieId")
	}
	theaterID, byTheater, err := queryID(c, "theaterId")
	if err != nil {
		return message(c, http.StatusBadRequest, "Invalid theaterId")
	}
	switch {
	case byMovie:
		return c.JSON(http.StatusOK, h.Store.ListShowtimesByMovie(movieID))
	case byTheater:
		return c.JSON(http.StatusOK, h.Store.ListShowtimesByTheater(theaterID))
	default:
		return c.JSON(http.StatusOK, h.Store.ListShowtimes())
	}
}

// GetShowtime handles GET /showtimes/:id.
func (h *CatalogHandler) GetShowtime(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return message(c, http.StatusBadRequest, "Invalid showtime id")
	}
	st, ok := h.Store.GetShowtime(id)
	if !ok {
		return message(c, http.StatusNotFound, "Showtime not found")
	}
	return c.JSON(http.StatusOK, st)
}

// GetSeats handles GET /seats?showtimeId=.  An unknown showtime yields
// an empty list.
func (h *CatalogHandler) GetSeats(c echo.Context) error {
	id, present, err := queryID(c, "showtimeId")
	if !present || err != nil || id == 0 {
		return message(c, http.StatusBadRequest, "showtimeId query parameter is required")
	}
	return c.JSON(http.StatusOK, h.Store.GetSeats(id))
}
