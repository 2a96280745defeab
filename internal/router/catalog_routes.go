package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-chat-booking/internal/handler"
)

// RegisterCatalog registers the read-only catalog.  Movies, theaters,
// showtimes and search never change at runtime, so they go through the
// response cache.  Seat maps change with every booking and are served
// fresh.
func RegisterCatalog(g *echo.Group, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	g.GET("/movies", h.ListMovies, cache)
	g.GET("/movies/:id", h.GetMovie, cache)
	g.GET("/search/movies", h.SearchMovies, cache)
	g.GET("/theaters", h.ListTheaters, cache)
	g.GET("/theaters/:id", h.GetTheater, cache)
	g.GET("/showtimes", h.ListShowtimes, cache)
	g.GET("/showtimes/:id", h.GetShowtime, cache)

	g.GET("/seats", h.GetSeats)
}
