package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-chat-booking/internal/handler"
)

// RegisterBookings registers booking endpoints.  Creation is rate limited;
// reads are not.
func RegisterBookings(g *echo.Group, h *handler.BookingHandler, limit echo.MiddlewareFunc) {
	g.POST("/bookings", h.Create, limit)
	g.GET("/bookings", h.List)
	g.GET("/bookings/:id", h.Get)
	g.PATCH("/bookings/:id/complete", h.Complete)
}
