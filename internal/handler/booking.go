package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-chat-booking/internal/middleware"
	"github.com/iliyamo/movie-chat-booking/internal/model"
	"github.com/iliyamo/movie-chat-booking/internal/repository"
	"github.com/iliyamo/movie-chat-booking/internal/service"
)

// BookingHandler creates and reads bookings.  Authentication is
// optional: a signed-in caller's bookings are attributed to them.
type BookingHandler struct {
	Store    *repository.Store
	Bookings *service.BookingService
}

func NewBookingHandler(s *repository.Store, b *service.BookingService) *BookingHandler {
	if s == nil || b == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Store: s, Bookings: b}
}

// Create handles POST /bookings.  Every seat must exist and be available;
// the first that is not rejects the whole booking with 400 and its id,
// echoed in the JSON form the client sent it.
func (h *BookingHandler) Create(c echo.Context) error {
	var req model.BookingRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid booking data")
	}
	if req.ShowtimeID == 0 || len(req.SeatIDs) == 0 || req.TotalPrice <= 0 {
		return message(c, http.StatusBadRequest, "Missing required fields")
	}

	var caller *uint64
	if id, ok := middleware.UserID(c); ok {
		caller = &id
	}
	b, err := h.Bookings.Create(c.Request().Context(), req, caller)
	if err != nil {
		var unavailable *repository.SeatUnavailableError
		switch {
		case errors.As(err, &unavailable):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": unavailable.Error(),
				"seatId":  req.SeatIDJSON(unavailable.SeatID),
			})
		case errors.Is(err, repository.ErrInvalidBooking):
			return message(c, http.StatusBadRequest, "Missing required fields")
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// Get handles GET /bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return message(c, http.StatusBadRequest, "Invalid booking id")
	}
	b, ok := h.Store.GetBooking(id)
	if !ok {
		return message(c, http.StatusNotFound, "Booking not found")
	}
	return c.JSON(http.StatusOK, b)
}

// List handles GET /bookings?userId=.  Without userId a signed-in caller
// gets their own bookings.
func (h *BookingHandler) List(c echo.Context) error {
	userID, present, err := queryID(c, "userId")
	if err != nil {
		return message(c, http.StatusBadRequest, "Invalid userId")
	}
	if !present {
		id, ok := middleware.UserID(c)
		if !ok {
			return message(c, http.StatusBadRequest, "userId query parameter is required")
		}
		userID = id
	}
	return c.JSON(http.StatusOK, h.Store.ListBookingsByUser(userID))
}

// Complete handles PATCH /bookings/:id/complete, marking checkout done.
// Completing twice is harmless.
func (h *BookingHandler) Complete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return message(c, http.StatusBadRequest, "Invalid booking id")
	}
	b, err := h.Store.CompleteBooking(id)
	if errors.Is(err, repository.ErrBookingNotFound) {
		return message(c, http.StatusNotFound, "Booking not found")
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
