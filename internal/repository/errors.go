// Package repository holds the in-memory entity store together with the
// sentinel errors shared by its operations.  Handlers use these values to
// tell a missing record from a booking conflict from an unexpected fault.
package repository

import (
	"errors"
	"fmt"
)

// ErrSeatNotFound is returned by UpdateSeatAvailability when the seat
// does not exist.  Plain lookups report absence with a boolean instead.
var ErrSeatNotFound = errors.New("seat not found")

// ErrBookingNotFound is returned when a booking update targets an
// unknown booking id.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSeatUnavailable signals that a booking referenced a seat that is
// absent or already booked.  Handlers should translate this into an HTTP
// 400 response that echoes the seat id.
var ErrSeatUnavailable = errors.New("seat unavailable")

// ErrUsernameTaken is returned by RegisterUser for a username already in
// use.
var ErrUsernameTaken = errors.New("username already exists")

// ErrInvalidBooking is returned when a booking request lacks a showtime or
// seats.
var ErrInvalidBooking = errors.New("invalid booking")

// SeatUnavailableError carries the first offending seat id of a rejected
// booking.  It matches ErrSeatUnavailable with errors.Is.
type SeatUnavailableError struct {
	SeatID string
}

func (e *SeatUnavailableError) Error() string {
	return fmt.Sprintf("Seat %s is not available", e.SeatID)
}

func (e *SeatUnavailableError) Is(target error) bool {
	return target == ErrSeatUnavailable
}
