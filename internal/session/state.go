// Package session drives one user's booking conversation.  Progress is a
// finite state machine moved only by explicit user actions (picking a
// movie, a showtime, a quantity, toggling seats, confirming); replies from
// the chat endpoint update context but never the state.
package session

import (
	"errors"
	"fmt"
)

// State is a step of the booking flow.
type State string

const (
	StateIdle             State = "idle"
	StateMovieChosen      State = "movie_chosen"
	StateShowtimeChosen   State = "showtime_chosen"
	StateQuantityChosen   State = "quantity_chosen"
	StateSeatsPartial     State = "seats_partial"
	StateSeatsComplete    State = "seats_complete"
	StateBookingConfirmed State = "booking_confirmed"
)

// Event is a user action that may move the state.
type Event string

const (
	EventSelectMovie    Event = "select_movie"
	EventSelectShowtime Event = "select_showtime"
	EventSelectQuantity Event = "select_quantity"
	EventToggleSeat     Event = "toggle_seat"
	EventConfirmSeats   Event = "confirm_seats"
)

// ErrInvalidTransition is returned for an action the current state does
// not accept.
var ErrInvalidTransition = errors.New("invalid transition")

type transition struct {
	from State
	on   Event
}

// transitions enumerates every legal (state, event) pair.  Seat toggles
// land in StateSeatsPartial; the session promotes that to
// StateSeatsComplete once the selection reaches the ticket quantity.
var transitions = map[transition]State{
	{StateIdle, EventSelectMovie}:              StateMovieChosen,
	{StateMovieChosen, EventSelectMovie}:       StateMovieChosen,
	{StateMovieChosen, EventSelectShowtime}:    StateShowtimeChosen,
	{StateShowtimeChosen, EventSelectShowtime}: StateShowtimeChosen,
	{StateShowtimeChosen, EventSelectQuantity}: StateQuantityChosen,
	{StateQuantityChosen, EventToggleSeat}:     StateSeatsPartial,
	{StateSeatsPartial, EventToggleSeat}:       StateSeatsPartial,
	{StateSeatsComplete, EventToggleSeat}:      StateSeatsPartial,
	{StateSeatsComplete, EventConfirmSeats}:    StateBookingConfirmed,
}

// Next returns the state reached from s on e.
func Next(s State, e Event) (State, error) {
	to, ok := transitions[transition{s, e}]
	if !ok {
		return s, fmt.Errorf("%s on %s: %w", e, s, ErrInvalidTransition)
	}
	return to, nil
}

// settleSeats resolves the seat-selection state from the selection size.
func settleSeats(selected, quantity int) State {
	if quantity > 0 && selected == quantity {
		return StateSeatsComplete
	}
	return StateSeatsPartial
}
