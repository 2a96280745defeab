package model

import "strconv"

// Seat is one bookable place for a particular showtime.  Seats are
// identified by their showtime, row label and number.  IsAvailable flips
// from true to false when the seat becomes part of a booking and never
// flips back.
type Seat struct {
	ID          uint64 `json:"id"`
	ShowtimeID  uint64 `json:"showtimeId"`
	Row         string `json:"row"`
	Number      int    `json:"number"`
	IsAvailable bool   `json:"isAvailable"`
}

// Label returns the human readable seat label such as "C4".
func (s Seat) Label() string {
	return s.Row + strconv.Itoa(s.Number)
}
