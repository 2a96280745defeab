package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Booking records a confirmed reservation of a set of seats for a
// showtime.  SeatIDs keeps the seat identifiers as strings, in the order
// they were requested.  Completed is set once checkout finishes; nothing
// else changes after creation.
//
// Fields:
//
//	ID         – store-assigned identifier.
//	UserID     – optional owner of the booking (nil for guests).
//	ShowtimeID – showtime being booked.
//	SeatIDs    – booked seat identifiers.
//	TotalPrice – total in cents.
//	CreatedAt  – server-assigned creation time (UTC).
//	Completed  – whether checkout has completed.
type Booking struct {
	ID         uint64    `json:"id"`
	UserID     *uint64   `json:"userId"`
	ShowtimeID uint64    `json:"showtimeId"`
	SeatIDs    []string  `json:"seatIds"`
	TotalPrice int       `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
	Completed  bool      `json:"completed"`
}

// BookingRequest is the body of a booking creation call.
type BookingRequest struct {
	UserID     *uint64    `json:"userId,omitempty"`
	ShowtimeID uint64     `json:"showtimeId"`
	SeatIDs    SeatIDList `json:"seatIds"`
	TotalPrice int        `json:"totalPrice"`

	// rawSeatIDs holds each entry of seatIds exactly as it was sent.
	rawSeatIDs []json.RawMessage
}

func (r *BookingRequest) UnmarshalJSON(data []byte) error {
	type plain BookingRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw struct {
		SeatIDs []json.RawMessage `json:"seatIds"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = BookingRequest(p)
	r.rawSeatIDs = raw.SeatIDs
	return nil
}

// SeatIDJSON returns seat id as it appeared in the decoded body, so a
// number comes back as a number and a string as a string.  Requests built
// in code fall back to the string form.
func (r BookingRequest) SeatIDJSON(id string) json.RawMessage {
	if len(r.rawSeatIDs) == len(r.SeatIDs) {
		for i, s := range r.SeatIDs {
			if s == id {
				return r.rawSeatIDs[i]
			}
		}
	}
	b, _ := json.Marshal(id)
	return b
}

// SeatIDList is a list of seat ids that decodes from JSON strings or
// numbers alike, so both ["12", "13"] and [12, 13] are accepted.
type SeatIDList []string

func (l *SeatIDList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*l = nil
		return nil
	}
	out := make(SeatIDList, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(r, &n); err != nil {
			return fmt.Errorf("seat id %s: must be a string or number", string(r))
		}
		out = append(out, n.String())
	}
	*l = out
	return nil
}
