// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// BookingCreatedEvent is published after a booking is stored.  It carries
// enough context for downstream consumers to log or notify without
// calling back into the API.
type BookingCreatedEvent struct {
	BookingID  uint64   `json:"booking_id"`
	UserID     *uint64  `json:"user_id,omitempty"`
	ShowtimeID uint64   `json:"showtime_id"`
	MovieTitle string   `json:"movie_title"`
	Theater    string   `json:"theater"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	SeatLabels []string `json:"seats"`
	TotalCents int      `json:"total_cents"`
	CreatedAt  string   `json:"created_at"`
}
