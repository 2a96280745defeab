// Package chat classifies free-text chat messages into a fixed set of
// response types.  Classification is an ordered list of keyword rules
// evaluated first-match-wins over the lowercased message.
package chat

import (
	"encoding/json"
	"fmt"

	"github.com/iliyamo/movie-chat-booking/internal/model"
)

// Response types returned by the router.
const (
	TypeMovieResults        = "movie_results"
	TypeMovieSuggestions    = "movie_suggestions"
	TypeNoResults           = "no_results"
	TypeShowtimeResults     = "showtime_results"
	TypeSeatSelection       = "seat_selection"
	TypeTicketQuantity      = "ticket_quantity"
	TypeBookingConfirmation = "booking_confirmation"
	TypeGeneral             = "general"
)

// Response is the tagged payload sent back for a chat message.  Data is
// omitted for no_results and is an empty object for types that carry no
// payload.
type Response struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ShowtimeData is the payload of a showtime_results response.
type ShowtimeData struct {
	Movie     model.Movie      `json:"movie"`
	Showtimes []model.Showtime `json:"showtimes"`
}

// QuantityData is the payload of a ticket_quantity response.
type QuantityData struct {
	Quantity int `json:"quantity"`
}

func emptyData() map[string]any { return map[string]any{} }

// UnmarshalJSON decodes Data into the concrete payload type named by
// Type: []model.Movie for movie lists, ShowtimeData, QuantityData, and a
// generic map for everything else.
func (r *Response) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type    string          `json:"type"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Type, r.Message, r.Data = raw.Type, raw.Message, nil
	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return nil
	}

	var err error
	switch raw.Type {
	case TypeMovieResults, TypeMovieSuggestions:
		var movies []model.Movie
		err = json.Unmarshal(raw.Data, &movies)
		r.Data = movies
	case TypeShowtimeResults:
		var data ShowtimeData
		err = json.Unmarshal(raw.Data, &data)
		r.Data = data
	case TypeTicketQuantity:
		var data QuantityData
		err = json.Unmarshal(raw.Data, &data)
		r.Data = data
	default:
		var data map[string]any
		err = json.Unmarshal(raw.Data, &data)
		r.Data = data
	}
	if err != nil {
		return fmt.Errorf("decode %s data: %w", raw.Type, err)
	}
	return nil
}
