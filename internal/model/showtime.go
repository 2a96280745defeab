package model

// Showtime represents a scheduled screening of one movie at one theater.
// MovieID and TheaterID are expected to reference existing records; the
// store does not check them.
//
// Fields:
//
//	ID        – store-assigned identifier.
//	MovieID   – movie being screened.
//	TheaterID – theater hosting the screening.
//	Time      – display time, e.g. "7:30 PM".
//	Date      – calendar date, e.g. "2023-06-15".
type Showtime struct {
	ID        uint64 `json:"id"`
	MovieID   uint64 `json:"movieId"`
	TheaterID uint64 `json:"theaterId"`
	Time      string `json:"time"`
	Date      string `json:"date"`
}
