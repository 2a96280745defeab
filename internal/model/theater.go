package model

// Theater is a venue where showtimes take place.  Immutable after creation.
type Theater struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Image   string `json:"image"`
}
