package model

// Movie is a film in the catalog.  Movies are created once from the seed
// set and never modified afterwards.
//
// Fields:
//
//	ID          – store-assigned identifier.
//	Title       – display title.
//	Poster      – poster image URL.
//	Rating      – audience rating, e.g. "4.8/5".
//	Genres      – comma separated genre list, e.g. "Action, Adventure".
//	Duration    – running time, e.g. "2h 45min".
//	Description – short synopsis.
//	ReleaseYear – year of release.
//	Formats     – supported projection formats (IMAX, 3D, Dolby ...).
type Movie struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Poster      string   `json:"poster"`
	Rating      string   `json:"rating"`
	Genres      string   `json:"genres"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	ReleaseYear int      `json:"releaseYear"`
	Formats     []string `json:"formats"`
}
