package repository

import (
	"math/rand"

	"github.com/iliyamo/movie-chat-booking/internal/model"
)

// SeatRows and SeatsPerRow describe the seat layout created for every
// seeded showtime.
var SeatRows = []string{"A", "B", "C", "D"}

const SeatsPerRow = 7

// SeedOptions controls how Seed marks seats as already taken.
// UnavailableRatio is the probability that a seeded seat starts booked;
// Rand supplies the randomness and defaults to a time-seeded source.
type SeedOptions struct {
	UnavailableRatio float64
	Rand             *rand.Rand
}

// Seed loads the demo catalog: 6 movies, 3 theaters, 20 showtimes and a
// 4x7 seat grid per showtime.
func Seed(s *Store, opts SeedOptions) {
	for _, m := range seedMovies {
		s.CreateMovie(m)
	}
	for _, t := range seedTheaters {
		s.CreateTheater(t)
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	for _, st := range seedShowtimes {
		created := s.CreateShowtime(st)
		for _, row := range SeatRows {
			for n := 1; n <= SeatsPerRow; n++ {
				s.CreateSeat(model.Seat{
					ShowtimeID:  created.ID,
					Row:         row,
					Number:      n,
					IsAvailable: rnd.Float64() >= opts.UnavailableRatio,
				})
			}
		}
	}
}

const posterBase = "https://images.unsplash.com/"

var seedMovies = []model.Movie{
	{
		Title:       "Avengers: The Final Chapter",
		Poster:      posterBase + "photo-1535666669445-e8c15cd2e7a9?ixlib=rb-4.0.3&auto=format&fit=crop&w=200&h=300",
		Rating:      "4.8/5",
		Genres:      "Action, Adventure",
		Duration:    "2h 45min",
		Description: "The epic conclusion to the Avengers saga as our heroes face their greatest challenge yet.",
		ReleaseYear: 2023,
		Formats:     []string{"IMAX", "3D"},
	},
	{
		Title:       "The Dark Knight Returns",
		Poster:      posterBase + "photo-1509347528160-9a9e33742cdb?ixlib=rb-4.0.3&auto=format&fit=crop&w=200&h=300",
		Rating:      "4.7/5",
		Genres:      "Action, Crime, Drama",
		Duration:    "2h 32min",
		Description: "Batman comes out of retirement to battle a new threat to Gotham City.",
		ReleaseYear: 2023,
		Formats:     []string{"IMAX", "Dolby"},
	},
	{
		Title:       "Star Wars: New Horizons",
		Poster:      posterBase + "photo-1533613220915-609f661a6fe1?ixlib=rb-4.0.3&auto=format&fit=crop&w=200&h=300",
		Rating:      "4.5/5",
		Genres:      "Sci-Fi, Adventure",
		Duration:    "2h 20min",
		Description: "A new adventure begins in a galaxy far far away.",
		ReleaseYear: 2023,
		Formats:     []string{"IMAX", "3D", "Dolby"},
	},
	{
		Title:       "Jurassic World: Extinction",
		Poster:      posterBase + "photo-1584824486539-53bb4646bdbc?ixlib=rb-4.0.3&auto=format&fit=crop&w=200&h=300",
		Rating:      "4.3/5",
		Genres:      "Action, Sci-Fi",
		Duration:    "2h 15min",
		Description: "Dinosaurs face a new extinction event, and humans must decide whether to save them.",
		ReleaseYear: 2023,
		Formats:     []string{"IMAX", "3D"},
	},
	{
		Title:       "Eternal Sunshine",
		Poster:      posterBase + "photo-1489599849927-2ee91cede3ba?ixlib=rb-4.0.3&auto=format&fit=crop&w=200&h=300",
		Rating:      "4.9/5",
		Genres:      "Romance, Drama",
		Duration:    "1h 55min",
		Description: "A couple undergoes a procedure to erase memories of each other.",
		ReleaseYear: 2023,
		Formats:     []string{"Standard"},
	},
	{
		Title:       "Fast & Furious: Ultimate Race",
		Poster:      posterBase + "photo-1492144534655-ae79c964c9d7?ixlib=rb-4.0.3&auto=format&fit=crop&w=200&h=300",
		Rating:      "4.2/5",
		Genres:      "Action, Crime",
		Duration:    "2h 10min",
		Description: "The final race that will determine the fate of the world.",
		ReleaseYear: 2023,
		Formats:     []string{"IMAX", "4DX"},
	},
}

var seedTheaters = []model.Theater{
	{
		Name:    "Cineplex IMAX - Downtown",
		Address: "123 Main Street, Downtown",
		Phone:   "(555) 123-4567",
		Image:   posterBase + "photo-1517604931442-7e0c8ed2963c?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=300",
	},
	{
		Name:    "Regal Cinema Plaza",
		Address: "456 Broadway, Midtown",
		Phone:   "(555) 987-6543",
		Image:   posterBase + "photo-1470229722913-7c0e2dbbafd3?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=300",
	},
	{
		Name:    "AMC Sunset Theaters",
		Address: "789 Sunset Blvd, Westside",
		Phone:   "(555) 456-7890",
		Image:   posterBase + "photo-1489599849927-2ee91cede3ba?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=300",
	},
}

const seedDate = "2023-06-15"

var seedShowtimes = []model.Showtime{
	{MovieID: 1, TheaterID: 1, Time: "10:30 AM", Date: seedDate},
	{MovieID: 1, TheaterID: 1, Time: "1:15 PM", Date: seedDate},
	{MovieID: 1, TheaterID: 1, Time: "4:45 PM", Date: seedDate},
	{MovieID: 1, TheaterID: 1, Time: "7:30 PM", Date: seedDate},
	{MovieID: 1, TheaterID: 1, Time: "10:15 PM", Date: seedDate},
	{MovieID: 2, TheaterID: 1, Time: "11:00 AM", Date: seedDate},
	{MovieID: 2, TheaterID: 1, Time: "2:30 PM", Date: seedDate},
	{MovieID: 2, TheaterID: 1, Time: "6:00 PM", Date: seedDate},
	{MovieID: 3, TheaterID: 2, Time: "12:15 PM", Date: seedDate},
	{MovieID: 3, TheaterID: 2, Time: "3:30 PM", Date: seedDate},
	{MovieID: 3, TheaterID: 2, Time: "7:00 PM", Date: seedDate},
	{MovieID: 4, TheaterID: 2, Time: "1:45 PM", Date: seedDate},
	{MovieID: 4, TheaterID: 2, Time: "5:15 PM", Date: seedDate},
	{MovieID: 4, TheaterID: 2, Time: "8:45 PM", Date: seedDate},
	{MovieID: 5, TheaterID: 3, Time: "11:30 AM", Date: seedDate},
	{MovieID: 5, TheaterID: 3, Time: "2:00 PM", Date: seedDate},
	{MovieID: 5, TheaterID: 3, Time: "5:45 PM", Date: seedDate},
	{MovieID: 6, TheaterID: 3, Time: "12:45 PM", Date: seedDate},
	{MovieID: 6, TheaterID: 3, Time: "4:00 PM", Date: seedDate},
	{MovieID: 6, TheaterID: 3, Time: "9:15 PM", Date: seedDate},
}
