package chat

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/iliyamo/movie-chat-booking/internal/model"
)

// Intent names a rule in the routing table.
type Intent string

const (
	IntentNearMe      Intent = "near_me"
	IntentNewReleases Intent = "new_releases"
	IntentPopular     Intent = "popular"
	IntentBrowse      Intent = "browse"
	IntentShowtimes   Intent = "showtimes"
	IntentSeats       Intent = "seats"
	IntentQuantity    Intent = "quantity"
	IntentConfirm     Intent = "confirm"
)

// resultLimit caps how many movies a response carries.
const resultLimit = 3

// Rule pairs a predicate over the lowercased message with the responder
// that builds the reply when the predicate holds.
type Rule struct {
	Intent  Intent
	Match   func(msg string) bool
	Respond func(c Catalog, msg string) (Response, error)
}

// Rules returns the routing table in priority order.  The order decides
// which rule wins when a message contains keywords of several rules.
func Rules() []Rule {
	return []Rule{
		{Intent: IntentNearMe, Match: matchNearMe, Respond: respondNearMe},
		{Intent: IntentNewReleases, Match: containsAny("new releases", "latest movies", "just released"), Respond: respondNewReleases},
		{Intent: IntentPopular, Match: containsAny("popular movies", "top movies", "best movies"), Respond: respondPopular},
		{Intent: IntentBrowse, Match: containsAny("watch", "movie", "show"), Respond: respondBrowse},
		{Intent: IntentShowtimes, Match: containsAny("time", "showtime", "when", "showing"), Respond: respondShowtimes},
		{Intent: IntentSeats, Match: containsAny("seat", "ticket"), Respond: respondSeats},
		{Intent: IntentQuantity, Match: matchQuantity, Respond: respondQuantity},
		{Intent: IntentConfirm, Match: containsAny("confirm", "book", "yes", "great", "perfect", "good"), Respond: respondConfirm},
	}
}

func containsAny(keywords ...string) func(string) bool {
	return func(msg string) bool {
		for _, k := range keywords {
			if strings.Contains(msg, k) {
				return true
			}
		}
		return false
	}
}

func matchNearMe(msg string) bool {
	if strings.Contains(msg, "near me") {
		return true
	}
	return strings.Contains(msg, "near") &&
		(strings.Contains(msg, "movie") || strings.Contains(msg, "theater"))
}

func firstMovies(movies []model.Movie) []model.Movie {
	if len(movies) > resultLimit {
		return movies[:resultLimit]
	}
	return movies
}

func respondNearMe(c Catalog, _ string) (Response, error) {
	return Response{
		Type:    TypeMovieResults,
		Message: "I found these movies playing at theaters near you:",
		Data:    firstMovies(c.ListMovies()),
	}, nil
}

func respondNewReleases(c Catalog, _ string) (Response, error) {
	movies := append([]model.Movie(nil), c.ListMovies()...)
	sort.SliceStable(movies, func(i, j int) bool { return movies[i].ReleaseYear > movies[j].ReleaseYear })
	return Response{
		Type:    TypeMovieResults,
		Message: "Here are the latest movie releases:",
		Data:    firstMovies(movies),
	}, nil
}

func respondPopular(c Catalog, _ string) (Response, error) {
	return Response{
		Type:    TypeMovieResults,
		Message: "Here are some popular movies in theaters now:",
		Data:    firstMovies(c.ListMovies()),
	}, nil
}

// SearchTerm extracts the movie search term from a lowercased message: the
// text after the first "watch", or failing that after the first "movie",
// with one leading article removed.
func SearchTerm(msg string) string {
	var term string
	if i := strings.Index(msg, "watch"); i >= 0 {
		term = msg[i+len("watch"):]
	} else if i := strings.Index(msg, "movie"); i >= 0 {
		term = msg[i+len("movie"):]
	}
	term = strings.TrimSpace(term)
	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(term, article) {
			term = strings.TrimPrefix(term, article)
			break
		}
	}
	return strings.TrimSpace(term)
}

func respondBrowse(c Catalog, msg string) (Response, error) {
	term := SearchTerm(msg)
	if term == "" {
		return Response{
			Type:    TypeMovieSuggestions,
			Message: "Here are some popular movies playing right now:",
			Data:    firstMovies(c.ListMovies()),
		}, nil
	}
	movies := c.SearchMovies(term)
	if len(movies) == 0 {
		return Response{
			Type:    TypeNoResults,
			Message: fmt.Sprintf("I couldn't find any movies matching \"%s\". Would you like to browse popular movies instead?", term),
		}, nil
	}
	return Response{
		Type:    TypeMovieResults,
		Message: fmt.Sprintf("Great choice! I found \"%s\" now showing in theaters near you.", movies[0].Title),
		Data:    firstMovies(movies),
	}, nil
}

// respondShowtimes always answers for the first movie in the catalog,
// whatever movie the conversation is about.
func respondShowtimes(c Catalog, _ string) (Response, error) {
	movies := c.ListMovies()
	if len(movies) == 0 {
		return Response{}, ErrNoMovies
	}
	movie := movies[0]
	return Response{
		Type:    TypeShowtimeResults,
		Message: fmt.Sprintf("Here are the showtimes for %s:", movie.Title),
		Data: ShowtimeData{
			Movie:     movie,
			Showtimes: c.ListShowtimesByMovie(movie.ID),
		},
	}, nil
}

func respondSeats(Catalog, string) (Response, error) {
	return Response{
		Type:    TypeSeatSelection,
		Message: "Great! How many tickets would you like?",
		Data:    emptyData(),
	}, nil
}

var quantityPattern = regexp.MustCompile(`(\d+)\s*(ticket|seat)`)

// ParseQuantity returns the ticket count in phrases like "3 tickets" or
// "2seats".
func ParseQuantity(msg string) (int, bool) {
	m := quantityPattern.FindStringSubmatch(strings.ToLower(msg))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func matchQuantity(msg string) bool {
	_, ok := ParseQuantity(msg)
	return ok
}

func respondQuantity(_ Catalog, msg string) (Response, error) {
	n, _ := ParseQuantity(msg)
	return Response{
		Type:    TypeTicketQuantity,
		Message: fmt.Sprintf("Perfect! Please select %d seats from the theater layout.", n),
		Data:    QuantityData{Quantity: n},
	}, nil
}

func respondConfirm(Catalog, string) (Response, error) {
	return Response{
		Type:    TypeBookingConfirmation,
		Message: "Your tickets have been confirmed! You'll receive an email with the ticket QR codes. Enjoy the movie! 🎬 Is there anything else I can help you with?",
		Data:    emptyData(),
	}, nil
}

func fallback() Response {
	return Response{
		Type:    TypeGeneral,
		Message: "I'm your movie booking assistant. You can ask me about movies, showtimes, or say 'book tickets' to get started.",
		Data:    emptyData(),
	}
}
