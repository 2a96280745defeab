package chat

import (
	"errors"
	"strings"

	"github.com/iliyamo/movie-chat-booking/internal/model"
)

// ErrNoMovies is returned when a rule needs a movie and the catalog is empty.
var ErrNoMovies = errors.New("no movies in catalog")

// Catalog is the read side of the entity store the router consults.
type Catalog interface {
	ListMovies() []model.Movie
	SearchMovies(query string) []model.Movie
	ListShowtimesByMovie(movieID uint64) []model.Showtime
}

// Router maps chat messages to responses.
type Router struct {
	catalog Catalog
	rules   []Rule
}

// NewRouter returns a router using the default rule table.
func NewRouter(c Catalog) *Router {
	return &Router{catalog: c, rules: Rules()}
}

// Route lowercases msg and answers with the first matching rule, or the
// general fallback when none matches.
func (r *Router) Route(msg string) (Response, error) {
	lower := strings.ToLower(msg)
	for _, rule := range r.rules {
		if rule.Match(lower) {
			return rule.Respond(r.catalog, lower)
		}
	}
	return fallback(), nil
}

// Classify reports which intent Route would pick for msg.  The empty
// intent means the fallback.
func (r *Router) Classify(msg string) Intent {
	lower := strings.ToLower(msg)
	for _, rule := range r.rules {
		if rule.Match(lower) {
			return rule.Intent
		}
	}
	return ""
}
