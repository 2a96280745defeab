package chat

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-chat-booking/internal/model"
	"github.com/iliyamo/movie-chat-booking/internal/repository"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	s := repository.NewStore()
	repository.Seed(s, repository.SeedOptions{Rand: rand.New(rand.NewSource(1))})
	return NewRouter(s)
}

func TestRuleOrder(t *testing.T) {
	var got []Intent
	for _, r := range Rules() {
		got = append(got, r.Intent)
	}
	assert.Equal(t, []Intent{
		IntentNearMe,
		IntentNewReleases,
		IntentPopular,
		IntentBrowse,
		IntentShowtimes,
		IntentSeats,
		IntentQuantity,
		IntentConfirm,
	}, got)
}

func TestClassify(t *testing.T) {
	r := newTestRouter(t)
	tests := []struct {
		msg  string
		want Intent
	}{
		{"Show movies near me", IntentNearMe},
		{"any theater near downtown?", IntentNearMe},
		{"movies near me, confirm please", IntentNearMe},
		{"What are the new releases?", IntentNewReleases},
		{"Show me popular movies", IntentPopular},
		{"I want to watch The Matrix", IntentBrowse},
		{"I want to watch something and confirm", IntentBrowse},
		{"Show me 3 tickets", IntentBrowse},
		{"When does it start?", IntentShowtimes},
		{"I need 2 seats", IntentSeats},
		{"yes please", IntentConfirm},
		{"that sounds good", IntentConfirm},
		{"hello there", ""},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Classify(tt.msg))
		})
	}
}

func TestRouteNearMe(t *testing.T) {
	r := newTestRouter(t)
	resp, err := r.Route("Movies near me and confirm")
	require.NoError(t, err)
	assert.Equal(t, TypeMovieResults, resp.Type)
	movies, ok := resp.Data.([]model.Movie)
	require.True(t, ok)
	require.Len(t, movies, 3)
	assert.Equal(t, uint64(1), movies[0].ID)
}

func TestRouteNewReleasesSortsByYear(t *testing.T) {
	s := repository.NewStore()
	s.CreateMovie(model.Movie{Title: "Old", ReleaseYear: 1999})
	s.CreateMovie(model.Movie{Title: "Newest", ReleaseYear: 2024})
	s.CreateMovie(model.Movie{Title: "Mid", ReleaseYear: 2010})
	s.CreateMovie(model.Movie{Title: "Also new", ReleaseYear: 2024})

	resp, err := NewRouter(s).Route("show me the latest movies")
	require.NoError(t, err)
	movies := resp.Data.([]model.Movie)
	var titles []string
	for _, m := range movies {
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"Newest", "Also new", "Mid"}, titles)
}

func TestRouteBrowse(t *testing.T) {
	r := newTestRouter(t)

	resp, err := r.Route("I want to watch The Matrix")
	require.NoError(t, err)
	assert.Equal(t, TypeNoResults, resp.Type)
	assert.Contains(t, resp.Message, `"matrix"`)
	assert.Nil(t, resp.Data)

	resp, err = r.Route("I'd like to watch the dark knight")
	require.NoError(t, err)
	assert.Equal(t, TypeMovieResults, resp.Type)
	assert.Contains(t, resp.Message, "The Dark Knight Returns")
	assert.Len(t, resp.Data, 1)

	resp, err = r.Route("any action movie")
	require.NoError(t, err)
	assert.Equal(t, TypeMovieSuggestions, resp.Type, "nothing follows the keyword")

	resp, err = r.Route("Show showtimes")
	require.NoError(t, err)
	assert.Equal(t, TypeMovieSuggestions, resp.Type)
	assert.Len(t, resp.Data, 3)

	resp, err = r.Route("I want to watch action")
	require.NoError(t, err)
	assert.Equal(t, TypeMovieResults, resp.Type)
	assert.Len(t, resp.Data, 3)
}

func TestRouteShowtimesUsesFirstMovie(t *testing.T) {
	r := newTestRouter(t)
	resp, err := r.Route("when is it on?")
	require.NoError(t, err)
	assert.Equal(t, TypeShowtimeResults, resp.Type)
	data, ok := resp.Data.(ShowtimeData)
	require.True(t, ok)
	assert.Equal(t, uint64(1), data.Movie.ID)
	assert.Len(t, data.Showtimes, 5)
	assert.Equal(t, "Here are the showtimes for Avengers: The Final Chapter:", resp.Message)
}

func TestRouteShowtimesEmptyCatalog(t *testing.T) {
	_, err := NewRouter(repository.NewStore()).Route("what time?")
	assert.ErrorIs(t, err, ErrNoMovies)
}

func TestRouteSeatsConfirmFallback(t *testing.T) {
	r := newTestRouter(t)

	resp, err := r.Route("I want tickets")
	require.NoError(t, err)
	assert.Equal(t, TypeSeatSelection, resp.Type)

	resp, err = r.Route("Perfect")
	require.NoError(t, err)
	assert.Equal(t, TypeBookingConfirmation, resp.Type)

	resp, err = r.Route("hi")
	require.NoError(t, err)
	assert.Equal(t, TypeGeneral, resp.Type)
}

// Every phrase the quantity pattern accepts also contains "seat" or
// "ticket", so Route answers with the seats rule first.  The quantity
// rule is still checked on its own.
func TestQuantityRule(t *testing.T) {
	var rule Rule
	for _, r := range Rules() {
		if r.Intent == IntentQuantity {
			rule = r
		}
	}
	require.NotNil(t, rule.Match)

	msg := "show me 3 tickets"
	require.True(t, rule.Match(msg))
	resp, err := rule.Respond(nil, msg)
	require.NoError(t, err)
	assert.Equal(t, TypeTicketQuantity, resp.Type)
	assert.Equal(t, QuantityData{Quantity: 3}, resp.Data)

	n, ok := ParseQuantity("2seats")
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	_, ok = ParseQuantity("some tickets")
	assert.False(t, ok)
}

func TestSearchTerm(t *testing.T) {
	tests := map[string]string{
		"i want to watch the matrix": "matrix",
		"watch a dark knight":        "dark knight",
		"watch an avengers":          "avengers",
		"movie eternal":              "eternal",
		"watchthe":                   "the",
		"show me":                    "",
		"i love this movie":          "",
		"movies":                     "s",
	}
	for in, want := range tests {
		assert.Equal(t, want, SearchTerm(in), in)
	}
}

func TestResponseJSON(t *testing.T) {
	r := newTestRouter(t)

	resp, err := r.Route("watch nothing-matches")
	require.NoError(t, err)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"data"`)

	resp, err = r.Route("seat please")
	require.NoError(t, err)
	raw, err = json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data":{}`)
}

func TestResponseDecodesTypedData(t *testing.T) {
	r := newTestRouter(t)
	for _, msg := range []string{"show me popular movies", "when does it start", "hello", "watch zzz"} {
		t.Run(msg, func(t *testing.T) {
			resp, err := r.Route(msg)
			require.NoError(t, err)
			raw, err := json.Marshal(resp)
			require.NoError(t, err)

			var got Response
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, resp.Type, got.Type)
			switch resp.Type {
			case TypeMovieResults:
				assert.IsType(t, []model.Movie{}, got.Data)
			case TypeShowtimeResults:
				data, ok := got.Data.(ShowtimeData)
				require.True(t, ok)
				assert.Len(t, data.Showtimes, 5)
			case TypeGeneral:
				assert.Equal(t, map[string]any{}, got.Data)
			case TypeNoResults:
				assert.Nil(t, got.Data)
			}
		})
	}

	var bad Response
	require.Error(t, json.Unmarshal([]byte(`{"type":"movie_results","data":{"x":1}}`), &bad))
}
