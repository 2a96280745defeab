package session

import "github.com/iliyamo/movie-chat-booking/internal/chat"

// QuickReply is a canned message offered as a one-tap answer.
type QuickReply struct {
	Text    string
	Message string
}

var quickReplies = map[string][]QuickReply{
	chat.TypeGeneral: {
		{Text: "Show new releases", Message: "Show me new releases"},
		{Text: "Popular movies", Message: "Show me popular movies"},
		{Text: "Movies near me", Message: "Show movies near me"},
	},
	chat.TypeMovieResults: {
		{Text: "Show showtimes", Message: "Show showtimes"},
		{Text: "Movie details", Message: "Tell me more about this movie"},
		{Text: "Find another movie", Message: "I want to see something else"},
	},
	chat.TypeShowtimeResults: {
		{Text: "Book tickets", Message: "I want to book tickets"},
		{Text: "Theater details", Message: "Tell me about the theater"},
		{Text: "Different movie", Message: "Show me other movies"},
	},
	chat.TypeBookingConfirmation: {
		{Text: "Find food nearby", Message: "Find food nearby"},
		{Text: "Book another movie", Message: "Book another movie"},
		{Text: "Theater amenities", Message: "Tell me about theater amenities"},
	},
}

// QuickRepliesFor returns the quick replies offered after a response of
// the given type.  Unknown types get none.
func QuickRepliesFor(responseType string) []QuickReply {
	return append([]QuickReply(nil), quickReplies[responseType]...)
}
