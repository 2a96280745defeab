package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/iliyamo/movie-chat-booking/internal/chat"
	"github.com/iliyamo/movie-chat-booking/internal/model"
)

const greeting = "👋 Hi there! I'm MovieBot, your movie booking assistant. What would you like to watch today?"

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrShowtimeMismatch = errors.New("showtime is not for the selected movie")
	ErrUnknownSeat      = errors.New("seat is not part of the selected showtime")
	ErrAlreadyBooked    = errors.New("booking already created")
	ErrNoBooking        = errors.New("no booking to complete")
)

// Backend is the API the session talks to.
type Backend interface {
	Chat(ctx context.Context, message string) (chat.Response, error)
	Showtimes(ctx context.Context, movieID uint64) ([]model.Showtime, error)
	Theater(ctx context.Context, id uint64) (model.Theater, error)
	Seats(ctx context.Context, showtimeID uint64) ([]model.Seat, error)
	CreateBooking(ctx context.Context, req model.BookingRequest) (model.Booking, error)
	CompleteBooking(ctx context.Context, id uint64) (model.Booking, error)
}

// Sender tells who wrote a transcript message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Message is one transcript entry.  Agent messages carry the response type
// and payload that decide which affordance is shown next.
type Message struct {
	Text   string
	Sender Sender
	Type   string
	Data   any
}

// SeatMap is the payload shown with the seat grid.
type SeatMap struct {
	Quantity int
	Seats    []model.Seat
}

// Summary is the payload of the booking summary message.
type Summary struct {
	Movie        model.Movie
	Showtime     model.Showtime
	Theater      model.Theater
	Seats        []model.Seat
	Quantity     int
	TicketsTotal int
	BookingFee   int
	Total        int
}

// Session holds one conversation.  Actions are serialized; getters may be
// called at any time, including while an action waits out the typing
// delay.
type Session struct {
	action sync.Mutex // serializes user actions

	mu         sync.Mutex
	backend    Backend
	delay      time.Duration
	sleep      func(time.Duration)
	state      State
	typing     bool
	transcript []Message
	replies    []QuickReply

	movie    *model.Movie
	showtime *model.Showtime
	theater  *model.Theater
	quantity int
	seats    []model.Seat
	selected []model.Seat
	booking  *model.Booking
	userID   *uint64
}

// New starts a session at StateIdle with the greeting in the transcript.
func New(b Backend, delay time.Duration) *Session {
	s := &Session{
		backend: b,
		delay:   delay,
		sleep:   time.Sleep,
		state:   StateIdle,
	}
	s.transcript = []Message{{Text: greeting, Sender: SenderAgent, Type: chat.TypeGeneral}}
	s.replies = QuickRepliesFor(chat.TypeGeneral)
	return s
}

// SetUserID attaches the signed-in user to bookings made by this session.
func (s *Session) SetUserID(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = &id
}

// exchange appends the user's message, shows the typing indicator for the
// simulated delay, then asks reply for the agent message.  The agent
// message is appended only when reply succeeds.
func (s *Session) exchange(text string, reply func() (Message, error)) (Message, error) {
	s.mu.Lock()
	s.transcript = append(s.transcript, Message{Text: text, Sender: SenderUser, Type: "text"})
	s.typing = true
	s.mu.Unlock()

	s.sleep(s.delay)
	msg, err := reply()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.typing = false
	if err != nil {
		return Message{}, err
	}
	msg.Sender = SenderAgent
	s.transcript = append(s.transcript, msg)
	s.replies = QuickRepliesFor(msg.Type)
	return msg, nil
}

func (s *Session) check(e Event) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Next(s.state, e)
}

// Send posts free text to the chat endpoint.  The reply can change the
// movie under discussion but never the state.
func (s *Session) Send(ctx context.Context, text string) (chat.Response, error) {
	s.action.Lock()
	defer s.action.Unlock()

	var resp chat.Response
	_, err := s.exchange(text, func() (Message, error) {
		r, err := s.backend.Chat(ctx, text)
		if err != nil {
			return Message{}, err
		}
		resp = r
		return Message{Text: r.Message, Type: r.Type, Data: r.Data}, nil
	})
	if err != nil {
		return chat.Response{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// once a showtime is picked the movie is pinned to it
	if s.state != StateIdle && s.state != StateMovieChosen {
		return resp, nil
	}
	switch data := resp.Data.(type) {
	case []model.Movie:
		if resp.Type == chat.TypeMovieResults && len(data) > 0 {
			m := data[0]
			s.movie = &m
		}
	case chat.ShowtimeData:
		m := data.Movie
		s.movie = &m
	}
	return resp, nil
}

// SelectMovie picks a movie card and answers with its showtimes.
func (s *Session) SelectMovie(ctx context.Context, movie model.Movie) error {
	s.action.Lock()
	defer s.action.Unlock()

	next, err := s.check(EventSelectMovie)
	if err != nil {
		return err
	}
	_, err = s.exchange(fmt.Sprintf("I'd like to watch %s", movie.Title), func() (Message, error) {
		showtimes, err := s.backend.Showtimes(ctx, movie.ID)
		if err != nil {
			return Message{}, err
		}
		return Message{
			Text: fmt.Sprintf("Great choice! I found %s now showing in theaters near you. Here are some showtimes:", movie.Title),
			Type: chat.TypeShowtimeResults,
			Data: chat.ShowtimeData{Movie: movie, Showtimes: showtimes},
		}, nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.movie = &movie
	s.showtime = nil
	s.theater = nil
	s.state = next
	return nil
}

// SelectShowtime picks a showtime of the current movie and asks for the
// ticket quantity.
func (s *Session) SelectShowtime(ctx context.Context, st model.Showtime) error {
	s.action.Lock()
	defer s.action.Unlock()

	next, err := s.check(EventSelectShowtime)
	if err != nil {
		return err
	}
	s.mu.Lock()
	movie := *s.movie
	s.mu.Unlock()
	if st.MovieID != movie.ID {
		return ErrShowtimeMismatch
	}

	var theater model.Theater
	_, err = s.exchange(fmt.Sprintf("I'll take the %s show", st.Time), func() (Message, error) {
		t, err := s.backend.Theater(ctx, st.TheaterID)
		if err != nil {
			return Message{}, err
		}
		theater = t
		return Message{
			Text: fmt.Sprintf("Perfect! Now, let's pick seats for %s at %s. How many tickets would you like?", movie.Title, st.Time),
			Type: chat.TypeSeatSelection,
			Data: QuantityChoices,
		}, nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.showtime = &st
	s.theater = &theater
	s.state = next
	return nil
}

// SelectQuantity sets how many tickets to buy and shows the seat grid.
func (s *Session) SelectQuantity(ctx context.Context, quantity int) error {
	s.action.Lock()
	defer s.action.Unlock()

	if quantity < 1 {
		return ErrInvalidQuantity
	}
	next, err := s.check(EventSelectQuantity)
	if err != nil {
		return err
	}
	s.mu.Lock()
	showtimeID := s.showtime.ID
	s.mu.Unlock()

	text := strconv.Itoa(quantity) + " tickets please"
	if quantity == 1 {
		text = "1 ticket please"
	}
	var seats []model.Seat
	_, err = s.exchange(text, func() (Message, error) {
		got, err := s.backend.Seats(ctx, showtimeID)
		if err != nil {
			return Message{}, err
		}
		seats = got
		return Message{
			Text: fmt.Sprintf("Great! Please select %d seats from the theater layout below:", quantity),
			Type: chat.TypeTicketQuantity,
			Data: SeatMap{Quantity: quantity, Seats: got},
		}, nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantity = quantity
	s.seats = seats
	s.selected = nil
	s.state = next
	return nil
}

// ToggleSeat adds or removes a seat from the selection.  Selecting a seat
// that is already picked removes it.  Adding a seat once the selection
// holds the ticket quantity, or adding an unavailable seat, does nothing.
func (s *Session) ToggleSeat(seatID uint64) error {
	s.action.Lock()
	defer s.action.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := Next(s.state, EventToggleSeat); err != nil {
		return err
	}

	var seat model.Seat
	found := false
	for _, st := range s.seats {
		if st.ID == seatID {
			seat, found = st, true
			break
		}
	}
	if !found {
		return ErrUnknownSeat
	}

	for i, picked := range s.selected {
		if picked.ID == seatID {
			s.selected = append(s.selected[:i:i], s.selected[i+1:]...)
			s.state = settleSeats(len(s.selected), s.quantity)
			return nil
		}
	}
	if seat.IsAvailable && len(s.selected) < s.quantity {
		s.selected = append(s.selected, seat)
	}
	s.state = settleSeats(len(s.selected), s.quantity)
	return nil
}

// ConfirmSeats accepts a complete selection and shows the booking summary.
func (s *Session) ConfirmSeats(ctx context.Context) (Summary, error) {
	s.action.Lock()
	defer s.action.Unlock()

	next, err := s.check(EventConfirmSeats)
	if err != nil {
		return Summary{}, err
	}
	summary := s.summary()
	_, err = s.exchange("Those seats look perfect!", func() (Message, error) {
		return Message{
			Text: "Great! Here's your booking summary:",
			Type: chat.TypeBookingConfirmation,
			Data: summary,
		}, nil
	})
	if err != nil {
		return Summary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	return summary, nil
}

func (s *Session) summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := Summary{
		Seats:        append([]model.Seat(nil), s.selected...),
		Quantity:     s.quantity,
		TicketsTotal: s.quantity * TicketPrice,
		BookingFee:   BookingFee,
		Total:        TotalPrice(s.quantity),
	}
	if s.movie != nil {
		sum.Movie = *s.movie
	}
	if s.showtime != nil {
		sum.Showtime = *s.showtime
	}
	if s.theater != nil {
		sum.Theater = *s.theater
	}
	return sum
}

// BookingRequest builds the booking creation body for the current
// selection.
func (s *Session) BookingRequest() model.BookingRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	req := model.BookingRequest{TotalPrice: TotalPrice(s.quantity), UserID: s.userID}
	if s.showtime != nil {
		req.ShowtimeID = s.showtime.ID
	}
	for _, seat := range s.selected {
		req.SeatIDs = append(req.SeatIDs, strconv.FormatUint(seat.ID, 10))
	}
	return req
}

// Book creates the booking for a confirmed selection.  The state machine
// does not move; a rejected booking can be retried after Reset.
func (s *Session) Book(ctx context.Context) (model.Booking, error) {
	s.action.Lock()
	defer s.action.Unlock()

	s.mu.Lock()
	state, booked := s.state, s.booking != nil
	s.mu.Unlock()
	if state != StateBookingConfirmed {
		return model.Booking{}, fmt.Errorf("book in %s: %w", state, ErrInvalidTransition)
	}
	if booked {
		return model.Booking{}, ErrAlreadyBooked
	}
	b, err := s.backend.CreateBooking(ctx, s.BookingRequest())
	if err != nil {
		return model.Booking{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.booking = &b
	return b, nil
}

// Checkout marks the session's booking as paid.
func (s *Session) Checkout(ctx context.Context) (model.Booking, error) {
	s.action.Lock()
	defer s.action.Unlock()

	s.mu.Lock()
	booking := s.booking
	s.mu.Unlock()
	if booking == nil {
		return model.Booking{}, ErrNoBooking
	}
	b, err := s.backend.CompleteBooking(ctx, booking.ID)
	if err != nil {
		return model.Booking{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.booking = &b
	return b, nil
}

// Reset returns to StateIdle for another booking.  The transcript is kept.
func (s *Session) Reset() {
	s.action.Lock()
	defer s.action.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.movie, s.showtime, s.theater, s.booking = nil, nil, nil, nil
	s.quantity = 0
	s.seats, s.selected = nil, nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Typing reports whether the agent is "typing" a reply.
func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.transcript...)
}

func (s *Session) QuickReplies() []QuickReply {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]QuickReply(nil), s.replies...)
}

func (s *Session) Movie() (model.Movie, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.movie == nil {
		return model.Movie{}, false
	}
	return *s.movie, true
}

func (s *Session) Showtime() (model.Showtime, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.showtime == nil {
		return model.Showtime{}, false
	}
	return *s.showtime, true
}

func (s *Session) Quantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantity
}

// Seats returns the seat grid loaded for the chosen showtime.
func (s *Session) Seats() []model.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Seat(nil), s.seats...)
}

func (s *Session) SelectedSeats() []model.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Seat(nil), s.selected...)
}

func (s *Session) Booking() (model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.booking == nil {
		return model.Booking{}, false
	}
	return *s.booking, true
}
