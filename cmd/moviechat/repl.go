package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/iliyamo/movie-chat-booking/internal/chat"
	"github.com/iliyamo/movie-chat-booking/internal/model"
	"github.com/iliyamo/movie-chat-booking/internal/session"
)

const commandHelp = `Commands:
  <text>            chat with the assistant
  /movie <id>       pick a movie
  /showtime <id>    pick a showtime of the movie
  /tickets <n>      choose how many tickets
  /seats            show the seat map
  /seat <A1|id>     select or deselect a seat
  /confirm          confirm the selected seats
  /book             place the booking
  /checkout         pay for the booking
  /reset            start over
  /quit             leave`

var errQuit = errors.New("quit")

// catalog resolves ids typed by the user.
type catalog interface {
	Movie(ctx context.Context, id uint64) (model.Movie, error)
	Showtime(ctx context.Context, id uint64) (model.Showtime, error)
}

type repl struct {
	sess    *session.Session
	catalog catalog
	in      io.Reader
	out     io.Writer
	shown   int // transcript messages already printed
}

func newREPL(s *session.Session, c catalog, in io.Reader, out io.Writer) *repl {
	return &repl{sess: s, catalog: c, in: in, out: out}
}

// Run reads lines until EOF, /quit or ctx is done.
func (r *repl) Run(ctx context.Context) error {
	r.flush()
	sc := bufio.NewScanner(r.in)
	fmt.Fprint(r.out, "> ")
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		err := r.handle(ctx, strings.TrimSpace(sc.Text()))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(r.out, "! %v\n", err)
		}
		r.flush()
		fmt.Fprint(r.out, "> ")
	}
	return sc.Err()
}

func (r *repl) handle(ctx context.Context, line string) error {
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, "/") {
		_, err := r.sess.Send(ctx, line)
		return err
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprintln(r.out, commandHelp)
		return nil
	case "movie":
		id, err := parseArg(arg)
		if err != nil {
			return err
		}
		m, err := r.catalog.Movie(ctx, id)
		if err != nil {
			return err
		}
		return r.sess.SelectMovie(ctx, m)
	case "showtime":
		id, err := parseArg(arg)
		if err != nil {
			return err
		}
		st, err := r.catalog.Showtime(ctx, id)
		if err != nil {
			return err
		}
		return r.sess.SelectShowtime(ctx, st)
	case "tickets":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("tickets: %q is not a number", arg)
		}
		return r.sess.SelectQuantity(ctx, n)
	case "seats":
		fmt.Fprint(r.out, seatMap(r.sess.Seats(), r.sess.SelectedSeats()))
		return nil
	case "seat":
		id, err := r.seatID(arg)
		if err != nil {
			return err
		}
		if err := r.sess.ToggleSeat(id); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "selected %d/%d: %s\n", len(r.sess.SelectedSeats()), r.sess.Quantity(), labels(r.sess.SelectedSeats()))
		return nil
	case "confirm":
		_, err := r.sess.ConfirmSeats(ctx)
		return err
	case "book":
		b, err := r.sess.Book(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Booking #%d created for %s. Use /checkout to pay.\n", b.ID, formatCents(b.TotalPrice))
		return nil
	case "checkout":
		b, err := r.sess.Checkout(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Booking #%d paid. Enjoy the movie!\n", b.ID)
		return nil
	case "reset":
		r.sess.Reset()
		fmt.Fprintln(r.out, "Starting over.")
		return nil
	}
	return fmt.Errorf("unknown command /%s (try /help)", cmd)
}

func parseArg(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an id", arg)
	}
	return id, nil
}

// seatID accepts a seat label such as "C4" or a numeric seat id.
func (r *repl) seatID(arg string) (uint64, error) {
	if id, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return id, nil
	}
	for _, s := range r.sess.Seats() {
		if strings.EqualFold(s.Label(), arg) {
			return s.ID, nil
		}
	}
	return 0, fmt.Errorf("no seat %q in this showtime", arg)
}

// flush prints transcript messages not yet shown.
func (r *repl) flush() {
	tr := r.sess.Transcript()
	for _, m := range tr[r.shown:] {
		if m.Sender == session.SenderAgent {
			fmt.Fprintf(r.out, "MovieBot: %s\n", m.Text)
			fmt.Fprint(r.out, describe(m))
		}
	}
	r.shown = len(tr)
	if replies := r.sess.QuickReplies(); len(replies) > 0 {
		texts := make([]string, len(replies))
		for i, q := range replies {
			texts[i] = q.Message
		}
		fmt.Fprintf(r.out, "  try: %s\n", strings.Join(texts, " | "))
	}
}

// describe renders the payload of an agent message.
func describe(m session.Message) string {
	var b strings.Builder
	switch data := m.Data.(type) {
	case []model.Movie:
		for _, mv := range data {
			fmt.Fprintf(&b, "  [%d] %s (%s) %s\n", mv.ID, mv.Title, mv.Rating, mv.Genres)
		}
	case chat.ShowtimeData:
		for _, st := range data.Showtimes {
			fmt.Fprintf(&b, "  [%d] %s %s\n", st.ID, st.Date, st.Time)
		}
	case session.SeatMap:
		b.WriteString(seatMap(data.Seats, nil))
	case session.Summary:
		fmt.Fprintf(&b, "  %s, %s %s at %s\n", data.Movie.Title, data.Showtime.Date, data.Showtime.Time, data.Theater.Name)
		fmt.Fprintf(&b, "  Seats: %s\n", labels(data.Seats))
		fmt.Fprintf(&b, "  Tickets (%d x %s): %s\n", data.Quantity, formatCents(session.TicketPrice), formatCents(data.TicketsTotal))
		fmt.Fprintf(&b, "  Booking fee: %s\n", formatCents(data.BookingFee))
		fmt.Fprintf(&b, "  Total: %s\n", formatCents(data.Total))
	case []int:
		parts := make([]string, len(data))
		for i, n := range data {
			parts[i] = strconv.Itoa(n)
		}
		fmt.Fprintf(&b, "  /tickets %s\n", strings.Join(parts, "|"))
	}
	return b.String()
}

// seatMap draws the grid: "o" free, "x" taken, "*" selected.
func seatMap(seats, selected []model.Seat) string {
	if len(seats) == 0 {
		return "  (no seats loaded)\n"
	}
	picked := make(map[uint64]bool, len(selected))
	for _, s := range selected {
		picked[s.ID] = true
	}
	rows := map[string][]model.Seat{}
	var order []string
	for _, s := range seats {
		if _, ok := rows[s.Row]; !ok {
			order = append(order, s.Row)
		}
		rows[s.Row] = append(rows[s.Row], s)
	}
	sort.Strings(order)

	var b strings.Builder
	b.WriteString("  SCREEN\n")
	for _, row := range order {
		fmt.Fprintf(&b, "  %s ", row)
		rs := rows[row]
		sort.Slice(rs, func(i, j int) bool { return rs[i].Number < rs[j].Number })
		for _, s := range rs {
			switch {
			case picked[s.ID]:
				b.WriteString("*")
			case s.IsAvailable:
				b.WriteString("o")
			default:
				b.WriteString("x")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func labels(seats []model.Seat) string {
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = s.Label()
	}
	return strings.Join(out, ", ")
}

func formatCents(c int) string {
	return fmt.Sprintf("$%d.%02d", c/100, c%100)
}
