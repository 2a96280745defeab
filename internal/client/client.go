// Package client is a typed HTTP client for the booking API.  It
// satisfies session.Backend so a chat session can run against a remote
// server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/movie-chat-booking/internal/chat"
	"github.com/iliyamo/movie-chat-booking/internal/model"
)

// ErrNotFound is matched by errors for 404 responses.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response.  SeatID is set when a booking was
// rejected because of a seat.
type APIError struct {
	Status  int
	Message string
	SeatID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client talks to one API server.
type Client struct {
	base  string
	http  *http.Client
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithToken sends token as a Bearer credential on every request.
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

// New returns a client for the server at baseURL, e.g.
// "http://localhost:5000".  The /api prefix is added by the client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/") + "/api",
		http: &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetToken replaces the Bearer credential, e.g. after Login.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
			SeatID  any    `json:"seatId"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&msg); err == nil {
			apiErr.Message = msg.Message
			if msg.SeatID != nil {
				apiErr.SeatID = fmt.Sprint(msg.SeatID)
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// call runs one request and decodes the response body into a T.
func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	err := c.do(ctx, method, path, body, &out)
	return out, err
}

func (c *Client) Movies(ctx context.Context) ([]model.Movie, error) {
	return call[[]model.Movie](ctx, c, http.MethodGet, "/movies", nil)
}

func (c *Client) Movie(ctx context.Context, id uint64) (model.Movie, error) {
	return call[model.Movie](ctx, c, http.MethodGet, "/movies/"+strconv.FormatUint(id, 10), nil)
}

// SearchMovies finds movies whose title or genres contain q.
func (c *Client) SearchMovies(ctx context.Context, q string) ([]model.Movie, error) {
	return call[[]model.Movie](ctx, c, http.MethodGet, "/search/movies?q="+url.QueryEscape(q), nil)
}

func (c *Client) Theater(ctx context.Context, id uint64) (model.Theater, error) {
	return call[model.Theater](ctx, c, http.MethodGet, "/theaters/"+strconv.FormatUint(id, 10), nil)
}

// Showtimes lists the showtimes of a movie.
func (c *Client) Showtimes(ctx context.Context, movieID uint64) ([]model.Showtime, error) {
	return call[[]model.Showtime](ctx, c, http.MethodGet, "/showtimes?movieId="+strconv.FormatUint(movieID, 10), nil)
}

func (c *Client) Showtime(ctx context.Context, id uint64) (model.Showtime, error) {
	return call[model.Showtime](ctx, c, http.MethodGet, "/showtimes/"+strconv.FormatUint(id, 10), nil)
}

// Seats returns the seat map of a showtime.
func (c *Client) Seats(ctx context.Context, showtimeID uint64) ([]model.Seat, error) {
	return call[[]model.Seat](ctx, c, http.MethodGet, "/seats?showtimeId="+strconv.FormatUint(showtimeID, 10), nil)
}

// Chat sends one free-text message to the assistant.
func (c *Client) Chat(ctx context.Context, message string) (chat.Response, error) {
	return call[chat.Response](ctx, c, http.MethodPost, "/chat", map[string]string{"message": message})
}

// CreateBooking books seats.  A seat conflict comes back as an *APIError
// with SeatID set.
func (c *Client) CreateBooking(ctx context.Context, req model.BookingRequest) (model.Booking, error) {
	return call[model.Booking](ctx, c, http.MethodPost, "/bookings", req)
}

func (c *Client) Booking(ctx context.Context, id uint64) (model.Booking, error) {
	return call[model.Booking](ctx, c, http.MethodGet, "/bookings/"+strconv.FormatUint(id, 10), nil)
}

// CompleteBooking marks a booking as checked out.
func (c *Client) CompleteBooking(ctx context.Context, id uint64) (model.Booking, error) {
	return call[model.Booking](ctx, c, http.MethodPatch, "/bookings/"+strconv.FormatUint(id, 10)+"/complete", nil)
}

// AuthResult is the body returned by register and login.
type AuthResult struct {
	User   model.User `json:"user"`
	Access struct {
		Token   string    `json:"token"`
		Expires time.Time `json:"expires"`
	} `json:"access"`
}

// Register creates an account and adopts its token.
func (c *Client) Register(ctx context.Context, username, password string) (AuthResult, error) {
	return c.auth(ctx, "/auth/register", username, password)
}

// Login signs in and adopts the returned token.
func (c *Client) Login(ctx context.Context, username, password string) (AuthResult, error) {
	return c.auth(ctx, "/auth/login", username, password)
}

func (c *Client) auth(ctx context.Context, path, username, password string) (AuthResult, error) {
	var out AuthResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return AuthResult{}, err
	}
	c.token = out.Access.Token
	return out, nil
}
