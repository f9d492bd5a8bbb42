package hotel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is where a locally running backend serves its API.
const DefaultBaseURL = "http://localhost:8080/api"

const requestTimeout = 10 * time.Second

// ErrorCategory buckets an APIError by what caused it, derived from the
// HTTP status code.
type ErrorCategory string

const (
	// CategoryAuth covers 401/403: the session is invalid or the action
	// is not permitted for this role.
	CategoryAuth ErrorCategory = "auth"
	// CategoryNotFound covers 404.
	CategoryNotFound ErrorCategory = "not_found"
	// CategoryBusiness covers the remaining 4xx: the backend rejected the
	// request on its own rules (e.g. room unavailable for the dates).
	CategoryBusiness ErrorCategory = "business"
	// CategoryServer covers 5xx and undecodable success bodies.
	CategoryServer ErrorCategory = "server"
	// CategoryNetwork means the request never produced a response.
	CategoryNetwork ErrorCategory = "network"
)

// APIError is a rejection from the backend or the transport. Message is
// taken verbatim from the response's error/message field when present and
// is meant for direct display.
type APIError struct {
	Status   int
	Category ErrorCategory
	Message  string
}

func (e *APIError) Error() string { return e.Message }

func categorize(status int) ErrorCategory {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return CategoryAuth
	case status == http.StatusNotFound:
		return CategoryNotFound
	case status >= 400 && status < 500:
		return CategoryBusiness
	default:
		return CategoryServer
	}
}

// TokenSource supplies the current bearer token; empty means signed out.
// *Session satisfies this.
type TokenSource interface {
	Token() string
}

// Client calls the hotel backend's REST API. It holds no state of its own
// beyond the base URL; the token comes from the injected TokenSource on
// every request.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		tokens:  tokens,
	}
}

// AuthResponse is the body of a successful login or register call.
type AuthResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Token    string `json:"token"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// BookingUpdate is the request body for creating or updating a booking.
type BookingUpdate struct {
	UserID       int64         `json:"userId"`
	RoomID       int64         `json:"roomId"`
	CheckInDate  Date          `json:"checkInDate"`
	CheckOutDate Date          `json:"checkOutDate"`
	Status       BookingStatus `json:"status"`
}

// ProfileUpdate is the request body for updating a user. Password is only
// sent when the user is changing it.
type ProfileUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, form RegistrationForm) (*AuthResponse, error) {
	req := registerRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	}
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Rooms
// ---------------------------------------------------------------------------

func (c *Client) ListRooms(ctx context.Context) ([]*Room, error) {
	var out []*Room
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRoom(ctx context.Context, id int64) (*Room, error) {
	var out Room
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/rooms/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRoom(ctx context.Context, form RoomForm) (*Room, error) {
	var out Room
	if err := c.do(ctx, http.MethodPost, "/rooms", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRoom(ctx context.Context, id int64, form RoomForm) (*Room, error) {
	var out Room
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/rooms/%d", id), form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRoom(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/rooms/%d", id), nil, nil)
}

// ---------------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------------

func (c *Client) ListBookings(ctx context.Context) ([]*Booking, error) {
	var out []*Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetBooking(ctx context.Context, id int64) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookings/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBooking(ctx context.Context, req BookingUpdate) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id int64, req BookingUpdate) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/bookings/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookings/%d", id), nil, nil)
}

// ListUserBookings returns the bookings owned by one user.
func (c *Client) ListUserBookings(ctx context.Context, userID int64) ([]*Booking, error) {
	var out []*Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookings/user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRoomBookings returns the bookings placed against one room.
func (c *Client) ListRoomBookings(ctx context.Context, roomID int64) ([]*Booking, error) {
	var out []*Booking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookings/room/%d", roomID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func (c *Client) ListUsers(ctx context.Context) ([]*User, error) {
	var out []*User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, update ProfileUpdate) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

// FindUserByUsername scans the user list for an exact username match. The
// auth endpoint does not always include the numeric ID, so login resolves
// it through this call.
func (c *Client) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	users, err := c.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, &APIError{
		Status:   http.StatusNotFound,
		Category: CategoryNotFound,
		Message:  fmt.Sprintf("user %q not found", username),
	}
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{
			Category: CategoryNetwork,
			Message:  "network error: please check your connection",
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{
			Status:   resp.StatusCode,
			Category: CategoryServer,
			Message:  fmt.Sprintf("unexpected response shape: %v", err),
		}
	}
	return nil
}

// errorFromResponse builds an APIError from a non-2xx response. The
// message is the payload's "error" field, then "message", then a plain
// "HTTP <status>" fallback — never a locally reinterpreted rule.
func errorFromResponse(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(raw, &payload)

	message := payload.Error
	if message == "" {
		message = payload.Message
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return &APIError{
		Status:   resp.StatusCode,
		Category: categorize(resp.StatusCode),
		Message:  message,
	}
}
