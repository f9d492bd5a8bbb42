package hotel

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotAuthenticated means the command needs a signed-in session.
	ErrNotAuthenticated = errors.New("not signed in")
	// ErrForbidden means the signed-in role may not perform the action.
	ErrForbidden = errors.New("you are not authorized to perform this action")
	// ErrLoginSuperseded means a newer login or a logout overtook the
	// attempt before its response arrived; the response was discarded.
	ErrLoginSuperseded = errors.New("login attempt superseded")
)

// Manager is the façade the console drives. It owns the API client, the
// session state machine, and the local session store, and keeps the three
// consistent across every operation.
type Manager struct {
	client  *Client
	session *Session
	store   *Store
}

// NewManager opens the session store at storePath and builds a client for
// the backend at baseURL.
func NewManager(baseURL, storePath string) (*Manager, error) {
	store, err := NewStore(storePath)
	if err != nil {
		return nil, err
	}
	session := NewSession()
	return &Manager{
		client:  NewClient(baseURL, session),
		session: session,
		store:   store,
	}, nil
}

// Close closes the session store.
func (m *Manager) Close() error { return m.store.Close() }

// Session exposes the state machine for display decisions (whoami, action
// visibility). Transitions still only happen through Manager operations.
func (m *Manager) Session() *Session { return m.session }

// Restore resumes a session persisted by a previous run, if one exists.
func (m *Manager) Restore() error {
	user, token, err := m.store.LoadSession()
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	m.session.Resume(*user, token)
	return nil
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

// Login validates the credentials locally, authenticates against the
// backend, and persists the session. A local validation failure never
// reaches the network; a backend failure leaves the session Anonymous and
// the stored session untouched.
func (m *Manager) Login(ctx context.Context, username, password string) (User, error) {
	creds := Credentials{Username: username, Password: password}
	if err := creds.Validate(); err != nil {
		return User{}, err
	}

	attempt := m.session.BeginLogin()
	auth, err := m.client.Login(ctx, username, password)
	if err != nil {
		attempt.Fail(err)
		return User{}, err
	}

	user := User{ID: auth.ID, Username: auth.Username, Email: auth.Email, Role: auth.Role}
	if !attempt.Complete(user, auth.Token) {
		return User{}, ErrLoginSuperseded
	}

	if user.ID == 0 {
		// Older backends omit the numeric ID from the auth payload;
		// resolve it from the user list now that the token is active.
		found, err := m.client.FindUserByUsername(ctx, user.Username)
		if err != nil {
			m.session.Logout()
			return User{}, fmt.Errorf("fetch user information: %w", err)
		}
		user.ID = found.ID
		m.session.UpdateUser(user)
	}

	if err := m.store.SaveSession(user, auth.Token); err != nil {
		return user, fmt.Errorf("persist session: %w", err)
	}
	return user, nil
}

// Register creates an account. The session state does not change; on
// success the console returns to the login prompt. A mismatched password
// confirmation (or any other local failure) never issues a network call.
func (m *Manager) Register(ctx context.Context, form RegistrationForm) error {
	if form.Role == "" {
		form.Role = RoleUser
	}
	if err := form.Validate(); err != nil {
		return err
	}
	_, err := m.client.Register(ctx, form)
	return err
}

// Logout clears the in-memory session and the persisted one together.
func (m *Manager) Logout() error {
	m.session.Logout()
	return m.store.ClearSession()
}

// ---------------------------------------------------------------------------
// Rooms
// ---------------------------------------------------------------------------

func (m *Manager) ListRooms(ctx context.Context) ([]*Room, error) {
	if !m.session.Allows(ActionViewRooms) {
		return nil, ErrNotAuthenticated
	}
	return m.client.ListRooms(ctx)
}

// SearchRooms filters the room list by a case-insensitive substring match
// on room number or type.
func (m *Manager) SearchRooms(ctx context.Context, term string) ([]*Room, error) {
	rooms, err := m.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rooms, nil
	}
	var matched []*Room
	for _, r := range rooms {
		if strings.Contains(strings.ToLower(r.RoomNumber), term) ||
			strings.Contains(strings.ToLower(r.Type), term) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// AvailableRooms returns only the rooms open for booking.
func (m *Manager) AvailableRooms(ctx context.Context) ([]*Room, error) {
	rooms, err := m.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	var open []*Room
	for _, r := range rooms {
		if r.Available {
			open = append(open, r)
		}
	}
	return open, nil
}

func (m *Manager) CreateRoom(ctx context.Context, form RoomForm) (*Room, error) {
	if !m.session.Allows(ActionManageRooms) {
		return nil, ErrForbidden
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return m.client.CreateRoom(ctx, form)
}

func (m *Manager) UpdateRoom(ctx context.Context, id int64, form RoomForm) (*Room, error) {
	if !m.session.Allows(ActionManageRooms) {
		return nil, ErrForbidden
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return m.client.UpdateRoom(ctx, id, form)
}

func (m *Manager) DeleteRoom(ctx context.Context, id int64) error {
	if !m.session.Allows(ActionManageRooms) {
		return ErrForbidden
	}
	return m.client.DeleteRoom(ctx, id)
}

func (m *Manager) GetRoom(ctx context.Context, id int64) (*Room, error) {
	if !m.session.Allows(ActionViewRooms) {
		return nil, ErrNotAuthenticated
	}
	return m.client.GetRoom(ctx, id)
}

// ---------------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------------

// ListBookings returns every booking for ADMIN and only the caller's own
// bookings for USER.
func (m *Manager) ListBookings(ctx context.Context) ([]*Booking, error) {
	user, ok := m.session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if user.Role == RoleAdmin {
		return m.client.ListBookings(ctx)
	}
	return m.client.ListUserBookings(ctx, user.ID)
}

// CreateBooking validates the form locally and submits it. A zero UserID
// defaults to the caller; USER may only book for themselves. Whether the
// room is actually free for the dates is the backend's ruling, surfaced
// verbatim.
func (m *Manager) CreateBooking(ctx context.Context, form BookingForm) (*Booking, error) {
	user, ok := m.session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if form.UserID == 0 {
		form.UserID = user.ID
	}
	if !m.session.CanBookFor(form.UserID) {
		return nil, ErrForbidden
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return m.client.CreateBooking(ctx, BookingUpdate{
		UserID:       form.UserID,
		RoomID:       form.RoomID,
		CheckInDate:  form.CheckIn,
		CheckOutDate: form.CheckOut,
		Status:       StatusBooked,
	})
}

// CancelBooking deletes the booking. Ownership checks are the backend's.
func (m *Manager) CancelBooking(ctx context.Context, id int64) error {
	if m.session.State() != StateAuthenticated {
		return ErrNotAuthenticated
	}
	return m.client.DeleteBooking(ctx, id)
}

// SetBookingStatus moves a BOOKED booking to COMPLETED or CANCELLED. The
// console only offers these transitions for BOOKED rows; the backend
// remains the authority and may still reject the update.
func (m *Manager) SetBookingStatus(ctx context.Context, id int64, status BookingStatus) (*Booking, error) {
	if m.session.State() != StateAuthenticated {
		return nil, ErrNotAuthenticated
	}
	if status != StatusCompleted && status != StatusCancelled {
		return nil, fmt.Errorf("cannot move a booking to %s", status)
	}

	booking, err := m.client.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != StatusBooked {
		return nil, fmt.Errorf("booking %d is %s; only BOOKED bookings can change status", id, booking.Status)
	}

	update := BookingUpdate{
		UserID:       booking.UserID,
		RoomID:       booking.RoomID,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
		Status:       status,
	}
	if update.UserID == 0 && booking.User != nil {
		update.UserID = booking.User.ID
	}
	if update.RoomID == 0 && booking.Room != nil {
		update.RoomID = booking.Room.ID
	}
	return m.client.UpdateBooking(ctx, id, update)
}

// ---------------------------------------------------------------------------
// Users & profile
// ---------------------------------------------------------------------------

func (m *Manager) ListUsers(ctx context.Context) ([]*User, error) {
	if !m.session.Allows(ActionViewUsers) {
		return nil, ErrForbidden
	}
	return m.client.ListUsers(ctx)
}

// ListRoomBookings returns the bookings placed against one room, for the
// admin room detail view.
func (m *Manager) ListRoomBookings(ctx context.Context, roomID int64) ([]*Booking, error) {
	if !m.session.Allows(ActionViewAllBookings) {
		return nil, ErrForbidden
	}
	return m.client.ListRoomBookings(ctx, roomID)
}

// DeleteUser removes an account. Admin only, and never the signed-in one.
func (m *Manager) DeleteUser(ctx context.Context, id int64) (*User, error) {
	if !m.session.Allows(ActionViewUsers) {
		return nil, ErrForbidden
	}
	if self, ok := m.session.User(); ok && self.ID == id {
		return nil, fmt.Errorf("cannot delete the account you are signed in with")
	}
	user, err := m.client.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.client.DeleteUser(ctx, id); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the profile form to the signed-in user and keeps
// the session and the stored profile in step with the backend's answer.
func (m *Manager) UpdateProfile(ctx context.Context, form ProfileForm) (User, error) {
	user, ok := m.session.User()
	if !ok {
		return User{}, ErrNotAuthenticated
	}
	if err := form.Validate(); err != nil {
		return User{}, err
	}

	updated, err := m.client.UpdateUser(ctx, user.ID, ProfileUpdate{
		Username: form.Username,
		Email:    form.Email,
		Password: form.NewPassword,
	})
	if err != nil {
		return User{}, err
	}

	user.Username = updated.Username
	user.Email = updated.Email
	m.session.UpdateUser(user)
	if err := m.store.SaveSession(user, m.session.Token()); err != nil {
		return user, fmt.Errorf("persist session: %w", err)
	}
	return user, nil
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

// DashboardData is one wholesale snapshot of rooms and bookings; nothing
// here is patched incrementally.
type DashboardData struct {
	Metrics Metrics
	Recent  []*Booking
}

const recentBookingCount = 5

// Dashboard fetches rooms plus the role-appropriate booking list and
// derives the aggregate metrics from them.
func (m *Manager) Dashboard(ctx context.Context) (*DashboardData, error) {
	rooms, err := m.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := m.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardData{
		Metrics: AggregateMetrics(bookings, rooms),
		Recent:  RecentBookings(bookings, recentBookingCount),
	}, nil
}
