package hotel

import "sync"

// SessionState is the authentication state of the console.
type SessionState int

const (
	StateAnonymous SessionState = iota
	StateAuthenticating
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Session holds the signed-in user and bearer token. It is an explicit
// object handed to collaborators (the API client reads the token through
// it) rather than ambient package state. User and token change together
// under one lock; there is no state where one is set without the other.
type Session struct {
	mu      sync.Mutex
	state   SessionState
	user    *User
	token   string
	lastErr error

	// attempt numbers login attempts so that an outcome arriving after a
	// logout or a newer attempt is discarded instead of applied.
	attempt uint64
}

func NewSession() *Session { return &Session{} }

// LoginAttempt ties a login outcome to the attempt that produced it.
type LoginAttempt struct {
	session *Session
	id      uint64
}

// BeginLogin moves the session to Authenticating and returns the handle
// used to apply the outcome. Starting a new attempt supersedes any
// in-flight one.
func (s *Session) BeginLogin() LoginAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt++
	s.state = StateAuthenticating
	s.lastErr = nil
	return LoginAttempt{session: s, id: s.attempt}
}

// Complete applies a successful backend response: user and token become
// visible atomically. Reports false when the attempt was superseded, in
// which case nothing is applied.
func (a LoginAttempt) Complete(user User, token string) bool {
	s := a.session
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.id != s.attempt || s.state != StateAuthenticating {
		return false
	}
	u := user
	s.user = &u
	s.token = token
	s.state = StateAuthenticated
	s.lastErr = nil
	return true
}

// Fail reverts a failed attempt to Anonymous, keeping the error for
// display. Existing session data was already cleared by BeginLogin's
// Authenticating state, so nothing partial survives.
func (a LoginAttempt) Fail(err error) bool {
	s := a.session
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.id != s.attempt || s.state != StateAuthenticating {
		return false
	}
	s.state = StateAnonymous
	s.user = nil
	s.token = ""
	s.lastErr = err
	return true
}

// Logout clears user and token together and supersedes any in-flight
// login attempt.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt++
	s.state = StateAnonymous
	s.user = nil
	s.token = ""
	s.lastErr = nil
}

// Resume installs a previously persisted user and token, e.g. on console
// restart.
func (s *Session) Resume(user User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt++
	u := user
	s.user = &u
	s.token = token
	s.state = StateAuthenticated
	s.lastErr = nil
}

// UpdateUser replaces the cached profile after a profile edit. No-op
// unless authenticated.
func (s *Session) UpdateUser(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return
	}
	u := user
	s.user = &u
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the signed-in user, if any.
func (s *Session) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated || s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Token implements TokenSource for the API client. Empty when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Err returns the error from the most recent failed login attempt.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Action names a console operation subject to role gating.
type Action string

const (
	ActionViewRooms       Action = "rooms.view"
	ActionManageRooms     Action = "rooms.manage"
	ActionViewBookings    Action = "bookings.view"
	ActionCreateBooking   Action = "bookings.create"
	ActionBookForOthers   Action = "bookings.createForOthers"
	ActionViewAllBookings Action = "bookings.viewAll"
	ActionViewUsers       Action = "users.view"
	ActionViewFullMetrics Action = "metrics.full"
)

// VisibleActions is a pure function of session state and role. Anonymous
// and in-flight sessions see nothing; ADMIN extends the USER set.
func VisibleActions(state SessionState, role Role) []Action {
	if state != StateAuthenticated {
		return nil
	}
	actions := []Action{
		ActionViewRooms,
		ActionViewBookings,
		ActionCreateBooking,
	}
	if role == RoleAdmin {
		actions = append(actions,
			ActionManageRooms,
			ActionBookForOthers,
			ActionViewAllBookings,
			ActionViewUsers,
			ActionViewFullMetrics,
		)
	}
	return actions
}

// Allows reports whether the current session may perform the action.
func (s *Session) Allows(action Action) bool {
	s.mu.Lock()
	state := s.state
	var role Role
	if s.user != nil {
		role = s.user.Role
	}
	s.mu.Unlock()

	for _, a := range VisibleActions(state, role) {
		if a == action {
			return true
		}
	}
	return false
}

// CanBookFor reports whether the session may create a booking owned by
// the given user. ADMIN may book for anyone; USER only for themselves.
func (s *Session) CanBookFor(userID int64) bool {
	user, ok := s.User()
	if !ok {
		return false
	}
	return user.Role == RoleAdmin || user.ID == userID
}
