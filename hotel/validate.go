package hotel

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Validation rules the forms enforce before any network call.
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	roomNumberPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
)

// FieldErrors maps form field names to human-readable problems. A form
// that fails local validation never reaches the network.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Credentials is the login form.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) Validate() error {
	fe := FieldErrors{}
	if len(strings.TrimSpace(c.Username)) < MinUsernameLength {
		fe["username"] = fmt.Sprintf("username must be at least %d characters", MinUsernameLength)
	}
	if c.Password == "" {
		fe["password"] = "password is required"
	}
	return fe.orNil()
}

// RegistrationForm is the account creation form. Registration is a sibling
// of login and never changes session state.
type RegistrationForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Role            Role
}

func (f RegistrationForm) Validate() error {
	fe := FieldErrors{}
	if len(strings.TrimSpace(f.Username)) < MinUsernameLength {
		fe["username"] = fmt.Sprintf("username must be at least %d characters", MinUsernameLength)
	}
	if !emailPattern.MatchString(f.Email) {
		fe["email"] = "please enter a valid email address"
	}
	if len(f.Password) < MinPasswordLength {
		fe["password"] = fmt.Sprintf("password must be at least %d characters", MinPasswordLength)
	}
	if f.Password != f.ConfirmPassword {
		fe["confirmPassword"] = "passwords do not match"
	}
	if f.Role != RoleUser && f.Role != RoleAdmin {
		fe["role"] = "role must be USER or ADMIN"
	}
	return fe.orNil()
}

// RoomForm carries the fields of the room create/edit form.
type RoomForm struct {
	RoomNumber string  `json:"roomNumber"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Available  bool    `json:"available"`
}

func (f RoomForm) Validate() error {
	fe := FieldErrors{}
	if !roomNumberPattern.MatchString(strings.TrimSpace(f.RoomNumber)) {
		fe["roomNumber"] = "room number may only contain letters, digits, and dashes"
	}
	if strings.TrimSpace(f.Type) == "" {
		fe["type"] = "room type is required"
	}
	if math.IsNaN(f.Price) || f.Price < 0 {
		fe["price"] = "price must be zero or more"
	}
	return fe.orNil()
}

// BookingForm carries the fields of the new-booking form. Room
// availability for the requested dates is not checked here; that ruling
// belongs to the backend.
type BookingForm struct {
	UserID   int64
	RoomID   int64
	CheckIn  Date
	CheckOut Date
}

func (f BookingForm) Validate() error {
	fe := FieldErrors{}
	if f.UserID == 0 {
		fe["user"] = "please select a user"
	}
	if f.RoomID == 0 {
		fe["room"] = "please select a room"
	}
	switch {
	case f.CheckIn.IsZero() || f.CheckOut.IsZero():
		fe["dates"] = "please select check-in and check-out dates"
	case !IsValidStayRange(f.CheckIn.Time, f.CheckOut.Time):
		fe["dates"] = "check-out date must be after check-in date"
	}
	return fe.orNil()
}

// ProfileForm carries the profile edit fields. Password fields are only
// validated when the user is actually changing the password.
type ProfileForm struct {
	Username        string
	Email           string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

func (f ProfileForm) Validate() error {
	fe := FieldErrors{}
	if len(strings.TrimSpace(f.Username)) < MinUsernameLength {
		fe["username"] = fmt.Sprintf("username must be at least %d characters", MinUsernameLength)
	}
	if f.Email != "" && !emailPattern.MatchString(f.Email) {
		fe["email"] = "please enter a valid email address"
	}
	if f.NewPassword != "" {
		if len(f.NewPassword) < MinPasswordLength {
			fe["newPassword"] = fmt.Sprintf("password must be at least %d characters", MinPasswordLength)
		}
		if f.NewPassword != f.ConfirmPassword {
			fe["confirmPassword"] = "passwords do not match"
		}
		if f.CurrentPassword == "" {
			fe["currentPassword"] = "current password required to change password"
		}
	}
	return fe.orNil()
}
