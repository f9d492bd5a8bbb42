package hotel

import (
	"fmt"
	"strings"
	"time"
)

// Role controls which console actions a signed-in user may perform.
// ADMIN sees a strict superset of what USER sees.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// BookingStatus is the lifecycle state of a booking. Transitions are
// BOOKED -> COMPLETED or BOOKED -> CANCELLED; the backend is the authority
// on whether a transition is accepted.
type BookingStatus string

const (
	StatusBooked    BookingStatus = "BOOKED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// User is the profile the backend returns for an account. The bearer token
// is never part of the model; it lives in the Session.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Room is a bookable hotel room.
type Room struct {
	ID         int64   `json:"id"`
	RoomNumber string  `json:"roomNumber"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Available  bool    `json:"available"`
}

// Booking is a stay reservation. CheckOutDate is exclusive and must be
// strictly after CheckInDate. List responses nest the referenced room and
// user; the flat IDs may be absent when the nested objects are present.
type Booking struct {
	ID           int64         `json:"id"`
	UserID       int64         `json:"userId"`
	RoomID       int64         `json:"roomId"`
	CheckInDate  Date          `json:"checkInDate"`
	CheckOutDate Date          `json:"checkOutDate"`
	Status       BookingStatus `json:"status"`
	Room         *Room         `json:"room,omitempty"`
	User         *User         `json:"user,omitempty"`
}

// Nights is the stay duration of the booking in whole nights.
func (b *Booking) Nights() int {
	return NightsBetween(b.CheckInDate.Time, b.CheckOutDate.Time)
}

// TotalPrice is nights times the nightly rate of the booked room. A missing
// room reference counts as a zero rate so previews never fail.
func (b *Booking) TotalPrice() float64 {
	var rate float64
	if b.Room != nil {
		rate = b.Room.Price
	}
	return TotalPrice(b.CheckInDate.Time, b.CheckOutDate.Time, rate)
}

// RoomLabel is a short display name for the booked room.
func (b *Booking) RoomLabel() string {
	if b.Room == nil {
		return fmt.Sprintf("#%d", b.RoomID)
	}
	return b.Room.RoomNumber + " - " + b.Room.Type
}

// GuestName is the username of the booking owner, if known.
func (b *Booking) GuestName() string {
	if b.User == nil {
		return fmt.Sprintf("#%d", b.UserID)
	}
	return b.User.Username
}

const dateLayout = "2006-01-02"

// Date is a calendar date. The backend exchanges dates as "YYYY-MM-DD";
// some deployments append a time component, which is accepted and dropped.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return Date{t}, nil
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t
	return nil
}

// DefaultRoomTypes mirrors the room categories known to the backend's
// database. The type field itself is free-form; this list only feeds the
// console prompt.
var DefaultRoomTypes = []string{
	"Single",
	"Double",
	"Twin",
	"Suite",
	"Deluxe",
	"Deluxe Single",
	"Deluxe Double",
	"Deluxe Twin",
	"Family Room",
	"Executive Single",
	"Executive Double",
	"Executive Suite",
	"Business Suite",
	"Junior Suite",
	"Luxury Suite",
	"Presidential Suite",
	"Honeymoon Suite",
	"Penthouse Suite",
	"Royal Suite",
	"Studio Apartment",
	"One Bedroom Suite",
	"Two Bedroom Suite",
	"Garden View Room",
	"Ocean View Room",
	"Mountain View Room",
	"Accessible Room",
	"Economy Single",
	"Economy Double",
	"Budget Twin",
	"Dormitory 4-Bed",
	"Dormitory 6-Bed",
	"Dormitory 8-Bed",
}
