package hotel

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateUnmarshalVariants(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain date", `"2024-03-01"`, "2024-03-01"},
		{"with time component", `"2024-03-01T14:30:00Z"`, "2024-03-01"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tc.in), &d); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if d.String() != tc.want {
				t.Fatalf("got %q, want %q", d.String(), tc.want)
			}
		})
	}

	var d Date
	if err := json.Unmarshal([]byte(`"03/01/2024"`), &d); err == nil {
		t.Fatalf("unsupported layout must be rejected")
	}
}

func TestDateMarshal(t *testing.T) {
	d := testDate(t, "2024-03-01")
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2024-03-01"` {
		t.Fatalf("got %s", out)
	}

	out, err = json.Marshal(Date{})
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(out) != `null` {
		t.Fatalf("zero date must marshal as null, got %s", out)
	}
}

func TestDateOf(t *testing.T) {
	d := DateOf(time.Date(2024, 3, 1, 23, 45, 0, 0, time.FixedZone("X", 3600)))
	if d.String() != "2024-03-01" {
		t.Fatalf("got %q", d.String())
	}
}

func TestBookingDerivedValues(t *testing.T) {
	b := &Booking{
		ID:           1,
		UserID:       5,
		RoomID:       3,
		CheckInDate:  testDate(t, "2024-03-01"),
		CheckOutDate: testDate(t, "2024-03-04"),
		Status:       StatusBooked,
		Room:         &Room{ID: 3, RoomNumber: "101", Type: "Single", Price: 100},
		User:         &User{ID: 5, Username: "dave"},
	}
	if b.Nights() != 3 {
		t.Fatalf("nights = %d", b.Nights())
	}
	if b.TotalPrice() != 300.00 {
		t.Fatalf("total = %v", b.TotalPrice())
	}
	if b.RoomLabel() != "101 - Single" {
		t.Fatalf("room label = %q", b.RoomLabel())
	}
	if b.GuestName() != "dave" {
		t.Fatalf("guest = %q", b.GuestName())
	}

	// Without nested references the labels fall back to IDs and the
	// total to zero.
	bare := &Booking{ID: 2, UserID: 5, RoomID: 3,
		CheckInDate: testDate(t, "2024-03-01"), CheckOutDate: testDate(t, "2024-03-04")}
	if bare.RoomLabel() != "#3" || bare.GuestName() != "#5" {
		t.Fatalf("fallback labels = %q / %q", bare.RoomLabel(), bare.GuestName())
	}
	if bare.TotalPrice() != 0 {
		t.Fatalf("total without room = %v", bare.TotalPrice())
	}
}
