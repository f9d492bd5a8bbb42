package hotel

import (
	"errors"
	"testing"
)

// fields extracts FieldErrors from a Validate result, failing the test
// when the error has a different shape.
func fields(t *testing.T, err error) FieldErrors {
	t.Helper()
	if err == nil {
		return nil
	}
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %T: %v", err, err)
	}
	return fe
}

func TestCredentialsValidate(t *testing.T) {
	if err := (Credentials{Username: "alice", Password: "secret"}).Validate(); err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}

	fe := fields(t, Credentials{Username: "al", Password: ""}.Validate())
	if _, ok := fe["username"]; !ok {
		t.Errorf("short username not flagged")
	}
	if _, ok := fe["password"]; !ok {
		t.Errorf("empty password not flagged")
	}

	// Whitespace does not count toward the minimum length.
	fe = fields(t, Credentials{Username: "  a  ", Password: "x"}.Validate())
	if _, ok := fe["username"]; !ok {
		t.Errorf("padded username not flagged")
	}
}

func TestRegistrationFormValidate(t *testing.T) {
	valid := RegistrationForm{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "hunter2",
		ConfirmPassword: "hunter2",
		Role:            RoleUser,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	cases := []struct {
		name  string
		tweak func(*RegistrationForm)
		field string
	}{
		{"short username", func(f *RegistrationForm) { f.Username = "ab" }, "username"},
		{"missing at sign", func(f *RegistrationForm) { f.Email = "alice.example.com" }, "email"},
		{"missing domain dot", func(f *RegistrationForm) { f.Email = "alice@example" }, "email"},
		{"whitespace in email", func(f *RegistrationForm) { f.Email = "a lice@example.com" }, "email"},
		{"short password", func(f *RegistrationForm) { f.Password = "abc"; f.ConfirmPassword = "abc" }, "password"},
		{"mismatched confirmation", func(f *RegistrationForm) { f.ConfirmPassword = "hunter3" }, "confirmPassword"},
		{"unknown role", func(f *RegistrationForm) { f.Role = Role("ROOT") }, "role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := valid
			tc.tweak(&form)
			fe := fields(t, form.Validate())
			if _, ok := fe[tc.field]; !ok {
				t.Fatalf("field %q not flagged, got %v", tc.field, fe)
			}
		})
	}
}

func TestRegistrationFormCollectsAllErrors(t *testing.T) {
	fe := fields(t, RegistrationForm{Username: "a", Email: "nope", Password: "x", ConfirmPassword: "y"}.Validate())
	for _, field := range []string{"username", "email", "password", "confirmPassword"} {
		if _, ok := fe[field]; !ok {
			t.Errorf("field %q missing from %v", field, fe)
		}
	}
}

func TestRoomFormValidate(t *testing.T) {
	valid := RoomForm{RoomNumber: "A-101", Type: "Deluxe Suite", Price: 250, Available: true}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	fe := fields(t, RoomForm{RoomNumber: "10 1", Type: "", Price: -5}.Validate())
	for _, field := range []string{"roomNumber", "type", "price"} {
		if _, ok := fe[field]; !ok {
			t.Errorf("field %q missing from %v", field, fe)
		}
	}

	// Free rooms are fine; negative prices are not.
	free := valid
	free.Price = 0
	if err := free.Validate(); err != nil {
		t.Errorf("zero price rejected: %v", err)
	}
}

func TestBookingFormValidate(t *testing.T) {
	checkIn := testDate(t, "2024-03-01")
	checkOut := testDate(t, "2024-03-04")

	valid := BookingForm{UserID: 1, RoomID: 2, CheckIn: checkIn, CheckOut: checkOut}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	fe := fields(t, BookingForm{}.Validate())
	for _, field := range []string{"user", "room", "dates"} {
		if _, ok := fe[field]; !ok {
			t.Errorf("field %q missing from %v", field, fe)
		}
	}

	reversed := BookingForm{UserID: 1, RoomID: 2, CheckIn: checkOut, CheckOut: checkIn}
	fe = fields(t, reversed.Validate())
	if fe["dates"] != "check-out date must be after check-in date" {
		t.Errorf("reversed range message = %q", fe["dates"])
	}

	same := BookingForm{UserID: 1, RoomID: 2, CheckIn: checkIn, CheckOut: checkIn}
	if fe := fields(t, same.Validate()); fe["dates"] == "" {
		t.Errorf("zero-night stay not flagged")
	}
}

func TestProfileFormValidate(t *testing.T) {
	// Leaving the password alone skips the password rules entirely.
	if err := (ProfileForm{Username: "alice", Email: "alice@example.com"}).Validate(); err != nil {
		t.Fatalf("profile without password change rejected: %v", err)
	}

	fe := fields(t, ProfileForm{Username: "alice", NewPassword: "abc", ConfirmPassword: "abd"}.Validate())
	for _, field := range []string{"newPassword", "confirmPassword", "currentPassword"} {
		if _, ok := fe[field]; !ok {
			t.Errorf("field %q missing from %v", field, fe)
		}
	}

	ok := ProfileForm{
		Username:        "alice",
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
		ConfirmPassword: "new-secret",
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid password change rejected: %v", err)
	}
}

func TestFieldErrorsMessage(t *testing.T) {
	fe := FieldErrors{"b": "second", "a": "first"}
	if got := fe.Error(); got != "a: first; b: second" {
		t.Fatalf("Error() = %q", got)
	}
}
