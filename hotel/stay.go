package hotel

import (
	"math"
	"time"
)

// Stay arithmetic feeds live previews in the console while the user is
// still typing, so these functions default missing or unusable input to
// zero instead of returning errors.

// NightsBetween returns the number of nights between two calendar dates as
// the ceiling of the absolute day difference. Time of day is ignored.
// Returns 0 when either date is missing.
func NightsBetween(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0
	}
	diff := midnightUTC(checkOut).Sub(midnightUTC(checkIn)).Hours() / 24
	return int(math.Ceil(math.Abs(diff)))
}

// IsValidStayRange reports whether both dates are present and checkOut
// falls strictly after checkIn. Same-day checkout is invalid.
func IsValidStayRange(checkIn, checkOut time.Time) bool {
	if checkIn.IsZero() || checkOut.IsZero() {
		return false
	}
	return midnightUTC(checkOut).After(midnightUTC(checkIn))
}

// TotalPrice is NightsBetween times the nightly rate. A NaN or negative
// rate counts as zero. No rounding happens here; currency formatting is a
// presentation concern.
func TotalPrice(checkIn, checkOut time.Time, nightlyRate float64) float64 {
	if math.IsNaN(nightlyRate) || nightlyRate < 0 {
		nightlyRate = 0
	}
	return float64(NightsBetween(checkIn, checkOut)) * nightlyRate
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
