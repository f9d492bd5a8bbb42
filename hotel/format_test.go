package hotel

import (
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{80, "$80.00"},
		{1234.5, "$1,234.50"},
		{99.5, "$99.50"},
		{1000000, "$1,000,000.00"},
		{-250, "-$250.00"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.amount); got != tc.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(25.0); got != "25.0%" {
		t.Errorf("got %q", got)
	}
	if got := FormatPercent(33.333); got != "33.3%" {
		t.Errorf("got %q", got)
	}
	if got := FormatPercent(0); got != "0.0%" {
		t.Errorf("got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)); got != "Mar 1, 2024" {
		t.Errorf("got %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("zero time must render empty, got %q", got)
	}
}
