package hotel

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatCurrency renders an amount as US dollars with grouped thousands,
// e.g. 1234.5 -> "$1,234.50".
func FormatCurrency(amount float64) string {
	s := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	if amount < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteString(frac)
	return b.String()
}

// FormatPercent renders a rate with one decimal, e.g. 25.0 -> "25.0%".
func FormatPercent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}

// FormatDate renders a calendar date for display, e.g. "Mar 1, 2024".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
