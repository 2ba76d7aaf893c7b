package report

import (
	"fmt"
	"math"
)

// FormatCurrency renders a dollar amount the way the assessment screens
// do: $1.1M above a million, $250K above a thousand, whole dollars below.
func FormatCurrency(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("$%.1fM", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("$%dK", int(math.Round(amount/1_000)))
	default:
		return fmt.Sprintf("$%d", int(math.Round(amount)))
	}
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
