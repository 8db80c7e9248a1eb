package timeline

import (
	"fmt"
	"math"
	"strconv"
)

// FormatYear renders a signed year for display. Year 0 is shown as 1 since
// there is no year zero on the calendar.
func FormatYear(year int) string {
	switch {
	case year == 0:
		return "1"
	case year < 0:
		return "B.C. " + strconv.Itoa(-year)
	default:
		return strconv.Itoa(year)
	}
}

// FormatSpan renders "start - end".
func FormatSpan(start, end int) string {
	return FormatYear(start) + " - " + FormatYear(end)
}

// Century names the century that contains year, e.g. "6th century BC".
func Century(year float64) string {
	if year < 1 {
		n := int(math.Ceil(math.Abs(year-1) / 100))
		return fmt.Sprintf("%s century BC", ordinal(n))
	}
	n := int(math.Ceil(year / 100))
	return fmt.Sprintf("%s century", ordinal(n))
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
