package timeline

const (
	defaultStartYear = -800
	defaultEndYear   = 1900

	boundsStep   = 100
	boundsMargin = 100
)

// Ranged is anything that occupies a span of years.
type Ranged interface {
	Years() (start, end int)
}

// Bounds is the first and last displayed year.
type Bounds struct {
	StartYear int `json:"startYear"`
	EndYear   int `json:"endYear"`
}

// DefaultBounds is the range shown when there are no events.
func DefaultBounds() Bounds {
	return Bounds{StartYear: defaultStartYear, EndYear: defaultEndYear}
}

// ComputeBounds derives the visible year range from items. The earliest start
// is floored and the latest end ceiled to a century, then each side gets one
// more century of margin. Bounds are always recomputed, never patched.
func ComputeBounds[T Ranged](items []T) Bounds {
	if len(items) == 0 {
		return DefaultBounds()
	}
	minStart, maxEnd := items[0].Years()
	for _, it := range items[1:] {
		start, end := it.Years()
		if start < minStart {
			minStart = start
		}
		if end > maxEnd {
			maxEnd = end
		}
	}
	return Bounds{
		StartYear: floorDiv(minStart, boundsStep)*boundsStep - boundsMargin,
		EndYear:   ceilDiv(maxEnd, boundsStep)*boundsStep + boundsMargin,
	}
}

// floorDiv rounds toward negative infinity, unlike Go's / operator.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}
