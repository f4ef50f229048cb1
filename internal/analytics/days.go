package analytics

import "time"

const dayLayout = "2006-01-02"

// civilDay truncates t to midnight UTC of its calendar day so that day arithmetic is exact.
// Stored dates are already calendar dates and pass a nil loc; instants such as "now" pass the
// analytics timezone.
func civilDay(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// dateBefore treats a missing date as earlier than every real date.
func dateBefore(a, b *time.Time) bool {
	switch {
	case b == nil:
		return false
	case a == nil:
		return true
	default:
		return a.Before(*b)
	}
}
