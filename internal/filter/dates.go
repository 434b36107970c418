package filter

import (
	"strings"
	"time"
)

// ParseDate parses a MM/dd/yyyy filter value as midnight UTC.
func ParseDate(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, strings.TrimSpace(value), time.UTC)
}

// EndOfDay moves t to 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// resolveDateRange turns an optional from/to pair into a closed range.
// A missing lower bound becomes MinDate, a missing upper bound MaxDate, and a supplied
// upper bound is pushed to the end of its day.
func (s Settings) resolveDateRange(from, to string, hasFrom, hasTo bool) (DateRange, error) {
	r := DateRange{From: s.MinDate, To: s.MaxDate}
	if hasFrom {
		t, err := ParseDate(s.DateLayout, from)
		if err != nil {
			return DateRange{}, err
		}
		r.From = t
	}
	if hasTo {
		t, err := ParseDate(s.DateLayout, to)
		if err != nil {
			return DateRange{}, err
		}
		r.To = EndOfDay(t)
	}
	return r, nil
}
