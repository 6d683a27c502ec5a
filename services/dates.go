package services

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Layouts without a zone are read as
// calendar dates in the caller's location.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/2006",
}

// ParseDate reads a stored date string and returns its calendar day as a
// midnight in loc. ok is false when no layout matches.
func ParseDate(s string, loc *time.Location) (day time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		return Midnight(t.In(loc)), true
	}
	return time.Time{}, false
}

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from a to b (b - a), ignoring the
// clock and any DST shift between them.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
