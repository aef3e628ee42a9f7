package schedule

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ClockLayout is the wire format for wall-clock times of day.
const ClockLayout = "15:04:05"

// Date builds a calendar date as midnight UTC. All date arithmetic in this
// package happens on these values so a 7-day step is always exactly one week,
// with no DST edge to fall over.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates an arbitrary timestamp to its calendar date.
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock parses an HH:MM:SS wall-clock string into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// FirstOnOrAfter returns the first date on or after start that falls on the
// given weekday. If start itself matches, start is returned.
func FirstOnOrAfter(start time.Time, weekday time.Weekday) time.Time {
	start = DateOf(start)
	offset := (int(weekday) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, offset)
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange builds a normalized inclusive date range.
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: DateOf(from), To: DateOf(to)}
}

// Contains reports whether the date d lies within the range.
func (r DateRange) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(r.From) && !d.After(r.To)
}

// occurrenceKey identifies a single slot of a weekly rule on one date. It is
// the natural key overrides are stored under and the identity the presentation
// layer hands back when a single occurrence is edited.
func occurrenceKey(itemID int64, date time.Time) string {
	return strconv.FormatInt(itemID, 10) + ":" + FormatDate(date)
}
