package models

import (
	"fmt"
	"time"
)

const secondsPerDay = 86400

// Day is a proleptic day number: calendar days since 1970-01-01. All
// response series are sparse maps keyed by Day, so a day is present only
// if the user answered on that day.
type Day int

// DayOf returns the Day containing t, using t's own location.
func DayOf(t time.Time) Day {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Day(midnight.Unix() / secondsPerDay)
}

// Today returns the current local day.
func Today() Day {
	return DayOf(time.Now())
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// String formats the day as a short axis label, e.g. "Mon 01-02".
func (d Day) String() string {
	t := d.Time()
	return t.Weekday().String()[:3] + " " + t.Format("01-02")
}

// ISO formats the day as 2006-01-02, the form used in URLs and forms.
func (d Day) ISO() string {
	return d.Time().Format("2006-01-02")
}

// ParseDay parses a 2006-01-02 date into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DayOf(t), nil
}
