package timeapi

import (
	"encoding/json"
	"time"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// Time is a middleware struct to control the format of dates in the API
type Time time.Time

// UnmarshalJSON implements the json.Unmarshalled interface
// This IS a pointer receiver, and it is done on purpose.
func (t *Time) UnmarshalJSON(bytes []byte) error {
	var s string
	if err := json.Unmarshal(bytes, &s); err != nil {
		return err
	}
	got, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*t = Time(got)
	return nil
}

// MarshalJSON implements the json.Marshaller interface
// This IS NOT a pointer receiver, and it is done on purpose.
func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// String implements Stringer interface. It returns the date in RFC3339 format, expressed in UTC location
func (t *Time) String() string {
	return time.Time(*t).UTC().Format(time.RFC3339Nano)
}

// Date is a calendar date without time of day. It is stored as midnight UTC so
// two dates compare by day regardless of the location they were taken in.
type Date time.Time

// NewDate returns the date with the given year, month and day
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t as seen in the given location
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (Date, error) {
	got, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date(got), nil
}

// Time returns the date as a time.Time at midnight UTC
func (d Date) Time() time.Time {
	t := time.Time(d)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is a day before o
func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

// After reports whether d is a day after o
func (d Date) After(o Date) bool {
	return d.Time().After(o.Time())
}

// Equal reports whether d and o are the same day
func (d Date) Equal(o Date) bool {
	return d.Time().Equal(o.Time())
}

// AddDays returns d moved n days
func (d Date) AddDays(n int) Date {
	return Date(d.Time().AddDate(0, 0, n))
}

// IsZero reports whether d is the zero date
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// String returns the date in YYYY-MM-DD format
func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

// UnmarshalJSON implements the json.Unmarshalled interface
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var s string
	if err := json.Unmarshal(bytes, &s); err != nil {
		return err
	}
	got, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = got
	return nil
}

// MarshalJSON implements the json.Marshaller interface
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}
