package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	timeLayout   = "15:04"
	minutesInDay = 24 * 60
)

var (
	// ErrInvalidTimeFormat is returned when a string is not a valid HH:MM value
	ErrInvalidTimeFormat = errors.New("invalid time string format, expected HH:MM")

	// ErrTimeOutOfRange is returned when time arithmetic leaves the 00:00-24:00 day range
	ErrTimeOutOfRange = errors.New("time out of day range")
)

// TimeString is a clinic-local wall-clock time of day in "HH:MM" form.
// It deliberately carries no date and no timezone: working hours and slot
// start times are stored and compared as the clinic sees them on the wall.
type TimeString string

// NewTimeString builds a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesInDay {
		return "", ErrTimeOutOfRange
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate checks the HH:MM format.
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// Fails with ErrTimeOutOfRange if the result would cross midnight.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total := current + minutes
	if total < 0 || total > minutesInDay {
		return "", ErrTimeOutOfRange
	}
	if total == minutesInDay {
		// Exclusive end of day, valid only as an interval boundary
		return TimeString("24:00"), nil
	}
	return NewTimeStringFromMinutes(total)
}

// IsBefore reports whether t is strictly earlier than other.
// Lexicographic comparison is correct for zero-padded HH:MM values.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// String returns the HH:MM representation.
func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer for Postgres TIME columns.
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Accepts TIME columns scanned by lib/pq as
// time.Time, string or []byte ("HH:MM:SS" is truncated to "HH:MM").
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) > len(timeLayout) {
		s = s[:len(timeLayout)]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
