package tender

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for all dates handled by the engine.
const DateFormat = "2006-01-02"

// Date is a civil date with day precision. The zero value means the date
// is unknown: an unknown start sorts before any known start, and an
// unknown end marks a period as still in effect.
type Date struct {
	t time.Time
}

// NewDate creates a Date from year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. An empty string parses to the
// zero (unknown) Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t: t.UTC()}, nil
}

// IsZero reports whether the date is unknown.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the underlying time at midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// Before reports whether d is strictly before other. Both dates must be
// known; callers handle unknown dates explicitly.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether two dates name the same day, treating two
// unknown dates as equal.
func (d Date) Equal(other Date) bool {
	if d.IsZero() || other.IsZero() {
		return d.IsZero() == other.IsZero()
	}
	return d.t.Equal(other.t)
}

// Compare orders dates with unknown first: -1 if d sorts before other,
// 0 if equal, +1 otherwise.
func (d Date) Compare(other Date) int {
	switch {
	case d.Equal(other):
		return 0
	case d.IsZero():
		return -1
	case other.IsZero():
		return 1
	case d.t.Before(other.t):
		return -1
	default:
		return 1
	}
}

// String returns the YYYY-MM-DD form, or the empty string when unknown.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateFormat)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string, or null when unknown.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.t.Format(DateFormat) + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalYAML() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalYAML decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalYAML(data []byte) error {
	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
