package json_types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidTime = errors.New("invalid time of day")

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
)

// Time is a time of day on the 24-hour clock, stored as minutes since midnight.
// Valid values are 0 (00:00) through 1439 (23:59).
type Time int

func NewTime(hour, minute int) (Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, hour, minute)
	}
	return Time(hour*MinutesPerHour + minute), nil
}

// MustTime is NewTime for literals known to be valid.
func MustTime(hour, minute int) Time {
	t, err := NewTime(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTime accepts "HH:MM" and "HH:MM:SS"; seconds are dropped.
func ParseTime(str string) (Time, error) {
	parts := strings.Split(strings.TrimSpace(str), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, str)
	}

	hour, err := parseClockField(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, str)
	}
	minute, err := parseClockField(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, str)
	}
	if len(parts) == 3 {
		if second, err := parseClockField(parts[2]); err != nil || second < 0 || second > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, str)
		}
	}

	t, err := NewTime(hour, minute)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, str)
	}
	return t, nil
}

// ParseTime12h parses labels like "9:05 AM", "12:00 pm" or "11:30PM".
func ParseTime12h(label string) (Time, error) {
	str := strings.ToUpper(strings.TrimSpace(label))

	var pm bool
	switch {
	case strings.HasSuffix(str, "AM"):
		str = strings.TrimSuffix(str, "AM")
	case strings.HasSuffix(str, "PM"):
		str = strings.TrimSuffix(str, "PM")
		pm = true
	default:
		return 0, fmt.Errorf("%w: missing AM/PM in %q", ErrInvalidTime, label)
	}

	parts := strings.Split(strings.TrimSpace(str), ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, label)
	}
	hour, err := parseClockField(parts[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, label)
	}
	minute, err := parseClockField(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, label)
	}

	// 12 AM is midnight, 12 PM is noon
	hour = hour % 12
	if pm {
		hour += 12
	}

	return NewTime(hour, minute)
}

func parseClockField(s string) (int, error) {
	if s == "" || len(s) > 2 {
		return 0, ErrInvalidTime
	}
	return strconv.Atoi(s)
}

func (t Time) Hour() int {
	return int(t) / MinutesPerHour
}

func (t Time) Minute() int {
	return int(t) % MinutesPerHour
}

func (t Time) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

func (t Time) Before(other Time) bool {
	return t < other
}

// String formats the time as "HH:MM".
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Format12h formats the time as "H:MM AM" / "H:MM PM".
func (t Time) Format12h() string {
	suffix := "AM"
	if t.Hour() >= 12 {
		suffix = "PM"
	}

	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}

	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), suffix)
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse time: %w", err)
	}

	parsed, err := ParseTime(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
