package json_types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/suchimauz/clinic-slot-planner/internal/utils"
)

const DateLayout = "2006-01-02"

func parseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(time.RFC3339, str)
	// Если не удалось пробуем дату со временем, но без таймзоны
	if err != nil {
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, time.UTC)
		if err != nil {
			// Если не удалось, пробуем как дату без времени
			parsedDate, err = time.ParseInLocation(DateLayout, str, time.UTC)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date %q: %w", str, err)
			}
		}
	}

	return parsedDate, nil
}

// Date is a calendar date without time of day. The wrapped value is always
// midnight UTC so dates compare and hash consistently.
type Date struct {
	Date time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time of day of t, keeping the calendar day as seen in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(str string) (Date, error) {
	parsed, err := parseDate(str)
	if err != nil {
		return Date{}, err
	}
	return DateOf(parsed), nil
}

func (d Date) AddDays(days int) Date {
	return DateOf(d.Date.AddDate(0, 0, days))
}

func (d Date) Year() int             { return d.Date.Year() }
func (d Date) Month() time.Month     { return d.Date.Month() }
func (d Date) Day() int              { return d.Date.Day() }
func (d Date) Weekday() time.Weekday { return d.Date.Weekday() }

func (d Date) IsZero() bool {
	return d.Date.IsZero()
}

func (d Date) Before(other Date) bool {
	return d.Date.Before(other.Date)
}

func (d Date) After(other Date) bool {
	return d.Date.After(other.Date)
}

func (d Date) Equal(other Date) bool {
	return d.Date.Equal(other.Date)
}

// DaysUntil returns the number of days from d to other, negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	return utils.DaysBetween(d.Date, other.Date)
}

// At combines the date with a time of day in loc.
func (d Date) At(t Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

func (d Date) String() string {
	return d.Date.Format(DateLayout)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse date: %w", err)
	}

	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
